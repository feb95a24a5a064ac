package handlers

import (
	"net/http"
	"strings"

	"resumate-backend/internal/middleware"
	"resumate-backend/internal/repository"
	"resumate-backend/internal/services"
)

// ContextHandler manages the long-lived stored CV/JD context.
type ContextHandler struct {
	userRepo    *repository.UserRepo
	fileExtract *services.FileExtractService
	maxUpload   int64
}

func NewContextHandler(userRepo *repository.UserRepo, fileExtract *services.FileExtractService, maxUpload int64) *ContextHandler {
	return &ContextHandler{
		userRepo:    userRepo,
		fileExtract: fileExtract,
		maxUpload:   maxUpload,
	}
}

// Update accepts an optional CV file and/or optional job description text.
// At least one must be present; absent fields leave stored context
// unchanged.
func (h *ContextHandler) Update(w http.ResponseWriter, r *http.Request) {
	cvText, upErr := readCVUpload(w, r, h.fileExtract, h.maxUpload)
	if upErr != nil {
		upErr.write(w, r)
		return
	}

	jdText := strings.TrimSpace(r.FormValue("job_description"))

	if cvText == "" && jdText == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Provide a CV file and/or a job description", r))
		return
	}

	var cvPtr, jdPtr *string
	if cvText != "" {
		cvPtr = &cvText
	}
	if jdText != "" {
		jdPtr = &jdText
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.userRepo.UpdateContext(r.Context(), userID, cvPtr, jdPtr); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cv_updated": cvPtr != nil,
		"jd_updated": jdPtr != nil,
	})
}

func (h *ContextHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	uc, err := h.userRepo.GetContext(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := map[string]interface{}{
		"has_cv": uc.CVText != nil && *uc.CVText != "",
		"has_jd": uc.JDText != nil && *uc.JDText != "",
	}
	if uc.CVText != nil {
		resp["cv_length"] = len(*uc.CVText)
	}
	if uc.JDText != nil {
		resp["jd_length"] = len(*uc.JDText)
	}

	writeJSON(w, http.StatusOK, resp)
}

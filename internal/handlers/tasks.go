package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"resumate-backend/internal/middleware"
	"resumate-backend/internal/models"
	"resumate-backend/internal/repository"
	"resumate-backend/internal/services"
)

type TaskHandler struct {
	tasks       *services.TaskService
	userRepo    *repository.UserRepo
	fileExtract *services.FileExtractService
	maxUpload   int64
}

func NewTaskHandler(tasks *services.TaskService, userRepo *repository.UserRepo, fileExtract *services.FileExtractService, maxUpload int64) *TaskHandler {
	return &TaskHandler{
		tasks:       tasks,
		userRepo:    userRepo,
		fileExtract: fileExtract,
		maxUpload:   maxUpload,
	}
}

// resolveCVText reads the uploaded CV or falls back to the stored one.
// Validation happens here, before any model call is attempted.
func (h *TaskHandler) resolveCVText(w http.ResponseWriter, r *http.Request) (string, bool) {
	cvText, upErr := readCVUpload(w, r, h.fileExtract, h.maxUpload)
	if upErr != nil {
		upErr.write(w, r)
		return "", false
	}

	if cvText != "" {
		return cvText, true
	}

	userID := middleware.GetUserID(r.Context())
	uc, err := h.userRepo.GetContext(r.Context(), userID)
	if err == nil && uc.CVText != nil && strings.TrimSpace(*uc.CVText) != "" {
		return *uc.CVText, true
	}

	writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Upload a CV file or store one via the context endpoint first", r))
	return "", false
}

func (h *TaskHandler) TailorCV(w http.ResponseWriter, r *http.Request) {
	cvText, ok := h.resolveCVText(w, r)
	if !ok {
		return
	}

	jdText := strings.TrimSpace(r.FormValue("job_description"))
	if jdText == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Job description is required", r))
		return
	}

	kind := services.PayloadLatex
	if r.FormValue("format") == "markdown" {
		kind = services.PayloadMarkdown
	}

	result, err := h.tasks.TailorCV(r.Context(), cvText, jdText, kind)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := models.TaskResponse{
		Response:    result.Commentary,
		Payload:     result.Payload,
		ArtifactURL: result.ArtifactURL,
	}
	if result.Payload != "" {
		resp.PayloadKind = string(result.Kind)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *TaskHandler) AnalyzeJD(w http.ResponseWriter, r *http.Request) {
	cvText, ok := h.resolveCVText(w, r)
	if !ok {
		return
	}

	jdText := strings.TrimSpace(r.FormValue("job_description"))
	if jdText == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Job description is required", r))
		return
	}

	response, err := h.tasks.AnalyzeJD(r.Context(), jdText, cvText)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TaskResponse{Response: response})
}

func (h *TaskHandler) ExtractSkills(w http.ResponseWriter, r *http.Request) {
	cvText, ok := h.resolveCVText(w, r)
	if !ok {
		return
	}

	response, err := h.tasks.ExtractSkills(r.Context(), cvText)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TaskResponse{Response: response})
}

func (h *TaskHandler) ATSScore(w http.ResponseWriter, r *http.Request) {
	cvText, ok := h.resolveCVText(w, r)
	if !ok {
		return
	}

	response, err := h.tasks.ATSScore(r.Context(), cvText)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TaskResponse{Response: response})
}

func (h *TaskHandler) SummarizeJD(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeJDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Job description is required", r))
		return
	}

	response, err := h.tasks.SummarizeJD(r.Context(), req.JobDescription)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TaskResponse{Response: response})
}

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"resumate-backend/internal/services"
)

// ─── Error mapping ───

func TestHandleServiceError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"email": "bad"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", &services.ConflictError{Message: "Email already in use"}, http.StatusConflict, "CONFLICT"},
		{"unauthorized", &services.UnauthorizedError{Message: "Invalid email or password"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"missing credential", &services.ConfigError{Message: "GEMINI_API_KEY is not set"}, http.StatusServiceUnavailable, "AI_NOT_CONFIGURED"},
		{"upstream failure", &services.UpstreamError{Message: "Gemini API error"}, http.StatusBadGateway, "AI_UPSTREAM_ERROR"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", nil)
			req.Header.Set("X-Request-ID", "req-123")

			handleServiceError(rr, req, tc.err)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}

			var resp struct {
				Error struct {
					Code      string `json:"code"`
					RequestID string `json:"request_id"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error.Code != tc.wantCode {
				t.Errorf("Expected code %q, got %q", tc.wantCode, resp.Error.Code)
			}
			if resp.Error.RequestID != "req-123" {
				t.Errorf("Expected request id echoed back, got %q", resp.Error.RequestID)
			}
		})
	}
}

// ─── Request parsing ───

func TestChatRequest_Parsing(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"message": "How do I improve my CV?"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(req.Body).Decode(&parsed); err != nil {
		t.Fatalf("Failed to parse request body: %v", err)
	}

	if parsed.Message != "How do I improve my CV?" {
		t.Errorf("Expected message preserved, got %q", parsed.Message)
	}
}

func TestWriteJSON_SetsContentType(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusCreated, map[string]string{"message": "ok"})

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON content type, got %q", rr.Header().Get("Content-Type"))
	}
}

// ─── Upload validation ───

func TestIsAllowedCVFile(t *testing.T) {
	pdfHead := append([]byte("%PDF-1.5\n"), bytes.Repeat([]byte{' '}, 64)...)

	tests := []struct {
		name     string
		data     []byte
		filename string
		want     bool
	}{
		{"pdf", pdfHead, "cv.pdf", true},
		{"txt", []byte("plain resume text"), "cv.txt", true},
		{"docx magic with docx name", []byte("PK\x03\x04rest-of-zip"), "cv.docx", true},
		{"exe renamed to pdf", []byte{0x4D, 0x5A, 0x90, 0x00}, "cv.pdf", false},
		{"pdf bytes with wrong extension", pdfHead, "cv.exe", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isAllowedCVFile(tc.data, tc.filename); got != tc.want {
				t.Errorf("isAllowedCVFile(%s) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"resumate-backend/internal/services"
)

// readCVUpload pulls the optional "file" part out of a multipart request
// and extracts its plain text. Returns ("", nil) when no file was sent.
func readCVUpload(w http.ResponseWriter, r *http.Request, extract *services.FileExtractService, maxBytes int64) (string, *uploadError) {
	if r.ContentLength > maxBytes {
		return "", &uploadError{http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File size exceeds upload limit"}
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			// Plain form body; the stored CV may still cover the request.
			return "", nil
		}
		return "", &uploadError{http.StatusBadRequest, "VALIDATION_ERROR", "Invalid multipart form"}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// No file part; the caller decides whether stored context suffices.
		return "", nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", &uploadError{http.StatusBadRequest, "VALIDATION_ERROR", "Failed to read uploaded file"}
	}

	if !isAllowedCVFile(data, header.Filename) {
		return "", &uploadError{http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", "Only PDF, DOCX and TXT files are supported"}
	}

	text, err := extract.ExtractText(header.Filename, data)
	if err != nil {
		return "", &uploadError{http.StatusBadRequest, "VALIDATION_ERROR", "Could not extract text from file"}
	}

	return text, nil
}

type uploadError struct {
	status  int
	code    string
	message string
}

func (e *uploadError) write(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, e.status, errorResp(e.code, e.message, r))
}

func isAllowedCVFile(data []byte, filename string) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}

	switch http.DetectContentType(head) {
	case "application/pdf", "text/plain; charset=utf-8", "application/zip":
		// DOCX files detect as zip archives.
	default:
		return false
	}

	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".pdf") || strings.HasSuffix(lower, ".docx") ||
		strings.HasSuffix(lower, ".txt")
}

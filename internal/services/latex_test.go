package services

import (
	"context"
	"testing"
	"time"
)

func TestRenderService_MissingToolchainReturnsError(t *testing.T) {
	svc, err := NewRenderService(t.TempDir(), "pdflatex-binary-that-does-not-exist", 5*time.Second)
	if err != nil {
		t.Fatalf("NewRenderService failed: %v", err)
	}

	url, err := svc.Render(context.Background(), "\\documentclass{article}\\begin{document}x\\end{document}")
	if err == nil {
		t.Fatal("Expected an error when the latex binary is missing")
	}
	if url != "" {
		t.Errorf("Expected empty artifact reference on failure, got %q", url)
	}
}

func TestRenderService_CreatesArtifactDir(t *testing.T) {
	dir := t.TempDir() + "/nested/artifacts"

	if _, err := NewRenderService(dir, "pdflatex", time.Second); err != nil {
		t.Fatalf("Expected artifact directory to be created, got %v", err)
	}
}

func TestTail(t *testing.T) {
	if got := tail([]byte("abcdef"), 3); got != "def" {
		t.Errorf("Expected last 3 bytes, got %q", got)
	}
	if got := tail([]byte("ab"), 3); got != "ab" {
		t.Errorf("Short input must be returned whole, got %q", got)
	}
}

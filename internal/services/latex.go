package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// RenderService compiles LaTeX source to PDF by shelling out to pdflatex.
// Every request gets its own temporary workspace and a uuid artifact name,
// so concurrent renders never collide on filenames. Failures (missing
// toolchain, malformed source, timeout) are reported to the caller as
// errors that the dispatcher treats as non-fatal.
type RenderService struct {
	artifactDir string
	binary      string
	timeout     time.Duration
}

func NewRenderService(artifactDir, binary string, timeout time.Duration) (*RenderService, error) {
	if err := os.MkdirAll(artifactDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	return &RenderService{
		artifactDir: artifactDir,
		binary:      binary,
		timeout:     timeout,
	}, nil
}

// Render compiles source and returns the public artifact path
// ("/artifacts/<uuid>.pdf") on success.
func (s *RenderService) Render(ctx context.Context, source string) (string, error) {
	workDir, err := os.MkdirTemp("", "cvrender-")
	if err != nil {
		return "", fmt.Errorf("failed to create render workspace: %w", err)
	}
	defer os.RemoveAll(workDir)

	texPath := filepath.Join(workDir, "cv.tex")
	if err := os.WriteFile(texPath, []byte(source), 0o644); err != nil {
		return "", fmt.Errorf("failed to write tex source: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Two passes so moderncv cross-references settle.
	for pass := 0; pass < 2; pass++ {
		cmd := exec.CommandContext(ctx, s.binary,
			"-interaction=nonstopmode",
			"-halt-on-error",
			"-output-directory", workDir,
			texPath,
		)
		cmd.Dir = workDir

		if out, err := cmd.CombinedOutput(); err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				return "", fmt.Errorf("latex compilation timed out after %s", s.timeout)
			}
			return "", fmt.Errorf("latex compilation failed: %v: %s", err, tail(out, 400))
		}
	}

	pdfBytes, err := os.ReadFile(filepath.Join(workDir, "cv.pdf"))
	if err != nil {
		return "", fmt.Errorf("latex produced no pdf: %w", err)
	}

	name := uuid.New().String() + ".pdf"
	if err := os.WriteFile(filepath.Join(s.artifactDir, name), pdfBytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to store artifact: %w", err)
	}

	return "/artifacts/" + name, nil
}

func tail(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[len(b)-n:])
}

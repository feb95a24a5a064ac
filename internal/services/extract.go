package services

import "strings"

// PayloadKind tags the structured block a task expects in model output.
type PayloadKind string

const (
	PayloadNone     PayloadKind = "none"
	PayloadMarkdown PayloadKind = "markdown_cv"
	PayloadLatex    PayloadKind = "latex_document"
)

// Sentinel markers. These literals are part of the instruction templates
// and must be emitted verbatim by the model for extraction to succeed.
const (
	latexStartSentinel = "[LATEX_START]"
	latexEndSentinel   = "[LATEX_END]"
	cvStartSentinel    = "[CV_START]"
	cvEndSentinel      = "[CV_END]"
)

// ExtractionResult splits raw model output into human-readable commentary
// and an optional embedded payload.
type ExtractionResult struct {
	Commentary string
	Payload    string
	Kind       PayloadKind
}

func sentinelsFor(kind PayloadKind) (string, string) {
	switch kind {
	case PayloadLatex:
		return latexStartSentinel, latexEndSentinel
	case PayloadMarkdown:
		return cvStartSentinel, cvEndSentinel
	default:
		return "", ""
	}
}

// Extract is total: malformed or missing sentinels are an expected case
// (the model is not 100% format-compliant) and degrade to "no payload,
// full text as commentary" rather than an error.
//
// With both sentinels present the payload is the trimmed text strictly
// between them and anything after the end sentinel is treated as noise.
// With only the start sentinel the trimmed remainder is salvaged as the
// payload.
func Extract(raw string, kind PayloadKind) ExtractionResult {
	start, end := sentinelsFor(kind)
	if start == "" {
		return ExtractionResult{Commentary: strings.TrimSpace(raw), Kind: PayloadNone}
	}

	startIdx := strings.Index(raw, start)
	if startIdx < 0 {
		return ExtractionResult{Commentary: strings.TrimSpace(raw), Kind: PayloadNone}
	}

	commentary := strings.TrimSpace(raw[:startIdx])
	rest := raw[startIdx+len(start):]

	endIdx := strings.Index(rest, end)
	if endIdx < 0 {
		return ExtractionResult{
			Commentary: commentary,
			Payload:    strings.TrimSpace(rest),
			Kind:       kind,
		}
	}

	return ExtractionResult{
		Commentary: commentary,
		Payload:    strings.TrimSpace(rest[:endIdx]),
		Kind:       kind,
	}
}

package services

import "testing"

func TestExtract_WellFormedLatex(t *testing.T) {
	raw := "Here is what I changed\n[LATEX_START]\n\\documentclass{moderncv}\n[LATEX_END]\nTrailing note"

	got := Extract(raw, PayloadLatex)

	if got.Commentary != "Here is what I changed" {
		t.Errorf("Expected commentary before the start sentinel, got %q", got.Commentary)
	}
	if got.Payload != "\\documentclass{moderncv}" {
		t.Errorf("Expected trimmed payload between sentinels, got %q", got.Payload)
	}
	if got.Kind != PayloadLatex {
		t.Errorf("Expected kind %q, got %q", PayloadLatex, got.Kind)
	}
}

func TestExtract_MarkdownCVScenario(t *testing.T) {
	raw := "Here is feedback\n[CV_START]\n# Jane Doe\n## Skills\n[CV_END]\nExtra trailing note"

	got := Extract(raw, PayloadMarkdown)

	if got.Commentary != "Here is feedback" {
		t.Errorf("Expected commentary 'Here is feedback', got %q", got.Commentary)
	}
	if got.Payload != "# Jane Doe\n## Skills" {
		t.Errorf("Expected markdown payload, got %q", got.Payload)
	}
	if got.Kind != PayloadMarkdown {
		t.Errorf("Expected kind %q, got %q", PayloadMarkdown, got.Kind)
	}
}

func TestExtract_DegradesGracefully(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		kind           PayloadKind
		wantCommentary string
		wantPayload    string
		wantKind       PayloadKind
	}{
		{"empty input", "", PayloadLatex, "", "", PayloadNone},
		{"no sentinels", "Just some advice about your CV.", PayloadLatex, "Just some advice about your CV.", "", PayloadNone},
		{"start only salvages remainder", "Intro\n[LATEX_START]\n\\section{Work}", PayloadLatex, "Intro", "\\section{Work}", PayloadLatex},
		{"end before start is treated as missing end", "[LATEX_END] text [LATEX_START] tail", PayloadLatex, "[LATEX_END] text", "tail", PayloadLatex},
		{"wrong pair for expected kind", "[CV_START]\nbody\n[CV_END]", PayloadLatex, "[CV_START]\nbody\n[CV_END]", "", PayloadNone},
		{"expected none ignores sentinels", "[LATEX_START]x[LATEX_END]", PayloadNone, "[LATEX_START]x[LATEX_END]", "", PayloadNone},
		{"whitespace only", "   \n\t ", PayloadMarkdown, "", "", PayloadNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.raw, tc.kind)

			if got.Commentary != tc.wantCommentary {
				t.Errorf("Commentary: expected %q, got %q", tc.wantCommentary, got.Commentary)
			}
			if got.Payload != tc.wantPayload {
				t.Errorf("Payload: expected %q, got %q", tc.wantPayload, got.Payload)
			}
			if got.Kind != tc.wantKind {
				t.Errorf("Kind: expected %q, got %q", tc.wantKind, got.Kind)
			}
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"a [CV_START] b [CV_END] c",
		"a [CV_START] b",
		"[CV_END] only",
	}

	for _, raw := range inputs {
		first := Extract(raw, PayloadMarkdown)
		second := Extract(raw, PayloadMarkdown)

		if first != second {
			t.Errorf("Extract is not deterministic for %q: %+v vs %+v", raw, first, second)
		}
	}
}

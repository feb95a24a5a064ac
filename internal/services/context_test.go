package services

import (
	"strings"
	"testing"

	"resumate-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBuildChatMessages_ShapeAcrossContextStates(t *testing.T) {
	tests := []struct {
		name   string
		uc     *models.UserContext
		wantCV bool
		wantJD bool
	}{
		{"empty context", &models.UserContext{}, false, false},
		{"cv only", &models.UserContext{CVText: strPtr("Go, Postgres")}, true, false},
		{"jd only", &models.UserContext{JDText: strPtr("Backend engineer role")}, false, true},
		{"both", &models.UserContext{CVText: strPtr("Go, Postgres"), JDText: strPtr("Backend engineer role")}, true, true},
	}

	history := []models.Message{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "hi, how can I help?"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msgs := BuildChatMessages(tc.uc, history, "what next?")

			if len(msgs) != len(history)+2 {
				t.Fatalf("Expected %d messages, got %d", len(history)+2, len(msgs))
			}
			if msgs[0].Role != models.RoleSystem {
				t.Errorf("First message must be the system turn, got role %q", msgs[0].Role)
			}
			last := msgs[len(msgs)-1]
			if last.Role != models.RoleUser || last.Content != "what next?" {
				t.Errorf("Last message must be the new utterance, got %+v", last)
			}

			system := msgs[0].Content
			if got := strings.Contains(system, "Go, Postgres"); got != tc.wantCV {
				t.Errorf("CV text in system turn: expected %v, got %v", tc.wantCV, got)
			}
			if got := strings.Contains(system, "Backend engineer role"); got != tc.wantJD {
				t.Errorf("JD text in system turn: expected %v, got %v", tc.wantJD, got)
			}

			// History preserved in original order between system and utterance
			for i, m := range history {
				if msgs[i+1].Role != m.Role || msgs[i+1].Content != m.Content {
					t.Errorf("History turn %d altered: %+v", i, msgs[i+1])
				}
			}
		})
	}
}

func TestBuildChatMessages_StoredCVSubstring(t *testing.T) {
	uc := &models.UserContext{CVText: strPtr("Python, SQL")}

	msgs := BuildChatMessages(uc, nil, "What skills do I have?")

	if !strings.Contains(msgs[0].Content, "Python, SQL") {
		t.Errorf("System turn must contain the stored CV text, got %q", msgs[0].Content)
	}
}

func TestBuildChatMessages_EmptyEverything(t *testing.T) {
	msgs := BuildChatMessages(&models.UserContext{}, nil, "hi")

	if len(msgs) != 2 {
		t.Fatalf("Expected degenerate [system, user] list, got %d messages", len(msgs))
	}
	if msgs[0].Role != models.RoleSystem || msgs[1].Role != models.RoleUser {
		t.Errorf("Expected [system, user], got [%s, %s]", msgs[0].Role, msgs[1].Role)
	}
	if msgs[0].Content != basePrompt {
		t.Errorf("Empty context must leave the base instruction untouched")
	}
}

func TestBuildChatMessages_DoesNotMutateHistory(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleUser, Content: "first"},
		{Role: models.RoleAssistant, Content: "second"},
	}

	msgs := BuildChatMessages(&models.UserContext{}, history, "third")
	msgs[1].Content = "overwritten"

	if history[0].Content != "first" {
		t.Errorf("Builder must not share storage with the history slice")
	}
	if len(history) != 2 {
		t.Errorf("Builder must not grow the history slice")
	}
}

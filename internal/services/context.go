package services

import (
	"strings"

	"resumate-backend/internal/models"
)

// BuildChatMessages assembles the exact ordered message list submitted to
// the model for a chat turn: the system turn (base instruction plus labeled
// stored-context blocks), the persisted history in original order, and the
// new utterance last. It builds a fresh slice and never mutates its inputs,
// so persistence of the new turns stays a separate step.
func BuildChatMessages(uc *models.UserContext, history []models.Message, utterance string) []models.ChatMessage {
	msgs := make([]models.ChatMessage, 0, len(history)+2)

	msgs = append(msgs, models.ChatMessage{
		Role:    models.RoleSystem,
		Content: buildSystemTurn(uc),
	})

	for _, m := range history {
		msgs = append(msgs, models.ChatMessage{Role: m.Role, Content: m.Content})
	}

	msgs = append(msgs, models.ChatMessage{Role: models.RoleUser, Content: utterance})

	return msgs
}

// buildSystemTurn injects the long-lived stored CV/JD text into the system
// instruction under explicit section headers, so the model can tell
// instruction from data.
func buildSystemTurn(uc *models.UserContext) string {
	var b strings.Builder
	b.WriteString(basePrompt)

	if uc == nil {
		return b.String()
	}

	if uc.CVText != nil && strings.TrimSpace(*uc.CVText) != "" {
		b.WriteString("\n\n--- STORED CV START ---\n")
		b.WriteString(strings.TrimSpace(*uc.CVText))
		b.WriteString("\n--- STORED CV END ---")
	}

	if uc.JDText != nil && strings.TrimSpace(*uc.JDText) != "" {
		b.WriteString("\n\n--- STORED JOB DESCRIPTION START ---\n")
		b.WriteString(strings.TrimSpace(*uc.JDText))
		b.WriteString("\n--- STORED JOB DESCRIPTION END ---")
	}

	return b.String()
}

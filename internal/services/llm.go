package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"resumate-backend/internal/models"
)

// ModelEndpoint selects one of the two configured Gemini models.
type ModelEndpoint string

const (
	// EndpointGeneral serves chat, analysis and summarization.
	EndpointGeneral ModelEndpoint = "general"
	// EndpointSpecialized serves CV tailoring, where near-deterministic
	// structured output matters more than conversational variance.
	EndpointSpecialized ModelEndpoint = "specialized"
)

const (
	generalModelName     = "gemini-3-flash-preview"
	specializedModelName = "gemini-3-pro-preview"
)

type LLMService struct {
	client   *genai.Client
	rateChan chan struct{} // Token bucket
}

// NewLLMService creates the Gemini client. An empty API key is not a boot
// failure: the service comes up un-ready and every task reports the missing
// credential at dispatch time.
func NewLLMService(apiKey string, concurrentReqs int) (*LLMService, error) {
	s := &LLMService{}

	if apiKey == "" {
		return s, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	s.client = client

	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}
	s.rateChan = rateChan

	return s, nil
}

func (s *LLMService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// Ready reports whether the service holds a credential and can issue calls.
func (s *LLMService) Ready() bool {
	return s.client != nil
}

// acquireRate blocks until a rate slot is available
func (s *LLMService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *LLMService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Generate submits an ordered role-tagged message list. A leading system
// turn becomes the model's system instruction, intermediate turns become
// chat history, and the final turn (which must be a user turn) is sent as
// the message.
func (s *LLMService) Generate(ctx context.Context, profile TaskProfile, msgs []models.ChatMessage) (string, error) {
	if !s.Ready() {
		return "", &ConfigError{Message: "GEMINI_API_KEY is not set"}
	}
	if len(msgs) == 0 {
		return "", fmt.Errorf("empty message list")
	}

	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	name := generalModelName
	if profile.Endpoint == EndpointSpecialized {
		name = specializedModelName
	}

	model := s.client.GenerativeModel(name)
	model.SetTemperature(profile.Temperature)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(profile.MaxOutputTokens)

	if msgs[0].Role == models.RoleSystem {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(msgs[0].Content)},
		}
		msgs = msgs[1:]
	}

	if len(msgs) == 0 {
		return "", fmt.Errorf("message list has no user turn")
	}

	last := msgs[len(msgs)-1]
	cs := model.StartChat()
	for _, m := range msgs[:len(msgs)-1] {
		role := "user"
		if m.Role == models.RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", &UpstreamError{Message: "Gemini API error", Err: err}
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", &UpstreamError{Message: "Gemini returned empty response"}
	}

	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

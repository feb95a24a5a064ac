package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"resumate-backend/internal/models"
)

// TaskKind enumerates the supported product operations. Each kind has its
// own instruction template and model configuration.
type TaskKind string

const (
	TaskChat          TaskKind = "chat"
	TaskTailorCV      TaskKind = "tailor_cv"
	TaskAnalyzeJD     TaskKind = "analyze_jd"
	TaskExtractSkills TaskKind = "extract_skills"
	TaskATSScore      TaskKind = "ats_score"
	TaskSummarizeJD   TaskKind = "summarize_jd"
)

// TaskProfile is the per-task model configuration.
type TaskProfile struct {
	Endpoint        ModelEndpoint
	MaxOutputTokens int32
	Temperature     float32
}

// taskProfiles is the static task configuration table. tailor_cv runs on
// the specialized endpoint with low temperature: its output must be
// well-formed document structure that the extractor can parse, so
// determinism matters more than for the open-ended tasks.
var taskProfiles = map[TaskKind]TaskProfile{
	TaskChat:          {Endpoint: EndpointGeneral, MaxOutputTokens: 512, Temperature: 0.7},
	TaskTailorCV:      {Endpoint: EndpointSpecialized, MaxOutputTokens: 2048, Temperature: 0.2},
	TaskAnalyzeJD:     {Endpoint: EndpointGeneral, MaxOutputTokens: 1024, Temperature: 0.7},
	TaskExtractSkills: {Endpoint: EndpointGeneral, MaxOutputTokens: 1024, Temperature: 0.7},
	TaskATSScore:      {Endpoint: EndpointGeneral, MaxOutputTokens: 1024, Temperature: 0.7},
	TaskSummarizeJD:   {Endpoint: EndpointGeneral, MaxOutputTokens: 1024, Temperature: 0.7},
}

// Collaborator interfaces, satisfied by the repositories and services wired
// in main. Kept narrow so tests can substitute fakes.

type generator interface {
	Ready() bool
	Generate(ctx context.Context, profile TaskProfile, msgs []models.ChatMessage) (string, error)
}

type messageStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Message, error)
	AppendPair(ctx context.Context, userID uuid.UUID, userContent, assistantContent string) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type contextStore interface {
	GetContext(ctx context.Context, userID uuid.UUID) (*models.UserContext, error)
}

type renderer interface {
	Render(ctx context.Context, source string) (string, error)
}

// TaskService dispatches the product tasks. Each non-chat task is
// stateless: a fresh system+user pair, no history read or write. Only chat
// participates in the persisted per-user history.
type TaskService struct {
	llm      generator
	messages messageStore
	users    contextStore
	pdf      renderer

	mu        sync.Mutex
	userLocks map[uuid.UUID]*sync.Mutex
}

func NewTaskService(llm generator, messages messageStore, users contextStore, pdf renderer) *TaskService {
	return &TaskService{
		llm:       llm,
		messages:  messages,
		users:     users,
		pdf:       pdf,
		userLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// userLock returns the mutex serializing history appends for one user.
func (s *TaskService) userLock(userID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

func (s *TaskService) checkReady() error {
	if !s.llm.Ready() {
		return &ConfigError{Message: "GEMINI_API_KEY is not set. The AI service is unavailable."}
	}
	return nil
}

// Chat runs one conversational turn against the persisted history. The
// model call runs unlocked; only the final append of the user+assistant
// pair is serialized per user, so concurrent turns cannot corrupt order.
func (s *TaskService) Chat(ctx context.Context, userID uuid.UUID, message string) (string, error) {
	if err := s.checkReady(); err != nil {
		return "", err
	}

	uc, err := s.users.GetContext(ctx, userID)
	if err != nil {
		return "", err
	}

	history, err := s.messages.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	msgs := BuildChatMessages(uc, history, message)

	reply, err := s.llm.Generate(ctx, taskProfiles[TaskChat], msgs)
	if err != nil {
		return "", err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.messages.AppendPair(ctx, userID, message, reply); err != nil {
		return "", err
	}

	return reply, nil
}

// History returns the persisted conversation in order.
func (s *TaskService) History(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	return s.messages.ListByUser(ctx, userID)
}

// ResetChat clears the conversation history but keeps the stored CV/JD
// context.
func (s *TaskService) ResetChat(ctx context.Context, userID uuid.UUID) error {
	return s.messages.DeleteByUser(ctx, userID)
}

// TailorResult carries the commentary plus the extracted document payload
// and, when rendering succeeded, the artifact reference.
type TailorResult struct {
	Commentary  string
	Payload     string
	Kind        PayloadKind
	ArtifactURL string
}

// TailorCV rewrites the CV against the JD and extracts the delimited
// document from the model output. Rendering failures are logged, never
// fatal: the commentary and payload are still returned.
func (s *TaskService) TailorCV(ctx context.Context, cvText, jdText string, kind PayloadKind) (*TailorResult, error) {
	if kind != PayloadMarkdown {
		kind = PayloadLatex
	}

	raw, err := s.runStateless(ctx, TaskTailorCV, buildTailorPrompt(cvText, jdText, kind))
	if err != nil {
		return nil, err
	}

	extracted := Extract(raw, kind)

	result := &TailorResult{
		Commentary: extracted.Commentary,
		Payload:    extracted.Payload,
		Kind:       extracted.Kind,
	}
	if result.Commentary == "" && result.Payload == "" {
		result.Commentary = raw
	}

	if extracted.Kind == PayloadLatex && extracted.Payload != "" && s.pdf != nil {
		url, renderErr := s.pdf.Render(ctx, extracted.Payload)
		if renderErr != nil {
			log.Printf("CV render failed, returning source only: %v", renderErr)
		} else {
			result.ArtifactURL = url
		}
	}

	return result, nil
}

func (s *TaskService) AnalyzeJD(ctx context.Context, jdText, cvText string) (string, error) {
	return s.runStateless(ctx, TaskAnalyzeJD, buildAnalyzeJDPrompt(jdText, cvText))
}

func (s *TaskService) ExtractSkills(ctx context.Context, cvText string) (string, error) {
	return s.runStateless(ctx, TaskExtractSkills, buildExtractSkillsPrompt(cvText))
}

func (s *TaskService) ATSScore(ctx context.Context, cvText string) (string, error) {
	return s.runStateless(ctx, TaskATSScore, buildATSScorePrompt(cvText))
}

func (s *TaskService) SummarizeJD(ctx context.Context, jdText string) (string, error) {
	return s.runStateless(ctx, TaskSummarizeJD, buildSummarizeJDPrompt(jdText))
}

// runStateless issues a single system+user pair built fresh from the task's
// instruction template. It never reads or writes the chat history.
func (s *TaskService) runStateless(ctx context.Context, kind TaskKind, prompt string) (string, error) {
	if err := s.checkReady(); err != nil {
		return "", err
	}

	msgs := []models.ChatMessage{
		{Role: models.RoleSystem, Content: basePrompt},
		{Role: models.RoleUser, Content: prompt},
	}

	return s.llm.Generate(ctx, taskProfiles[kind], msgs)
}

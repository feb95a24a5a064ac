package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"resumate-backend/internal/handlers"
	"resumate-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	contextHandler *handlers.ContextHandler,
	taskHandler *handlers.TaskHandler,
	artifactDir string,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Chat Routes ────
		r.Route("/chat", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", chatHandler.Ask)
			r.Get("/history", chatHandler.History)
			r.Post("/reset", chatHandler.Reset)
		})

		// ──── Stored Context Routes ────
		r.Route("/context", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", contextHandler.Get)
			r.Put("/", contextHandler.Update)
		})

		// ──── Task Routes ────
		r.Route("/tasks", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/tailor-cv", taskHandler.TailorCV)
			r.Post("/analyze-jd", taskHandler.AnalyzeJD)
			r.Post("/extract-skills", taskHandler.ExtractSkills)
			r.Post("/ats-score", taskHandler.ATSScore)
			r.Post("/summarize-jd", taskHandler.SummarizeJD)
		})

	})

	// ──── Rendered Artifacts ────
	r.Handle("/artifacts/*", http.StripPrefix("/artifacts/",
		http.FileServer(http.Dir(artifactDir))))

	return r
}

// Package api exposes the quiz over HTTP. All endpoints are POST with
// JSON bodies, mirroring the client's call shapes.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/anshul/litmus/internal/feedback"
	"github.com/anshul/litmus/internal/quiz"
	"github.com/anshul/litmus/internal/session"
	"github.com/anshul/litmus/internal/summary"
)

// Quiz is the session orchestration surface the handlers call.
type Quiz interface {
	Start(ctx context.Context, identity quiz.Identity) (*session.Session, *quiz.Question, error)
	NextQuestion(ctx context.Context, sessionID string) (*quiz.Question, bool, error)
	SubmitAnswer(ctx context.Context, sessionID string, rawAnswer json.RawMessage) (quiz.Verdict, feedback.Feedback, bool, error)
	Session(id string) (*session.Session, error)
}

// Summarizer builds the final report for a session.
type Summarizer interface {
	Build(ctx context.Context, identity quiz.Identity, questions []*quiz.Question, results []quiz.Result) (*summary.Summary, error)
}

// Server holds the handler dependencies.
type Server struct {
	Quiz       Quiz
	Summaries  Summarizer
	Log        *zap.SugaredLogger
	CORSOrigin string
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recoveryMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{s.corsOrigin()},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/start", s.handleStart)
		r.Post("/next-question", s.handleNextQuestion)
		r.Post("/submit-answer", s.handleSubmitAnswer)
		r.Post("/summary", s.handleSummary)
	})
	return r
}

func (s *Server) corsOrigin() string {
	if s.CORSOrigin == "" {
		return "*"
	}
	return s.CORSOrigin
}

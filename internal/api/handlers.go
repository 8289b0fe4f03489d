package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anshul/litmus/internal/quiz"
	"github.com/anshul/litmus/internal/session"
	"github.com/anshul/litmus/internal/summary"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var identity quiz.Identity
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, q, err := s.Quiz.Start(r.Context(), identity)
	if err != nil {
		s.Log.Errorw("session start failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "could not start session")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": sess.ID,
		"question":  q,
	})
}

// sessionRequest is the body shared by the post-start endpoints.
type sessionRequest struct {
	SessionID string          `json:"sessionId"`
	Answer    json.RawMessage `json:"answer"`
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSessionRequest(w, r)
	if !ok {
		return
	}

	q, complete, err := s.Quiz.NextQuestion(r.Context(), req.SessionID)
	if err != nil {
		s.mapError(w, err, "could not produce next question")
		return
	}
	if complete {
		s.writeJSON(w, http.StatusOK, map[string]any{"question": nil, "isComplete": true})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"question": q, "isComplete": false})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSessionRequest(w, r)
	if !ok {
		return
	}
	if len(req.Answer) == 0 {
		s.writeError(w, http.StatusBadRequest, "answer is required")
		return
	}

	verdict, fb, complete, err := s.Quiz.SubmitAnswer(r.Context(), req.SessionID, req.Answer)
	if err != nil {
		s.mapError(w, err, "could not evaluate answer")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"result":     verdict,
		"feedback":   fb,
		"isComplete": complete,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSessionRequest(w, r)
	if !ok {
		return
	}

	sess, err := s.Quiz.Session(req.SessionID)
	if err != nil {
		s.mapError(w, err, "could not load session")
		return
	}

	snap := sess.Snapshot()
	report, err := s.Summaries.Build(r.Context(), snap.Identity, snap.Questions, snap.Results)
	if err != nil {
		s.mapError(w, err, "could not build summary")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"summary": report})
}

func (s *Server) decodeSessionRequest(w http.ResponseWriter, r *http.Request) (sessionRequest, bool) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.SessionID == "" {
		s.writeError(w, http.StatusBadRequest, "sessionId is required")
		return req, false
	}
	return req, true
}

// mapError translates domain errors to HTTP statuses. Anything
// unrecognized is a 500 with a generic message; details stay in logs.
func (s *Server) mapError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, session.ErrOutOfSequence):
		s.writeError(w, http.StatusBadRequest, "no question awaiting an answer")
	case errors.Is(err, session.ErrInvalidAnswer):
		s.writeError(w, http.StatusBadRequest, "answer does not match the question format")
	case errors.Is(err, summary.ErrNoResults):
		s.writeError(w, http.StatusBadRequest, "no answers to summarize yet")
	default:
		s.Log.Errorw("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, fallback)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.Errorw("write response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

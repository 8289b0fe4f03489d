package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anshul/litmus/internal/feedback"
	"github.com/anshul/litmus/internal/logger"
	"github.com/anshul/litmus/internal/quiz"
	"github.com/anshul/litmus/internal/session"
	"github.com/anshul/litmus/internal/summary"
)

type stubQuiz struct {
	sess     *session.Session
	question *quiz.Question
	complete bool
	verdict  quiz.Verdict
	fb       feedback.Feedback
	err      error
}

func (s *stubQuiz) Start(context.Context, quiz.Identity) (*session.Session, *quiz.Question, error) {
	return s.sess, s.question, s.err
}

func (s *stubQuiz) NextQuestion(context.Context, string) (*quiz.Question, bool, error) {
	return s.question, s.complete, s.err
}

func (s *stubQuiz) SubmitAnswer(context.Context, string, json.RawMessage) (quiz.Verdict, feedback.Feedback, bool, error) {
	return s.verdict, s.fb, s.complete, s.err
}

func (s *stubQuiz) Session(string) (*session.Session, error) {
	return s.sess, s.err
}

type stubSummarizer struct {
	report *summary.Summary
	err    error
}

func (s *stubSummarizer) Build(context.Context, quiz.Identity, []*quiz.Question, []quiz.Result) (*summary.Summary, error) {
	return s.report, s.err
}

func testQuestion() *quiz.Question {
	return &quiz.Question{
		Archetype: quiz.ArchetypeTrueFalse,
		Prompt:    "Larger models always give more accurate answers.",
		ConceptID: "capability-boundary",
		TrueFalse: &quiz.TrueFalsePayload{
			Statement: "Larger models always give more accurate answers.",
			Answer:    false,
		},
	}
}

func newTestServer(q Quiz, sum Summarizer) http.Handler {
	s := &Server{Quiz: q, Summaries: sum, Log: logger.Nop()}
	return s.Routes()
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	h := newTestServer(&stubQuiz{}, &stubSummarizer{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestStart(t *testing.T) {
	h := newTestServer(&stubQuiz{
		sess:     &session.Session{ID: "abc-123"},
		question: testQuestion(),
	}, &stubSummarizer{})

	rec := post(t, h, "/api/start", `{"age":25,"role":"student","selfRating":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	body := decodeBody(t, rec)
	if body["sessionId"] != "abc-123" {
		t.Fatalf("sessionId = %v", body["sessionId"])
	}
	if body["question"] == nil {
		t.Fatal("missing question")
	}
}

func TestStartRejectsMalformedBody(t *testing.T) {
	h := newTestServer(&stubQuiz{}, &stubSummarizer{})
	if rec := post(t, h, "/api/start", `{not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestNextQuestionRequiresSessionID(t *testing.T) {
	h := newTestServer(&stubQuiz{}, &stubSummarizer{})
	if rec := post(t, h, "/api/next-question", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestNextQuestionUnknownSession(t *testing.T) {
	h := newTestServer(&stubQuiz{err: session.ErrSessionNotFound}, &stubSummarizer{})
	rec := post(t, h, "/api/next-question", `{"sessionId":"gone"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestNextQuestionCompleted(t *testing.T) {
	h := newTestServer(&stubQuiz{complete: true}, &stubSummarizer{})
	rec := post(t, h, "/api/next-question", `{"sessionId":"s1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["question"] != nil || body["isComplete"] != true {
		t.Fatalf("body = %v", body)
	}
}

func TestSubmitAnswer(t *testing.T) {
	h := newTestServer(&stubQuiz{
		verdict: quiz.VerdictCorrect,
		fb:      feedback.Feedback{Message: "Right, scale does not guarantee accuracy.", IsCorrect: true},
	}, &stubSummarizer{})

	rec := post(t, h, "/api/submit-answer", `{"sessionId":"s1","answer":{"answer":false}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	body := decodeBody(t, rec)
	if body["result"] != "correct" {
		t.Fatalf("result = %v", body["result"])
	}
	fb, ok := body["feedback"].(map[string]any)
	if !ok || fb["isCorrect"] != true {
		t.Fatalf("feedback = %v", body["feedback"])
	}
}

func TestSubmitAnswerRequiresAnswer(t *testing.T) {
	h := newTestServer(&stubQuiz{}, &stubSummarizer{})
	if rec := post(t, h, "/api/submit-answer", `{"sessionId":"s1"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSubmitAnswerMapsDomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{session.ErrInvalidAnswer, http.StatusBadRequest},
		{session.ErrOutOfSequence, http.StatusBadRequest},
		{session.ErrSessionNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		h := newTestServer(&stubQuiz{err: tc.err}, &stubSummarizer{})
		rec := post(t, h, "/api/submit-answer", `{"sessionId":"s1","answer":{"answer":true}}`)
		if rec.Code != tc.want {
			t.Fatalf("%v: status = %d, want %d", tc.err, rec.Code, tc.want)
		}
	}
}

func TestSummary(t *testing.T) {
	h := newTestServer(
		&stubQuiz{sess: &session.Session{ID: "s1"}},
		&stubSummarizer{report: &summary.Summary{Overall: "Solid fundamentals.", SystemLevel: 3}},
	)

	rec := post(t, h, "/api/summary", `{"sessionId":"s1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	body := decodeBody(t, rec)
	report, ok := body["summary"].(map[string]any)
	if !ok || report["overall"] != "Solid fundamentals." {
		t.Fatalf("summary = %v", body["summary"])
	}
}

func TestSummaryBeforeAnyAnswer(t *testing.T) {
	h := newTestServer(
		&stubQuiz{sess: &session.Session{ID: "s1"}},
		&stubSummarizer{err: summary.ErrNoResults},
	)
	if rec := post(t, h, "/api/summary", `{"sessionId":"s1"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPanicRecovery(t *testing.T) {
	s := &Server{Quiz: nil, Summaries: nil, Log: logger.Nop()} // nil Quiz panics in handler
	h := s.Routes()
	rec := post(t, h, "/api/next-question", `{"sessionId":"s1"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func questionSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "a question with a prompt and an answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompt": map[string]any{"type": "string"},
				"answer": map[string]any{"type": "boolean"},
			},
			"required":             []any{"prompt", "answer"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	err := validateResponse(questionSchema(), json.RawMessage(`{"prompt":"AI always tells the truth.","answer":false}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	err := validateResponse(questionSchema(), json.RawMessage(`{"prompt":"hello"}`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_NotJSON(t *testing.T) {
	err := validateResponse(questionSchema(), json.RawMessage(`here is your question:`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything at all`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractJSON_AlreadyValid(t *testing.T) {
	out, ok := extractJSON(json.RawMessage(`{"a":1}`))
	if !ok || string(out) != `{"a":1}` {
		t.Fatalf("got %q ok=%v", out, ok)
	}
}

func TestExtractJSON_MarkdownFence(t *testing.T) {
	raw := json.RawMessage("```json\n{\"a\": 1}\n```")
	out, ok := extractJSON(raw)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	var v map[string]int
	if err := json.Unmarshal(out, &v); err != nil || v["a"] != 1 {
		t.Fatalf("unexpected extraction: %q", out)
	}
}

func TestExtractJSON_ProseWrapped(t *testing.T) {
	raw := json.RawMessage(`Sure! Here is the result: {"verdict":"correct","note":"uses {braces} in \"strings\""} hope that helps`)
	out, ok := extractJSON(raw)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	var v map[string]string
	if err := json.Unmarshal(out, &v); err != nil || v["verdict"] != "correct" {
		t.Fatalf("unexpected extraction: %q", out)
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	if _, ok := extractJSON(json.RawMessage(`no structured data here`)); ok {
		t.Fatal("expected extraction to fail")
	}
}

// Package llm is the boundary between the assessment pipeline and the
// language-model providers that power it. Everything above this package
// talks to the Provider interface; the concrete Anthropic, OpenAI and
// Gemini bindings live here, along with retry, audit logging and response
// schema validation decorators.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single capability the rest of the service depends on:
// given a prompt, return text (usually schema-constrained JSON) or an error.
type Provider interface {
	// Generate sends a request and returns the generated content. When the
	// request carries a Schema, Content is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the configured model identifier.
	ModelID() string
}

// GroundedProvider is the optional extension for providers that can ground
// generation in web search and return source citations. Callers must type
// assert; only the Gemini binding implements it.
type GroundedProvider interface {
	Provider
	GenerateWithGrounding(ctx context.Context, req Request) (*GroundedResponse, error)
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Single-turn generation (one user
	// message) is the common case throughout this service.
	Messages []Message

	// Schema, when set, constrains the response to a JSON shape using the
	// provider's native structured-output mechanism, and the response is
	// validated against it before being returned.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0,1]. Zero means deterministic.
	Temperature float64
}

// Message is one turn of conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must conform to.
type Schema struct {
	// Name identifies the schema, kebab-case ("quiz-question").
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response is the provider's output.
type Response struct {
	// Content is the generated output. With a Schema it is the validated
	// JSON object; without one it is the raw text.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// GroundedResponse adds search citations to a Response.
type GroundedResponse struct {
	Response

	// Citations lists the web sources the model grounded on. May be empty.
	Citations []Citation
}

// Citation is a single grounding source.
type Citation struct {
	Title string
	URL   string
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// SupportsGrounding reports whether the provider at the bottom of a
// decorator chain implements GroundedProvider. The retry and logging
// decorators always expose GenerateWithGrounding, so a plain type
// assertion on a wrapped provider is not meaningful; this walks Unwrap
// to the base provider and checks there.
func SupportsGrounding(p Provider) bool {
	type unwrapper interface{ Unwrap() Provider }
	for {
		u, ok := p.(unwrapper)
		if !ok {
			break
		}
		p = u.Unwrap()
	}
	_, ok := p.(GroundedProvider)
	return ok
}

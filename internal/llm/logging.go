package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anshul/litmus/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	l.record(ctx, req, resp, err, time.Since(start))
	return resp, err
}

// GenerateWithGrounding delegates to the inner provider's grounded path,
// recording the request like any other. Returns ErrProviderUnavailable if
// the inner provider does not support grounding.
func (l *LoggingProvider) GenerateWithGrounding(ctx context.Context, req Request) (*GroundedResponse, error) {
	grounded, ok := l.inner.(GroundedProvider)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("provider %s does not support grounding", l.inner.ModelID())}
	}

	start := time.Now()

	resp, err := grounded.GenerateWithGrounding(ctx, req)

	var inner *Response
	if resp != nil {
		inner = &resp.Response
	}
	l.record(ctx, req, inner, err, time.Since(start))
	return resp, err
}

func (l *LoggingProvider) record(ctx context.Context, req Request, resp *Response, err error, latency time.Duration) {
	data := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails.
	if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// Unwrap exposes the wrapped provider for capability probing.
func (l *LoggingProvider) Unwrap() Provider {
	return l.inner
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}

package store

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	q, args, err := sqlBuilder.Insert("llm_request_events").
		Columns("provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message", "request_body", "response_body").
		Values(data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	q, args, err := sqlBuilder.Insert("session_events").
		Columns("session_id", "kind", "detail").
		Values(data.SessionID, data.Kind, data.Detail).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *eventRepo) RecentLLMEvents(ctx context.Context, limit int, purpose string) ([]LLMRequestEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	query := sqlBuilder.Select(
		"id", "created_at", "provider", "model", "purpose",
		"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
		"request_body", "response_body",
	).From("llm_request_events")

	if purpose != "" {
		query = query.Where(squirrel.Eq{"purpose": purpose})
	}
	query = query.OrderBy("id DESC").Limit(uint64(limit))

	q, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		var e LLMRequestEvent
		if err := rows.Scan(
			&e.ID, &e.CreatedAt, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage,
			&e.RequestBody, &e.ResponseBody,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

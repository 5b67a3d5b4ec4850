// Package audit keeps an append-only log of dispatched tool calls.
// No updates or deletes are supported.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/matiasleandrokruk/voicedesk/internal/domain/tool"
	"github.com/matiasleandrokruk/voicedesk/internal/infra/sqlite/queries"
	"github.com/matiasleandrokruk/voicedesk/pkg/uuid"
)

const createdAtLayout = time.RFC3339Nano

type Service struct {
	querier *queries.Queries
}

func NewService(db queries.DBTX) *Service {
	return &Service{querier: queries.New(db)}
}

// Record appends one entry for a completed tool call.
func (s *Service) Record(ctx context.Context, evt tool.CallCompleted) (*Entry, error) {
	at := evt.At
	if at.IsZero() {
		at = time.Now()
	}
	params := queries.CreateToolCallLogParams{
		ID:           generateID(),
		ToolCallID:   evt.ToolCallID,
		ToolName:     evt.ToolName,
		Outcome:      string(outcomeOf(evt.Outcome)),
		ErrorKind:    nullable(string(evt.ErrorKind)),
		ErrorMessage: nullable(evt.Error),
		DurationMs:   evt.Duration.Milliseconds(),
		CreatedAt:    at.UTC().Format(createdAtLayout),
	}
	if err := s.querier.CreateToolCallLog(ctx, params); err != nil {
		return nil, fmt.Errorf("audit.Record: %w", err)
	}
	return rowToEntry(queries.ToolCallLog(params)), nil
}

// List returns a page of entries, newest first, and the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	rows, err := s.querier.ListToolCallLogs(ctx, queries.ListToolCallLogsParams{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("audit.List: %w", err)
	}

	count, err := s.querier.CountToolCallLogs(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("audit.List count: %w", err)
	}

	entries := make([]*Entry, len(rows))
	for i, row := range rows {
		entries[i] = rowToEntry(row)
	}
	return entries, int(count), nil
}

func rowToEntry(row queries.ToolCallLog) *Entry {
	createdAt, _ := time.Parse(createdAtLayout, row.CreatedAt)
	return &Entry{
		ID:           row.ID,
		ToolCallID:   row.ToolCallID,
		ToolName:     row.ToolName,
		Outcome:      Outcome(row.Outcome),
		ErrorKind:    ptrOf(row.ErrorKind),
		ErrorMessage: ptrOf(row.ErrorMessage),
		DurationMs:   row.DurationMs,
		CreatedAt:    createdAt,
	}
}

func outcomeOf(s string) Outcome {
	switch Outcome(s) {
	case OutcomeSuccess, OutcomeRejected:
		return Outcome(s)
	default:
		return OutcomeError
	}
}

// generateID returns a UUID v7 so ids order by creation time.
func generateID() string {
	return uuid.NewV7().String()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func ptrOf(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

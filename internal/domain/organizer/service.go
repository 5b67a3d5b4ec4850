package organizer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/matiasleandrokruk/voicedesk/internal/infra/sqlite/queries"
)

// Service performs one row-level operation per call. It is bound to either
// the database or a single transaction; see UnitOfWork.
type Service struct {
	querier *queries.Queries
}

// NewService binds a Service to db, which may be a *sql.DB or *sql.Tx.
func NewService(db queries.DBTX) *Service {
	return &Service{querier: queries.New(db)}
}

func (s *Service) CreateTodo(ctx context.Context, input CreateTodoInput) (*Todo, error) {
	row, err := s.querier.CreateTodo(ctx, queries.CreateTodoParams{
		Title:       input.Title,
		Description: nullString(input.Description),
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return rowToTodo(row), nil
}

func (s *Service) ListTodos(ctx context.Context) ([]*Todo, error) {
	rows, err := s.querier.ListTodos(ctx)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return mapRows(rows, rowToTodo), nil
}

// CompleteTodo sets completed=true. Completing an already completed todo is
// not an error.
func (s *Service) CompleteTodo(ctx context.Context, id int64) (*Todo, error) {
	row, err := s.querier.CompleteTodo(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("todo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("complete todo: %w", err)
	}
	return rowToTodo(row), nil
}

func (s *Service) DeleteTodo(ctx context.Context, id int64) error {
	n, err := s.querier.DeleteTodo(ctx, id)
	return deleteResult("todo", id, n, err)
}

func (s *Service) AddReminder(ctx context.Context, input AddReminderInput) (*Reminder, error) {
	row, err := s.querier.CreateReminder(ctx, queries.CreateReminderParams{
		ReminderText: input.ReminderText,
		Importance:   input.Importance,
	})
	if err != nil {
		return nil, fmt.Errorf("add reminder: %w", err)
	}
	return rowToReminder(row), nil
}

func (s *Service) ListReminders(ctx context.Context) ([]*Reminder, error) {
	rows, err := s.querier.ListReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return mapRows(rows, rowToReminder), nil
}

func (s *Service) DeleteReminder(ctx context.Context, id int64) error {
	n, err := s.querier.DeleteReminder(ctx, id)
	return deleteResult("reminder", id, n, err)
}

func (s *Service) AddCalendarEvent(ctx context.Context, input AddCalendarEventInput) (*CalendarEvent, error) {
	row, err := s.querier.CreateCalendarEvent(ctx, queries.CreateCalendarEventParams{
		Title:       input.Title,
		Description: nullString(input.Description),
		EventFrom:   input.EventFrom.Format(timestampLayout),
		EventTo:     input.EventTo.Format(timestampLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("add calendar event: %w", err)
	}
	return rowToCalendarEvent(row)
}

func (s *Service) ListCalendarEvents(ctx context.Context) ([]*CalendarEvent, error) {
	rows, err := s.querier.ListCalendarEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	out := make([]*CalendarEvent, 0, len(rows))
	for _, row := range rows {
		event, err := rowToCalendarEvent(row)
		if err != nil {
			return nil, fmt.Errorf("list calendar events: %w", err)
		}
		out = append(out, event)
	}
	return out, nil
}

func (s *Service) DeleteCalendarEvent(ctx context.Context, id int64) error {
	n, err := s.querier.DeleteCalendarEvent(ctx, id)
	return deleteResult("calendar event", id, n, err)
}

func deleteResult(kind string, id, affected int64, err error) error {
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}

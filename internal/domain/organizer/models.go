// Package organizer implements the three record kinds a voice assistant can
// manage: todos, reminders and calendar events. Each kind is a flat row with
// a storage-assigned integer id and no references to the others.
package organizer

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/matiasleandrokruk/voicedesk/internal/infra/sqlite/queries"
)

// ErrNotFound is returned when an update or delete targets a missing id.
var ErrNotFound = errors.New("record not found")

// ErrBadTimestamp is returned when a stored calendar timestamp cannot be read.
var ErrBadTimestamp = errors.New("unreadable stored timestamp")

type Todo struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

type Reminder struct {
	ID           int64  `json:"id"`
	ReminderText string `json:"reminder_text"`
	Importance   string `json:"importance"`
}

type CalendarEvent struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	EventFrom   time.Time `json:"event_from"`
	EventTo     time.Time `json:"event_to"`
}

type CreateTodoInput struct {
	Title       string
	Description *string
}

type AddReminderInput struct {
	ReminderText string
	Importance   string
}

// AddCalendarEventInput carries parsed timestamps. No ordering between
// EventFrom and EventTo is enforced.
type AddCalendarEventInput struct {
	Title       string
	Description *string
	EventFrom   time.Time
	EventTo     time.Time
}

// timestampLayout is the storage format for calendar timestamps.
const timestampLayout = time.RFC3339Nano

// storedLayouts are accepted when reading, so rows written by other tools
// (e.g. "2024-01-01 10:00:00.000000") still decode. No offset means UTC.
var storedLayouts = []string{
	timestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseStoredTime(column, v string) (time.Time, error) {
	for _, layout := range storedLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s %q: %w", column, v, ErrBadTimestamp)
}

func rowToTodo(row queries.Todo) *Todo {
	return &Todo{
		ID:          row.ID,
		Title:       row.Title,
		Description: nullStringPtr(row.Description),
		Completed:   row.Completed,
	}
}

func rowToReminder(row queries.Reminder) *Reminder {
	return &Reminder{ID: row.ID, ReminderText: row.ReminderText, Importance: row.Importance}
}

func rowToCalendarEvent(row queries.CalendarEvent) (*CalendarEvent, error) {
	from, err := parseStoredTime("event_from", row.EventFrom)
	if err != nil {
		return nil, fmt.Errorf("calendar event %d: %w", row.ID, err)
	}
	to, err := parseStoredTime("event_to", row.EventTo)
	if err != nil {
		return nil, fmt.Errorf("calendar event %d: %w", row.ID, err)
	}
	return &CalendarEvent{
		ID:          row.ID,
		Title:       row.Title,
		Description: nullStringPtr(row.Description),
		EventFrom:   from,
		EventTo:     to,
	}, nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func mapRows[T any, R any](rows []R, mapper func(R) *T) []*T {
	out := make([]*T, len(rows))
	for i := range rows {
		out[i] = mapper(rows[i])
	}
	return out
}

package organizer

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/matiasleandrokruk/voicedesk/internal/infra/sqlite"
)

func mustOpenOrganizerDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.OpenMigrated(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("sqlite.OpenMigrated: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func TestService_CreateTodo_TitleOnly(t *testing.T) {
	t.Parallel()

	svc := NewService(mustOpenOrganizerDB(t))
	todo, err := svc.CreateTodo(context.Background(), CreateTodoInput{Title: "water plants"})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if todo.Description != nil {
		t.Errorf("Description = %q; want nil", *todo.Description)
	}
	if todo.Completed {
		t.Error("Completed = true; want false")
	}
	if todo.ID <= 0 {
		t.Errorf("ID = %d; want storage-assigned id", todo.ID)
	}
}

func TestService_CompleteTodo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewService(mustOpenOrganizerDB(t))

	if _, err := svc.CompleteTodo(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("CompleteTodo(missing) error = %v; want ErrNotFound", err)
	}

	todo, _ := svc.CreateTodo(ctx, CreateTodoInput{Title: "laundry", Description: strPtr("whites")})
	if _, err := svc.CompleteTodo(ctx, todo.ID); err != nil {
		t.Fatalf("CompleteTodo: %v", err)
	}

	items, err := svc.ListTodos(ctx)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(items) != 1 || !items[0].Completed {
		t.Fatalf("expected one completed todo, got %+v", items)
	}
	if items[0].Description == nil || *items[0].Description != "whites" {
		t.Fatalf("description did not round-trip: %+v", items[0])
	}
}

func TestService_DeleteReminder_Twice(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewService(mustOpenOrganizerDB(t))

	r, err := svc.AddReminder(ctx, AddReminderInput{ReminderText: "dentist", Importance: "high"})
	if err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	if err := svc.DeleteReminder(ctx, r.ID); err != nil {
		t.Fatalf("first DeleteReminder: %v", err)
	}
	if err := svc.DeleteReminder(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second DeleteReminder error = %v; want ErrNotFound", err)
	}
}

func TestService_CalendarEvent_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewService(mustOpenOrganizerDB(t))

	from := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour) // reversed ranges are accepted
	loc := time.FixedZone("CET", 3600)

	inputs := []AddCalendarEventInput{
		{Title: "standup", EventFrom: from, EventTo: to},
		{Title: "lunch", Description: strPtr("with Sam"), EventFrom: from.In(loc), EventTo: from.Add(time.Hour).In(loc)},
	}
	for _, in := range inputs {
		if _, err := svc.AddCalendarEvent(ctx, in); err != nil {
			t.Fatalf("AddCalendarEvent(%q): %v", in.Title, err)
		}
	}

	items, err := svc.ListCalendarEvents(ctx)
	if err != nil {
		t.Fatalf("ListCalendarEvents: %v", err)
	}
	if len(items) != len(inputs) {
		t.Fatalf("got %d events; want %d", len(items), len(inputs))
	}
	for i, got := range items {
		want := inputs[i]
		if got.Title != want.Title || !got.EventFrom.Equal(want.EventFrom) || !got.EventTo.Equal(want.EventTo) {
			t.Errorf("event %d did not round-trip: got %+v want %+v", i, got, want)
		}
	}
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := mustOpenOrganizerDB(t)
	uow := NewUnitOfWork(db)
	boom := errors.New("boom")

	err := uow.Do(ctx, func(svc *Service) error {
		if _, err := svc.CreateTodo(ctx, CreateTodoInput{Title: "ghost"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Do error = %v; want boom", err)
	}

	items, err := NewService(db).ListTodos(ctx)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected rollback, found %d todos", len(items))
	}
}

func TestUnitOfWork_CommitsOnSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := mustOpenOrganizerDB(t)

	err := NewUnitOfWork(db).Do(ctx, func(svc *Service) error {
		_, err := svc.AddReminder(ctx, AddReminderInput{ReminderText: "stretch", Importance: "low"})
		return err
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	items, _ := NewService(db).ListReminders(ctx)
	if len(items) != 1 {
		t.Fatalf("expected committed reminder, got %d", len(items))
	}
}

func TestService_ListCalendarEvents_ForeignTimestampFormats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := mustOpenOrganizerDB(t)
	if _, err := db.ExecContext(ctx,
		`INSERT INTO calendar_events (title, event_from, event_to) VALUES (?, ?, ?)`,
		"imported", "2024-01-01 10:00:00.000000", "2024-01-01 11:30:00"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	events, err := NewService(db).ListCalendarEvents(ctx)
	if err != nil {
		t.Fatalf("ListCalendarEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len = %d; want 1", len(events))
	}
	wantFrom := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	wantTo := time.Date(2024, 1, 1, 11, 30, 0, 0, time.UTC)
	if !events[0].EventFrom.Equal(wantFrom) || !events[0].EventTo.Equal(wantTo) {
		t.Errorf("range = %v..%v; want %v..%v", events[0].EventFrom, events[0].EventTo, wantFrom, wantTo)
	}
}

func TestService_ListCalendarEvents_UnreadableTimestamp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := mustOpenOrganizerDB(t)
	if _, err := db.ExecContext(ctx,
		`INSERT INTO calendar_events (title, event_from, event_to) VALUES (?, ?, ?)`,
		"broken", "next tuesday", "2024-01-01T11:00:00Z"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := NewService(db).ListCalendarEvents(ctx); !errors.Is(err, ErrBadTimestamp) {
		t.Fatalf("ListCalendarEvents error = %v; want ErrBadTimestamp", err)
	}
}

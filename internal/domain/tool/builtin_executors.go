package tool

import (
	"context"

	"github.com/matiasleandrokruk/voicedesk/internal/domain/organizer"
)

func createTodo(ctx context.Context, svc *organizer.Service, args Arguments) (any, error) {
	title, err := args.RequiredString("title")
	if err != nil {
		return nil, err
	}
	description, err := args.OptionalString("description")
	if err != nil {
		return nil, err
	}
	return svc.CreateTodo(ctx, organizer.CreateTodoInput{Title: title, Description: description})
}

func getTodos(ctx context.Context, svc *organizer.Service, _ Arguments) (any, error) {
	return svc.ListTodos(ctx)
}

func completeTodo(ctx context.Context, svc *organizer.Service, args Arguments) (any, error) {
	id, err := args.RequiredID("id")
	if err != nil {
		return nil, err
	}
	return svc.CompleteTodo(ctx, id)
}

func deleteTodo(ctx context.Context, svc *organizer.Service, args Arguments) (any, error) {
	id, err := args.RequiredID("id")
	if err != nil {
		return nil, err
	}
	if err := svc.DeleteTodo(ctx, id); err != nil {
		return nil, err
	}
	return Deletion{ID: id, Deleted: true}, nil
}

func addReminder(ctx context.Context, svc *organizer.Service, args Arguments) (any, error) {
	text, err := args.RequiredString("reminder_text")
	if err != nil {
		return nil, err
	}
	importance, err := args.RequiredString("importance")
	if err != nil {
		return nil, err
	}
	return svc.AddReminder(ctx, organizer.AddReminderInput{ReminderText: text, Importance: importance})
}

func getReminders(ctx context.Context, svc *organizer.Service, _ Arguments) (any, error) {
	return svc.ListReminders(ctx)
}

func deleteReminder(ctx context.Context, svc *organizer.Service, args Arguments) (any, error) {
	id, err := args.RequiredID("id")
	if err != nil {
		return nil, err
	}
	if err := svc.DeleteReminder(ctx, id); err != nil {
		return nil, err
	}
	return Deletion{ID: id, Deleted: true}, nil
}

// addCalendarEntry checks every required field before parsing timestamps,
// so a missing title wins over a malformed date.
func addCalendarEntry(ctx context.Context, svc *organizer.Service, args Arguments) (any, error) {
	title, err := args.RequiredString("title")
	if err != nil {
		return nil, err
	}
	for _, field := range []string{"event_from", "event_to"} {
		if _, err := args.RequiredString(field); err != nil {
			return nil, err
		}
	}
	description, err := args.OptionalString("description")
	if err != nil {
		return nil, err
	}
	from, err := args.RequiredTime("event_from")
	if err != nil {
		return nil, err
	}
	to, err := args.RequiredTime("event_to")
	if err != nil {
		return nil, err
	}
	return svc.AddCalendarEvent(ctx, organizer.AddCalendarEventInput{
		Title:       title,
		Description: description,
		EventFrom:   from,
		EventTo:     to,
	})
}

func getCalendarEntries(ctx context.Context, svc *organizer.Service, _ Arguments) (any, error) {
	return svc.ListCalendarEvents(ctx)
}

func deleteCalendarEntry(ctx context.Context, svc *organizer.Service, args Arguments) (any, error) {
	id, err := args.RequiredID("id")
	if err != nil {
		return nil, err
	}
	if err := svc.DeleteCalendarEvent(ctx, id); err != nil {
		return nil, err
	}
	return Deletion{ID: id, Deleted: true}, nil
}

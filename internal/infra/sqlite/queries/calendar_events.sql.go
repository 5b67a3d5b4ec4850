package queries

import (
	"context"
	"database/sql"
)

const createCalendarEvent = `
INSERT INTO calendar_events (title, description, event_from, event_to)
VALUES (?, ?, ?, ?)
RETURNING id, title, description, event_from, event_to
`

type CreateCalendarEventParams struct {
	Title       string
	Description sql.NullString
	EventFrom   string
	EventTo     string
}

func (q *Queries) CreateCalendarEvent(ctx context.Context, arg CreateCalendarEventParams) (CalendarEvent, error) {
	row := q.db.QueryRowContext(ctx, createCalendarEvent, arg.Title, arg.Description, arg.EventFrom, arg.EventTo)
	var i CalendarEvent
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.EventFrom, &i.EventTo)
	return i, err
}

const listCalendarEvents = `
SELECT id, title, description, event_from, event_to
FROM calendar_events
ORDER BY id
`

func (q *Queries) ListCalendarEvents(ctx context.Context) ([]CalendarEvent, error) {
	rows, err := q.db.QueryContext(ctx, listCalendarEvents)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CalendarEvent{}
	for rows.Next() {
		var i CalendarEvent
		if err := rows.Scan(&i.ID, &i.Title, &i.Description, &i.EventFrom, &i.EventTo); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteCalendarEvent = `DELETE FROM calendar_events WHERE id = ?`

func (q *Queries) DeleteCalendarEvent(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteCalendarEvent, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

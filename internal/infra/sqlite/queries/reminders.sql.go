package queries

import "context"

const createReminder = `
INSERT INTO reminders (reminder_text, importance)
VALUES (?, ?)
RETURNING id, reminder_text, importance
`

type CreateReminderParams struct {
	ReminderText string
	Importance   string
}

func (q *Queries) CreateReminder(ctx context.Context, arg CreateReminderParams) (Reminder, error) {
	row := q.db.QueryRowContext(ctx, createReminder, arg.ReminderText, arg.Importance)
	var i Reminder
	err := row.Scan(&i.ID, &i.ReminderText, &i.Importance)
	return i, err
}

const listReminders = `
SELECT id, reminder_text, importance
FROM reminders
ORDER BY id
`

func (q *Queries) ListReminders(ctx context.Context) ([]Reminder, error) {
	rows, err := q.db.QueryContext(ctx, listReminders)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Reminder{}
	for rows.Next() {
		var i Reminder
		if err := rows.Scan(&i.ID, &i.ReminderText, &i.Importance); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteReminder = `DELETE FROM reminders WHERE id = ?`

func (q *Queries) DeleteReminder(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteReminder, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

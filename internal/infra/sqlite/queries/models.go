package queries

import "database/sql"

type Todo struct {
	ID          int64
	Title       string
	Description sql.NullString
	Completed   bool
}

type Reminder struct {
	ID           int64
	ReminderText string
	Importance   string
}

type CalendarEvent struct {
	ID          int64
	Title       string
	Description sql.NullString
	EventFrom   string
	EventTo     string
}

type ToolCallLog struct {
	ID           string
	ToolCallID   string
	ToolName     string
	Outcome      string
	ErrorKind    sql.NullString
	ErrorMessage sql.NullString
	DurationMs   int64
	CreatedAt    string
}

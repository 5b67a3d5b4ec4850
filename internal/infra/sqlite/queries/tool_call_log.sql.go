package queries

import (
	"context"
	"database/sql"
)

const createToolCallLog = `
INSERT INTO tool_call_log (
	id, tool_call_id, tool_name, outcome, error_kind, error_message, duration_ms, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateToolCallLogParams struct {
	ID           string
	ToolCallID   string
	ToolName     string
	Outcome      string
	ErrorKind    sql.NullString
	ErrorMessage sql.NullString
	DurationMs   int64
	CreatedAt    string
}

func (q *Queries) CreateToolCallLog(ctx context.Context, arg CreateToolCallLogParams) error {
	_, err := q.db.ExecContext(ctx, createToolCallLog,
		arg.ID,
		arg.ToolCallID,
		arg.ToolName,
		arg.Outcome,
		arg.ErrorKind,
		arg.ErrorMessage,
		arg.DurationMs,
		arg.CreatedAt,
	)
	return err
}

const listToolCallLogs = `
SELECT id, tool_call_id, tool_name, outcome, error_kind, error_message, duration_ms, created_at
FROM tool_call_log
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

type ListToolCallLogsParams struct {
	Limit  int64
	Offset int64
}

func (q *Queries) ListToolCallLogs(ctx context.Context, arg ListToolCallLogsParams) ([]ToolCallLog, error) {
	rows, err := q.db.QueryContext(ctx, listToolCallLogs, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ToolCallLog{}
	for rows.Next() {
		var i ToolCallLog
		if err := rows.Scan(
			&i.ID,
			&i.ToolCallID,
			&i.ToolName,
			&i.Outcome,
			&i.ErrorKind,
			&i.ErrorMessage,
			&i.DurationMs,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countToolCallLogs = `SELECT COUNT(*) FROM tool_call_log`

func (q *Queries) CountToolCallLogs(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countToolCallLogs)
	var count int64
	err := row.Scan(&count)
	return count, err
}

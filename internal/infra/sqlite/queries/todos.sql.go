package queries

import (
	"context"
	"database/sql"
)

const createTodo = `
INSERT INTO todos (title, description, completed)
VALUES (?, ?, 0)
RETURNING id, title, description, completed
`

type CreateTodoParams struct {
	Title       string
	Description sql.NullString
}

func (q *Queries) CreateTodo(ctx context.Context, arg CreateTodoParams) (Todo, error) {
	row := q.db.QueryRowContext(ctx, createTodo, arg.Title, arg.Description)
	var i Todo
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.Completed)
	return i, err
}

const listTodos = `
SELECT id, title, description, completed
FROM todos
ORDER BY id
`

func (q *Queries) ListTodos(ctx context.Context) ([]Todo, error) {
	rows, err := q.db.QueryContext(ctx, listTodos)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Todo{}
	for rows.Next() {
		var i Todo
		if err := rows.Scan(&i.ID, &i.Title, &i.Description, &i.Completed); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const completeTodo = `
UPDATE todos SET completed = 1
WHERE id = ?
RETURNING id, title, description, completed
`

// CompleteTodo returns sql.ErrNoRows when id does not exist.
func (q *Queries) CompleteTodo(ctx context.Context, id int64) (Todo, error) {
	row := q.db.QueryRowContext(ctx, completeTodo, id)
	var i Todo
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.Completed)
	return i, err
}

const deleteTodo = `DELETE FROM todos WHERE id = ?`

// DeleteTodo returns the number of rows removed (0 or 1).
func (q *Queries) DeleteTodo(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTodo, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

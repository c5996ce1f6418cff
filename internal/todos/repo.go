// Package todos is the admin's internal task list. It has no project
// association and is reachable only through the admin gate.
package todos

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("todo not found")

const (
	PriorityLow  = "low"
	PriorityHigh = "high"
)

type Todo struct {
	ID       int64  `json:"id"`
	Task     string `json:"task"`
	Done     bool   `json:"done"`
	Priority string `json:"priority"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, task, priority string) (*Todo, error) {
	const q = `
INSERT INTO todos (task, priority)
VALUES ($1, $2)
RETURNING id, task, done, priority;
`
	var t Todo
	if err := r.db.QueryRow(ctx, q, task, priority).Scan(&t.ID, &t.Task, &t.Done, &t.Priority); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) List(ctx context.Context) ([]Todo, error) {
	const q = `
SELECT id, task, done, priority
FROM todos
ORDER BY done, CASE priority WHEN 'high' THEN 0 ELSE 1 END, id;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Todo, 0, 16)
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.Task, &t.Done, &t.Priority); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) SetDone(ctx context.Context, id int64, done bool) (*Todo, error) {
	const q = `
UPDATE todos SET done = $2
WHERE id = $1
RETURNING id, task, done, priority;
`
	var t Todo
	err := r.db.QueryRow(ctx, q, id, done).Scan(&t.ID, &t.Task, &t.Done, &t.Priority)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM todos WHERE id = $1;`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clientdeck/portal-backend/internal/projects/domain"
)

// ChatRepository persists chat messages for projects.
type ChatRepository struct {
	db *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) projectExists(ctx context.Context, projectID string) error {
	const q = `SELECT 1 FROM projects WHERE id = $1;`
	var one int
	if err := r.db.QueryRow(ctx, q, projectID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// Append stores a new message at the end of the project's chat.
func (r *ChatRepository) Append(ctx context.Context, projectID, sender, body string, attachmentURL *string) (*domain.Message, error) {
	if err := r.projectExists(ctx, projectID); err != nil {
		return nil, err
	}

	const q = `
INSERT INTO messages (project_id, sender, body, attachment_url)
VALUES ($1, $2, $3, $4)
RETURNING id, project_id, sender, body, attachment_url, read, created_at;
`
	var m domain.Message
	err := r.db.QueryRow(ctx, q, projectID, sender, body, attachmentURL).
		Scan(&m.ID, &m.ProjectID, &m.Sender, &m.Body, &m.AttachmentURL, &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns a project's messages in non-decreasing timestamp order.
func (r *ChatRepository) List(ctx context.Context, projectID string) ([]domain.Message, error) {
	const q = `
SELECT id, project_id, sender, body, attachment_url, read, created_at
FROM messages
WHERE project_id = $1
ORDER BY created_at, id;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Message, 0, 32)
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Sender, &m.Body, &m.AttachmentURL, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags all of the given sender's messages in a project as read.
// Called when the opposite party fetches the project detail.
func (r *ChatRepository) MarkRead(ctx context.Context, projectID, sender string) error {
	const q = `UPDATE messages SET read = TRUE WHERE project_id = $1 AND sender = $2 AND NOT read;`
	_, err := r.db.Exec(ctx, q, projectID, sender)
	return err
}

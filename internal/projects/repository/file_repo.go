package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clientdeck/portal-backend/internal/projects/domain"
)

// FileRepository persists upload metadata. Blobs themselves live on disk;
// rows start unassociated and get a project id once a chat message
// references them.
type FileRepository struct {
	db *pgxpool.Pool
}

func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// Insert records a freshly stored blob.
func (r *FileRepository) Insert(ctx context.Context, storedName, path, uploader string) (*domain.FileRecord, error) {
	const q = `
INSERT INTO file_records (stored_name, path, uploader)
VALUES ($1, $2, $3)
RETURNING id, project_id, stored_name, path, uploader, created_at;
`
	var f domain.FileRecord
	err := r.db.QueryRow(ctx, q, storedName, path, uploader).
		Scan(&f.ID, &f.ProjectID, &f.StoredName, &f.Path, &f.Uploader, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Associate binds a stored blob to a project. A name that matches nothing is
// not an error; the attachment URL may point at an already-swept blob.
func (r *FileRepository) Associate(ctx context.Context, storedName, projectID string) error {
	const q = `UPDATE file_records SET project_id = $2 WHERE stored_name = $1 AND project_id IS NULL;`
	_, err := r.db.Exec(ctx, q, storedName, projectID)
	return err
}

// ListByProject returns a project's file records, newest first.
func (r *FileRepository) ListByProject(ctx context.Context, projectID string) ([]domain.FileRecord, error) {
	const q = `
SELECT id, project_id, stored_name, path, uploader, created_at
FROM file_records
WHERE project_id = $1
ORDER BY created_at DESC, id;
`
	return r.list(ctx, q, projectID)
}

// ListOrphans returns records never associated to a project and older than
// the cutoff. The janitor sweeps these.
func (r *FileRepository) ListOrphans(ctx context.Context, olderThan time.Time) ([]domain.FileRecord, error) {
	const q = `
SELECT id, project_id, stored_name, path, uploader, created_at
FROM file_records
WHERE project_id IS NULL AND created_at < $1
ORDER BY created_at;
`
	return r.list(ctx, q, olderThan)
}

// Delete removes a file record row.
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM file_records WHERE id = $1;`
	_, err := r.db.Exec(ctx, q, id)
	return err
}

func (r *FileRepository) list(ctx context.Context, q string, args ...any) ([]domain.FileRecord, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.FileRecord, 0, 8)
	for rows.Next() {
		var f domain.FileRecord
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.StoredName, &f.Path, &f.Uploader, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

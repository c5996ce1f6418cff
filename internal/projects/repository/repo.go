package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clientdeck/portal-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectCols = `id, password_hash, name, status, price, paid_amount, deadline, stages, archived, created_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		p          domain.Project
		status     string
		stagesJSON []byte
	)
	err := row.Scan(&p.ID, &p.PasswordHash, &p.Name, &status, &p.Price, &p.PaidAmount, &p.Deadline, &stagesJSON, &p.Archived, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	p.Status = domain.Status(status)
	p.Stages = []domain.Stage{}
	if len(stagesJSON) > 0 {
		if err := json.Unmarshal(stagesJSON, &p.Stages); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// Insert stores a new project row. A duplicate id surfaces as
// domain.ErrDuplicateID so the caller can regenerate and retry.
func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	stagesJSON, err := json.Marshal(p.Stages)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO projects (id, password_hash, name, status, price, paid_amount, deadline, stages)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + projectCols + `;
`
	created, err := scanProject(r.db.QueryRow(ctx, q,
		p.ID, p.PasswordHash, p.Name, string(p.Status), p.Price, p.PaidAmount, p.Deadline, stagesJSON))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateID
		}
		return nil, err
	}
	return created, nil
}

// GetByID returns a single project.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const q = `SELECT ` + projectCols + ` FROM projects WHERE id = $1;`
	return scanProject(r.db.QueryRow(ctx, q, id))
}

// CredentialHash returns the project's access password hash. Used by the
// auth service during client login.
func (r *ProjectRepository) CredentialHash(ctx context.Context, id string) (string, error) {
	const q = `SELECT password_hash FROM projects WHERE id = $1;`
	var hash string
	if err := r.db.QueryRow(ctx, q, id).Scan(&hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return hash, nil
}

// List returns all projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const q = `SELECT ` + projectCols + ` FROM projects ORDER BY created_at DESC, id;`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Patch carries the partial-update fields for a project. Nil pointers leave
// the column untouched. DeadlineSet distinguishes "clear the deadline" from
// "leave it alone".
type Patch struct {
	Name        *string
	Status      *domain.Status
	Price       *int64
	PaidAmount  *int64
	Deadline    *time.Time
	DeadlineSet bool
	Stages      []domain.Stage
	Archived    *bool
}

// Update applies a partial patch and returns the updated row.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch Patch) (*domain.Project, error) {
	var stagesJSON []byte
	if patch.Stages != nil {
		b, err := json.Marshal(patch.Stages)
		if err != nil {
			return nil, err
		}
		stagesJSON = b
	}

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	const q = `
UPDATE projects SET
  name        = COALESCE($2, name),
  status      = COALESCE($3, status),
  price       = COALESCE($4, price),
  paid_amount = COALESCE($5, paid_amount),
  deadline    = CASE WHEN $6 THEN $7 ELSE deadline END,
  stages      = COALESCE($8, stages),
  archived    = COALESCE($9, archived)
WHERE id = $1
RETURNING ` + projectCols + `;
`
	return scanProject(r.db.QueryRow(ctx, q,
		id, patch.Name, status, patch.Price, patch.PaidAmount,
		patch.DeadlineSet, patch.Deadline, stagesJSON, patch.Archived))
}

// Delete removes a project; messages and file records go with it via the
// foreign-key cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM projects WHERE id = $1;`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Stats computes the dashboard aggregate. Active means not archived and not
// yet completed.
func (r *ProjectRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	const q = `
SELECT
  count(*),
  count(*) FILTER (WHERE NOT archived AND status <> 'Completed'),
  COALESCE(sum(price), 0),
  COALESCE(sum(paid_amount), 0)
FROM projects;
`
	var s domain.Stats
	if err := r.db.QueryRow(ctx, q).Scan(&s.Total, &s.Active, &s.TotalPrice, &s.TotalPaid); err != nil {
		return nil, err
	}
	return &s, nil
}

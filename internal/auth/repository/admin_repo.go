package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clientdeck/portal-backend/internal/auth/domain"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByUsername retrieves the admin credential row.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	const q = `
SELECT id, username, password_hash, created_at
FROM admins
WHERE username = $1;
`
	var a domain.Admin
	err := r.db.QueryRow(ctx, q, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Provision inserts the admin row if it does not exist yet. Re-running it
// never touches an existing password, so concurrent startups are safe.
func (r *AdminRepository) Provision(ctx context.Context, username, passwordHash string) error {
	const q = `
INSERT INTO admins (username, password_hash)
VALUES ($1, $2)
ON CONFLICT (username) DO NOTHING;
`
	_, err := r.db.Exec(ctx, q, username, passwordHash)
	return err
}

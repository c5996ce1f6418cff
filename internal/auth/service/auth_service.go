package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clientdeck/portal-backend/internal/auth"
	"github.com/clientdeck/portal-backend/internal/auth/domain"
)

// ErrInvalidCredentials is returned for every failed login, regardless of
// whether the subject exists or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminStore is the slice of the admin repository the service needs.
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Provision(ctx context.Context, username, passwordHash string) error
}

// ClientCredentialStore resolves a project's access password hash. The
// projects repository implements it.
type ClientCredentialStore interface {
	CredentialHash(ctx context.Context, projectID string) (string, error)
}

type AuthService struct {
	admins  AdminStore
	clients ClientCredentialStore
	secret  []byte
	ttl     time.Duration
	log     zerolog.Logger
}

func NewAuthService(admins AdminStore, clients ClientCredentialStore, secret []byte, ttl time.Duration, log zerolog.Logger) *AuthService {
	return &AuthService{
		admins:  admins,
		clients: clients,
		secret:  secret,
		ttl:     ttl,
		log:     log.With().Str("component", "auth").Logger(),
	}
}

// EnsureAdmin provisions the admin credential at startup. Idempotent: an
// existing admin row is never modified, so a changed env password does not
// reset a live install.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.admins.Provision(ctx, username, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("username", username).Msg("admin credential ensured")
	return nil
}

// AdminLogin verifies the admin credential and issues an admin session token.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return auth.IssueToken(domain.AdminSubject, domain.RoleAdmin, s.secret, s.ttl)
}

// ClientLogin verifies a project credential and issues a client session
// token whose subject is the project id.
func (s *AuthService) ClientLogin(ctx context.Context, projectID, password string) (string, error) {
	hash, err := s.clients.CredentialHash(ctx, projectID)
	if err != nil {
		// Unknown project and bad password look the same to the caller.
		return "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return auth.IssueToken(projectID, domain.RoleClient, s.secret, s.ttl)
}

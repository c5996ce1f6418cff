package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	authdomain "github.com/clientdeck/portal-backend/internal/auth/domain"
	"github.com/clientdeck/portal-backend/internal/projects/domain"
	"github.com/clientdeck/portal-backend/internal/projects/repository"
)

// ProjectStore is the repository slice the project service depends on.
type ProjectStore interface {
	Insert(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, id string, patch repository.Patch) (*domain.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// MessageStore is the chat repository slice used for the project detail view.
type MessageStore interface {
	List(ctx context.Context, projectID string) ([]domain.Message, error)
	MarkRead(ctx context.Context, projectID, sender string) error
}

// FileStore is the file repository slice used for the project detail view.
type FileStore interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.FileRecord, error)
}

// StatsInvalidator drops any cached dashboard aggregate after a project
// mutation. May be nil when no cache is configured.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// ProjectService handles project lifecycle and the aggregated detail view.
type ProjectService struct {
	projects ProjectStore
	messages MessageStore
	files    FileStore
	stats    StatsInvalidator
	log      zerolog.Logger
}

func NewProjectService(projects ProjectStore, messages MessageStore, files FileStore, stats StatsInvalidator, log zerolog.Logger) *ProjectService {
	return &ProjectService{
		projects: projects,
		messages: messages,
		files:    files,
		stats:    stats,
		log:      log.With().Str("component", "projects").Logger(),
	}
}

func (s *ProjectService) invalidateStats(ctx context.Context) {
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
}

// Credentials is the one-time project access credential pair. The plaintext
// password exists only in this value; the store keeps a hash.
type Credentials struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// Create provisions a new project with generated credentials and the default
// stage list. Retries on the rare project-id collision.
func (s *ProjectService) Create(ctx context.Context, name string, price int64, deadline *time.Time) (*domain.Project, *Credentials, error) {
	if name == "" {
		return nil, nil, domain.NewValidationError("name", "must not be empty")
	}
	if price < 0 {
		return nil, nil, domain.NewValidationError("price", "must not be negative")
	}

	password, err := domain.NewAccessPassword()
	if err != nil {
		return nil, nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	for i := 0; i < 5; i++ {
		id, err := domain.NewProjectID()
		if err != nil {
			return nil, nil, err
		}

		created, err := s.projects.Insert(ctx, &domain.Project{
			ID:           id,
			PasswordHash: string(hash),
			Name:         name,
			Status:       domain.StatusNew,
			Price:        price,
			Deadline:     deadline,
			Stages:       domain.DefaultStages(),
		})
		if errors.Is(err, domain.ErrDuplicateID) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		s.invalidateStats(ctx)
		s.log.Info().Str("project_id", created.ID).Msg("project created")
		return created, &Credentials{ID: created.ID, Password: password}, nil
	}

	return nil, nil, fmt.Errorf("failed to generate unique project id")
}

// List returns all projects for the admin dashboard.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

// Detail is the aggregated project view returned to both roles.
type Detail struct {
	Project  *domain.Project     `json:"project"`
	Messages []domain.Message    `json:"messages"`
	Files    []domain.FileRecord `json:"files"`
}

// Detail loads a project with its ordered messages and file records. The
// fetch marks the other party's messages as read: opening the project is
// what "seeing" the chat means here.
func (s *ProjectService) Detail(ctx context.Context, id, viewerRole string) (*Detail, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	otherRole := authdomain.RoleClient
	if viewerRole == authdomain.RoleClient {
		otherRole = authdomain.RoleAdmin
	}
	if err := s.messages.MarkRead(ctx, id, otherRole); err != nil {
		return nil, err
	}

	msgs, err := s.messages.List(ctx, id)
	if err != nil {
		return nil, err
	}
	files, err := s.files.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Project: p, Messages: msgs, Files: files}, nil
}

// Update applies a partial patch; absent fields keep their stored values.
func (s *ProjectService) Update(ctx context.Context, id string, patch repository.Patch) (*domain.Project, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", *patch.Status))
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, domain.NewValidationError("price", "must not be negative")
	}
	if patch.PaidAmount != nil && *patch.PaidAmount < 0 {
		return nil, domain.NewValidationError("paid_amount", "must not be negative")
	}

	p, err := s.projects.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return p, nil
}

// Delete removes a project and, through the store cascade, its messages and
// file records.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	ok, err := s.projects.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	s.invalidateStats(ctx)
	s.log.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

// Package dashboard aggregates the admin's landing view: all projects, the
// todo list and portfolio-level stats.
package dashboard

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clientdeck/portal-backend/internal/projects/domain"
	"github.com/clientdeck/portal-backend/internal/todos"
)

// ProjectSource is the projects repository slice the dashboard reads from.
type ProjectSource interface {
	List(ctx context.Context) ([]domain.Project, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

// TodoSource is the todos repository slice the dashboard reads from.
type TodoSource interface {
	List(ctx context.Context) ([]todos.Todo, error)
}

type Service struct {
	projects ProjectSource
	todos    TodoSource
	cache    *StatsCache
	log      zerolog.Logger
}

func NewService(projects ProjectSource, todoSource TodoSource, cache *StatsCache, log zerolog.Logger) *Service {
	return &Service{
		projects: projects,
		todos:    todoSource,
		cache:    cache,
		log:      log.With().Str("component", "dashboard").Logger(),
	}
}

// Overview is the full dashboard payload.
type Overview struct {
	Projects []domain.Project `json:"projects"`
	Todos    []todos.Todo     `json:"todos"`
	Stats    *domain.Stats    `json:"stats"`
}

// Overview loads projects and todos and serves the stats aggregate from the
// cache when it is warm.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	todoList, err := s.todos.List(ctx)
	if err != nil {
		return nil, err
	}

	stats, ok := s.cache.Get(ctx)
	if !ok {
		stats, err = s.projects.Stats(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, stats)
	}

	return &Overview{Projects: projects, Todos: todoList, Stats: stats}, nil
}

// Package janitor bounds the orphan window left by the two-step upload flow:
// blobs whose records were never associated to a project get swept after a
// grace period.
package janitor

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/clientdeck/portal-backend/internal/projects/domain"
)

// FileStore is the file repository slice the sweeper works against.
type FileStore interface {
	ListOrphans(ctx context.Context, olderThan time.Time) ([]domain.FileRecord, error)
	Delete(ctx context.Context, id int64) error
}

type Sweeper struct {
	files FileStore
	grace time.Duration
	cron  *cron.Cron
	log   zerolog.Logger
}

func New(files FileStore, grace time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		files: files,
		grace: grace,
		log:   log.With().Str("component", "janitor").Logger(),
	}
}

// Start schedules the hourly sweep.
func (s *Sweeper) Start() {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := s.Sweep(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("sweep failed")
			return
		}
		if n > 0 {
			s.log.Info().Int("removed", n).Msg("orphan blobs swept")
		}
	}); err != nil {
		s.log.Error().Err(err).Msg("failed to schedule sweep")
		return
	}

	s.cron = c
	c.Start()
	s.log.Info().Dur("grace", s.grace).Msg("janitor started")
}

// Stop halts the schedule; a sweep already running finishes on its own.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep removes blobs and rows for records past the grace period that were
// never referenced by a chat message. Returns how many records were removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	orphans, err := s.files.ListOrphans(ctx, time.Now().Add(-s.grace))
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, f := range orphans {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Str("file", f.StoredName).Msg("blob removal failed")
			continue
		}
		if err := s.files.Delete(ctx, f.ID); err != nil {
			s.log.Warn().Err(err).Str("file", f.StoredName).Msg("record removal failed")
			continue
		}
		removed++
	}
	return removed, nil
}

// Package uploads stores chat attachment blobs on the local filesystem and
// records their metadata. Association with a project happens later, when a
// chat message references the returned URL.
package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clientdeck/portal-backend/internal/projects/domain"
)

// URLPrefix is where stored blobs are served from. Anyone holding a blob URL
// can fetch it; there is no per-file access check.
const URLPrefix = "/files/"

// Recorder is the file repository slice the upload service writes through.
type Recorder interface {
	Insert(ctx context.Context, storedName, path, uploader string) (*domain.FileRecord, error)
}

type Service struct {
	dir     string
	records Recorder
	log     zerolog.Logger
}

func NewService(dir string, records Recorder, log zerolog.Logger) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Service{
		dir:     dir,
		records: records,
		log:     log.With().Str("component", "uploads").Logger(),
	}, nil
}

// Dir returns the blob directory, for the static file mount.
func (s *Service) Dir() string { return s.dir }

// Save writes the payload under a collision-resistant generated name and
// records it. The blob write and the metadata row are two separate steps; a
// crash in between leaves a blob the janitor will pick up.
func (s *Service) Save(ctx context.Context, originalName string, src io.Reader, uploader string) (*domain.FileRecord, string, error) {
	storedName := uuid.New().String() + sanitizeExt(originalName)
	path := filepath.Join(s.dir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("create blob: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, "", fmt.Errorf("write blob: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return nil, "", fmt.Errorf("close blob: %w", err)
	}

	rec, err := s.records.Insert(ctx, storedName, path, uploader)
	if err != nil {
		os.Remove(path)
		return nil, "", err
	}

	s.log.Info().Str("file", storedName).Str("uploader", uploader).Msg("blob stored")
	return rec, URLPrefix + storedName, nil
}

// sanitizeExt keeps a short, lowercase extension from the client-supplied
// name and drops anything that could escape the blob directory.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}

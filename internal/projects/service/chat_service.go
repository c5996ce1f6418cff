package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clientdeck/portal-backend/internal/projects/domain"
)

// ChatAppender is the chat repository slice the chat service writes through.
type ChatAppender interface {
	Append(ctx context.Context, projectID, sender, body string, attachmentURL *string) (*domain.Message, error)
}

// FileAssociator binds an uploaded blob to a project once a message
// references it.
type FileAssociator interface {
	Associate(ctx context.Context, storedName, projectID string) error
}

// ChatService appends chat messages. The sender role always comes from the
// verified session, never from the request body.
type ChatService struct {
	chat  ChatAppender
	files FileAssociator
	log   zerolog.Logger
}

func NewChatService(chat ChatAppender, files FileAssociator, log zerolog.Logger) *ChatService {
	return &ChatService{
		chat:  chat,
		files: files,
		log:   log.With().Str("component", "chat").Logger(),
	}
}

// Send appends a message to the project chat. When the message references an
// uploaded blob, the blob's record is associated to the project here — the
// upload itself and this association are two independent steps.
func (s *ChatService) Send(ctx context.Context, projectID, senderRole, body string, attachmentURL *string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" && attachmentURL == nil {
		return nil, domain.NewValidationError("body", "message needs text or an attachment")
	}

	msg, err := s.chat.Append(ctx, projectID, senderRole, body, attachmentURL)
	if err != nil {
		return nil, err
	}

	if attachmentURL != nil {
		if name := storedNameFromURL(*attachmentURL); name != "" {
			if err := s.files.Associate(ctx, name, projectID); err != nil {
				// The message is already committed; a failed association
				// leaves the blob for the janitor.
				s.log.Warn().Err(err).Str("project_id", projectID).Str("file", name).Msg("attachment association failed")
			}
		}
	}

	return msg, nil
}

// storedNameFromURL extracts the stored blob name from a "/files/<name>"
// reference. Anything else yields "".
func storedNameFromURL(url string) string {
	name, ok := strings.CutPrefix(url, "/files/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return ""
	}
	return name
}

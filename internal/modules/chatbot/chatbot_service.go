package chatbot

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"disaster-response/internal/models"

	"go.uber.org/zap"
)

const (
	maxMessageLen = 500
	historyLimit  = 10
)

// ServiceInterface defines the contract for the assistant.
type ServiceInterface interface {
	Chat(ctx context.Context, userID, message string) (*models.ChatMessage, error)
	History(ctx context.Context, userID string) ([]*models.ChatMessage, error)
}

// Service implements the assistant logic.
type Service struct {
	repo   RepositoryInterface
	logger *zap.Logger
}

// NewService creates a new chatbot service.
func NewService(repo RepositoryInterface, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Chat answers the user's message and logs the exchange. Logging is
// best-effort: a store failure is warned about but never fails the reply.
func (s *Service) Chat(ctx context.Context, userID, message string) (*models.ChatMessage, error) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return nil, fmt.Errorf("%w: message is required", models.ErrValidation)
	}
	if utf8.RuneCountInString(msg) > maxMessageLen {
		return nil, fmt.Errorf("%w: message too long, keep it under %d characters", models.ErrValidation, maxMessageLen)
	}

	entry := &models.ChatMessage{
		UserID:    userID,
		Message:   msg,
		Response:  Respond(msg),
		CreatedAt: time.Now(),
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		s.logger.Warn("failed to log chat exchange", zap.String("user_id", userID), zap.Error(err))
	}
	return entry, nil
}

// History returns the user's most recent exchanges.
func (s *Service) History(ctx context.Context, userID string) ([]*models.ChatMessage, error) {
	return s.repo.History(ctx, userID, historyLimit)
}

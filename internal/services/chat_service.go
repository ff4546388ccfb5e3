package services

import (
	"context"

	"messenger-api/internal/domain"
	"messenger-api/internal/repository"
	messenger_errors "messenger-api/pkg/errors"
	"messenger-api/pkg/logger"

	"go.uber.org/zap"
)

type ChatService struct {
	repo repository.ChatRepository
	log  *logger.Logger
}

func NewChatService(repo repository.ChatRepository, l *logger.Logger) *ChatService {
	if l == nil {
		l = logger.NewNop()
	}
	return &ChatService{repo: repo, log: l}
}

func (s *ChatService) ListChats(ctx context.Context, callerID int64) ([]domain.ChatSummary, error) {
	if callerID <= 0 {
		return nil, messenger_errors.Invalid("Missing X-User-Id header")
	}
	return s.repo.ListForUser(ctx, callerID)
}

// CreateOrGetChat returns the chat shared by both users, creating it when none exists.
// The lookup and the insert are separate round trips: two concurrent calls for the same
// pair may both miss the lookup and create two chats. Later lookups return the oldest.
func (s *ChatService) CreateOrGetChat(ctx context.Context, userA, userB int64) (int64, error) {
	if userA <= 0 || userB <= 0 {
		return 0, messenger_errors.Invalid("Missing user IDs")
	}
	if userA == userB {
		return 0, messenger_errors.Invalid("Cannot create a chat with yourself")
	}

	chatID, found, err := s.repo.FindDirect(ctx, userA, userB)
	if err != nil {
		return 0, err
	}
	if found {
		return chatID, nil
	}

	chatID, err = s.repo.CreateDirect(ctx, userA, userB)
	if err != nil {
		return 0, err
	}
	s.log.InfoCtx(ctx, "chat created", zap.Int64("chat_id", chatID), zap.Int64("user1_id", userA), zap.Int64("user2_id", userB))
	return chatID, nil
}

package services

import (
	"context"

	"messenger-api/internal/domain"
	"messenger-api/internal/repository"
	messenger_errors "messenger-api/pkg/errors"
)

type MessageService struct {
	repo repository.MessageRepository
}

func NewMessageService(repo repository.MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

// ListMessages does not check that the chat exists; an unknown chat has no messages.
func (s *MessageService) ListMessages(ctx context.Context, chatID int64) ([]domain.Message, error) {
	if chatID <= 0 {
		return nil, messenger_errors.Invalid("Missing chatId")
	}
	return s.repo.ListByChat(ctx, chatID)
}

func (s *MessageService) SendMessage(ctx context.Context, in domain.NewMessage) (domain.Message, error) {
	in.Text = domain.NormalizeText(in.Text)
	if in.ChatID <= 0 || in.SenderID <= 0 || in.Text == "" {
		return domain.Message{}, messenger_errors.Invalid("Missing required fields")
	}
	return s.repo.Create(ctx, in)
}

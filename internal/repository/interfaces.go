//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=../mocks/mock_repository.go -package=mocks
package repository

import (
	"context"

	"messenger-api/internal/domain"
)

type ChatRepository interface {
	// ListForUser returns the caller's chats, newest activity first, without blocked counterparts.
	ListForUser(ctx context.Context, userID int64) ([]domain.ChatSummary, error)
	// FindDirect reports the oldest chat holding both users.
	FindDirect(ctx context.Context, userA, userB int64) (int64, bool, error)
	// CreateDirect inserts a chat and both participant rows as one unit.
	CreateDirect(ctx context.Context, userA, userB int64) (int64, error)
}

type MessageRepository interface {
	ListByChat(ctx context.Context, chatID int64) ([]domain.Message, error)
	Create(ctx context.Context, m domain.NewMessage) (domain.Message, error)
}

type UserRepository interface {
	Search(ctx context.Context, handlePrefix string, callerID *int64, limit int) ([]domain.PublicProfile, error)
	UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) (domain.User, error)
	Block(ctx context.Context, edge domain.BlockEdge) error
	Unblock(ctx context.Context, edge domain.BlockEdge) error
}

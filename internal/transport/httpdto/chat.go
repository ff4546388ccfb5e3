package httpdto

import (
	"time"

	"messenger-api/internal/domain"

	"github.com/samber/lo"
)

// CreateChatRequest is used for POST /v1/chats
type CreateChatRequest struct {
	User1ID int64 `json:"user1Id"`
	User2ID int64 `json:"user2Id"`
}

type CreateChatResponse struct {
	ChatID int64 `json:"chatId"`
}

// ChatDTO is one row of GET /v1/chats
type ChatDTO struct {
	ChatID          int64      `json:"chat_id"`
	UserID          int64      `json:"user_id"`
	Username        string     `json:"username"`
	FirstName       *string    `json:"first_name"`
	LastName        *string    `json:"last_name"`
	AvatarURL       *string    `json:"avatar_url"`
	LastMessage     *string    `json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time"`
}

type ListChatsResponse struct {
	Chats []ChatDTO `json:"chats"`
}

func FromChatSummary(s domain.ChatSummary) ChatDTO {
	return ChatDTO{
		ChatID:          s.ChatID,
		UserID:          s.Counterpart.ID,
		Username:        s.Counterpart.Username,
		FirstName:       s.Counterpart.FirstName,
		LastName:        s.Counterpart.LastName,
		AvatarURL:       s.Counterpart.AvatarURL,
		LastMessage:     s.LastMessage,
		LastMessageTime: s.LastMessageTime,
	}
}

func FromChatSummaries(chats []domain.ChatSummary) []ChatDTO {
	return lo.Map(chats, func(s domain.ChatSummary, _ int) ChatDTO {
		return FromChatSummary(s)
	})
}

package httpdto

import (
	"time"

	"messenger-api/internal/domain"

	"github.com/samber/lo"
)

// ListMessagesQuery holds query parameters for GET /v1/messages
type ListMessagesQuery struct {
	ChatID int64 `form:"chatId" binding:"required,gt=0"`
}

// SendMessageRequest is used for POST /v1/messages
type SendMessageRequest struct {
	ChatID   int64  `json:"chatId" binding:"required"`
	SenderID int64  `json:"senderId" binding:"required"`
	Text     string `json:"text" binding:"required,notblank"`
}

func (r SendMessageRequest) ToDomain() domain.NewMessage {
	return domain.NewMessage{ChatID: r.ChatID, SenderID: r.SenderID, Text: r.Text}
}

type SendMessageResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageDTO is one row of GET /v1/messages
type MessageDTO struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	SenderID  int64     `json:"sender_id"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	FirstName *string   `json:"first_name"`
	AvatarURL *string   `json:"avatar_url"`
}

type ListMessagesResponse struct {
	Messages []MessageDTO `json:"messages"`
}

func FromMessage(m domain.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		Text:      m.Text,
		SenderID:  m.SenderID,
		CreatedAt: m.CreatedAt,
		Username:  m.SenderUsername,
		FirstName: m.SenderFirstName,
		AvatarURL: m.SenderAvatarURL,
	}
}

func FromMessages(messages []domain.Message) []MessageDTO {
	return lo.Map(messages, func(m domain.Message, _ int) MessageDTO {
		return FromMessage(m)
	})
}

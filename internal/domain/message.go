package domain

import (
	"strings"
	"time"
)

type Message struct {
	ID        int64
	ChatID    int64
	SenderID  int64
	Text      string
	CreatedAt time.Time

	// Sender fields joined from users.
	SenderUsername  string
	SenderFirstName *string
	SenderAvatarURL *string
}

// NewMessage is the input of a send; CreatedAt and ID are assigned by the store.
type NewMessage struct {
	ChatID   int64
	SenderID int64
	Text     string
}

func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

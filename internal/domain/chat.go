package domain

import "time"

// ChatSummary is one row of a caller's chat list: the other participant and the
// latest message, if any.
type ChatSummary struct {
	ChatID          int64
	Counterpart     PublicProfile
	LastMessage     *string
	LastMessageTime *time.Time
}

// ParticipantsPerChat is fixed: chats are 1:1 only.
const ParticipantsPerChat = 2

package entity

import "time"

// MaxMessageLength caps message content defensively; the transport layer does
// not enforce anything tighter.
const MaxMessageLength = 10000

type Message struct {
	ID             string    `json:"id" db:"id"`
	ConversationID string    `json:"conversation_id" db:"conversation_id"`
	SenderID       string    `json:"sender_id" db:"sender_id"`
	ReceiverID     string    `json:"receiver_id" db:"receiver_id"`
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

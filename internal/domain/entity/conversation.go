package entity

import "time"

// Conversation is the single messaging thread between two users about one
// product. Participants are stored in canonical order: the lexicographically
// smaller user id is always participant1, so the unordered pair maps to
// exactly one row per product.
type Conversation struct {
	ID             string     `json:"id" db:"id"`
	ProductID      string     `json:"product_id" db:"product_id"`
	Participant1ID string     `json:"participant1_id" db:"participant1_id"`
	Participant2ID string     `json:"participant2_id" db:"participant2_id"`
	ClosedByID     *string    `json:"closed_by_id,omitempty" db:"closed_by_id"`
	CloseReason    *string    `json:"close_reason,omitempty" db:"close_reason"`
	ClosedAt       *time.Time `json:"closed_at,omitempty" db:"closed_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// CanonicalParticipants orders the two user ids so that the smaller id comes
// first. Both sides of a pair resolve to the same (participant1, participant2).
func CanonicalParticipants(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

func (c *Conversation) HasParticipant(userID string) bool {
	return c.Participant1ID == userID || c.Participant2ID == userID
}

// OtherParticipant returns the participant that is not userID. The caller must
// already have checked membership.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.Participant1ID == userID {
		return c.Participant2ID
	}
	return c.Participant1ID
}

func (c *Conversation) IsClosed() bool {
	return c.ClosedByID != nil
}

// ConversationSummary is a conversation row enriched for the list view: the
// other participant, the product, and the most recent message.
type ConversationSummary struct {
	Conversation

	OtherUserID    string `json:"other_user_id" db:"other_user_id"`
	OtherUsername  string `json:"other_username" db:"other_username"`
	OtherNickname  string `json:"other_nickname,omitempty" db:"other_nickname"`
	OtherAvatarURL string `json:"other_avatar_url,omitempty" db:"other_avatar_url"`

	ProductTitle string `json:"product_title" db:"product_title"`
	ProductImage string `json:"product_image,omitempty" db:"product_image"`

	LastMessage   *string    `json:"last_message,omitempty" db:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty" db:"last_message_at"`
}

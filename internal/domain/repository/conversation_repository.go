package repository

import (
	"context"
	"time"

	"armabazar/internal/domain/entity"
)

type ConversationRepository interface {
	// Create inserts the conversation. A CONFLICT error signals that the
	// canonical (product, participant1, participant2) row already exists.
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	FindByProductAndParticipants(ctx context.Context, productID, participant1ID, participant2ID string) (*entity.Conversation, error)

	// ListByUser returns enriched conversations visible to the user: rows the
	// user closed themself and rows the user has hidden are excluded.
	ListByUser(ctx context.Context, userID string) ([]*entity.ConversationSummary, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Conversation, int64, error)

	Close(ctx context.Context, id, closedByID, reason string, closedAt time.Time) error
	HideFor(ctx context.Context, id, userID string) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)
	Touch(ctx context.Context, id string, at time.Time) error
}

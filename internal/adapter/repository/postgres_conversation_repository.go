package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/pkg/errors"
	"armabazar/pkg/utils"
)

type postgresConversationRepository struct {
	db *sqlx.DB
}

func NewPostgresConversationRepository(db *sqlx.DB) repository.ConversationRepository {
	return &postgresConversationRepository{
		db: db,
	}
}

func (r *postgresConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	if conversation.ID == "" {
		conversation.ID = utils.GenerateID()
	}

	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO conversations (id, product_id, participant1_id, participant2_id, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		conversation.ID, conversation.ProductID, conversation.Participant1ID, conversation.Participant2ID,
		conversation.CreatedAt, conversation.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("Conversation already exists")
		}
		return errors.Internal("Failed to create conversation", err)
	}

	return nil
}

func (r *postgresConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	var conversation entity.Conversation
	err := r.db.GetContext(ctx, &conversation,
		`SELECT id, product_id, participant1_id, participant2_id, closed_by_id, close_reason, closed_at, created_at, updated_at
         FROM conversations WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}
	return &conversation, nil
}

func (r *postgresConversationRepository) FindByProductAndParticipants(ctx context.Context, productID, participant1ID, participant2ID string) (*entity.Conversation, error) {
	var conversation entity.Conversation
	err := r.db.GetContext(ctx, &conversation,
		`SELECT id, product_id, participant1_id, participant2_id, closed_by_id, close_reason, closed_at, created_at, updated_at
         FROM conversations
         WHERE product_id = $1 AND participant1_id = $2 AND participant2_id = $3`,
		productID, participant1ID, participant2ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to find conversation", err)
	}
	return &conversation, nil
}

func (r *postgresConversationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.ConversationSummary, error) {
	query := `SELECT c.id, c.product_id, c.participant1_id, c.participant2_id,
            c.closed_by_id, c.close_reason, c.closed_at, c.created_at, c.updated_at,
            u.id AS other_user_id, u.username AS other_username,
            u.nickname AS other_nickname, u.avatar_url AS other_avatar_url,
            p.title AS product_title, p.main_image AS product_image,
            lm.content AS last_message, lm.created_at AS last_message_at
        FROM conversations c
        JOIN users u ON u.id = CASE WHEN c.participant1_id = $1 THEN c.participant2_id ELSE c.participant1_id END
        JOIN products p ON p.id = c.product_id
        LEFT JOIN LATERAL (
            SELECT m.content, m.created_at
            FROM messages m
            WHERE m.conversation_id = c.id
            ORDER BY m.created_at DESC
            LIMIT 1
        ) lm ON TRUE
        WHERE (c.participant1_id = $1 OR c.participant2_id = $1)
          AND (c.closed_by_id IS NULL OR c.closed_by_id <> $1)
          AND NOT EXISTS (
              SELECT 1 FROM conversation_hidden_for h
              WHERE h.conversation_id = c.id AND h.user_id = $1
          )
        ORDER BY COALESCE(lm.created_at, c.updated_at) DESC`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list conversations", err)
	}
	defer rows.Close()

	var summaries []*entity.ConversationSummary
	for rows.Next() {
		var summary entity.ConversationSummary
		if err := rows.StructScan(&summary); err != nil {
			return nil, errors.Internal("Failed to scan conversation", err)
		}
		summaries = append(summaries, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate conversations", err)
	}

	return summaries, nil
}

func (r *postgresConversationRepository) ListAll(ctx context.Context, limit, offset int) ([]*entity.Conversation, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM conversations`); err != nil {
		return nil, 0, errors.Internal("Failed to count conversations", err)
	}

	var conversations []*entity.Conversation
	err := r.db.SelectContext(ctx, &conversations,
		`SELECT id, product_id, participant1_id, participant2_id, closed_by_id, close_reason, closed_at, created_at, updated_at
         FROM conversations ORDER BY updated_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list conversations", err)
	}

	return conversations, total, nil
}

func (r *postgresConversationRepository) Close(ctx context.Context, id, closedByID, reason string, closedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE conversations
         SET closed_by_id = $2, close_reason = $3, closed_at = $4, updated_at = $4
         WHERE id = $1 AND closed_by_id IS NULL`,
		id, closedByID, reason, closedAt)
	if err != nil {
		return errors.Internal("Failed to close conversation", err)
	}
	// Zero rows means the conversation is gone or another caller closed
	// it first; either way this close did not happen.
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.Conflict("Conversation is already closed")
	}
	return nil
}

func (r *postgresConversationRepository) HideFor(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO conversation_hidden_for (conversation_id, user_id)
         VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		id, userID)
	if err != nil {
		return errors.Internal("Failed to hide conversation", err)
	}
	return nil
}

func (r *postgresConversationRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = utils.GenerateID()
	}
	message.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, conversation_id, sender_id, receiver_id, content, created_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		message.ID, message.ConversationID, message.SenderID, message.ReceiverID, message.Content, message.CreatedAt)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *postgresConversationRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM messages WHERE conversation_id = $1`, conversationID); err != nil {
		return nil, 0, errors.Internal("Failed to count messages", err)
	}

	var messages []*entity.Message
	err := r.db.SelectContext(ctx, &messages,
		`SELECT id, conversation_id, sender_id, receiver_id, content, created_at
         FROM messages
         WHERE conversation_id = $1
         ORDER BY created_at ASC
         LIMIT $2 OFFSET $3`,
		conversationID, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list messages", err)
	}

	return messages, total, nil
}

func (r *postgresConversationRepository) Touch(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE conversations SET updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return errors.Internal("Failed to update conversation", err)
	}
	return nil
}

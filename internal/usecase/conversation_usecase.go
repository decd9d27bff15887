package usecase

import (
	"context"
	"strings"
	"time"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/pkg/errors"
	"armabazar/pkg/logger"
)

type ConversationUseCase struct {
	conversationRepo repository.ConversationRepository
	productRepo      repository.ProductRepository
}

func NewConversationUseCase(
	conversationRepo repository.ConversationRepository,
	productRepo repository.ProductRepository,
) *ConversationUseCase {
	return &ConversationUseCase{
		conversationRepo: conversationRepo,
		productRepo:      productRepo,
	}
}

type CreateConversationInput struct {
	ProductID   string
	OtherUserID string
}

// CreateOrGetConversation resolves the canonical conversation between the
// caller and the other user about a product, creating it on first contact.
// The returned bool reports whether a new row was created. Two concurrent
// first contacts collapse to one row: a duplicate-key failure on insert is
// resolved by re-reading the row the other caller won with.
func (uc *ConversationUseCase) CreateOrGetConversation(ctx context.Context, userID string, input CreateConversationInput) (*entity.Conversation, bool, error) {
	if userID == input.OtherUserID {
		return nil, false, errors.BadRequest("You cannot start a conversation with yourself", nil)
	}

	if _, err := uc.productRepo.GetByID(ctx, input.ProductID); err != nil {
		return nil, false, err
	}

	participant1, participant2 := entity.CanonicalParticipants(userID, input.OtherUserID)

	existing, err := uc.conversationRepo.FindByProductAndParticipants(ctx, input.ProductID, participant1, participant2)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, false, err
	}

	conversation := &entity.Conversation{
		ProductID:      input.ProductID,
		Participant1ID: participant1,
		Participant2ID: participant2,
	}

	if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
		if errors.Is(err, "CONFLICT") {
			// A concurrent caller won the race; return their row.
			existing, findErr := uc.conversationRepo.FindByProductAndParticipants(ctx, input.ProductID, participant1, participant2)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return conversation, true, nil
}

func (uc *ConversationUseCase) ListConversations(ctx context.Context, userID string) ([]*entity.ConversationSummary, error) {
	return uc.conversationRepo.ListByUser(ctx, userID)
}

// CloseConversation ends a conversation with a stated reason. Closing is a
// one-way transition: a second close attempt is rejected and leaves the
// original close reason and timestamp untouched.
func (uc *ConversationUseCase) CloseConversation(ctx context.Context, userID, conversationID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errors.BadRequest("Close reason is required", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if !conversation.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant of this conversation", nil)
	}

	if conversation.IsClosed() {
		return errors.Conflict("Conversation already closed")
	}

	return uc.conversationRepo.Close(ctx, conversationID, userID, reason, time.Now())
}

// HideConversation dismisses a conversation from the caller's own list. The
// other participant's view is unaffected.
func (uc *ConversationUseCase) HideConversation(ctx context.Context, userID, conversationID string) error {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if !conversation.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant of this conversation", nil)
	}

	return uc.conversationRepo.HideFor(ctx, conversationID, userID)
}

type SendMessageInput struct {
	ConversationID string
	Content        string
}

func (uc *ConversationUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, input.ConversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	if conversation.IsClosed() {
		return nil, errors.Conflict("Conversation is closed")
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}
	if len(content) > entity.MaxMessageLength {
		return nil, errors.BadRequest("Message content is too long", nil)
	}

	message := &entity.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		ReceiverID:     conversation.OtherParticipant(senderID),
		Content:        content,
	}

	if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := uc.conversationRepo.Touch(ctx, conversation.ID, message.CreatedAt); err != nil {
		logger.Warn("Failed to bump conversation %s after message: %v", conversation.ID, err)
	}

	return message, nil
}

func (uc *ConversationUseCase) ListMessages(ctx context.Context, userID, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}

	if !conversation.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	return uc.conversationRepo.ListMessages(ctx, conversationID, limit, offset)
}

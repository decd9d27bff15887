package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"armabazar/internal/domain/entity"
	"armabazar/internal/mocks"
	"armabazar/pkg/errors"
)

func TestCreateOrGetConversationCreatesNew(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	productRepo := new(mocks.ProductRepositoryMock)
	uc := NewConversationUseCase(conversationRepo, productRepo)

	productRepo.On("GetByID", mock.Anything, "p1").Return(&entity.Product{ID: "p1"}, nil).Once()
	conversationRepo.On("FindByProductAndParticipants", mock.Anything, "p1", "alice", "bob").
		Return(nil, errors.NotFound("Conversation not found", nil)).Once()
	conversationRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Conversation")).Return(nil).Once()

	conversation, created, err := uc.CreateOrGetConversation(context.Background(), "bob", CreateConversationInput{
		ProductID:   "p1",
		OtherUserID: "alice",
	})

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", conversation.Participant1ID)
	assert.Equal(t, "bob", conversation.Participant2ID)
	conversationRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestCreateOrGetConversationParticipantOrderIsCanonical(t *testing.T) {
	// Both directions of first contact must resolve to the same row.
	for _, caller := range []struct{ userID, otherID string }{
		{"alice", "bob"},
		{"bob", "alice"},
	} {
		conversationRepo := new(mocks.ConversationRepositoryMock)
		productRepo := new(mocks.ProductRepositoryMock)
		uc := NewConversationUseCase(conversationRepo, productRepo)

		existing := &entity.Conversation{ID: "c1", Participant1ID: "alice", Participant2ID: "bob"}
		productRepo.On("GetByID", mock.Anything, "p1").Return(&entity.Product{ID: "p1"}, nil).Once()
		conversationRepo.On("FindByProductAndParticipants", mock.Anything, "p1", "alice", "bob").
			Return(existing, nil).Once()

		conversation, created, err := uc.CreateOrGetConversation(context.Background(), caller.userID, CreateConversationInput{
			ProductID:   "p1",
			OtherUserID: caller.otherID,
		})

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "c1", conversation.ID)
		conversationRepo.AssertExpectations(t)
	}
}

func TestCreateOrGetConversationSelfRejected(t *testing.T) {
	uc := NewConversationUseCase(new(mocks.ConversationRepositoryMock), new(mocks.ProductRepositoryMock))

	_, _, err := uc.CreateOrGetConversation(context.Background(), "alice", CreateConversationInput{
		ProductID:   "p1",
		OtherUserID: "alice",
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateOrGetConversationDuplicateKeyReread(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	productRepo := new(mocks.ProductRepositoryMock)
	uc := NewConversationUseCase(conversationRepo, productRepo)

	winner := &entity.Conversation{ID: "c-won", Participant1ID: "alice", Participant2ID: "bob"}
	productRepo.On("GetByID", mock.Anything, "p1").Return(&entity.Product{ID: "p1"}, nil).Once()
	conversationRepo.On("FindByProductAndParticipants", mock.Anything, "p1", "alice", "bob").
		Return(nil, errors.NotFound("Conversation not found", nil)).Once()
	conversationRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Conversation")).
		Return(errors.Conflict("Conversation already exists")).Once()
	conversationRepo.On("FindByProductAndParticipants", mock.Anything, "p1", "alice", "bob").
		Return(winner, nil).Once()

	conversation, created, err := uc.CreateOrGetConversation(context.Background(), "bob", CreateConversationInput{
		ProductID:   "p1",
		OtherUserID: "alice",
	})

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "c-won", conversation.ID)
	conversationRepo.AssertExpectations(t)
}

func TestCloseConversationRequiresReason(t *testing.T) {
	uc := NewConversationUseCase(new(mocks.ConversationRepositoryMock), new(mocks.ProductRepositoryMock))

	err := uc.CloseConversation(context.Background(), "alice", "c1", "   ")

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCloseConversationNonParticipantForbidden(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	uc := NewConversationUseCase(conversationRepo, new(mocks.ProductRepositoryMock))

	conversationRepo.On("GetByID", mock.Anything, "c1").
		Return(&entity.Conversation{ID: "c1", Participant1ID: "alice", Participant2ID: "bob"}, nil).Once()

	err := uc.CloseConversation(context.Background(), "mallory", "c1", "sold elsewhere")

	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCloseConversationTwiceConflicts(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	uc := NewConversationUseCase(conversationRepo, new(mocks.ProductRepositoryMock))

	closedBy := "alice"
	closedAt := time.Now()
	conversationRepo.On("GetByID", mock.Anything, "c1").
		Return(&entity.Conversation{
			ID:             "c1",
			Participant1ID: "alice",
			Participant2ID: "bob",
			ClosedByID:     &closedBy,
			ClosedAt:       &closedAt,
		}, nil).Once()

	err := uc.CloseConversation(context.Background(), "bob", "c1", "changed my mind")

	assert.True(t, errors.Is(err, "CONFLICT"))
	conversationRepo.AssertNotCalled(t, "Close", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHideConversationOnlyAffectsCaller(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	uc := NewConversationUseCase(conversationRepo, new(mocks.ProductRepositoryMock))

	conversationRepo.On("GetByID", mock.Anything, "c1").
		Return(&entity.Conversation{ID: "c1", Participant1ID: "alice", Participant2ID: "bob"}, nil).Once()
	conversationRepo.On("HideFor", mock.Anything, "c1", "bob").Return(nil).Once()

	require.NoError(t, uc.HideConversation(context.Background(), "bob", "c1"))
	conversationRepo.AssertExpectations(t)
}

func TestSendMessageIntoClosedConversationConflicts(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	uc := NewConversationUseCase(conversationRepo, new(mocks.ProductRepositoryMock))

	closedBy := "alice"
	closedAt := time.Now()
	conversationRepo.On("GetByID", mock.Anything, "c1").
		Return(&entity.Conversation{
			ID:             "c1",
			Participant1ID: "alice",
			Participant2ID: "bob",
			ClosedByID:     &closedBy,
			ClosedAt:       &closedAt,
		}, nil).Once()

	_, err := uc.SendMessage(context.Background(), "bob", SendMessageInput{ConversationID: "c1", Content: "hello"})

	assert.True(t, errors.Is(err, "CONFLICT"))
	conversationRepo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestSendMessageSetsReceiverAndBumpsConversation(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	uc := NewConversationUseCase(conversationRepo, new(mocks.ProductRepositoryMock))

	conversationRepo.On("GetByID", mock.Anything, "c1").
		Return(&entity.Conversation{ID: "c1", Participant1ID: "alice", Participant2ID: "bob"}, nil).Once()
	conversationRepo.On("CreateMessage", mock.Anything, mock.AnythingOfType("*entity.Message")).Return(nil).Once()
	conversationRepo.On("Touch", mock.Anything, "c1", mock.Anything).Return(nil).Once()

	message, err := uc.SendMessage(context.Background(), "alice", SendMessageInput{ConversationID: "c1", Content: "  hello  "})

	require.NoError(t, err)
	assert.Equal(t, "bob", message.ReceiverID)
	assert.Equal(t, "hello", message.Content)
	conversationRepo.AssertExpectations(t)
}

func TestSendMessageContentLimits(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	uc := NewConversationUseCase(conversationRepo, new(mocks.ProductRepositoryMock))

	conversationRepo.On("GetByID", mock.Anything, "c1").
		Return(&entity.Conversation{ID: "c1", Participant1ID: "alice", Participant2ID: "bob"}, nil)

	_, err := uc.SendMessage(context.Background(), "alice", SendMessageInput{ConversationID: "c1", Content: "   "})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.SendMessage(context.Background(), "alice", SendMessageInput{
		ConversationID: "c1",
		Content:        strings.Repeat("x", entity.MaxMessageLength+1),
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"armabazar/internal/adapter/api"
	"armabazar/internal/domain/entity"
	"armabazar/internal/mocks"
	"armabazar/internal/usecase"
	"armabazar/pkg/errors"
)

func setupConversationRouter(conversationRepo *mocks.ConversationRepositoryMock, productRepo *mocks.ProductRepositoryMock) *echo.Echo {
	uc := usecase.NewConversationUseCase(conversationRepo, productRepo)
	h := NewConversationHandler(uc)

	e := echo.New()
	e.Validator = api.NewValidator()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("uid", "bob")
			return next(c)
		}
	})
	e.POST("/v1/conversations", h.CreateConversation)
	e.GET("/v1/conversations", h.ListConversations)
	e.PATCH("/v1/conversations/:id", h.UpdateConversation)
	e.POST("/v1/conversations/:id/messages", h.SendMessage)
	e.GET("/v1/conversations/:id/messages", h.ListMessages)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateConversationReturns201ForNewThread(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	productRepo := new(mocks.ProductRepositoryMock)
	e := setupConversationRouter(conversationRepo, productRepo)

	productRepo.On("GetByID", mock.Anything, "p1").Return(&entity.Product{ID: "p1"}, nil).Once()
	conversationRepo.On("FindByProductAndParticipants", mock.Anything, "p1", "alice", "bob").
		Return(nil, errors.NotFound("Conversation not found", nil)).Once()
	conversationRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Conversation")).Return(nil).Once()

	rec := postJSON(e, "/v1/conversations", `{"product_id":"p1","other_user_id":"alice"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	data := resp["data"].(map[string]any)
	require.Equal(t, "created", data["status"])
	conversationRepo.AssertExpectations(t)
}

func TestCreateConversationReturns200ForExistingThread(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	productRepo := new(mocks.ProductRepositoryMock)
	e := setupConversationRouter(conversationRepo, productRepo)

	productRepo.On("GetByID", mock.Anything, "p1").Return(&entity.Product{ID: "p1"}, nil).Once()
	conversationRepo.On("FindByProductAndParticipants", mock.Anything, "p1", "alice", "bob").
		Return(&entity.Conversation{ID: "c1", Participant1ID: "alice", Participant2ID: "bob"}, nil).Once()

	rec := postJSON(e, "/v1/conversations", `{"product_id":"p1","other_user_id":"alice"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	data := resp["data"].(map[string]any)
	require.Equal(t, "existing", data["status"])
}

func TestCreateConversationMissingFields(t *testing.T) {
	e := setupConversationRouter(new(mocks.ConversationRepositoryMock), new(mocks.ProductRepositoryMock))

	rec := postJSON(e, "/v1/conversations", `{"product_id":"p1"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessageIntoClosedConversationReturns409(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	e := setupConversationRouter(conversationRepo, new(mocks.ProductRepositoryMock))

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

	rec := postJSON(e, "/v1/conversations/c1/messages", `{"content":"hello"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateConversationCloseWithoutReason(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	e := setupConversationRouter(conversationRepo, new(mocks.ProductRepositoryMock))

	req := httptest.NewRequest(http.MethodPatch, "/v1/conversations/c1", bytes.NewBufferString(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateConversationHide(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	e := setupConversationRouter(conversationRepo, new(mocks.ProductRepositoryMock))

	conversationRepo.On("GetByID", mock.Anything, "c1").
		Return(&entity.Conversation{ID: "c1", Participant1ID: "alice", Participant2ID: "bob"}, nil).Once()
	conversationRepo.On("HideFor", mock.Anything, "c1", "bob").Return(nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/v1/conversations/c1", bytes.NewBufferString(`{"hide":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	conversationRepo.AssertExpectations(t)
}

func TestListMessagesPaginated(t *testing.T) {
	conversationRepo := new(mocks.ConversationRepositoryMock)
	e := setupConversationRouter(conversationRepo, new(mocks.ProductRepositoryMock))

	conversationRepo.On("GetByID", mock.Anything, "c1").
		Return(&entity.Conversation{ID: "c1", Participant1ID: "alice", Participant2ID: "bob"}, nil).Once()
	conversationRepo.On("ListMessages", mock.Anything, "c1", 20, 0).
		Return([]*entity.Message{{ID: "m1", ConversationID: "c1", SenderID: "alice", Content: "hi"}}, 1, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/v1/conversations/c1/messages", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	data := resp["data"].(map[string]any)
	require.EqualValues(t, 1, data["total"])
}

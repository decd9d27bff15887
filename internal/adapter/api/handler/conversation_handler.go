package handler

import (
	"github.com/labstack/echo/v4"

	"armabazar/internal/usecase"
	"armabazar/pkg/response"
	"armabazar/pkg/utils"
)

type ConversationHandler struct {
	conversationUseCase *usecase.ConversationUseCase
}

func NewConversationHandler(conversationUseCase *usecase.ConversationUseCase) *ConversationHandler {
	return &ConversationHandler{
		conversationUseCase: conversationUseCase,
	}
}

type createConversationRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	OtherUserID string `json:"other_user_id" validate:"required"`
}

type updateConversationRequest struct {
	CloseReason string `json:"close_reason"`
	Hide        bool   `json:"hide"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateConversation starts (or returns) the conversation between the caller
// and another user about a product. 201 signals a new thread, 200 an
// existing one.
func (h *ConversationHandler) CreateConversation(c echo.Context) error {
	var req createConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	conversation, created, err := h.conversationUseCase.CreateOrGetConversation(c.Request().Context(), userID, usecase.CreateConversationInput{
		ProductID:   req.ProductID,
		OtherUserID: req.OtherUserID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	status := "existing"
	if created {
		status = "created"
	}

	data := map[string]interface{}{
		"conversation": conversation,
		"status":       status,
	}

	if created {
		return response.Created(c, data)
	}
	return response.Success(c, data)
}

func (h *ConversationHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.conversationUseCase.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"conversations": conversations,
	})
}

// UpdateConversation closes or hides a conversation depending on the body.
func (h *ConversationHandler) UpdateConversation(c echo.Context) error {
	var req updateConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)
	conversationID := c.Param("id")

	if req.Hide {
		if err := h.conversationUseCase.HideConversation(c.Request().Context(), userID, conversationID); err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, map[string]string{"message": "Conversation hidden"})
	}

	if err := h.conversationUseCase.CloseConversation(c.Request().Context(), userID, conversationID, req.CloseReason); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Conversation closed"})
}

func (h *ConversationHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.conversationUseCase.SendMessage(c.Request().Context(), userID, usecase.SendMessageInput{
		ConversationID: c.Param("id"),
		Content:        req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ConversationHandler) ListMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	messages, total, err := h.conversationUseCase.ListMessages(c.Request().Context(), userID, c.Param("id"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, params.Page, params.PageSize)
}

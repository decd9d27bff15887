package handler

import (
	"github.com/labstack/echo/v4"

	"armabazar/internal/usecase"
	"armabazar/pkg/response"
)

type ReportHandler struct {
	reportUseCase *usecase.ReportUseCase
}

func NewReportHandler(reportUseCase *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{
		reportUseCase: reportUseCase,
	}
}

type createReportRequest struct {
	Type        string `json:"type" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Email       string `json:"email"`
	URL         string `json:"url"`
}

// CreateReport accepts reports from signed-in and anonymous users alike.
func (h *ReportHandler) CreateReport(c echo.Context) error {
	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	var reporterID *string
	if uid, ok := c.Get("uid").(string); ok && uid != "" {
		reporterID = &uid
	}

	report, err := h.reportUseCase.CreateReport(c.Request().Context(), reporterID, usecase.CreateReportInput{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Email:       req.Email,
		URL:         req.URL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, report)
}

package handler

import (
	"github.com/labstack/echo/v4"

	"armabazar/internal/usecase"
	"armabazar/pkg/response"
	"armabazar/pkg/utils"
)

type AdminHandler struct {
	adminUseCase   *usecase.AdminUseCase
	reportUseCase  *usecase.ReportUseCase
	productUseCase *usecase.ProductUseCase
	serviceUseCase *usecase.ServiceUseCase
}

func NewAdminHandler(
	adminUseCase *usecase.AdminUseCase,
	reportUseCase *usecase.ReportUseCase,
	productUseCase *usecase.ProductUseCase,
	serviceUseCase *usecase.ServiceUseCase,
) *AdminHandler {
	return &AdminHandler{
		adminUseCase:   adminUseCase,
		reportUseCase:  reportUseCase,
		productUseCase: productUseCase,
		serviceUseCase: serviceUseCase,
	}
}

func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.adminUseCase.GetDashboardStats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, stats)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	users, total, err := h.adminUseCase.ListUsers(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, params.Page, params.PageSize)
}

func (h *AdminHandler) ToggleUserBan(c echo.Context) error {
	user, err := h.adminUseCase.ToggleUserBan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *AdminHandler) ToggleUserAdmin(c echo.Context) error {
	user, err := h.adminUseCase.ToggleUserAdmin(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	products, total, err := h.adminUseCase.ListProducts(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, params.Page, params.PageSize)
}

func (h *AdminHandler) ToggleProductActive(c echo.Context) error {
	product, err := h.adminUseCase.ToggleProductActive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.productUseCase.DeleteListing(c.Request().Context(), userID, c.Param("id"), true); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Product deleted"})
}

func (h *AdminHandler) ListServices(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	services, total, err := h.adminUseCase.ListServices(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, services, total, params.Page, params.PageSize)
}

type serviceApprovalRequest struct {
	Approved bool `json:"approved"`
}

func (h *AdminHandler) SetServiceApproval(c echo.Context) error {
	var req serviceApprovalRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	svc, err := h.adminUseCase.SetServiceApproval(c.Request().Context(), c.Param("id"), req.Approved)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, svc)
}

func (h *AdminHandler) DeleteService(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.serviceUseCase.DeleteService(c.Request().Context(), userID, c.Param("id"), true); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Service deleted"})
}

func (h *AdminHandler) DeleteServiceReview(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.serviceUseCase.DeleteReview(c.Request().Context(), userID, c.Param("id"), c.Param("reviewId"), true); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Review deleted"})
}

func (h *AdminHandler) ListConversations(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	conversations, total, err := h.adminUseCase.ListConversations(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, conversations, total, params.Page, params.PageSize)
}

func (h *AdminHandler) ListReports(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	reports, total, err := h.reportUseCase.ListReports(c.Request().Context(), c.QueryParam("status"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reports, total, params.Page, params.PageSize)
}

type reportStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *AdminHandler) UpdateReportStatus(c echo.Context) error {
	var req reportStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	report, err := h.reportUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, report)
}

func (h *AdminHandler) DeleteReport(c echo.Context) error {
	if err := h.reportUseCase.DeleteReport(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Report deleted"})
}

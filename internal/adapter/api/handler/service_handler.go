package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"armabazar/internal/adapter/api/middleware"
	"armabazar/internal/usecase"
	"armabazar/pkg/errors"
	"armabazar/pkg/response"
	"armabazar/pkg/utils"
)

type ServiceHandler struct {
	serviceUseCase *usecase.ServiceUseCase
}

func NewServiceHandler(serviceUseCase *usecase.ServiceUseCase) *ServiceHandler {
	return &ServiceHandler{
		serviceUseCase: serviceUseCase,
	}
}

func (h *ServiceHandler) CreateService(c echo.Context) error {
	userID := c.Get("uid").(string)

	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid multipart form", err))
	}

	mainImage, err := readSingleUpload(form.File["image"])
	if err != nil {
		return response.Error(c, err)
	}
	additionalImages, err := readUploadFiles(form.File["additionalImages"])
	if err != nil {
		return response.Error(c, err)
	}

	svc, err := h.serviceUseCase.CreateService(c.Request().Context(), userID, usecase.CreateServiceInput{
		Name:         c.FormValue("name"),
		Description:  c.FormValue("description"),
		Location:     c.FormValue("location"),
		ContactEmail: c.FormValue("contactEmail"),
		ContactPhone: c.FormValue("contactPhone"),
	}, mainImage, additionalImages)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, svc)
}

func (h *ServiceHandler) ListServices(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	services, total, err := h.serviceUseCase.ListServices(c.Request().Context(), true, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, services, total, params.Page, params.PageSize)
}

func (h *ServiceHandler) GetService(c echo.Context) error {
	svc, err := h.serviceUseCase.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, svc)
}

func (h *ServiceHandler) UpdateService(c echo.Context) error {
	userID := c.Get("uid").(string)

	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid multipart form", err))
	}

	mainImage, err := readSingleUpload(form.File["image"])
	if err != nil {
		return response.Error(c, err)
	}
	additionalImages, err := readUploadFiles(form.File["additionalImages"])
	if err != nil {
		return response.Error(c, err)
	}

	input := usecase.UpdateServiceInput{
		Name:         optionalFormValue(form, "name"),
		Description:  optionalFormValue(form, "description"),
		Location:     optionalFormValue(form, "location"),
		ContactEmail: optionalFormValue(form, "contactEmail"),
		ContactPhone: optionalFormValue(form, "contactPhone"),
		DeleteImages: form.Value["deleteImages"],
		KeepImages:   form.Value["keepImages"],
	}

	svc, err := h.serviceUseCase.UpdateService(c.Request().Context(), userID, c.Param("id"), input, mainImage, additionalImages)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, svc)
}

func (h *ServiceHandler) DeleteService(c echo.Context) error {
	userID := c.Get("uid").(string)
	principal := middleware.CurrentPrincipal(c)
	isAdmin := principal != nil && principal.IsAdmin

	if err := h.serviceUseCase.DeleteService(c.Request().Context(), userID, c.Param("id"), isAdmin); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Service deleted"})
}

func (h *ServiceHandler) AddReview(c echo.Context) error {
	userID := c.Get("uid").(string)

	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid multipart form", err))
	}

	images, err := readUploadFiles(form.File["images"])
	if err != nil {
		return response.Error(c, err)
	}

	review, err := h.serviceUseCase.AddReview(c.Request().Context(), userID, c.Param("id"), usecase.CreateReviewInput{
		RatingSpeed:         formInt(c, "ratingSpeed"),
		RatingQuality:       formInt(c, "ratingQuality"),
		RatingCommunication: formInt(c, "ratingCommunication"),
		RatingPrice:         formInt(c, "ratingPrice"),
		RatingOverall:       formInt(c, "ratingOverall"),
		Comment:             c.FormValue("comment"),
	}, images)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ServiceHandler) ListReviews(c echo.Context) error {
	reviews, err := h.serviceUseCase.ListReviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reviews)
}

func (h *ServiceHandler) DeleteReview(c echo.Context) error {
	userID := c.Get("uid").(string)
	principal := middleware.CurrentPrincipal(c)
	isAdmin := principal != nil && principal.IsAdmin

	if err := h.serviceUseCase.DeleteReview(c.Request().Context(), userID, c.Param("id"), c.Param("reviewId"), isAdmin); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Review deleted"})
}

func formInt(c echo.Context, name string) int {
	value, _ := strconv.Atoi(c.FormValue(name))
	return value
}

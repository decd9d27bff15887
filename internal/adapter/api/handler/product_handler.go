package handler

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/labstack/echo/v4"

	"armabazar/internal/adapter/api/middleware"
	"armabazar/internal/domain/service"
	"armabazar/internal/usecase"
	"armabazar/pkg/errors"
	"armabazar/pkg/response"
	"armabazar/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

// CreateProduct ingests a multipart listing form with up to 10 image files.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	userID := c.Get("uid").(string)

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return response.Error(c, errors.BadRequest("Price must be a number", err))
	}

	mainImageIndex := 0
	if raw := c.FormValue("mainImageIndex"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			mainImageIndex = parsed
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid multipart form", err))
	}

	files, err := readUploadFiles(form.File["images"])
	if err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.CreateListing(c.Request().Context(), userID, usecase.CreateListingInput{
		Title:          c.FormValue("title"),
		Description:    c.FormValue("description"),
		Price:          price,
		ListingType:    c.FormValue("listingType"),
		Category:       c.FormValue("category"),
		Subcategory:    c.FormValue("subcategory"),
		Condition:      c.FormValue("condition"),
		Location:       c.FormValue("location"),
		MainImageIndex: mainImageIndex,
	}, files)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	minPrice, _ := strconv.ParseFloat(c.QueryParam("minPrice"), 64)
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("maxPrice"), 64)

	products, total, err := h.productUseCase.ListListings(c.Request().Context(), usecase.ListListingsInput{
		Category:    c.QueryParam("category"),
		ListingType: c.QueryParam("listingType"),
		Search:      c.QueryParam("search"),
		Condition:   c.QueryParam("condition"),
		Location:    c.QueryParam("location"),
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		Sort:        c.QueryParam("sort"),
		Limit:       params.PageSize,
		Offset:      params.Offset,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, params.Page, params.PageSize)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

type updateProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Condition   string  `json:"condition"`
	Location    string  `json:"location"`
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	product, err := h.productUseCase.UpdateListing(c.Request().Context(), userID, c.Param("id"), usecase.UpdateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Condition:   req.Condition,
		Location:    req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) ToggleActive(c echo.Context) error {
	userID := c.Get("uid").(string)

	product, err := h.productUseCase.ToggleActive(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) MarkSold(c echo.Context) error {
	userID := c.Get("uid").(string)

	product, err := h.productUseCase.MarkSold(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	userID := c.Get("uid").(string)
	principal := middleware.CurrentPrincipal(c)
	isAdmin := principal != nil && principal.IsAdmin

	if err := h.productUseCase.DeleteListing(c.Request().Context(), userID, c.Param("id"), isAdmin); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Listing deleted"})
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	userID := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListMyListings(c.Request().Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, params.Page, params.PageSize)
}

// readUploadFiles loads multipart files into memory, bounding each read at
// one byte over the validation limit so oversize files still fail validation
// without buffering their full payload.
func readUploadFiles(headers []*multipart.FileHeader) ([]usecase.UploadFile, error) {
	files := make([]usecase.UploadFile, 0, len(headers))
	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			return nil, errors.BadRequest("Unable to read uploaded file", err)
		}

		data, err := io.ReadAll(io.LimitReader(src, service.MaxImageSize+1))
		src.Close()
		if err != nil {
			return nil, errors.BadRequest("Unable to read uploaded file", err)
		}

		files = append(files, usecase.UploadFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

func readSingleUpload(headers []*multipart.FileHeader) (*usecase.UploadFile, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	files, err := readUploadFiles(headers[:1])
	if err != nil {
		return nil, err
	}
	return &files[0], nil
}

// optionalFormValue distinguishes an absent field from an empty one so
// partial updates only touch fields the client actually sent.
func optionalFormValue(form *multipart.Form, name string) *string {
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

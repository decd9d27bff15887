package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/internal/domain/service"
	"armabazar/internal/infrastructure/cache"
	"armabazar/pkg/errors"
	"armabazar/pkg/logger"
)

const (
	productCachePrefix  = "products:"
	statsCachePrefix    = "stats:"
	productUploadFolder = "products"
)

// citySlugs maps location filter slugs to the city names stored on listings.
var citySlugs = map[string]string{
	"praha":            "Praha",
	"brno":             "Brno",
	"ostrava":          "Ostrava",
	"plzen":            "Plzeň",
	"liberec":          "Liberec",
	"olomouc":          "Olomouc",
	"ceske-budejovice": "České Budějovice",
	"hradec-kralove":   "Hradec Králové",
	"usti-nad-labem":   "Ústí nad Labem",
	"pardubice":        "Pardubice",
	"zlin":             "Zlín",
}

type ProductUseCase struct {
	productRepo repository.ProductRepository
	fileService service.FileUploadService
	cache       cache.Cache
	cacheTTL    time.Duration
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	fileService service.FileUploadService,
	cache cache.Cache,
	cacheTTLSeconds int64,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		fileService: fileService,
		cache:       cache,
		cacheTTL:    time.Duration(cacheTTLSeconds) * time.Second,
	}
}

// UploadFile is an in-memory multipart file handed down from the handler.
type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CreateListingInput struct {
	Title          string
	Description    string
	Price          float64
	ListingType    string
	Category       string
	Subcategory    string
	Condition      string
	Location       string
	MainImageIndex int
}

func (uc *ProductUseCase) CreateListing(ctx context.Context, ownerID string, input CreateListingInput, files []UploadFile) (*entity.Product, error) {
	listingType := strings.ToUpper(strings.TrimSpace(input.ListingType))
	if !entity.ValidListingType(listingType) {
		return nil, errors.BadRequest("Listing type must be one of: nabizim, shanim", nil)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, errors.BadRequest("Description is required", nil)
	}
	if input.Price <= 0 {
		return nil, errors.BadRequest("Price must be greater than zero", nil)
	}
	if !entity.ValidCategory(input.Category) {
		return nil, errors.BadRequest("Invalid category", nil)
	}
	if !entity.ValidCondition(input.Condition) {
		return nil, errors.BadRequest("Invalid condition", nil)
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, errors.BadRequest("Location is required", nil)
	}
	if len(files) == 0 {
		return nil, errors.BadRequest("At least one image is required", nil)
	}
	if len(files) > service.MaxImagesPerEntry {
		return nil, errors.BadRequest(fmt.Sprintf("At most %d images are allowed", service.MaxImagesPerEntry), nil)
	}

	types := make([]string, len(files))
	for i, file := range files {
		fileType, err := service.ValidateImage(file.Filename, file.ContentType, file.Data)
		if err != nil {
			return nil, err
		}
		types[i] = fileType
	}

	mainIndex := input.MainImageIndex
	if mainIndex < 0 || mainIndex >= len(files) {
		mainIndex = 0
	}

	// Storage failures on individual files are tolerated as long as at least
	// one image persists.
	storedByIndex := make(map[int]string, len(files))
	var stored []string
	for i, file := range files {
		path, err := uc.fileService.UploadFile(ctx, bytes.NewReader(file.Data), types[i], productUploadFolder)
		if err != nil {
			logger.Warn("Failed to store image %s: %v", file.Filename, err)
			continue
		}
		storedByIndex[i] = path
		stored = append(stored, path)
	}
	if len(stored) == 0 {
		return nil, errors.Internal("Could not persist any image", nil)
	}

	mainImage, ok := storedByIndex[mainIndex]
	if !ok {
		mainImage = stored[0]
	}

	product := &entity.Product{
		UserID:      ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		ListingType: listingType,
		Category:    input.Category,
		Subcategory: strings.TrimSpace(input.Subcategory),
		Condition:   input.Condition,
		MainImage:   mainImage,
		Images:      stored,
		Location:    strings.TrimSpace(input.Location),
		IsActive:    true,
		IsSold:      false,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	uc.cache.InvalidateByPrefix(ctx, productCachePrefix)
	uc.cache.InvalidateByPrefix(ctx, statsCachePrefix)

	return product, nil
}

type ListListingsInput struct {
	Category    string
	ListingType string
	Search      string
	Condition   string
	Location    string
	MinPrice    float64
	MaxPrice    float64
	Sort        string
	Limit       int
	Offset      int
}

type listingPage struct {
	Products []*entity.Product `json:"products"`
	Total    int64             `json:"total"`
}

func (uc *ProductUseCase) ListListings(ctx context.Context, input ListListingsInput) ([]*entity.Product, int64, error) {
	location := input.Location
	if city, ok := citySlugs[strings.ToLower(location)]; ok {
		location = city
	}

	listingType := strings.ToUpper(strings.TrimSpace(input.ListingType))

	filter := repository.ProductFilter{
		Category:    input.Category,
		ListingType: listingType,
		Search:      input.Search,
		Condition:   input.Condition,
		Location:    location,
		MinPrice:    input.MinPrice,
		MaxPrice:    input.MaxPrice,
		Sort:        input.Sort,
		Limit:       input.Limit,
		Offset:      input.Offset,
	}

	key := listingCacheKey(filter)
	if cached, ok := uc.cache.Get(ctx, key); ok {
		var page listingPage
		if err := json.Unmarshal([]byte(cached), &page); err == nil {
			return page.Products, page.Total, nil
		}
		logger.Warn("Discarding malformed cache entry for key %s", key)
	}

	products, total, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if data, err := json.Marshal(listingPage{Products: products, Total: total}); err == nil {
		uc.cache.Set(ctx, key, string(data), uc.cacheTTL)
	}

	return products, total, nil
}

// listingCacheKey derives a stable key from the filter: parameters are sorted
// before concatenation so the same filter always hits the same entry whatever
// order the query string arrived in.
func listingCacheKey(filter repository.ProductFilter) string {
	params := []string{
		"category=" + filter.Category,
		"condition=" + filter.Condition,
		fmt.Sprintf("limit=%d", filter.Limit),
		"location=" + filter.Location,
		fmt.Sprintf("maxPrice=%g", filter.MaxPrice),
		fmt.Sprintf("minPrice=%g", filter.MinPrice),
		fmt.Sprintf("offset=%d", filter.Offset),
		"search=" + filter.Search,
		"sort=" + filter.Sort,
		"type=" + filter.ListingType,
	}
	sort.Strings(params)
	return productCachePrefix + "list:" + strings.Join(params, "&")
}

func (uc *ProductUseCase) GetListing(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Increment view counter (async)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = uc.productRepo.IncrementViews(ctx, id)
	}()

	return product, nil
}

type UpdateListingInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Subcategory string
	Condition   string
	Location    string
}

func (uc *ProductUseCase) UpdateListing(ctx context.Context, userID, id string, input UpdateListingInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.UserID != userID {
		return nil, errors.Forbidden("You don't have permission to update this listing", nil)
	}

	if strings.TrimSpace(input.Title) != "" {
		product.Title = strings.TrimSpace(input.Title)
	}
	if strings.TrimSpace(input.Description) != "" {
		product.Description = strings.TrimSpace(input.Description)
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.Category != "" {
		if !entity.ValidCategory(input.Category) {
			return nil, errors.BadRequest("Invalid category", nil)
		}
		product.Category = input.Category
	}
	if input.Condition != "" {
		if !entity.ValidCondition(input.Condition) {
			return nil, errors.BadRequest("Invalid condition", nil)
		}
		product.Condition = input.Condition
	}
	if input.Subcategory != "" {
		product.Subcategory = strings.TrimSpace(input.Subcategory)
	}
	if strings.TrimSpace(input.Location) != "" {
		product.Location = strings.TrimSpace(input.Location)
	}

	product.NormalizeMainImage()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	uc.cache.InvalidateByPrefix(ctx, productCachePrefix)

	return product, nil
}

func (uc *ProductUseCase) ToggleActive(ctx context.Context, userID, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.UserID != userID {
		return nil, errors.Forbidden("You don't have permission to update this listing", nil)
	}

	if err := uc.productRepo.SetActive(ctx, id, !product.IsActive); err != nil {
		return nil, err
	}
	product.IsActive = !product.IsActive

	uc.cache.InvalidateByPrefix(ctx, productCachePrefix)
	uc.cache.InvalidateByPrefix(ctx, statsCachePrefix)

	return product, nil
}

func (uc *ProductUseCase) MarkSold(ctx context.Context, userID, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.UserID != userID {
		return nil, errors.Forbidden("You don't have permission to update this listing", nil)
	}

	if err := uc.productRepo.SetSold(ctx, id, true); err != nil {
		return nil, err
	}
	product.IsSold = true

	uc.cache.InvalidateByPrefix(ctx, productCachePrefix)
	uc.cache.InvalidateByPrefix(ctx, statsCachePrefix)

	return product, nil
}

func (uc *ProductUseCase) DeleteListing(ctx context.Context, userID, id string, isAdmin bool) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if product.UserID != userID && !isAdmin {
		return errors.Forbidden("You don't have permission to delete this listing", nil)
	}

	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	for _, image := range product.Images {
		if err := uc.fileService.DeleteFile(ctx, image); err != nil {
			logger.Warn("Failed to delete image %s: %v", image, err)
		}
	}

	uc.cache.InvalidateByPrefix(ctx, productCachePrefix)
	uc.cache.InvalidateByPrefix(ctx, statsCachePrefix)

	return nil
}

func (uc *ProductUseCase) ListMyListings(ctx context.Context, userID string, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.ListByUser(ctx, userID, limit, offset)
}

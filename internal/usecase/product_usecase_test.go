package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/internal/infrastructure/cache"
	"armabazar/internal/mocks"
	"armabazar/pkg/errors"
)

func testUpload(name string) UploadFile {
	return UploadFile{
		Filename:    name,
		ContentType: "image/png",
		Data:        []byte("\x89PNG\r\n\x1a\nfake"),
	}
}

func validListingInput() CreateListingInput {
	return CreateListingInput{
		Title:       "AK-74 replika",
		Description: "Skoro nova, malo pouzivana",
		Price:       4500,
		ListingType: "nabizim",
		Category:    entity.CategoryAirsoftWeapons,
		Condition:   entity.ConditionNew,
		Location:    "Praha",
	}
}

func newProductUseCase(productRepo *mocks.ProductRepositoryMock, fileService *mocks.FileUploadServiceMock) *ProductUseCase {
	return NewProductUseCase(productRepo, fileService, cache.NewMemoryCache(), 60)
}

func TestCreateListingValidation(t *testing.T) {
	uc := newProductUseCase(new(mocks.ProductRepositoryMock), new(mocks.FileUploadServiceMock))
	files := []UploadFile{testUpload("a.png")}

	cases := []struct {
		name   string
		mutate func(*CreateListingInput)
	}{
		{"bad listing type", func(in *CreateListingInput) { in.ListingType = "SELLING" }},
		{"empty title", func(in *CreateListingInput) { in.Title = "  " }},
		{"zero price", func(in *CreateListingInput) { in.Price = 0 }},
		{"negative price", func(in *CreateListingInput) { in.Price = -10 }},
		{"bad category", func(in *CreateListingInput) { in.Category = "VEHICLES" }},
		{"bad condition", func(in *CreateListingInput) { in.Condition = "rusty" }},
		{"missing location", func(in *CreateListingInput) { in.Location = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validListingInput()
			tc.mutate(&input)

			_, err := uc.CreateListing(context.Background(), "u1", input, files)
			assert.True(t, errors.Is(err, "BAD_REQUEST"))
		})
	}
}

func TestCreateListingRequiresImages(t *testing.T) {
	uc := newProductUseCase(new(mocks.ProductRepositoryMock), new(mocks.FileUploadServiceMock))

	_, err := uc.CreateListing(context.Background(), "u1", validListingInput(), nil)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateListingAcceptsCustomCondition(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	fileService := new(mocks.FileUploadServiceMock)
	uc := newProductUseCase(productRepo, fileService)

	fileService.On("UploadFile", mock.Anything, mock.Anything, "image/png", "products").
		Return("/uploads/products/a.png", nil).Once()
	productRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil).Once()

	input := validListingInput()
	input.Condition = "custom-pro dily"

	product, err := uc.CreateListing(context.Background(), "u1", input, []UploadFile{testUpload("a.png")})

	require.NoError(t, err)
	assert.Equal(t, "custom-pro dily", product.Condition)
	productRepo.AssertExpectations(t)
}

func TestCreateListingMainImageSelection(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	fileService := new(mocks.FileUploadServiceMock)
	uc := newProductUseCase(productRepo, fileService)

	fileService.On("UploadFile", mock.Anything, mock.Anything, "image/png", "products").
		Return("/uploads/products/first.png", nil).Once()
	fileService.On("UploadFile", mock.Anything, mock.Anything, "image/png", "products").
		Return("/uploads/products/second.png", nil).Once()
	productRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil).Once()

	input := validListingInput()
	input.MainImageIndex = 1

	product, err := uc.CreateListing(context.Background(), "u1", input,
		[]UploadFile{testUpload("first.png"), testUpload("second.png")})

	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/second.png", product.MainImage)
	assert.Len(t, product.Images, 2)
}

func TestCreateListingMainImageIndexOutOfRangeFallsBack(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	fileService := new(mocks.FileUploadServiceMock)
	uc := newProductUseCase(productRepo, fileService)

	fileService.On("UploadFile", mock.Anything, mock.Anything, "image/png", "products").
		Return("/uploads/products/only.png", nil).Once()
	productRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil).Once()

	input := validListingInput()
	input.MainImageIndex = 7

	product, err := uc.CreateListing(context.Background(), "u1", input, []UploadFile{testUpload("only.png")})

	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/only.png", product.MainImage)
}

func TestCreateListingAllUploadsFailing(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	fileService := new(mocks.FileUploadServiceMock)
	uc := newProductUseCase(productRepo, fileService)

	fileService.On("UploadFile", mock.Anything, mock.Anything, "image/png", "products").
		Return("", assert.AnError)

	_, err := uc.CreateListing(context.Background(), "u1", validListingInput(), []UploadFile{testUpload("a.png")})

	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListListingsMapsCitySlug(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	uc := newProductUseCase(productRepo, new(mocks.FileUploadServiceMock))

	productRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.Location == "Praha" && f.ListingType == entity.ListingTypeOffering
	})).Return([]*entity.Product{}, 0, nil).Once()

	_, _, err := uc.ListListings(context.Background(), ListListingsInput{
		Location:    "praha",
		ListingType: "nabizim",
		Limit:       20,
	})

	require.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestListListingsServesSecondCallFromCache(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	uc := newProductUseCase(productRepo, new(mocks.FileUploadServiceMock))

	productRepo.On("List", mock.Anything, mock.Anything).
		Return([]*entity.Product{{ID: "p1", Title: "M4"}}, 1, nil).Once()

	input := ListListingsInput{Category: entity.CategoryAirsoftWeapons, Limit: 20}

	first, total, err := uc.ListListings(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	second, total, err := uc.ListListings(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, first[0].ID, second[0].ID)

	// The repo was hit exactly once; the second call came from cache.
	productRepo.AssertNumberOfCalls(t, "List", 1)
}

func TestUpdateListingOwnerOnly(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	uc := newProductUseCase(productRepo, new(mocks.FileUploadServiceMock))

	productRepo.On("GetByID", mock.Anything, "p1").
		Return(&entity.Product{ID: "p1", UserID: "owner"}, nil).Once()

	_, err := uc.UpdateListing(context.Background(), "intruder", "p1", UpdateListingInput{Title: "new"})

	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDeleteListingAdminOverride(t *testing.T) {
	productRepo := new(mocks.ProductRepositoryMock)
	fileService := new(mocks.FileUploadServiceMock)
	uc := newProductUseCase(productRepo, fileService)

	productRepo.On("GetByID", mock.Anything, "p1").
		Return(&entity.Product{ID: "p1", UserID: "owner", Images: []string{"/uploads/products/a.png"}}, nil).Once()
	productRepo.On("Delete", mock.Anything, "p1").Return(nil).Once()
	fileService.On("DeleteFile", mock.Anything, "/uploads/products/a.png").Return(nil).Once()

	require.NoError(t, uc.DeleteListing(context.Background(), "someadmin", "p1", true))
	productRepo.AssertExpectations(t)
}

package usecase

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/internal/domain/service"
	"armabazar/pkg/errors"
	"armabazar/pkg/logger"
)

const serviceUploadFolder = "services"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type ServiceUseCase struct {
	serviceRepo repository.ServiceRepository
	fileService service.FileUploadService
}

func NewServiceUseCase(
	serviceRepo repository.ServiceRepository,
	fileService service.FileUploadService,
) *ServiceUseCase {
	return &ServiceUseCase{
		serviceRepo: serviceRepo,
		fileService: fileService,
	}
}

type CreateServiceInput struct {
	Name         string
	Description  string
	Location     string
	ContactEmail string
	ContactPhone string
}

// CreateService registers a new directory entry. Services start inactive and
// stay out of the public listing until an admin approves them.
func (uc *ServiceUseCase) CreateService(ctx context.Context, ownerID string, input CreateServiceInput, mainImage *UploadFile, additionalImages []UploadFile) (*entity.Service, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.BadRequest("Name is required", nil)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, errors.BadRequest("Description is required", nil)
	}
	if !emailPattern.MatchString(input.ContactEmail) {
		return nil, errors.BadRequest("Contact email is invalid", nil)
	}
	if len(additionalImages) > service.MaxImagesPerEntry {
		return nil, errors.BadRequest(fmt.Sprintf("At most %d additional images are allowed", service.MaxImagesPerEntry), nil)
	}

	svc := &entity.Service{
		UserID:       ownerID,
		Name:         strings.TrimSpace(input.Name),
		Description:  strings.TrimSpace(input.Description),
		Location:     strings.TrimSpace(input.Location),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		ContactPhone: strings.TrimSpace(input.ContactPhone),
		IsActive:     false, // pending admin approval
	}

	if mainImage != nil {
		path, err := uc.storeImage(ctx, *mainImage)
		if err != nil {
			return nil, err
		}
		svc.Image = path
	}

	stored, err := uc.storeImages(ctx, additionalImages)
	if err != nil {
		return nil, err
	}
	svc.AdditionalImages = stored

	if err := uc.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

type UpdateServiceInput struct {
	Name         *string
	Description  *string
	Location     *string
	ContactEmail *string
	ContactPhone *string
	DeleteImages []string
	KeepImages   []string
}

// UpdateService applies partial-update semantics: fields absent from the form
// keep their current values. The deleteImages/keepImages lists are merged
// against the existing additional image set, and removed entries are deleted
// from storage.
func (uc *ServiceUseCase) UpdateService(ctx context.Context, userID, id string, input UpdateServiceInput, mainImage *UploadFile, additionalImages []UploadFile) (*entity.Service, error) {
	svc, err := uc.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if svc.UserID != userID {
		return nil, errors.Forbidden("You don't have permission to update this service", nil)
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		svc.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) != "" {
		svc.Description = strings.TrimSpace(*input.Description)
	}
	if input.Location != nil {
		svc.Location = strings.TrimSpace(*input.Location)
	}
	if input.ContactEmail != nil {
		if !emailPattern.MatchString(*input.ContactEmail) {
			return nil, errors.BadRequest("Contact email is invalid", nil)
		}
		svc.ContactEmail = strings.TrimSpace(*input.ContactEmail)
	}
	if input.ContactPhone != nil {
		svc.ContactPhone = strings.TrimSpace(*input.ContactPhone)
	}

	remaining := mergeImageLists(svc.AdditionalImages, input.DeleteImages, input.KeepImages)
	for _, image := range svc.AdditionalImages {
		if !contains(remaining, image) {
			if err := uc.fileService.DeleteFile(ctx, image); err != nil {
				logger.Warn("Failed to delete image %s: %v", image, err)
			}
		}
	}
	svc.AdditionalImages = remaining

	if len(additionalImages) > 0 {
		if len(svc.AdditionalImages)+len(additionalImages) > service.MaxImagesPerEntry {
			return nil, errors.BadRequest(fmt.Sprintf("At most %d additional images are allowed", service.MaxImagesPerEntry), nil)
		}
		stored, err := uc.storeImages(ctx, additionalImages)
		if err != nil {
			return nil, err
		}
		svc.AdditionalImages = append(svc.AdditionalImages, stored...)
	}

	if mainImage != nil {
		path, err := uc.storeImage(ctx, *mainImage)
		if err != nil {
			return nil, err
		}
		if svc.Image != "" {
			if err := uc.fileService.DeleteFile(ctx, svc.Image); err != nil {
				logger.Warn("Failed to delete image %s: %v", svc.Image, err)
			}
		}
		svc.Image = path
	}

	if err := uc.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

func (uc *ServiceUseCase) GetService(ctx context.Context, id string) (*entity.Service, error) {
	return uc.serviceRepo.GetByID(ctx, id)
}

func (uc *ServiceUseCase) ListServices(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Service, int64, error) {
	return uc.serviceRepo.List(ctx, onlyActive, limit, offset)
}

func (uc *ServiceUseCase) DeleteService(ctx context.Context, userID, id string, isAdmin bool) error {
	svc, err := uc.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if svc.UserID != userID && !isAdmin {
		return errors.Forbidden("You don't have permission to delete this service", nil)
	}

	if err := uc.serviceRepo.Delete(ctx, id); err != nil {
		return err
	}

	if svc.Image != "" {
		if err := uc.fileService.DeleteFile(ctx, svc.Image); err != nil {
			logger.Warn("Failed to delete image %s: %v", svc.Image, err)
		}
	}
	for _, image := range svc.AdditionalImages {
		if err := uc.fileService.DeleteFile(ctx, image); err != nil {
			logger.Warn("Failed to delete image %s: %v", image, err)
		}
	}

	return nil
}

type CreateReviewInput struct {
	RatingSpeed         int
	RatingQuality       int
	RatingCommunication int
	RatingPrice         int
	RatingOverall       int
	Comment             string
}

func (uc *ServiceUseCase) AddReview(ctx context.Context, userID, serviceID string, input CreateReviewInput, images []UploadFile) (*entity.ServiceReview, error) {
	for _, rating := range []int{input.RatingSpeed, input.RatingQuality, input.RatingCommunication, input.RatingPrice, input.RatingOverall} {
		if rating < 1 || rating > 5 {
			return nil, errors.BadRequest("Ratings must be between 1 and 5", nil)
		}
	}

	svc, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, errors.BadRequest("Service is not available for reviews", nil)
	}

	if _, err := uc.serviceRepo.FindReviewByUser(ctx, serviceID, userID); err == nil {
		return nil, errors.Conflict("You have already reviewed this service")
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	stored, err := uc.storeImages(ctx, images)
	if err != nil {
		return nil, err
	}

	review := &entity.ServiceReview{
		ServiceID:           serviceID,
		UserID:              userID,
		RatingSpeed:         input.RatingSpeed,
		RatingQuality:       input.RatingQuality,
		RatingCommunication: input.RatingCommunication,
		RatingPrice:         input.RatingPrice,
		RatingOverall:       input.RatingOverall,
		Comment:             strings.TrimSpace(input.Comment),
		Images:              stored,
	}

	if err := uc.serviceRepo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	if err := uc.recomputeRating(ctx, serviceID); err != nil {
		logger.Warn("Failed to recompute rating for service %s: %v", serviceID, err)
	}

	return review, nil
}

func (uc *ServiceUseCase) DeleteReview(ctx context.Context, userID, serviceID, reviewID string, isAdmin bool) error {
	review, err := uc.serviceRepo.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.ServiceID != serviceID {
		return errors.NotFound("Review", nil)
	}

	if review.UserID != userID && !isAdmin {
		return errors.Forbidden("You don't have permission to delete this review", nil)
	}

	if err := uc.serviceRepo.DeleteReview(ctx, reviewID); err != nil {
		return err
	}

	if err := uc.recomputeRating(ctx, serviceID); err != nil {
		logger.Warn("Failed to recompute rating for service %s: %v", serviceID, err)
	}

	return nil
}

func (uc *ServiceUseCase) ListReviews(ctx context.Context, serviceID string) ([]*entity.ServiceReview, error) {
	if _, err := uc.serviceRepo.GetByID(ctx, serviceID); err != nil {
		return nil, err
	}
	return uc.serviceRepo.ListReviews(ctx, serviceID)
}

// recomputeRating rederives the service aggregate from the full review set:
// rating is the mean of the overall ratings, nil when no reviews remain.
func (uc *ServiceUseCase) recomputeRating(ctx context.Context, serviceID string) error {
	reviews, err := uc.serviceRepo.ListReviews(ctx, serviceID)
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		return uc.serviceRepo.UpdateRating(ctx, serviceID, nil, 0)
	}

	var sum int
	for _, review := range reviews {
		sum += review.RatingOverall
	}
	rating := float64(sum) / float64(len(reviews))

	return uc.serviceRepo.UpdateRating(ctx, serviceID, &rating, len(reviews))
}

func (uc *ServiceUseCase) storeImage(ctx context.Context, file UploadFile) (string, error) {
	fileType, err := service.ValidateImage(file.Filename, file.ContentType, file.Data)
	if err != nil {
		return "", err
	}
	path, err := uc.fileService.UploadFile(ctx, bytes.NewReader(file.Data), fileType, serviceUploadFolder)
	if err != nil {
		return "", errors.Internal("Failed to store image", err)
	}
	return path, nil
}

func (uc *ServiceUseCase) storeImages(ctx context.Context, files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	types := make([]string, len(files))
	for i, file := range files {
		fileType, err := service.ValidateImage(file.Filename, file.ContentType, file.Data)
		if err != nil {
			return nil, err
		}
		types[i] = fileType
	}

	var stored []string
	for i, file := range files {
		path, err := uc.fileService.UploadFile(ctx, bytes.NewReader(file.Data), types[i], serviceUploadFolder)
		if err != nil {
			logger.Warn("Failed to store image %s: %v", file.Filename, err)
			continue
		}
		stored = append(stored, path)
	}
	if len(stored) == 0 && len(files) > 0 {
		return nil, errors.Internal("Could not persist any image", nil)
	}
	return stored, nil
}

// mergeImageLists resolves the retained additional images: an explicit keep
// list wins, otherwise the delete list is subtracted from the existing set.
func mergeImageLists(existing, deleteImages, keepImages []string) []string {
	if len(keepImages) > 0 {
		var kept []string
		for _, image := range existing {
			if contains(keepImages, image) && !contains(deleteImages, image) {
				kept = append(kept, image)
			}
		}
		return kept
	}

	var kept []string
	for _, image := range existing {
		if !contains(deleteImages, image) {
			kept = append(kept, image)
		}
	}
	return kept
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

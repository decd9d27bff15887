package repository

import (
	"context"

	"armabazar/internal/domain/entity"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Service, int64, error)
	SetActive(ctx context.Context, id string, active bool) error

	CreateReview(ctx context.Context, review *entity.ServiceReview) error
	GetReview(ctx context.Context, id string) (*entity.ServiceReview, error)
	FindReviewByUser(ctx context.Context, serviceID, userID string) (*entity.ServiceReview, error)
	ListReviews(ctx context.Context, serviceID string) ([]*entity.ServiceReview, error)
	DeleteReview(ctx context.Context, id string) error

	// UpdateRating stores the derived aggregate; rating is nil when the review
	// set is empty.
	UpdateRating(ctx context.Context, serviceID string, rating *float64, reviewCount int) error
}

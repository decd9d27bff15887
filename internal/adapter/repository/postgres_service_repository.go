package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/pkg/errors"
	"armabazar/pkg/utils"
)

type postgresServiceRepository struct {
	db *sqlx.DB
}

func NewPostgresServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &postgresServiceRepository{
		db: db,
	}
}

const serviceColumns = `id, user_id, name, description, location, contact_email, contact_phone,
    image, additional_images, rating, review_count, is_active, created_at, updated_at`

type serviceRow struct {
	entity.Service
	AdditionalImagesRaw string `db:"additional_images"`
}

func (row *serviceRow) toEntity() *entity.Service {
	service := row.Service
	service.AdditionalImages = parseImageList(row.AdditionalImagesRaw)
	return &service
}

const reviewColumns = `id, service_id, user_id, rating_speed, rating_quality, rating_communication,
    rating_price, rating_overall, comment, images, created_at, updated_at`

type reviewRow struct {
	entity.ServiceReview
	ImagesRaw string `db:"images"`
}

func (row *reviewRow) toEntity() *entity.ServiceReview {
	review := row.ServiceReview
	review.Images = parseImageList(row.ImagesRaw)
	return &review
}

func (r *postgresServiceRepository) Create(ctx context.Context, service *entity.Service) error {
	if service.ID == "" {
		service.ID = utils.GenerateID()
	}

	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO services (id, user_id, name, description, location, contact_email, contact_phone,
             image, additional_images, rating, review_count, is_active, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		service.ID, service.UserID, service.Name, service.Description, service.Location,
		service.ContactEmail, service.ContactPhone, service.Image,
		encodeImageList(service.AdditionalImages), service.Rating, service.ReviewCount,
		service.IsActive, service.CreatedAt, service.UpdatedAt)
	if err != nil {
		return errors.Internal("Failed to create service", err)
	}
	return nil
}

func (r *postgresServiceRepository) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	var row serviceRow
	err := r.db.GetContext(ctx, &row,
		fmt.Sprintf(`SELECT %s FROM services WHERE id = $1`, serviceColumns), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("Service", err)
		}
		return nil, errors.Internal("Failed to get service", err)
	}
	return row.toEntity(), nil
}

func (r *postgresServiceRepository) Update(ctx context.Context, service *entity.Service) error {
	service.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx,
		`UPDATE services
         SET name = $2, description = $3, location = $4, contact_email = $5, contact_phone = $6,
             image = $7, additional_images = $8, updated_at = $9
         WHERE id = $1`,
		service.ID, service.Name, service.Description, service.Location, service.ContactEmail,
		service.ContactPhone, service.Image, encodeImageList(service.AdditionalImages), service.UpdatedAt)
	if err != nil {
		return errors.Internal("Failed to update service", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("Service", nil)
	}
	return nil
}

func (r *postgresServiceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return errors.Internal("Failed to delete service", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("Service", nil)
	}
	return nil
}

func (r *postgresServiceRepository) List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Service, int64, error) {
	where := ""
	if onlyActive {
		where = " WHERE is_active = TRUE"
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM services"+where); err != nil {
		return nil, 0, errors.Internal("Failed to count services", err)
	}

	rows, err := r.db.QueryxContext(ctx,
		fmt.Sprintf("SELECT %s FROM services%s ORDER BY created_at DESC LIMIT $1 OFFSET $2", serviceColumns, where),
		limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list services", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		var row serviceRow
		if err := rows.StructScan(&row); err != nil {
			return nil, 0, errors.Internal("Failed to scan service", err)
		}
		services = append(services, row.toEntity())
	}

	return services, total, rows.Err()
}

func (r *postgresServiceRepository) SetActive(ctx context.Context, id string, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE services SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return errors.Internal("Failed to update service", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("Service", nil)
	}
	return nil
}

func (r *postgresServiceRepository) CreateReview(ctx context.Context, review *entity.ServiceReview) error {
	if review.ID == "" {
		review.ID = utils.GenerateID()
	}

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO service_reviews (id, service_id, user_id, rating_speed, rating_quality,
             rating_communication, rating_price, rating_overall, comment, images, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		review.ID, review.ServiceID, review.UserID, review.RatingSpeed, review.RatingQuality,
		review.RatingCommunication, review.RatingPrice, review.RatingOverall, review.Comment,
		encodeImageList(review.Images), review.CreatedAt, review.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("Review already exists")
		}
		return errors.Internal("Failed to create review", err)
	}
	return nil
}

func (r *postgresServiceRepository) GetReview(ctx context.Context, id string) (*entity.ServiceReview, error) {
	var row reviewRow
	err := r.db.GetContext(ctx, &row,
		fmt.Sprintf(`SELECT %s FROM service_reviews WHERE id = $1`, reviewColumns), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("Review", err)
		}
		return nil, errors.Internal("Failed to get review", err)
	}
	return row.toEntity(), nil
}

func (r *postgresServiceRepository) FindReviewByUser(ctx context.Context, serviceID, userID string) (*entity.ServiceReview, error) {
	var row reviewRow
	err := r.db.GetContext(ctx, &row,
		fmt.Sprintf(`SELECT %s FROM service_reviews WHERE service_id = $1 AND user_id = $2`, reviewColumns),
		serviceID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("Review", err)
		}
		return nil, errors.Internal("Failed to find review", err)
	}
	return row.toEntity(), nil
}

func (r *postgresServiceRepository) ListReviews(ctx context.Context, serviceID string) ([]*entity.ServiceReview, error) {
	rows, err := r.db.QueryxContext(ctx,
		fmt.Sprintf(`SELECT %s FROM service_reviews WHERE service_id = $1 ORDER BY created_at DESC`, reviewColumns),
		serviceID)
	if err != nil {
		return nil, errors.Internal("Failed to list reviews", err)
	}
	defer rows.Close()

	var reviews []*entity.ServiceReview
	for rows.Next() {
		var row reviewRow
		if err := rows.StructScan(&row); err != nil {
			return nil, errors.Internal("Failed to scan review", err)
		}
		reviews = append(reviews, row.toEntity())
	}

	return reviews, rows.Err()
}

func (r *postgresServiceRepository) DeleteReview(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM service_reviews WHERE id = $1`, id)
	if err != nil {
		return errors.Internal("Failed to delete review", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("Review", nil)
	}
	return nil
}

func (r *postgresServiceRepository) UpdateRating(ctx context.Context, serviceID string, rating *float64, reviewCount int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE services SET rating = $2, review_count = $3, updated_at = NOW() WHERE id = $1`,
		serviceID, rating, reviewCount)
	if err != nil {
		return errors.Internal("Failed to update service rating", err)
	}
	return nil
}

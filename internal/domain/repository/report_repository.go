package repository

import (
	"context"

	"armabazar/internal/domain/entity"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Report, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/pkg/errors"
	"armabazar/pkg/utils"
)

type postgresReportRepository struct {
	db *sqlx.DB
}

func NewPostgresReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &postgresReportRepository{
		db: db,
	}
}

const reportColumns = `id, type, title, description, email, url, status, user_id, created_at, updated_at`

func (r *postgresReportRepository) Create(ctx context.Context, report *entity.Report) error {
	if report.ID == "" {
		report.ID = utils.GenerateID()
	}
	if report.Status == "" {
		report.Status = entity.ReportStatusPending
	}

	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (id, type, title, description, email, url, status, user_id, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		report.ID, report.Type, report.Title, report.Description, report.Email, report.URL,
		report.Status, report.UserID, report.CreatedAt, report.UpdatedAt)
	if err != nil {
		return errors.Internal("Failed to create report", err)
	}
	return nil
}

func (r *postgresReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	var report entity.Report
	err := r.db.GetContext(ctx, &report, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("Report", err)
		}
		return nil, errors.Internal("Failed to get report", err)
	}
	return &report, nil
}

func (r *postgresReportRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.Report, int64, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = " WHERE status = $1"
		args = append(args, status)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM reports"+where, args...); err != nil {
		return nil, 0, errors.Internal("Failed to count reports", err)
	}

	query := "SELECT " + reportColumns + " FROM reports" + where + " ORDER BY created_at DESC"
	if status != "" {
		query += " LIMIT $2 OFFSET $3"
	} else {
		query += " LIMIT $1 OFFSET $2"
	}
	args = append(args, limit, offset)

	var reports []*entity.Report
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, 0, errors.Internal("Failed to list reports", err)
	}

	return reports, total, nil
}

func (r *postgresReportRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reports SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return errors.Internal("Failed to update report", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("Report", nil)
	}
	return nil
}

func (r *postgresReportRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return errors.Internal("Failed to delete report", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("Report", nil)
	}
	return nil
}

func (r *postgresReportRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM reports WHERE status = $1`, status); err != nil {
		return 0, errors.Internal("Failed to count reports", err)
	}
	return total, nil
}

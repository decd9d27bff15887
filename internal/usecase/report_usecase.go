package usecase

import (
	"context"
	"strings"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/pkg/errors"
)

type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{
		reportRepo: reportRepo,
	}
}

type CreateReportInput struct {
	Type        string
	Title       string
	Description string
	Email       string
	URL         string
}

// CreateReport records a user-submitted issue. userID is nil for anonymous
// submissions.
func (uc *ReportUseCase) CreateReport(ctx context.Context, userID *string, input CreateReportInput) (*entity.Report, error) {
	reportType := strings.ToUpper(strings.TrimSpace(input.Type))
	if !entity.ValidReportType(reportType) {
		return nil, errors.BadRequest("Report type must be one of: BUG, FEATURE, SECURITY, OTHER", nil)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, errors.BadRequest("Description is required", nil)
	}

	report := &entity.Report{
		Type:        reportType,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Email:       strings.TrimSpace(input.Email),
		URL:         strings.TrimSpace(input.URL),
		Status:      entity.ReportStatusPending,
		UserID:      userID,
	}

	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (uc *ReportUseCase) ListReports(ctx context.Context, status string, limit, offset int) ([]*entity.Report, int64, error) {
	if status != "" && !entity.ValidReportStatus(status) {
		return nil, 0, errors.BadRequest("Invalid report status", nil)
	}
	return uc.reportRepo.List(ctx, status, limit, offset)
}

// UpdateStatus moves a report to any status; transitions are unordered.
func (uc *ReportUseCase) UpdateStatus(ctx context.Context, id, status string) (*entity.Report, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !entity.ValidReportStatus(status) {
		return nil, errors.BadRequest("Invalid report status", nil)
	}

	report, err := uc.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.reportRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	report.Status = status

	return report, nil
}

func (uc *ReportUseCase) DeleteReport(ctx context.Context, id string) error {
	if _, err := uc.reportRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.reportRepo.Delete(ctx, id)
}

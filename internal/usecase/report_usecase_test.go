package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"armabazar/internal/domain/entity"
	"armabazar/internal/mocks"
	"armabazar/pkg/errors"
)

func TestCreateReportAnonymous(t *testing.T) {
	reportRepo := new(mocks.ReportRepositoryMock)
	uc := NewReportUseCase(reportRepo)

	reportRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.Report) bool {
		return r.UserID == nil && r.Status == entity.ReportStatusPending && r.Type == entity.ReportTypeBug
	})).Return(nil).Once()

	report, err := uc.CreateReport(context.Background(), nil, CreateReportInput{
		Type:        "bug",
		Title:       "Broken image upload",
		Description: "Upload fails for webp files",
	})

	require.NoError(t, err)
	assert.Nil(t, report.UserID)
	assert.Equal(t, entity.ReportStatusPending, report.Status)
	reportRepo.AssertExpectations(t)
}

func TestCreateReportInvalidType(t *testing.T) {
	uc := NewReportUseCase(new(mocks.ReportRepositoryMock))

	_, err := uc.CreateReport(context.Background(), nil, CreateReportInput{
		Type:        "complaint",
		Title:       "t",
		Description: "d",
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateReportAttachesReporter(t *testing.T) {
	reportRepo := new(mocks.ReportRepositoryMock)
	uc := NewReportUseCase(reportRepo)

	userID := "u1"
	reportRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.Report) bool {
		return r.UserID != nil && *r.UserID == "u1"
	})).Return(nil).Once()

	_, err := uc.CreateReport(context.Background(), &userID, CreateReportInput{
		Type:        "SECURITY",
		Title:       "XSS in listing title",
		Description: "Script tags are rendered",
	})

	require.NoError(t, err)
	reportRepo.AssertExpectations(t)
}

func TestUpdateStatusAnyTransition(t *testing.T) {
	reportRepo := new(mocks.ReportRepositoryMock)
	uc := NewReportUseCase(reportRepo)

	// Status moves freely in both directions.
	reportRepo.On("GetByID", mock.Anything, "r1").
		Return(&entity.Report{ID: "r1", Status: entity.ReportStatusResolved}, nil).Once()
	reportRepo.On("UpdateStatus", mock.Anything, "r1", entity.ReportStatusPending).Return(nil).Once()

	report, err := uc.UpdateStatus(context.Background(), "r1", entity.ReportStatusPending)

	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusPending, report.Status)
	reportRepo.AssertExpectations(t)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	uc := NewReportUseCase(new(mocks.ReportRepositoryMock))

	_, err := uc.UpdateStatus(context.Background(), "r1", "ARCHIVED")

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestListReportsValidatesStatusFilter(t *testing.T) {
	uc := NewReportUseCase(new(mocks.ReportRepositoryMock))

	_, _, err := uc.ListReports(context.Background(), "NONSENSE", 20, 0)

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

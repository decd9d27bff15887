package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/internal/domain/service"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	var user *entity.User
	if val := args.Get(0); val != nil {
		user = val.(*entity.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	var users []*entity.User
	if val := args.Get(0); val != nil {
		users = val.([]*entity.User)
	}
	return users, int64(args.Int(1)), args.Error(2)
}

func (m *UserRepositoryMock) SetBanned(ctx context.Context, id string, banned bool) error {
	args := m.Called(ctx, id, banned)
	return args.Error(0)
}

func (m *UserRepositoryMock) SetAdmin(ctx context.Context, id string, admin bool) error {
	args := m.Called(ctx, id, admin)
	return args.Error(0)
}

func (m *UserRepositoryMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return int64(args.Int(0)), args.Error(1)
}

type ProductRepositoryMock struct {
	mock.Mock
}

func (m *ProductRepositoryMock) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepositoryMock) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	var product *entity.Product
	if val := args.Get(0); val != nil {
		product = val.(*entity.Product)
	}
	return product, args.Error(1)
}

func (m *ProductRepositoryMock) Update(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepositoryMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepositoryMock) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	args := m.Called(ctx, filter)
	var products []*entity.Product
	if val := args.Get(0); val != nil {
		products = val.([]*entity.Product)
	}
	return products, int64(args.Int(1)), args.Error(2)
}

func (m *ProductRepositoryMock) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Product, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	var products []*entity.Product
	if val := args.Get(0); val != nil {
		products = val.([]*entity.Product)
	}
	return products, int64(args.Int(1)), args.Error(2)
}

func (m *ProductRepositoryMock) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepositoryMock) SetActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *ProductRepositoryMock) SetSold(ctx context.Context, id string, sold bool) error {
	args := m.Called(ctx, id, sold)
	return args.Error(0)
}

func (m *ProductRepositoryMock) Count(ctx context.Context, onlyActive bool) (int64, error) {
	args := m.Called(ctx, onlyActive)
	return int64(args.Int(0)), args.Error(1)
}

type ConversationRepositoryMock struct {
	mock.Mock
}

func (m *ConversationRepositoryMock) Create(ctx context.Context, conversation *entity.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}

func (m *ConversationRepositoryMock) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	args := m.Called(ctx, id)
	var conversation *entity.Conversation
	if val := args.Get(0); val != nil {
		conversation = val.(*entity.Conversation)
	}
	return conversation, args.Error(1)
}

func (m *ConversationRepositoryMock) FindByProductAndParticipants(ctx context.Context, productID, participant1ID, participant2ID string) (*entity.Conversation, error) {
	args := m.Called(ctx, productID, participant1ID, participant2ID)
	var conversation *entity.Conversation
	if val := args.Get(0); val != nil {
		conversation = val.(*entity.Conversation)
	}
	return conversation, args.Error(1)
}

func (m *ConversationRepositoryMock) ListByUser(ctx context.Context, userID string) ([]*entity.ConversationSummary, error) {
	args := m.Called(ctx, userID)
	var summaries []*entity.ConversationSummary
	if val := args.Get(0); val != nil {
		summaries = val.([]*entity.ConversationSummary)
	}
	return summaries, args.Error(1)
}

func (m *ConversationRepositoryMock) ListAll(ctx context.Context, limit, offset int) ([]*entity.Conversation, int64, error) {
	args := m.Called(ctx, limit, offset)
	var conversations []*entity.Conversation
	if val := args.Get(0); val != nil {
		conversations = val.([]*entity.Conversation)
	}
	return conversations, int64(args.Int(1)), args.Error(2)
}

func (m *ConversationRepositoryMock) Close(ctx context.Context, id, closedByID, reason string, closedAt time.Time) error {
	args := m.Called(ctx, id, closedByID, reason, closedAt)
	return args.Error(0)
}

func (m *ConversationRepositoryMock) HideFor(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *ConversationRepositoryMock) CreateMessage(ctx context.Context, message *entity.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *ConversationRepositoryMock) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	args := m.Called(ctx, conversationID, limit, offset)
	var messages []*entity.Message
	if val := args.Get(0); val != nil {
		messages = val.([]*entity.Message)
	}
	return messages, int64(args.Int(1)), args.Error(2)
}

func (m *ConversationRepositoryMock) Touch(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type ServiceRepositoryMock struct {
	mock.Mock
}

func (m *ServiceRepositoryMock) Create(ctx context.Context, svc *entity.Service) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}

func (m *ServiceRepositoryMock) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	args := m.Called(ctx, id)
	var svc *entity.Service
	if val := args.Get(0); val != nil {
		svc = val.(*entity.Service)
	}
	return svc, args.Error(1)
}

func (m *ServiceRepositoryMock) Update(ctx context.Context, svc *entity.Service) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}

func (m *ServiceRepositoryMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ServiceRepositoryMock) List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Service, int64, error) {
	args := m.Called(ctx, onlyActive, limit, offset)
	var services []*entity.Service
	if val := args.Get(0); val != nil {
		services = val.([]*entity.Service)
	}
	return services, int64(args.Int(1)), args.Error(2)
}

func (m *ServiceRepositoryMock) SetActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *ServiceRepositoryMock) CreateReview(ctx context.Context, review *entity.ServiceReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ServiceRepositoryMock) GetReview(ctx context.Context, id string) (*entity.ServiceReview, error) {
	args := m.Called(ctx, id)
	var review *entity.ServiceReview
	if val := args.Get(0); val != nil {
		review = val.(*entity.ServiceReview)
	}
	return review, args.Error(1)
}

func (m *ServiceRepositoryMock) FindReviewByUser(ctx context.Context, serviceID, userID string) (*entity.ServiceReview, error) {
	args := m.Called(ctx, serviceID, userID)
	var review *entity.ServiceReview
	if val := args.Get(0); val != nil {
		review = val.(*entity.ServiceReview)
	}
	return review, args.Error(1)
}

func (m *ServiceRepositoryMock) ListReviews(ctx context.Context, serviceID string) ([]*entity.ServiceReview, error) {
	args := m.Called(ctx, serviceID)
	var reviews []*entity.ServiceReview
	if val := args.Get(0); val != nil {
		reviews = val.([]*entity.ServiceReview)
	}
	return reviews, args.Error(1)
}

func (m *ServiceRepositoryMock) DeleteReview(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ServiceRepositoryMock) UpdateRating(ctx context.Context, serviceID string, rating *float64, reviewCount int) error {
	args := m.Called(ctx, serviceID, rating, reviewCount)
	return args.Error(0)
}

type ReportRepositoryMock struct {
	mock.Mock
}

func (m *ReportRepositoryMock) Create(ctx context.Context, report *entity.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *ReportRepositoryMock) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	args := m.Called(ctx, id)
	var report *entity.Report
	if val := args.Get(0); val != nil {
		report = val.(*entity.Report)
	}
	return report, args.Error(1)
}

func (m *ReportRepositoryMock) List(ctx context.Context, status string, limit, offset int) ([]*entity.Report, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	var reports []*entity.Report
	if val := args.Get(0); val != nil {
		reports = val.([]*entity.Report)
	}
	return reports, int64(args.Int(1)), args.Error(2)
}

func (m *ReportRepositoryMock) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *ReportRepositoryMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ReportRepositoryMock) CountByStatus(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return int64(args.Int(0)), args.Error(1)
}

type FileUploadServiceMock struct {
	mock.Mock
}

func (m *FileUploadServiceMock) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	args := m.Called(ctx, file, fileType, folder)
	return args.String(0), args.Error(1)
}

func (m *FileUploadServiceMock) DeleteFile(ctx context.Context, fileURL string) error {
	args := m.Called(ctx, fileURL)
	return args.Error(0)
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)
var _ repository.ProductRepository = (*ProductRepositoryMock)(nil)
var _ repository.ConversationRepository = (*ConversationRepositoryMock)(nil)
var _ repository.ServiceRepository = (*ServiceRepositoryMock)(nil)
var _ repository.ReportRepository = (*ReportRepositoryMock)(nil)
var _ service.FileUploadService = (*FileUploadServiceMock)(nil)

package usecase

import (
	"context"
	"encoding/json"
	"time"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/internal/infrastructure/cache"
)

// Stats aggregate four COUNT queries, so they are cached briefly; listing
// and user mutations invalidate the prefix to keep the dashboard honest.
const statsCacheTTL = time.Minute

// AdminUseCase backs the moderation dashboard. Authorization is enforced by
// the admin middleware; every mutation here is a single row update.
type AdminUseCase struct {
	userRepo         repository.UserRepository
	productRepo      repository.ProductRepository
	serviceRepo      repository.ServiceRepository
	reportRepo       repository.ReportRepository
	conversationRepo repository.ConversationRepository
	cache            cache.Cache
}

func NewAdminUseCase(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	reportRepo repository.ReportRepository,
	conversationRepo repository.ConversationRepository,
	cache cache.Cache,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:         userRepo,
		productRepo:      productRepo,
		serviceRepo:      serviceRepo,
		reportRepo:       reportRepo,
		conversationRepo: conversationRepo,
		cache:            cache,
	}
}

type DashboardStats struct {
	TotalUsers     int64 `json:"totalUsers"`
	ActiveProducts int64 `json:"activeProducts"`
	TotalProducts  int64 `json:"totalProducts"`
	PendingReports int64 `json:"pendingReports"`
}

func (uc *AdminUseCase) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	key := statsCachePrefix + "dashboard"
	if cached, ok := uc.cache.Get(ctx, key); ok {
		var stats DashboardStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	totalUsers, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeProducts, err := uc.productRepo.Count(ctx, true)
	if err != nil {
		return nil, err
	}
	totalProducts, err := uc.productRepo.Count(ctx, false)
	if err != nil {
		return nil, err
	}
	pendingReports, err := uc.reportRepo.CountByStatus(ctx, entity.ReportStatusPending)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalUsers:     totalUsers,
		ActiveProducts: activeProducts,
		TotalProducts:  totalProducts,
		PendingReports: pendingReports,
	}

	if data, err := json.Marshal(stats); err == nil {
		uc.cache.Set(ctx, key, string(data), statsCacheTTL)
	}

	return stats, nil
}

func (uc *AdminUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	return uc.userRepo.List(ctx, limit, offset)
}

func (uc *AdminUseCase) ToggleUserBan(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.SetBanned(ctx, userID, !user.Banned); err != nil {
		return nil, err
	}
	user.Banned = !user.Banned

	return user, nil
}

func (uc *AdminUseCase) ToggleUserAdmin(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.SetAdmin(ctx, userID, !user.Admin); err != nil {
		return nil, err
	}
	user.Admin = !user.Admin

	return user, nil
}

func (uc *AdminUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(ctx, repository.ProductFilter{
		IncludeInactive: true,
		Limit:           limit,
		Offset:          offset,
	})
}

func (uc *AdminUseCase) ToggleProductActive(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := uc.productRepo.SetActive(ctx, productID, !product.IsActive); err != nil {
		return nil, err
	}
	product.IsActive = !product.IsActive

	uc.cache.InvalidateByPrefix(ctx, productCachePrefix)
	uc.cache.InvalidateByPrefix(ctx, statsCachePrefix)

	return product, nil
}

func (uc *AdminUseCase) ListServices(ctx context.Context, limit, offset int) ([]*entity.Service, int64, error) {
	return uc.serviceRepo.List(ctx, false, limit, offset)
}

// SetServiceApproval flips the service visibility gate: approval makes it
// publicly listed, rejection takes it back out.
func (uc *AdminUseCase) SetServiceApproval(ctx context.Context, serviceID string, approved bool) (*entity.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if err := uc.serviceRepo.SetActive(ctx, serviceID, approved); err != nil {
		return nil, err
	}
	service.IsActive = approved

	return service, nil
}

func (uc *AdminUseCase) ListConversations(ctx context.Context, limit, offset int) ([]*entity.Conversation, int64, error) {
	return uc.conversationRepo.ListAll(ctx, limit, offset)
}

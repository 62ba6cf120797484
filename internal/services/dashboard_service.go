package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmejia/opsledger-api/internal/models"
	"github.com/dmejia/opsledger-api/internal/repository"
)

const (
	dashboardCacheKey = "dashboard_stats"
	dashboardCacheTTL = 15 * time.Minute
	recentLimit       = 10
)

// DashboardService computes the aggregate dashboard view. Read-only over the
// ledger and operational tables; results are cached with a short TTL.
type DashboardService struct {
	cacheRepo     repository.DashboardRepository
	txnRepo       repository.TransactionRepository
	bookingRepo   repository.BookingRepository
	workOrderRepo repository.WorkOrderRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	cacheRepo repository.DashboardRepository,
	txnRepo repository.TransactionRepository,
	bookingRepo repository.BookingRepository,
	workOrderRepo repository.WorkOrderRepository,
) *DashboardService {
	return &DashboardService{
		cacheRepo:     cacheRepo,
		txnRepo:       txnRepo,
		bookingRepo:   bookingRepo,
		workOrderRepo: workOrderRepo,
	}
}

// GetStats returns the dashboard aggregates, served from cache when fresh
func (s *DashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	cached, err := s.cacheRepo.GetCache(ctx, dashboardCacheKey)
	if err == nil && cached != nil {
		var stats models.DashboardStats
		if err := json.Unmarshal(cached.Data, &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	_ = s.cacheRepo.SetCache(ctx, dashboardCacheKey, stats, dashboardCacheTTL)

	return stats, nil
}

// InvalidateCache drops the cached dashboard so the next read recomputes
func (s *DashboardService) InvalidateCache(ctx context.Context) error {
	return s.cacheRepo.InvalidateCache(ctx, dashboardCacheKey)
}

// CleanExpiredCache removes stale cache rows; run from the background worker
func (s *DashboardService) CleanExpiredCache(ctx context.Context) error {
	return s.cacheRepo.CleanExpiredCache(ctx)
}

func (s *DashboardService) computeStats(ctx context.Context) (*models.DashboardStats, error) {
	// Paid totals. Pending rows never contribute to income, expense or profit.
	incomePaid, err := s.txnRepo.SumByTypeAndStatus(ctx, models.TransactionTypeIncome, models.TransactionStatusPaid)
	if err != nil {
		return nil, err
	}
	expensePaid, err := s.txnRepo.SumByTypeAndStatus(ctx, models.TransactionTypeExpense, models.TransactionStatusPaid)
	if err != nil {
		return nil, err
	}

	pendingIncome, err := s.txnRepo.CountByTypeAndStatus(ctx, models.TransactionTypeIncome, models.TransactionStatusPending)
	if err != nil {
		return nil, err
	}
	pendingExpense, err := s.txnRepo.CountByTypeAndStatus(ctx, models.TransactionTypeExpense, models.TransactionStatusPending)
	if err != nil {
		return nil, err
	}

	recent, err := s.txnRepo.FindRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	recentResponses := make([]models.TransactionResponse, 0, len(recent))
	for i := range recent {
		recentResponses = append(recentResponses, recent[i].ToResponse())
	}

	bookingCounts, err := s.bookingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	workOrderCounts, err := s.workOrderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	nextOrder, err := s.workOrderRepo.FindNextDue(ctx)
	if err != nil {
		return nil, err
	}
	var nextResponse *models.WorkOrderResponse
	if nextOrder != nil {
		resp := nextOrder.ToResponse()
		nextResponse = &resp
	}

	return &models.DashboardStats{
		IncomePaid:      incomePaid,
		ExpensePaid:     expensePaid,
		Profit:          incomePaid - expensePaid,
		PendingIncome:   pendingIncome,
		PendingExpense:  pendingExpense,
		Recent:          recentResponses,
		BookingCounts:   bookingCounts,
		WorkOrderCounts: workOrderCounts,
		NextWorkOrder:   nextResponse,
		GeneratedAt:     time.Now(),
	}, nil
}

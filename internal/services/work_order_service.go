package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"github.com/dmejia/opsledger-api/internal/models"
	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/storage"
)

// WorkOrderService manages work orders, including batch creation from a
// booking (one order per selected type, all-or-nothing).
type WorkOrderService struct {
	repo         repository.WorkOrderRepository
	customerRepo repository.CustomerRepository
	bookingRepo  repository.BookingRepository
	catalogRepo  repository.CatalogRepository
	storage      *storage.LocalStorage
}

// NewWorkOrderService creates a new work order service
func NewWorkOrderService(
	repo repository.WorkOrderRepository,
	customerRepo repository.CustomerRepository,
	bookingRepo repository.BookingRepository,
	catalogRepo repository.CatalogRepository,
	store *storage.LocalStorage,
) *WorkOrderService {
	return &WorkOrderService{
		repo:         repo,
		customerRepo: customerRepo,
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		storage:      store,
	}
}

// WorkOrderCommonFields are shared by every order created in one batch
type WorkOrderCommonFields struct {
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	// PriceOverride, when non-nil, replaces the catalog base price
	PriceOverride *float64 `json:"price_override"`
}

// CreateBatch creates one work order per selected type. Prices default to
// each type's catalog base price unless overridden. The batch commits in one
// database transaction: a failure anywhere persists nothing.
func (s *WorkOrderService) CreateBatch(ctx context.Context, customerID uint, bookingID *uint, typeIDs []uint, common WorkOrderCommonFields) ([]models.WorkOrder, error) {
	if len(typeIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one work order type must be selected", ErrEmptySelection)
	}

	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, customerID)
		}
		return nil, err
	}
	if bookingID != nil {
		booking, err := s.bookingRepo.FindByID(ctx, *bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: booking %d", ErrNotFound, *bookingID)
			}
			return nil, err
		}
		if booking.CustomerID != customerID {
			return nil, fmt.Errorf("%w: booking %d does not belong to customer %d", ErrValidation, *bookingID, customerID)
		}
	}

	status := common.Status
	if status == "" {
		status = models.WorkOrderStatusNew
	}
	if !models.ValidWorkOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown work order status %q", ErrValidation, common.Status)
	}
	priority := common.Priority
	if priority == "" {
		priority = models.WorkOrderPriorityMedium
	}
	if !models.ValidWorkOrderPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, common.Priority)
	}
	if common.PriceOverride != nil && *common.PriceOverride < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	types, err := s.catalogRepo.FindWorkOrderTypes(ctx, typeIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.WorkOrderType, len(types))
	for _, t := range types {
		byID[t.ID] = t
	}

	orders := make([]models.WorkOrder, 0, len(typeIDs))
	for _, typeID := range typeIDs {
		woType, ok := byID[typeID]
		if !ok {
			return nil, fmt.Errorf("%w: work order type %d", ErrNotFound, typeID)
		}

		price := woType.BasePrice
		if common.PriceOverride != nil {
			price = *common.PriceOverride
		}

		orders = append(orders, models.WorkOrder{
			CustomerID:      customerID,
			BookingID:       bookingID,
			WorkOrderTypeID: typeID,
			Description:     common.Description,
			Price:           price,
			DueDate:         common.DueDate,
			Status:          status,
			Priority:        priority,
		})
	}

	created, err := s.repo.CreateBatch(ctx, orders)
	if err != nil {
		return nil, fmt.Errorf("failed to create work orders: %w", err)
	}
	return created, nil
}

// Get returns a work order with customer and type loaded
func (s *WorkOrderService) Get(ctx context.Context, id uint) (*models.WorkOrder, error) {
	order, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// WorkOrderUpdateInput carries updatable work order fields
type WorkOrderUpdateInput struct {
	Description *string    `json:"description"`
	Price       *float64   `json:"price"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
}

// Update updates a work order's mutable fields
func (s *WorkOrderService) Update(ctx context.Context, id uint, input WorkOrderUpdateInput) (*models.WorkOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != "" {
		if !models.ValidWorkOrderStatus(input.Status) {
			return nil, fmt.Errorf("%w: unknown work order status %q", ErrValidation, input.Status)
		}
		order.Status = input.Status
	}
	if input.Priority != "" {
		if !models.ValidWorkOrderPriority(input.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, input.Priority)
		}
		order.Priority = input.Priority
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		order.Price = *input.Price
	}
	if input.Description != nil {
		order.Description = input.Description
	}
	if input.DueDate != nil {
		order.DueDate = input.DueDate
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update work order: %w", err)
	}
	return order, nil
}

// AttachFile stores an uploaded file and records its path on the work order
func (s *WorkOrderService) AttachFile(ctx context.Context, id uint, file multipart.File, header *multipart.FileHeader) (*models.WorkOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := s.storage.Upload(file, header, "work_orders")
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	// Replace a previous attachment best-effort
	if order.HasAttachment() {
		_ = s.storage.Delete(*order.AttachmentPath)
	}

	order.AttachmentPath = &path
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update work order: %w", err)
	}
	return order, nil
}

// Delete removes a work order and its attachment file
func (s *WorkOrderService) Delete(ctx context.Context, id uint) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if order.HasAttachment() {
		_ = s.storage.Delete(*order.AttachmentPath)
	}
	return nil
}

// List returns work orders matching the query
func (s *WorkOrderService) List(ctx context.Context, query *repository.ListQuery) ([]models.WorkOrder, int64, error) {
	return s.repo.List(ctx, query)
}

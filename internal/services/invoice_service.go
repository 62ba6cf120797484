package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dmejia/opsledger-api/internal/models"
	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/statemachine"
)

// InvoiceService assembles invoices from work orders and settles them. The
// invoice total is recomputed from its items after every mutation; a stored
// total is never trusted.
type InvoiceService struct {
	repo          repository.InvoiceRepository
	customerRepo  repository.CustomerRepository
	workOrderRepo repository.WorkOrderRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(repo repository.InvoiceRepository, customerRepo repository.CustomerRepository, workOrderRepo repository.WorkOrderRepository) *InvoiceService {
	return &InvoiceService{
		repo:          repo,
		customerRepo:  customerRepo,
		workOrderRepo: workOrderRepo,
	}
}

// Create assembles a draft invoice from the selected work orders: one line
// item per order (type name, order price, quantity 1). The selection must be
// non-empty, every order must exist and every order must belong to the
// customer; any violation fails the whole operation.
func (s *InvoiceService) Create(ctx context.Context, customerID uint, bookingID *uint, workOrderIDs []uint) (*models.Invoice, error) {
	if len(workOrderIDs) == 0 {
		return nil, fmt.Errorf("%w: an invoice needs at least one work order", ErrEmptySelection)
	}

	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, customerID)
		}
		return nil, err
	}

	orders, err := s.workOrderRepo.FindByIDs(ctx, workOrderIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.WorkOrder, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	invoice := &models.Invoice{
		CustomerID: customerID,
		BookingID:  bookingID,
		Status:     models.InvoiceStatusDraft,
	}

	for _, id := range workOrderIDs {
		order, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: work order %d", ErrNotFound, id)
		}
		if order.CustomerID != customerID {
			return nil, fmt.Errorf("%w: work order %d does not belong to customer %d", ErrValidation, id, customerID)
		}

		description := order.WorkOrderType.Name
		if description == "" {
			description = "Work Order"
		}
		invoice.Items = append(invoice.Items, models.InvoiceItem{
			Description: description,
			Price:       order.Price,
			Quantity:    1,
		})
	}
	invoice.Total = invoice.ComputeTotal()

	if err := s.repo.CreateWithItems(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return invoice, nil
}

// Get returns an invoice with customer and items loaded
func (s *InvoiceService) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	invoice, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return invoice, nil
}

// InvoiceItemInput carries validated line item fields
type InvoiceItemInput struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func (in InvoiceItemInput) validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: item description is required", ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: item price must not be negative", ErrValidation)
	}
	if in.Quantity < 1 {
		return fmt.Errorf("%w: item quantity must be at least 1", ErrValidation)
	}
	return nil
}

// AddItem appends a line item and persists the recomputed total atomically
func (s *InvoiceService) AddItem(ctx context.Context, invoiceID uint, input InvoiceItemInput) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil, fmt.Errorf("%w: paid invoices are read-only", ErrInvalidState)
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	item := &models.InvoiceItem{
		InvoiceID:   invoice.ID,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Quantity:    input.Quantity,
	}
	invoice.Items = append(invoice.Items, *item)
	invoice.Total = invoice.ComputeTotal()

	if err := s.repo.SaveItemAndTotal(ctx, invoice, item); err != nil {
		return nil, fmt.Errorf("failed to add invoice item: %w", err)
	}
	return s.Get(ctx, invoiceID)
}

// UpdateItem mutates a line item and persists the recomputed total atomically
func (s *InvoiceService) UpdateItem(ctx context.Context, invoiceID, itemID uint, input InvoiceItemInput) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil, fmt.Errorf("%w: paid invoices are read-only", ErrInvalidState)
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	var item *models.InvoiceItem
	for i := range invoice.Items {
		if invoice.Items[i].ID == itemID {
			item = &invoice.Items[i]
			break
		}
	}
	if item == nil {
		return nil, fmt.Errorf("%w: invoice item %d", ErrNotFound, itemID)
	}

	item.Description = strings.TrimSpace(input.Description)
	item.Price = input.Price
	item.Quantity = input.Quantity
	invoice.Total = invoice.ComputeTotal()

	if err := s.repo.SaveItemAndTotal(ctx, invoice, item); err != nil {
		return nil, fmt.Errorf("failed to update invoice item: %w", err)
	}
	return s.Get(ctx, invoiceID)
}

// RemoveItem deletes a line item and persists the recomputed total atomically
func (s *InvoiceService) RemoveItem(ctx context.Context, invoiceID, itemID uint) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil, fmt.Errorf("%w: paid invoices are read-only", ErrInvalidState)
	}

	found := false
	remaining := invoice.Items[:0]
	for _, it := range invoice.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		remaining = append(remaining, it)
	}
	if !found {
		return nil, fmt.Errorf("%w: invoice item %d", ErrNotFound, itemID)
	}
	invoice.Items = remaining
	invoice.Total = invoice.ComputeTotal()

	if err := s.repo.DeleteItemAndTotal(ctx, invoice, itemID); err != nil {
		return nil, fmt.Errorf("failed to remove invoice item: %w", err)
	}
	return s.Get(ctx, invoiceID)
}

// MarkPaid settles a draft invoice: the status flip and the single derived
// income transaction commit together. A second call fails with
// ErrInvalidState and logs nothing.
func (s *InvoiceService) MarkPaid(ctx context.Context, id uint) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	invoiceFSM := statemachine.NewInvoiceFSM(invoice)
	if err := invoiceFSM.MarkPaid(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidState, err.Error())
	}

	income := &models.Transaction{
		Type:        models.TransactionTypeIncome,
		Category:    models.TransactionCategoryInvoice,
		Party:       strPtr(invoice.Customer.Name),
		Description: strPtr(fmt.Sprintf("Invoice #%d", invoice.ID)),
		Amount:      invoice.Total,
		Status:      models.TransactionStatusPaid,
		Date:        time.Now(),
	}

	if err := s.repo.MarkPaidWithIncome(ctx, invoice, income); err != nil {
		return nil, fmt.Errorf("failed to settle invoice: %w", err)
	}
	return invoice, nil
}

// Delete removes an invoice and its items; settlement transactions remain
func (s *InvoiceService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// List returns invoices matching the query
func (s *InvoiceService) List(ctx context.Context, query *repository.ListQuery) ([]models.Invoice, int64, error) {
	return s.repo.List(ctx, query)
}

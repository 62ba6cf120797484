package repository

import (
	"context"

	"github.com/dmejia/opsledger-api/internal/models"

	"gorm.io/gorm"
)

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Invoice, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.Invoice, error)
	CreateWithItems(ctx context.Context, invoice *models.Invoice) error
	SaveItemAndTotal(ctx context.Context, invoice *models.Invoice, item *models.InvoiceItem) error
	DeleteItemAndTotal(ctx context.Context, invoice *models.Invoice, itemID uint) error
	MarkPaidWithIncome(ctx context.Context, invoice *models.Invoice, income *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Invoice, int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Joins("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// CreateWithItems persists the invoice and its items in one database
// transaction; gorm inserts the association rows alongside the parent.
func (r *invoiceRepository) CreateWithItems(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(invoice).Error
	})
}

// SaveItemAndTotal writes an item mutation and the recomputed invoice total
// in the same transaction so the total invariant holds at commit.
func (r *invoiceRepository) SaveItemAndTotal(ctx context.Context, invoice *models.Invoice, item *models.InvoiceItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return tx.Model(&models.Invoice{}).
			Where("id = ?", invoice.ID).
			Update("total", invoice.Total).Error
	})
}

// DeleteItemAndTotal removes an item and persists the recomputed total
// atomically.
func (r *invoiceRepository) DeleteItemAndTotal(ctx context.Context, invoice *models.Invoice, itemID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).
			Delete(&models.InvoiceItem{}, itemID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Invoice{}).
			Where("id = ?", invoice.ID).
			Update("total", invoice.Total).Error
	})
}

// MarkPaidWithIncome flips the invoice status and appends the settlement
// income transaction in one database transaction.
func (r *invoiceRepository) MarkPaidWithIncome(ctx context.Context, invoice *models.Invoice, income *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Invoice{}).
			Where("id = ?", invoice.ID).
			Update("status", invoice.Status).Error; err != nil {
			return err
		}
		return tx.Create(income).Error
	})
}

// Delete removes the invoice and its exclusively-owned items. Transactions
// logged at settlement are untouched.
func (r *invoiceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, id).Error
	})
}

func (r *invoiceRepository) List(ctx context.Context, query *ListQuery) ([]models.Invoice, int64, error) {
	var invoices []models.Invoice
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Invoice{})

	if status := query.Filters["status"]; status == models.InvoiceStatusDraft || status == models.InvoiceStatusPaid {
		db = db.Where("status = ?", status)
	}
	if customerID := query.Filters["customer_id"]; customerID != "" {
		db = db.Where("customer_id = ?", customerID)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Customer").
		Preload("Items").
		Order("created_at DESC, id DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&invoices).Error
	return invoices, total, err
}

package repository

import (
	"context"

	"github.com/dmejia/opsledger-api/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository defines the interface for ledger transaction data access
type TransactionRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	Create(ctx context.Context, txn *models.Transaction) error
	Update(ctx context.Context, txn *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Transaction, int64, error)
	FindRecent(ctx context.Context, limit int) ([]models.Transaction, error)
	SumByTypeAndStatus(ctx context.Context, txnType, status string) (float64, error)
	CountByTypeAndStatus(ctx context.Context, txnType, status string) (int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.WithContext(ctx).First(&txn, id).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) Update(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Save(txn).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error
}

func (r *transactionRepository) List(ctx context.Context, query *ListQuery) ([]models.Transaction, int64, error) {
	var txns []models.Transaction
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Transaction{})

	// Enumerated filters are AND-ed together
	if txnType := query.Filters["type"]; models.ValidTransactionType(txnType) {
		db = db.Where("type = ?", txnType)
	}
	if status := query.Filters["status"]; models.ValidTransactionStatus(status) {
		db = db.Where("status = ?", status)
	}
	if val := query.Filters["start_date"]; val != "" {
		db = db.Where("date >= ?", val)
	}
	if val := query.Filters["end_date"]; val != "" {
		db = db.Where("date <= ?", val)
	}

	// Free-text search ORs across the text columns, case-insensitively
	if search := query.Search; search != "" {
		term := "%" + search + "%"
		db = db.Where(
			"LOWER(category) LIKE LOWER(?) OR LOWER(COALESCE(description, '')) LIKE LOWER(?) OR LOWER(COALESCE(party, '')) LIKE LOWER(?)",
			term, term, term,
		)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("date DESC, id DESC")
	// PerPage <= 0 disables pagination; exports read the full filtered set
	if query.PerPage > 0 {
		db = db.Offset(query.Offset()).Limit(query.PerPage)
	}
	err := db.Find(&txns).Error
	return txns, total, err
}

// FindRecent returns the most recent transactions ordered by date with id as
// the deterministic tie-break.
func (r *transactionRepository) FindRecent(ctx context.Context, limit int) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.WithContext(ctx).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&txns).Error
	return txns, err
}

// SumByTypeAndStatus sums amounts for a type/status pair, zero when no rows.
func (r *transactionRepository) SumByTypeAndStatus(ctx context.Context, txnType, status string) (float64, error) {
	var result struct {
		Total float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("type = ? AND status = ?", txnType, status).
		Scan(&result).Error
	return result.Total, err
}

func (r *transactionRepository) CountByTypeAndStatus(ctx context.Context, txnType, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("type = ? AND status = ?", txnType, status).
		Count(&count).Error
	return count, err
}

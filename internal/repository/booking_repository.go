package repository

import (
	"context"

	"github.com/dmejia/opsledger-api/internal/models"

	"gorm.io/gorm"
)

// BookingRepository defines the interface for booking data access
type BookingRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.Booking, error)
	CreateWithIncome(ctx context.Context, booking *models.Booking, income *models.Transaction) error
	UpdateWithIncome(ctx context.Context, booking *models.Booking, income *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Booking, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Joins("Customer").
		Joins("BookingType").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CreateWithIncome persists the booking and, when income is non-nil, the
// derived income transaction in a single database transaction. A failure in
// either write rolls back both.
func (r *bookingRepository) CreateWithIncome(ctx context.Context, booking *models.Booking, income *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		if income != nil {
			return tx.Create(income).Error
		}
		return nil
	})
}

// UpdateWithIncome saves the booking and, when income is non-nil, appends the
// derived income transaction atomically.
func (r *bookingRepository) UpdateWithIncome(ctx context.Context, booking *models.Booking, income *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(booking).Error; err != nil {
			return err
		}
		if income != nil {
			return tx.Create(income).Error
		}
		return nil
	})
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

func (r *bookingRepository) List(ctx context.Context, query *ListQuery) ([]models.Booking, int64, error) {
	var bookings []models.Booking
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Booking{})

	if status := query.Filters["payment_status"]; status != "" && models.ValidBookingPaymentStatus(status) {
		db = db.Where("payment_status = ?", status)
	}
	if customerID := query.Filters["customer_id"]; customerID != "" {
		db = db.Where("customer_id = ?", customerID)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Customer").
		Preload("BookingType").
		Order("event_date DESC, id DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&bookings).Error
	return bookings, total, err
}

// CountByStatus returns booking counts grouped by payment status. Statuses
// with no rows are reported as zero.
func (r *bookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		PaymentStatus string
		Count         int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("payment_status, COUNT(id) as count").
		Group("payment_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{
		models.BookingPaymentPending: 0,
		models.BookingPaymentPartial: 0,
		models.BookingPaymentPaid:    0,
	}
	for _, row := range rows {
		counts[row.PaymentStatus] = row.Count
	}
	return counts, nil
}

package seed

import (
	"context"
	"errors"

	"github.com/dmejia/opsledger-api/internal/models"

	"gorm.io/gorm"
)

// EnsureDefaultCatalogs inserts the starter booking, work order, and job
// types a fresh install needs. Safe to run on every startup: each catalog
// is seeded only while its table is empty, so existing entries (including
// user edits to the base prices) are never touched.
func EnsureDefaultCatalogs(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureBookingTypes(ctx, tx); err != nil {
			return err
		}
		if err := ensureWorkOrderTypes(ctx, tx); err != nil {
			return err
		}
		return ensureJobTypes(ctx, tx)
	})
}

func ensureBookingTypes(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.BookingType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.BookingType{
		{Name: "Consultation", BasePrice: 75},
		{Name: "Standard Service", BasePrice: 150},
		{Name: "Full-Day Event", BasePrice: 600},
		{Name: "Recurring Contract", BasePrice: 250},
	}
	return tx.WithContext(ctx).Create(&defaults).Error
}

func ensureWorkOrderTypes(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.WorkOrderType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.WorkOrderType{
		{Name: "Site Visit", BasePrice: 50},
		{Name: "Installation", BasePrice: 200},
		{Name: "Repair", BasePrice: 120},
		{Name: "Maintenance", BasePrice: 90},
		{Name: "Inspection", BasePrice: 60},
	}
	return tx.WithContext(ctx).Create(&defaults).Error
}

func ensureJobTypes(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.JobType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.JobType{
		{Name: "General Labor", BasePrice: 40},
		{Name: "Skilled Trade", BasePrice: 85},
		{Name: "Supervision", BasePrice: 110},
	}
	return tx.WithContext(ctx).Create(&defaults).Error
}

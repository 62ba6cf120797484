package repository

import (
	"context"

	"github.com/dmejia/opsledger-api/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository defines the interface for the reference catalogs
// (booking types, work order types, job types)
type CatalogRepository interface {
	ListBookingTypes(ctx context.Context) ([]models.BookingType, error)
	FindBookingType(ctx context.Context, id uint) (*models.BookingType, error)
	CreateBookingType(ctx context.Context, bt *models.BookingType) error

	ListWorkOrderTypes(ctx context.Context) ([]models.WorkOrderType, error)
	FindWorkOrderType(ctx context.Context, id uint) (*models.WorkOrderType, error)
	FindWorkOrderTypes(ctx context.Context, ids []uint) ([]models.WorkOrderType, error)
	CreateWorkOrderType(ctx context.Context, wt *models.WorkOrderType) error

	ListJobTypes(ctx context.Context) ([]models.JobType, error)
	CreateJobType(ctx context.Context, jt *models.JobType) error
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListBookingTypes(ctx context.Context) ([]models.BookingType, error) {
	var types []models.BookingType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *catalogRepository) FindBookingType(ctx context.Context, id uint) (*models.BookingType, error) {
	var bt models.BookingType
	err := r.db.WithContext(ctx).First(&bt, id).Error
	if err != nil {
		return nil, err
	}
	return &bt, nil
}

func (r *catalogRepository) CreateBookingType(ctx context.Context, bt *models.BookingType) error {
	return r.db.WithContext(ctx).Create(bt).Error
}

func (r *catalogRepository) ListWorkOrderTypes(ctx context.Context) ([]models.WorkOrderType, error) {
	var types []models.WorkOrderType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *catalogRepository) FindWorkOrderType(ctx context.Context, id uint) (*models.WorkOrderType, error) {
	var wt models.WorkOrderType
	err := r.db.WithContext(ctx).First(&wt, id).Error
	if err != nil {
		return nil, err
	}
	return &wt, nil
}

func (r *catalogRepository) FindWorkOrderTypes(ctx context.Context, ids []uint) ([]models.WorkOrderType, error) {
	var types []models.WorkOrderType
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&types).Error
	return types, err
}

func (r *catalogRepository) CreateWorkOrderType(ctx context.Context, wt *models.WorkOrderType) error {
	return r.db.WithContext(ctx).Create(wt).Error
}

func (r *catalogRepository) ListJobTypes(ctx context.Context) ([]models.JobType, error) {
	var types []models.JobType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *catalogRepository) CreateJobType(ctx context.Context, jt *models.JobType) error {
	return r.db.WithContext(ctx).Create(jt).Error
}

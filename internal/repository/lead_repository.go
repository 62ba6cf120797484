package repository

import (
	"context"

	"github.com/dmejia/opsledger-api/internal/models"

	"gorm.io/gorm"
)

// LeadRepository defines the interface for lead data access
type LeadRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) error
	Update(ctx context.Context, lead *models.Lead) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Lead, int64, error)
	ConvertToCustomer(ctx context.Context, lead *models.Lead, customer *models.Customer) error
}

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) FindByID(ctx context.Context, id uint) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.WithContext(ctx).First(&lead, id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) Create(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *leadRepository) Update(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *leadRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Lead{}, id).Error
}

// ConvertToCustomer persists the lead's status flip and the new customer in
// one database transaction so neither survives without the other.
func (r *leadRepository) ConvertToCustomer(ctx context.Context, lead *models.Lead, customer *models.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(customer).Error; err != nil {
			return err
		}
		return tx.Save(lead).Error
	})
}

func (r *leadRepository) List(ctx context.Context, query *ListQuery) ([]models.Lead, int64, error) {
	var leads []models.Lead
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Lead{})

	if status := query.Filters["status"]; status != "" && models.ValidLeadStatus(status) {
		db = db.Where("status = ?", status)
	}
	if leadType := query.Filters["lead_type"]; leadType == models.LeadTypeBusiness || leadType == models.LeadTypePersonal {
		db = db.Where("lead_type = ?", leadType)
	}

	// Free-text search ORs across the lead's text columns
	if search := query.Search; search != "" {
		term := "%" + search + "%"
		db = db.Where(
			"LOWER(contact_name) LIKE LOWER(?) OR LOWER(COALESCE(email, '')) LIKE LOWER(?) OR "+
				"LOWER(COALESCE(phone, '')) LIKE LOWER(?) OR LOWER(COALESCE(notes, '')) LIKE LOWER(?)",
			term, term, term, term,
		)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("contact_name ASC, id ASC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&leads).Error
	return leads, total, err
}

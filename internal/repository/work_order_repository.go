package repository

import (
	"context"

	"github.com/dmejia/opsledger-api/internal/models"

	"gorm.io/gorm"
)

// WorkOrderRepository defines the interface for work order data access
type WorkOrderRepository interface {
	FindByID(ctx context.Context, id uint) (*models.WorkOrder, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.WorkOrder, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.WorkOrder, error)
	Create(ctx context.Context, order *models.WorkOrder) error
	CreateBatch(ctx context.Context, orders []models.WorkOrder) ([]models.WorkOrder, error)
	Update(ctx context.Context, order *models.WorkOrder) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.WorkOrder, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	FindNextDue(ctx context.Context) (*models.WorkOrder, error)
}

type workOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a new work order repository
func NewWorkOrderRepository(db *gorm.DB) WorkOrderRepository {
	return &workOrderRepository{db: db}
}

func (r *workOrderRepository) FindByID(ctx context.Context, id uint) (*models.WorkOrder, error) {
	var order models.WorkOrder
	err := r.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *workOrderRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.WorkOrder, error) {
	var order models.WorkOrder
	err := r.db.WithContext(ctx).
		Joins("Customer").
		Joins("WorkOrderType").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *workOrderRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.WorkOrder, error) {
	var orders []models.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("WorkOrderType").
		Where("id IN ?", ids).
		Find(&orders).Error
	return orders, err
}

func (r *workOrderRepository) Create(ctx context.Context, order *models.WorkOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// CreateBatch inserts all orders in one database transaction. If any insert
// fails, none are persisted.
func (r *workOrderRepository) CreateBatch(ctx context.Context, orders []models.WorkOrder) ([]models.WorkOrder, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range orders {
			if err := tx.Create(&orders[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *workOrderRepository) Update(ctx context.Context, order *models.WorkOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *workOrderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.WorkOrder{}, id).Error
}

func (r *workOrderRepository) List(ctx context.Context, query *ListQuery) ([]models.WorkOrder, int64, error) {
	var orders []models.WorkOrder
	var total int64

	db := r.db.WithContext(ctx).Model(&models.WorkOrder{})

	if status := query.Filters["status"]; status != "" && models.ValidWorkOrderStatus(status) {
		db = db.Where("work_orders.status = ?", status)
	}
	if priority := query.Filters["priority"]; priority != "" && models.ValidWorkOrderPriority(priority) {
		db = db.Where("work_orders.priority = ?", priority)
	}
	if customerID := query.Filters["customer_id"]; customerID != "" {
		db = db.Where("work_orders.customer_id = ?", customerID)
	}

	if search := query.Search; search != "" {
		term := "%" + search + "%"
		db = db.Joins("JOIN work_order_types ON work_order_types.id = work_orders.work_order_type_id").
			Where(
				"LOWER(COALESCE(work_orders.description, '')) LIKE LOWER(?) OR LOWER(work_order_types.name) LIKE LOWER(?)",
				term, term,
			)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Orders without a due date sort last
	err := db.Preload("Customer").
		Preload("WorkOrderType").
		Order("work_orders.due_date IS NULL, work_orders.due_date ASC, work_orders.id ASC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&orders).Error
	return orders, total, err
}

// CountByStatus returns work order counts grouped by status. Statuses with
// no rows are reported as zero.
func (r *workOrderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.WorkOrder{}).
		Select("status, COUNT(id) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{
		models.WorkOrderStatusNew:        0,
		models.WorkOrderStatusInProgress: 0,
		models.WorkOrderStatusClosed:     0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// FindNextDue returns the open work order with the nearest non-null due date,
// or nil when none exists.
func (r *workOrderRepository) FindNextDue(ctx context.Context) (*models.WorkOrder, error) {
	var order models.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("WorkOrderType").
		Where("due_date IS NOT NULL AND status <> ?", models.WorkOrderStatusClosed).
		Order("due_date ASC, id ASC").
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

package models

import (
	"encoding/json"
	"time"
)

// DashboardStats is the aggregate view rendered on the dashboard.
// Every field is zero-valued when the underlying tables are empty.
type DashboardStats struct {
	IncomePaid      float64               `json:"income_paid"`
	ExpensePaid     float64               `json:"expense_paid"`
	Profit          float64               `json:"profit"`
	PendingIncome   int64                 `json:"pending_income"`
	PendingExpense  int64                 `json:"pending_expense"`
	Recent          []TransactionResponse `json:"recent_transactions"`
	BookingCounts   map[string]int64      `json:"booking_counts"`
	WorkOrderCounts map[string]int64      `json:"work_order_counts"`
	NextWorkOrder   *WorkOrderResponse    `json:"next_work_order"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// DashboardCache stores a serialized DashboardStats with a TTL. Expired rows
// are cleaned by a background job.
type DashboardCache struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CacheKey  string          `gorm:"not null;uniqueIndex" json:"cache_key"`
	Data      json.RawMessage `gorm:"type:jsonb;not null" json:"data"`
	ExpiresAt time.Time       `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name for DashboardCache
func (DashboardCache) TableName() string {
	return "dashboard_caches"
}

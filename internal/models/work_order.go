package models

import (
	"time"
)

// WorkOrder is a unit of billable work for a customer, optionally spawned
// from a booking. Price defaults to the work-order type's catalog base price
// unless an explicit override is given.
type WorkOrder struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CustomerID      uint       `gorm:"not null;index" json:"customer_id"`
	BookingID       *uint      `gorm:"index" json:"booking_id"`
	WorkOrderTypeID uint       `gorm:"not null;index" json:"work_order_type_id"`
	Description     *string    `gorm:"type:text" json:"description"`
	Price           float64    `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	DueDate         *time.Time `gorm:"type:date;index" json:"due_date"`
	Status          string     `gorm:"not null;default:New;index" json:"status"`
	Priority        string     `gorm:"not null;default:Medium" json:"priority"`
	AttachmentPath  *string    `json:"-"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Associations
	Customer      Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Booking       *Booking      `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	WorkOrderType WorkOrderType `gorm:"foreignKey:WorkOrderTypeID" json:"work_order_type,omitempty"`
}

// TableName specifies the table name for WorkOrder
func (WorkOrder) TableName() string {
	return "work_orders"
}

// Work order status constants
const (
	WorkOrderStatusNew        = "New"
	WorkOrderStatusInProgress = "In Progress"
	WorkOrderStatusClosed     = "Closed"
)

// Work order priority constants
const (
	WorkOrderPriorityLow    = "Low"
	WorkOrderPriorityMedium = "Medium"
	WorkOrderPriorityHigh   = "High"
)

// ValidWorkOrderStatus reports whether s is an allowed work order status.
func ValidWorkOrderStatus(s string) bool {
	switch s {
	case WorkOrderStatusNew, WorkOrderStatusInProgress, WorkOrderStatusClosed:
		return true
	}
	return false
}

// ValidWorkOrderPriority reports whether p is an allowed priority.
func ValidWorkOrderPriority(p string) bool {
	switch p {
	case WorkOrderPriorityLow, WorkOrderPriorityMedium, WorkOrderPriorityHigh:
		return true
	}
	return false
}

// HasAttachment returns true if a file is attached to the work order
func (w *WorkOrder) HasAttachment() bool {
	return w.AttachmentPath != nil && *w.AttachmentPath != ""
}

// WorkOrderResponse is the JSON response format for work orders
type WorkOrderResponse struct {
	ID            uint       `json:"id"`
	CustomerID    uint       `json:"customer_id"`
	CustomerName  string     `json:"customer_name,omitempty"`
	BookingID     *uint      `json:"booking_id"`
	TypeID        uint       `json:"work_order_type_id"`
	TypeName      string     `json:"work_order_type,omitempty"`
	Description   *string    `json:"description"`
	Price         float64    `json:"price"`
	DueDate       *time.Time `json:"due_date"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	HasAttachment bool       `json:"has_attachment"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToResponse converts WorkOrder to WorkOrderResponse
func (w *WorkOrder) ToResponse() WorkOrderResponse {
	resp := WorkOrderResponse{
		ID:            w.ID,
		CustomerID:    w.CustomerID,
		BookingID:     w.BookingID,
		TypeID:        w.WorkOrderTypeID,
		Description:   w.Description,
		Price:         w.Price,
		DueDate:       w.DueDate,
		Status:        w.Status,
		Priority:      w.Priority,
		HasAttachment: w.HasAttachment(),
		CreatedAt:     w.CreatedAt,
	}
	if w.Customer.ID != 0 {
		resp.CustomerName = w.Customer.Name
	}
	if w.WorkOrderType.ID != 0 {
		resp.TypeName = w.WorkOrderType.Name
	}
	return resp
}

package models

import (
	"time"
)

// Customer is a billable client. Bookings, work orders and invoices reference
// it; deleting a customer cascades to those records but never to the
// transactions they produced.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Bookings   []Booking   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
	WorkOrders []WorkOrder `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"work_orders,omitempty"`
	Invoices   []Invoice   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"invoices,omitempty"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

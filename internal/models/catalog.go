package models

import (
	"time"
)

// Reference catalogs: small seeded lookup tables. A catalog already holding
// rows is never reseeded.

// BookingType is a catalog entry describing a kind of booking
type BookingType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	BasePrice float64   `gorm:"type:decimal(10,2);not null;default:0" json:"base_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for BookingType
func (BookingType) TableName() string {
	return "booking_types"
}

// WorkOrderType is a catalog entry describing a kind of billable work
type WorkOrderType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	BasePrice float64   `gorm:"type:decimal(10,2);not null;default:0" json:"base_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for WorkOrderType
func (WorkOrderType) TableName() string {
	return "work_order_types"
}

// JobType is a catalog entry describing an engagement model
type JobType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	BasePrice float64   `gorm:"type:decimal(10,2);not null;default:0" json:"base_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for JobType
func (JobType) TableName() string {
	return "job_types"
}

package models

import (
	"time"
)

// Booking is a scheduled customer engagement with an expected payment.
// Creating or updating a booking into Paid or Partial logs a derived income
// transaction in the same database transaction as the booking write.
type Booking struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CustomerID     uint       `gorm:"not null;index" json:"customer_id"`
	BookingTypeID  uint       `gorm:"not null;index" json:"booking_type_id"`
	EventDate      time.Time  `gorm:"type:date;not null;index" json:"event_date"`
	EndDate        *time.Time `gorm:"type:date" json:"end_date"`
	ExpectedIncome float64    `gorm:"type:decimal(10,2);not null;default:0" json:"expected_income"`
	PaymentStatus  string     `gorm:"not null;default:Pending;index" json:"payment_status"`
	PartialAmount  float64    `gorm:"type:decimal(10,2);not null;default:0" json:"partial_amount"`
	Notes          *string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Associations
	Customer    Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	BookingType BookingType `gorm:"foreignKey:BookingTypeID" json:"booking_type,omitempty"`
}

// TableName specifies the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// Booking payment status constants
const (
	BookingPaymentPending = "Pending"
	BookingPaymentPartial = "Partial"
	BookingPaymentPaid    = "Paid"
)

// ValidBookingPaymentStatus reports whether s is an allowed payment status.
func ValidBookingPaymentStatus(s string) bool {
	switch s {
	case BookingPaymentPending, BookingPaymentPartial, BookingPaymentPaid:
		return true
	}
	return false
}

// BookingResponse is the JSON response format for bookings
type BookingResponse struct {
	ID             uint       `json:"id"`
	CustomerID     uint       `json:"customer_id"`
	CustomerName   string     `json:"customer_name,omitempty"`
	BookingTypeID  uint       `json:"booking_type_id"`
	BookingType    string     `json:"booking_type,omitempty"`
	EventDate      time.Time  `json:"event_date"`
	EndDate        *time.Time `json:"end_date"`
	ExpectedIncome float64    `json:"expected_income"`
	PaymentStatus  string     `json:"payment_status"`
	PartialAmount  float64    `json:"partial_amount"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToResponse converts Booking to BookingResponse
func (b *Booking) ToResponse() BookingResponse {
	resp := BookingResponse{
		ID:             b.ID,
		CustomerID:     b.CustomerID,
		BookingTypeID:  b.BookingTypeID,
		EventDate:      b.EventDate,
		EndDate:        b.EndDate,
		ExpectedIncome: b.ExpectedIncome,
		PaymentStatus:  b.PaymentStatus,
		PartialAmount:  b.PartialAmount,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
	}
	if b.Customer.ID != 0 {
		resp.CustomerName = b.Customer.Name
	}
	if b.BookingType.ID != 0 {
		resp.BookingType = b.BookingType.Name
	}
	return resp
}

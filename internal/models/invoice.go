package models

import (
	"time"
)

// Invoice aggregates priced line items into a total. The total is always
// recomputed from the items; a stored total is never trusted after an item
// mutation. Items are exclusively owned and deleted with the invoice.
type Invoice struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	BookingID  *uint     `gorm:"index" json:"booking_id"`
	Status     string    `gorm:"not null;default:Draft;index" json:"status"`
	Total      float64   `gorm:"type:decimal(10,2);not null;default:0" json:"total"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	Customer Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Booking  *Booking      `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// Invoice status constants
const (
	InvoiceStatusDraft = "Draft"
	InvoiceStatusPaid  = "Paid"
)

// MayMarkPaid returns true if the invoice can still be settled
func (i *Invoice) MayMarkPaid() bool {
	return i.Status == InvoiceStatusDraft
}

// ComputeTotal returns the sum of item subtotals
func (i *Invoice) ComputeTotal() float64 {
	var total float64
	for _, item := range i.Items {
		total += item.Subtotal()
	}
	return total
}

// InvoiceItem is a priced line on an invoice. Subtotal is always derived
// from price and quantity.
type InvoiceItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InvoiceID   uint      `gorm:"not null;index" json:"invoice_id"`
	Description string    `gorm:"not null" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for InvoiceItem
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Subtotal returns price times quantity
func (it *InvoiceItem) Subtotal() float64 {
	return it.Price * float64(it.Quantity)
}

// InvoiceItemResponse is the JSON response format for invoice items
type InvoiceItemResponse struct {
	ID          uint    `json:"id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// InvoiceResponse is the JSON response format for invoices
type InvoiceResponse struct {
	ID           uint                  `json:"id"`
	CustomerID   uint                  `json:"customer_id"`
	CustomerName string                `json:"customer_name,omitempty"`
	BookingID    *uint                 `json:"booking_id"`
	Status       string                `json:"status"`
	Total        float64               `json:"total"`
	Items        []InvoiceItemResponse `json:"items"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ToResponse converts Invoice to InvoiceResponse
func (i *Invoice) ToResponse() InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(i.Items))
	for _, it := range i.Items {
		items = append(items, InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal(),
		})
	}

	resp := InvoiceResponse{
		ID:         i.ID,
		CustomerID: i.CustomerID,
		BookingID:  i.BookingID,
		Status:     i.Status,
		Total:      i.Total,
		Items:      items,
		CreatedAt:  i.CreatedAt,
	}
	if i.Customer.ID != 0 {
		resp.CustomerName = i.Customer.Name
	}
	return resp
}

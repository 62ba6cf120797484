package models

import (
	"strings"
	"time"
)

// Transaction is a financial ledger entry. Once logged it is an independent
// record: cascading deletes of the booking or invoice that produced it never
// touch it.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"not null;index" json:"type"`
	Category    string    `gorm:"not null;index" json:"category"`
	Party       *string   `json:"party"`
	Description *string   `json:"description"`
	Amount      float64   `gorm:"type:decimal(10,2);not null;default:0" json:"amount"`
	Status      string    `gorm:"not null;index" json:"status"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	ReceiptPath *string   `json:"-"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// Transaction type constants
const (
	TransactionTypeIncome  = "Income"
	TransactionTypeExpense = "Expense"
)

// Transaction status constants
const (
	TransactionStatusPaid    = "Paid"
	TransactionStatusPending = "Pending"
)

// Transaction category constants for derived entries
const (
	TransactionCategoryBooking = "Booking"
	TransactionCategoryInvoice = "Invoice"
)

// ValidTransactionType reports whether t is an allowed transaction type.
func ValidTransactionType(t string) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// ValidTransactionStatus reports whether s is an allowed transaction status.
func ValidTransactionStatus(s string) bool {
	return s == TransactionStatusPaid || s == TransactionStatusPending
}

// HasReceipt returns true if a receipt file is attached
func (t *Transaction) HasReceipt() bool {
	return t.ReceiptPath != nil && *t.ReceiptPath != ""
}

// IsPDFReceipt returns true if the attached receipt is a PDF
func (t *Transaction) IsPDFReceipt() bool {
	return t.HasReceipt() && strings.HasSuffix(strings.ToLower(*t.ReceiptPath), ".pdf")
}

// TransactionResponse is the JSON response format for transactions
type TransactionResponse struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Party       *string   `json:"party"`
	Description *string   `json:"description"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
	HasReceipt  bool      `json:"has_receipt"`
	IsPDF       bool      `json:"is_pdf"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts Transaction to TransactionResponse
func (t *Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Category:    t.Category,
		Party:       t.Party,
		Description: t.Description,
		Amount:      t.Amount,
		Status:      t.Status,
		Date:        t.Date,
		HasReceipt:  t.HasReceipt(),
		IsPDF:       t.IsPDFReceipt(),
		CreatedAt:   t.CreatedAt,
	}
}

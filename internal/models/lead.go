package models

import (
	"time"
)

// Lead is a prospective customer. It converts into a Customer exactly once;
// a converted lead is never re-converted.
type Lead struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ContactName string    `gorm:"not null;index" json:"contact_name"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	LeadType    string    `gorm:"not null;default:Personal" json:"lead_type"`
	Status      string    `gorm:"not null;default:New;index" json:"status"`
	Source      *string   `json:"source"`
	Notes       *string   `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Lead
func (Lead) TableName() string {
	return "leads"
}

// Lead status constants
const (
	LeadStatusNew       = "New"
	LeadStatusContacted = "Contacted"
	LeadStatusQualified = "Qualified"
	LeadStatusConverted = "Converted"
)

// Lead type constants
const (
	LeadTypeBusiness = "Business"
	LeadTypePersonal = "Personal"
)

// MayConvert returns true if the lead can still be converted to a customer
func (l *Lead) MayConvert() bool {
	return l.Status != LeadStatusConverted
}

// ValidLeadStatus reports whether s is an allowed lead status.
func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted:
		return true
	}
	return false
}

package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Customer    CustomerRepository
	Lead        LeadRepository
	Booking     BookingRepository
	WorkOrder   WorkOrderRepository
	Invoice     InvoiceRepository
	Transaction TransactionRepository
	Catalog     CatalogRepository
	Dashboard   DashboardRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customer:    NewCustomerRepository(db),
		Lead:        NewLeadRepository(db),
		Booking:     NewBookingRepository(db),
		WorkOrder:   NewWorkOrderRepository(db),
		Invoice:     NewInvoiceRepository(db),
		Transaction: NewTransactionRepository(db),
		Catalog:     NewCatalogRepository(db),
		Dashboard:   NewDashboardRepository(db),
	}
}

// ListQuery carries common pagination, sorting and filter parameters.
// A PerPage of zero or less disables pagination.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// Offset returns the row offset for the current page
func (q *ListQuery) Offset() int {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = 20
	}
	return (page - 1) * perPage
}

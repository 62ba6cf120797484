package handlers

import (
	"github.com/dmejia/opsledger-api/internal/services"
	"github.com/dmejia/opsledger-api/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	Customer    *CustomerHandler
	Lead        *LeadHandler
	Booking     *BookingHandler
	WorkOrder   *WorkOrderHandler
	Invoice     *InvoiceHandler
	Transaction *TransactionHandler
	Catalog     *CatalogHandler
	Dashboard   *DashboardHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, store *storage.LocalStorage) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(),
		Customer:    NewCustomerHandler(svcs.Customer),
		Lead:        NewLeadHandler(svcs.Lead),
		Booking:     NewBookingHandler(svcs.Booking, svcs.Dashboard),
		WorkOrder:   NewWorkOrderHandler(svcs.WorkOrder, svcs.Dashboard),
		Invoice:     NewInvoiceHandler(svcs.Invoice, svcs.Export, svcs.Dashboard),
		Transaction: NewTransactionHandler(svcs.Transaction, svcs.Export, svcs.Dashboard, store),
		Catalog:     NewCatalogHandler(svcs.Catalog),
		Dashboard:   NewDashboardHandler(svcs.Dashboard),
	}
}

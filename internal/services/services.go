package services

import (
	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Customer    *CustomerService
	Lead        *LeadService
	Booking     *BookingService
	WorkOrder   *WorkOrderService
	Invoice     *InvoiceService
	Transaction *TransactionService
	Catalog     *CatalogService
	Dashboard   *DashboardService
	Export      *ExportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, store *storage.LocalStorage) *Services {
	transactionSvc := NewTransactionService(repos.Transaction, store)

	return &Services{
		Customer:    NewCustomerService(repos.Customer),
		Lead:        NewLeadService(repos.Lead),
		Booking:     NewBookingService(repos.Booking, repos.Customer, repos.Catalog),
		WorkOrder:   NewWorkOrderService(repos.WorkOrder, repos.Customer, repos.Booking, repos.Catalog, store),
		Invoice:     NewInvoiceService(repos.Invoice, repos.Customer, repos.WorkOrder),
		Transaction: transactionSvc,
		Catalog:     NewCatalogService(repos.Catalog),
		Dashboard:   NewDashboardService(repos.Dashboard, repos.Transaction, repos.Booking, repos.WorkOrder),
		Export:      NewExportService(repos.Transaction, repos.Invoice),
	}
}

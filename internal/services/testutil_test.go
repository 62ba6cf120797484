package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dmejia/opsledger-api/internal/models"
	"github.com/dmejia/opsledger-api/internal/repository"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// Each call gets its own named database so tests stay isolated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Lead{},
		&models.BookingType{},
		&models.WorkOrderType{},
		&models.JobType{},
		&models.Booking{},
		&models.WorkOrder{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Transaction{},
		&models.DashboardCache{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	repos := repository.NewRepositories(db)

	return &Services{
		Customer:    NewCustomerService(repos.Customer),
		Lead:        NewLeadService(repos.Lead),
		Booking:     NewBookingService(repos.Booking, repos.Customer, repos.Catalog),
		WorkOrder:   NewWorkOrderService(repos.WorkOrder, repos.Customer, repos.Booking, repos.Catalog, nil),
		Invoice:     NewInvoiceService(repos.Invoice, repos.Customer, repos.WorkOrder),
		Transaction: NewTransactionService(repos.Transaction, nil),
		Catalog:     NewCatalogService(repos.Catalog),
		Dashboard:   NewDashboardService(repos.Dashboard, repos.Transaction, repos.Booking, repos.WorkOrder),
		Export:      NewExportService(repos.Transaction, repos.Invoice),
	}, db
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: name}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return customer
}

func seedBookingType(t *testing.T, db *gorm.DB, name string, basePrice float64) *models.BookingType {
	t.Helper()
	bt := &models.BookingType{Name: name, BasePrice: basePrice}
	if err := db.Create(bt).Error; err != nil {
		t.Fatalf("failed to seed booking type: %v", err)
	}
	return bt
}

func seedWorkOrderType(t *testing.T, db *gorm.DB, name string, basePrice float64) *models.WorkOrderType {
	t.Helper()
	wt := &models.WorkOrderType{Name: name, BasePrice: basePrice}
	if err := db.Create(wt).Error; err != nil {
		t.Fatalf("failed to seed work order type: %v", err)
	}
	return wt
}

func countTransactions(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count transactions: %v", err)
	}
	return count
}

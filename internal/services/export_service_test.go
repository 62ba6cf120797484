package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dmejia/opsledger-api/internal/models"
	"github.com/dmejia/opsledger-api/internal/repository"
)

func TestExportServiceTransactionsCSV(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	date := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	party := "Acme Corp"
	desc := "Office rent"
	_, err := svcs.Transaction.Create(ctx, TransactionInput{
		Type:        models.TransactionTypeExpense,
		Category:    "Rent",
		Party:       &party,
		Description: &desc,
		Amount:      1250.5,
		Status:      models.TransactionStatusPaid,
		Date:        &date,
	})
	require.NoError(t, err)

	data, filename, err := svcs.Export.TransactionsCSV(ctx, &repository.ListQuery{Page: 1, PerPage: 50})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "transactions_"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"Date", "Type", "Category", "Party", "Description", "Amount", "Status"}, records[0])
	assert.Equal(t, []string{"2026-04-15", "Expense", "Rent", "Acme Corp", "Office rent", "1250.50", "Paid"}, records[1])
}

func TestExportServiceTransactionsCSVAppliesFilters(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	now := time.Now()

	_, err := svcs.Transaction.Create(ctx, TransactionInput{
		Type: models.TransactionTypeIncome, Category: "Sales", Amount: 900,
		Status: models.TransactionStatusPaid, Date: &now,
	})
	require.NoError(t, err)
	_, err = svcs.Transaction.Create(ctx, TransactionInput{
		Type: models.TransactionTypeExpense, Category: "Fuel", Amount: 60,
		Status: models.TransactionStatusPaid, Date: &now,
	})
	require.NoError(t, err)

	query := &repository.ListQuery{
		Page: 1, PerPage: 50,
		Filters: map[string]string{"type": models.TransactionTypeExpense},
	}
	data, _, err := svcs.Export.TransactionsCSV(ctx, query)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Fuel", records[1][2])
}

func TestExportServiceTransactionsCSVIncludesAllRows(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		date := base.AddDate(0, 0, i)
		_, err := svcs.Transaction.Create(ctx, TransactionInput{
			Type:     models.TransactionTypeIncome,
			Category: "Sales",
			Amount:   float64(i + 1),
			Status:   models.TransactionStatusPaid,
			Date:     &date,
		})
		require.NoError(t, err)
	}

	// well past one listing page
	data, _, err := svcs.Export.TransactionsCSV(ctx, &repository.ListQuery{PerPage: 0})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 26)
}

func TestExportServiceTransactionsXLSX(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	date := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	_, err := svcs.Transaction.Create(ctx, TransactionInput{
		Type:     models.TransactionTypeIncome,
		Category: "Sales",
		Amount:   320,
		Status:   models.TransactionStatusPaid,
		Date:     &date,
	})
	require.NoError(t, err)

	data, filename, err := svcs.Export.TransactionsXLSX(ctx, &repository.ListQuery{Page: 1, PerPage: 50})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Sales", rows[1][2])
}

func TestExportServiceInvoicePDF(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	repair := seedWorkOrderType(t, db, "Repair", 120)

	orders, err := svcs.WorkOrder.CreateBatch(ctx, customer.ID, nil, []uint{repair.ID}, WorkOrderCommonFields{})
	require.NoError(t, err)

	invoice, err := svcs.Invoice.Create(ctx, customer.ID, nil, []uint{orders[0].ID})
	require.NoError(t, err)

	full, err := svcs.Invoice.Get(ctx, invoice.ID)
	require.NoError(t, err)

	data, filename, err := svcs.Export.InvoicePDF(ctx, full)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "invoice_"))
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Greater(t, len(data), 500)
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmejia/opsledger-api/internal/models"
)

func seedTransaction(t *testing.T, svcs *Services, txnType, status string, amount float64, date time.Time) *models.Transaction {
	t.Helper()
	txn, err := svcs.Transaction.Create(context.Background(), TransactionInput{
		Type:     txnType,
		Category: "Misc",
		Amount:   amount,
		Status:   status,
		Date:     &date,
	})
	require.NoError(t, err)
	return txn
}

func TestDashboardServiceProfitIgnoresPending(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	now := time.Now()

	seedTransaction(t, svcs, models.TransactionTypeIncome, models.TransactionStatusPaid, 600, now)
	seedTransaction(t, svcs, models.TransactionTypeIncome, models.TransactionStatusPaid, 400, now)
	seedTransaction(t, svcs, models.TransactionTypeExpense, models.TransactionStatusPaid, 300, now)
	seedTransaction(t, svcs, models.TransactionTypeIncome, models.TransactionStatusPending, 250, now)
	seedTransaction(t, svcs, models.TransactionTypeExpense, models.TransactionStatusPending, 80, now)

	stats, err := svcs.Dashboard.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, stats.IncomePaid)
	assert.Equal(t, 300.0, stats.ExpensePaid)
	assert.Equal(t, 700.0, stats.Profit)
	assert.Equal(t, int64(1), stats.PendingIncome)
	assert.Equal(t, int64(1), stats.PendingExpense)
}

func TestDashboardServiceEmptyTablesYieldZeros(t *testing.T) {
	svcs, _ := newTestServices(t)

	stats, err := svcs.Dashboard.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.IncomePaid)
	assert.Equal(t, 0.0, stats.ExpensePaid)
	assert.Equal(t, 0.0, stats.Profit)
	assert.Empty(t, stats.Recent)
	assert.Nil(t, stats.NextWorkOrder)
}

func TestDashboardServiceRecentTransactionsOrdering(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		seedTransaction(t, svcs, models.TransactionTypeIncome, models.TransactionStatusPaid, float64(i+1), base.Add(time.Duration(i)*time.Hour))
	}

	stats, err := svcs.Dashboard.GetStats(ctx)
	require.NoError(t, err)

	require.Len(t, stats.Recent, 10)
	// newest first
	assert.Equal(t, 12.0, stats.Recent[0].Amount)
	assert.Equal(t, 3.0, stats.Recent[9].Amount)
}

func TestDashboardServiceCachesUntilInvalidated(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	now := time.Now()

	seedTransaction(t, svcs, models.TransactionTypeIncome, models.TransactionStatusPaid, 100, now)

	stats, err := svcs.Dashboard.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 100.0, stats.IncomePaid)

	// a later write is not visible until the cache is dropped; seedTransaction
	// goes through TransactionService which does not touch the cache
	seedTransaction(t, svcs, models.TransactionTypeIncome, models.TransactionStatusPaid, 50, now)

	stats, err = svcs.Dashboard.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stats.IncomePaid)

	require.NoError(t, svcs.Dashboard.InvalidateCache(ctx))

	stats, err = svcs.Dashboard.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150.0, stats.IncomePaid)
}

func TestDashboardServiceNextWorkOrder(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	repair := seedWorkOrderType(t, db, "Repair", 120)

	soon := time.Now().Add(24 * time.Hour)
	later := time.Now().Add(72 * time.Hour)

	_, err := svcs.WorkOrder.CreateBatch(ctx, customer.ID, nil, []uint{repair.ID}, WorkOrderCommonFields{DueDate: &later})
	require.NoError(t, err)
	orders, err := svcs.WorkOrder.CreateBatch(ctx, customer.ID, nil, []uint{repair.ID}, WorkOrderCommonFields{DueDate: &soon})
	require.NoError(t, err)

	stats, err := svcs.Dashboard.GetStats(ctx)
	require.NoError(t, err)

	require.NotNil(t, stats.NextWorkOrder)
	assert.Equal(t, orders[0].ID, stats.NextWorkOrder.ID)
}

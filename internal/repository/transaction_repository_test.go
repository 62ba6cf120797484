package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dmejia/opsledger-api/internal/models"
)

var repoTestSeq int64

func newRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repository_test_%d?mode=memory&cache=shared", atomic.AddInt64(&repoTestSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Transaction{}))
	return db
}

func createTxn(t *testing.T, repo TransactionRepository, txnType, status, category string, desc *string, amount float64, date time.Time) *models.Transaction {
	t.Helper()
	txn := &models.Transaction{
		Type:        txnType,
		Category:    category,
		Description: desc,
		Amount:      amount,
		Status:      status,
		Date:        date,
	}
	require.NoError(t, repo.Create(context.Background(), txn))
	return txn
}

func TestTransactionRepositoryListFiltersAreAnded(t *testing.T) {
	repo := NewTransactionRepository(newRepoTestDB(t))
	ctx := context.Background()
	now := time.Now()

	createTxn(t, repo, models.TransactionTypeIncome, models.TransactionStatusPaid, "Sales", nil, 100, now)
	createTxn(t, repo, models.TransactionTypeIncome, models.TransactionStatusPending, "Sales", nil, 200, now)
	createTxn(t, repo, models.TransactionTypeExpense, models.TransactionStatusPaid, "Rent", nil, 300, now)

	query := NewListQuery()
	query.Filters["type"] = models.TransactionTypeIncome
	query.Filters["status"] = models.TransactionStatusPaid

	txns, total, err := repo.List(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, txns, 1)
	assert.Equal(t, 100.0, txns[0].Amount)
}

func TestTransactionRepositoryListUnknownFilterValuesIgnored(t *testing.T) {
	repo := NewTransactionRepository(newRepoTestDB(t))
	ctx := context.Background()
	now := time.Now()

	createTxn(t, repo, models.TransactionTypeIncome, models.TransactionStatusPaid, "Sales", nil, 100, now)
	createTxn(t, repo, models.TransactionTypeExpense, models.TransactionStatusPending, "Rent", nil, 300, now)

	query := NewListQuery()
	query.Filters["type"] = "Bogus"
	query.Filters["status"] = "Whatever"

	_, total, err := repo.List(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestTransactionRepositoryListSearchIsCaseInsensitive(t *testing.T) {
	repo := NewTransactionRepository(newRepoTestDB(t))
	ctx := context.Background()
	now := time.Now()

	upper := "RENT payment for March"
	mixed := "Monthly Rent"
	other := "Fuel refill"
	createTxn(t, repo, models.TransactionTypeExpense, models.TransactionStatusPaid, "Housing", &upper, 900, now)
	createTxn(t, repo, models.TransactionTypeExpense, models.TransactionStatusPaid, "Housing", &mixed, 900, now)
	createTxn(t, repo, models.TransactionTypeExpense, models.TransactionStatusPaid, "Vehicle", &other, 60, now)

	query := NewListQuery()
	query.Search = "rent"

	txns, total, err := repo.List(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, txns, 2)
}

func TestTransactionRepositoryListDateRange(t *testing.T) {
	repo := NewTransactionRepository(newRepoTestDB(t))
	ctx := context.Background()

	createTxn(t, repo, models.TransactionTypeIncome, models.TransactionStatusPaid, "Sales", nil, 1,
		time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	createTxn(t, repo, models.TransactionTypeIncome, models.TransactionStatusPaid, "Sales", nil, 2,
		time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))
	createTxn(t, repo, models.TransactionTypeIncome, models.TransactionStatusPaid, "Sales", nil, 3,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))

	query := NewListQuery()
	query.Filters["start_date"] = "2026-02-01"
	query.Filters["end_date"] = "2026-02-28"

	txns, total, err := repo.List(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, txns, 1)
	assert.Equal(t, 2.0, txns[0].Amount)
}

func TestTransactionRepositoryListOrderIsDateThenIDDescending(t *testing.T) {
	repo := NewTransactionRepository(newRepoTestDB(t))
	ctx := context.Background()
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	first := createTxn(t, repo, models.TransactionTypeIncome, models.TransactionStatusPaid, "Sales", nil, 1, date)
	second := createTxn(t, repo, models.TransactionTypeIncome, models.TransactionStatusPaid, "Sales", nil, 2, date)
	older := createTxn(t, repo, models.TransactionTypeIncome, models.TransactionStatusPaid, "Sales", nil, 3, date.AddDate(0, 0, -1))

	txns, _, err := repo.List(ctx, NewListQuery())
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, second.ID, txns[0].ID)
	assert.Equal(t, first.ID, txns[1].ID)
	assert.Equal(t, older.ID, txns[2].ID)
}

func TestTransactionRepositoryListZeroPerPageReturnsAllRows(t *testing.T) {
	repo := NewTransactionRepository(newRepoTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		createTxn(t, repo, models.TransactionTypeIncome, models.TransactionStatusPaid, "Sales", nil, float64(i+1), base.AddDate(0, 0, i))
	}

	query := NewListQuery()
	query.PerPage = 0

	txns, total, err := repo.List(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, txns, 25)
}

func TestTransactionRepositoryListPagination(t *testing.T) {
	repo := NewTransactionRepository(newRepoTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		createTxn(t, repo, models.TransactionTypeIncome, models.TransactionStatusPaid, "Sales", nil, float64(i+1), base.AddDate(0, 0, i))
	}

	query := NewListQuery()
	query.Page = 2
	query.PerPage = 2

	txns, total, err := repo.List(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, txns, 2)
	// page 2 of a descending list
	assert.Equal(t, 3.0, txns[0].Amount)
	assert.Equal(t, 2.0, txns[1].Amount)
}

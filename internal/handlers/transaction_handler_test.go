package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dmejia/opsledger-api/internal/models"
	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/services"
)

type mockTransactionRepo struct {
	repository.TransactionRepository
	mockList func(ctx context.Context, query *repository.ListQuery) ([]models.Transaction, int64, error)
}

func (m *mockTransactionRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.Transaction, int64, error) {
	return m.mockList(ctx, query)
}

func TestTransactionHandler_Index_QueryParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockRepo := &mockTransactionRepo{}
	transactionService := services.NewTransactionService(mockRepo, nil)
	handler := NewTransactionHandler(transactionService, nil, nil, nil)

	var captured *repository.ListQuery
	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Transaction, int64, error) {
		captured = query
		return []models.Transaction{}, 0, nil
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/transactions?page=3&per_page=10&search_term=rent&type=Expense&status=Paid&start_date=2026-01-01&end_date=2026-01-31", nil)

	handler.Index(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, captured.Page)
	assert.Equal(t, 10, captured.PerPage)
	assert.Equal(t, "rent", captured.Search)
	assert.Equal(t, "Expense", captured.Filters["type"])
	assert.Equal(t, "Paid", captured.Filters["status"])
	assert.Equal(t, "2026-01-01", captured.Filters["start_date"])
	assert.Equal(t, "2026-01-31", captured.Filters["end_date"])
}

func TestTransactionHandler_ExportCSV_Unpaginated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockRepo := &mockTransactionRepo{}
	exportService := services.NewExportService(mockRepo, nil)
	handler := NewTransactionHandler(nil, exportService, nil, nil)

	var captured *repository.ListQuery
	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Transaction, int64, error) {
		captured = query
		return []models.Transaction{}, 0, nil
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/transactions/export_csv?type=Expense", nil)

	handler.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, captured.PerPage)
	assert.Equal(t, "Expense", captured.Filters["type"])
}

func TestTransactionHandler_Index_Defaults(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockRepo := &mockTransactionRepo{}
	transactionService := services.NewTransactionService(mockRepo, nil)
	handler := NewTransactionHandler(transactionService, nil, nil, nil)

	var captured *repository.ListQuery
	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Transaction, int64, error) {
		captured = query
		return []models.Transaction{}, 0, nil
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/transactions", nil)

	handler.Index(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 20, captured.PerPage)
	assert.Empty(t, captured.Search)
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/services"
	"github.com/dmejia/opsledger-api/internal/storage"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
	exportService      *services.ExportService
	dashboardService   *services.DashboardService
	storage            *storage.LocalStorage
}

func NewTransactionHandler(
	transactionService *services.TransactionService,
	exportService *services.ExportService,
	dashboardService *services.DashboardService,
	store *storage.LocalStorage,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		exportService:      exportService,
		dashboardService:   dashboardService,
		storage:            store,
	}
}

func listQueryFromContext(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["type"] = c.Query("type")
	query.Filters["status"] = c.Query("status")
	query.Filters["start_date"] = c.Query("start_date")
	query.Filters["end_date"] = c.Query("end_date")
	return query
}

// @Summary List Transactions
// @Description Get a paginated, filterable list of transactions
// @Tags Transactions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param type query string false "Filter by type"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Router /transactions [get]
func (h *TransactionHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c)

	transactions, total, err := h.transactionService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range transactions {
		responses = append(responses, transactions[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"transactions": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Transaction
// @Description Get a transaction by ID
// @Tags Transactions
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {object} models.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /transactions/{transaction_id} [get]
func (h *TransactionHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	transaction, err := h.transactionService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction.ToResponse()})
}

// @Summary Create Transaction
// @Description Record a manual income or expense transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body services.TransactionInput true "Transaction Data"
// @Success 201 {object} models.TransactionResponse
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var input services.TransactionInput
	if err := BindNestedOrFlat(c, "transaction", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.transactionService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	h.dashboardService.InvalidateCache(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"transaction": transaction.ToResponse()})
}

// @Summary Update Transaction
// @Description Update an existing transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Param request body services.TransactionInput true "Transaction Data"
// @Success 200 {object} models.TransactionResponse
// @Router /transactions/{transaction_id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	var input services.TransactionInput
	if err := BindNestedOrFlat(c, "transaction", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.transactionService.Update(c.Request.Context(), uint(id), input)
	if err != nil {
		respondError(c, err)
		return
	}

	h.dashboardService.InvalidateCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"transaction": transaction.ToResponse()})
}

// @Summary Upload Transaction Receipt
// @Description Attach a receipt file to a transaction
// @Tags Transactions
// @Accept multipart/form-data
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Param receipt formData file true "Receipt"
// @Success 200 {object} models.TransactionResponse
// @Router /transactions/{transaction_id}/receipt [post]
func (h *TransactionHandler) UploadReceipt(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)

	file, header, err := c.Request.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receipt file is required"})
		return
	}
	defer file.Close()

	transaction, err := h.transactionService.UploadReceipt(c.Request.Context(), uint(id), file, header)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction.ToResponse()})
}

// @Summary Download Transaction Receipt
// @Description Download the receipt file attached to a transaction
// @Tags Transactions
// @Produce application/octet-stream
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {file} file "receipt"
// @Failure 404 {object} map[string]string
// @Router /transactions/{transaction_id}/receipt [get]
func (h *TransactionHandler) DownloadReceipt(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	relativePath, err := h.transactionService.ReceiptPath(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	fullPath := h.storage.GetFullPath(relativePath)
	if !h.storage.Exists(relativePath) {
		c.JSON(http.StatusNotFound, gin.H{"error": "receipt file not found"})
		return
	}
	c.File(fullPath)
}

// @Summary Export Transactions CSV
// @Description Download filtered transactions as CSV
// @Tags Transactions
// @Produce text/csv
// @Success 200 {file} file "transactions.csv"
// @Router /transactions/export_csv [get]
func (h *TransactionHandler) ExportCSV(c *gin.Context) {
	query := listQueryFromContext(c)
	query.PerPage = 0 // exports are never paginated

	data, filename, err := h.exportService.TransactionsCSV(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// @Summary Export Transactions XLSX
// @Description Download filtered transactions as an Excel workbook
// @Tags Transactions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "transactions.xlsx"
// @Router /transactions/export_xlsx [get]
func (h *TransactionHandler) ExportXLSX(c *gin.Context) {
	query := listQueryFromContext(c)
	query.PerPage = 0 // exports are never paginated

	data, filename, err := h.exportService.TransactionsXLSX(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// @Summary Delete Transaction
// @Description Delete a transaction and its receipt file
// @Tags Transactions
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {object} map[string]string
// @Router /transactions/{transaction_id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	if err := h.transactionService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	h.dashboardService.InvalidateCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

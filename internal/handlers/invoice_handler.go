package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/services"
)

type InvoiceHandler struct {
	invoiceService   *services.InvoiceService
	exportService    *services.ExportService
	dashboardService *services.DashboardService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService, exportService *services.ExportService, dashboardService *services.DashboardService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:   invoiceService,
		exportService:    exportService,
		dashboardService: dashboardService,
	}
}

// @Summary List Invoices
// @Description Get a paginated list of invoices
// @Tags Invoices
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param customer_id query int false "Filter by customer"
// @Success 200 {object} map[string]interface{}
// @Router /invoices [get]
func (h *InvoiceHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["status"] = c.Query("status")
	query.Filters["customer_id"] = c.Query("customer_id")

	invoices, total, err := h.invoiceService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range invoices {
		responses = append(responses, invoices[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"invoices": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Invoice
// @Description Get an invoice with its line items
// @Tags Invoices
// @Produce json
// @Param invoice_id path int true "Invoice ID"
// @Success 200 {object} models.InvoiceResponse
// @Failure 404 {object} map[string]string
// @Router /invoices/{invoice_id} [get]
func (h *InvoiceHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	invoice, err := h.invoiceService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice.ToResponse()})
}

type createInvoiceRequest struct {
	CustomerID   uint   `json:"customer_id"`
	BookingID    *uint  `json:"booking_id"`
	WorkOrderIDs []uint `json:"work_order_ids"`
}

// @Summary Create Invoice
// @Description Assemble a draft invoice from selected work orders
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body createInvoiceRequest true "Invoice Data"
// @Success 201 {object} models.InvoiceResponse
// @Failure 400 {object} map[string]string
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), req.CustomerID, req.BookingID, req.WorkOrderIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invoice": invoice.ToResponse()})
}

// @Summary Add Invoice Item
// @Description Append a line item; the total is recomputed atomically
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice_id path int true "Invoice ID"
// @Param request body services.InvoiceItemInput true "Item Data"
// @Success 200 {object} models.InvoiceResponse
// @Failure 409 {object} map[string]string
// @Router /invoices/{invoice_id}/items [post]
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	var input services.InvoiceItemInput
	if err := BindNestedOrFlat(c, "item", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.invoiceService.AddItem(c.Request.Context(), uint(id), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": invoice.ToResponse()})
}

// @Summary Update Invoice Item
// @Description Edit a line item; the total is recomputed atomically
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice_id path int true "Invoice ID"
// @Param item_id path int true "Item ID"
// @Param request body services.InvoiceItemInput true "Item Data"
// @Success 200 {object} models.InvoiceResponse
// @Failure 409 {object} map[string]string
// @Router /invoices/{invoice_id}/items/{item_id} [put]
func (h *InvoiceHandler) UpdateItem(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	itemID, _ := strconv.ParseUint(c.Param("item_id"), 10, 32)
	var input services.InvoiceItemInput
	if err := BindNestedOrFlat(c, "item", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.invoiceService.UpdateItem(c.Request.Context(), uint(id), uint(itemID), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": invoice.ToResponse()})
}

// @Summary Remove Invoice Item
// @Description Remove a line item; the total is recomputed atomically
// @Tags Invoices
// @Produce json
// @Param invoice_id path int true "Invoice ID"
// @Param item_id path int true "Item ID"
// @Success 200 {object} models.InvoiceResponse
// @Failure 409 {object} map[string]string
// @Router /invoices/{invoice_id}/items/{item_id} [delete]
func (h *InvoiceHandler) RemoveItem(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	itemID, _ := strconv.ParseUint(c.Param("item_id"), 10, 32)

	invoice, err := h.invoiceService.RemoveItem(c.Request.Context(), uint(id), uint(itemID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": invoice.ToResponse()})
}

// @Summary Mark Invoice Paid
// @Description Settle a draft invoice and log the income transaction
// @Tags Invoices
// @Produce json
// @Param invoice_id path int true "Invoice ID"
// @Success 200 {object} models.InvoiceResponse
// @Failure 409 {object} map[string]string
// @Router /invoices/{invoice_id}/mark_paid [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	h.dashboardService.InvalidateCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"invoice": invoice.ToResponse()})
}

// @Summary Invoice PDF
// @Description Download an invoice as PDF
// @Tags Invoices
// @Produce application/pdf
// @Param invoice_id path int true "Invoice ID"
// @Success 200 {file} file "invoice.pdf"
// @Router /invoices/{invoice_id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	invoice, err := h.invoiceService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, err := h.exportService.InvoicePDF(c.Request.Context(), invoice)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// @Summary Delete Invoice
// @Description Delete an invoice and its line items
// @Tags Invoices
// @Produce json
// @Param invoice_id path int true "Invoice ID"
// @Success 200 {object} map[string]string
// @Router /invoices/{invoice_id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	if err := h.invoiceService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}

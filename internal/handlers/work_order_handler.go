package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/services"
)

type WorkOrderHandler struct {
	workOrderService *services.WorkOrderService
	dashboardService *services.DashboardService
}

func NewWorkOrderHandler(workOrderService *services.WorkOrderService, dashboardService *services.DashboardService) *WorkOrderHandler {
	return &WorkOrderHandler{workOrderService: workOrderService, dashboardService: dashboardService}
}

// @Summary List Work Orders
// @Description Get a paginated list of work orders
// @Tags WorkOrders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param customer_id query int false "Filter by customer"
// @Success 200 {object} map[string]interface{}
// @Router /work_orders [get]
func (h *WorkOrderHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["status"] = c.Query("status")
	query.Filters["priority"] = c.Query("priority")
	query.Filters["customer_id"] = c.Query("customer_id")

	orders, total, err := h.workOrderService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range orders {
		responses = append(responses, orders[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"work_orders": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Work Order
// @Description Get a work order by ID
// @Tags WorkOrders
// @Produce json
// @Param work_order_id path int true "Work Order ID"
// @Success 200 {object} models.WorkOrderResponse
// @Failure 404 {object} map[string]string
// @Router /work_orders/{work_order_id} [get]
func (h *WorkOrderHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("work_order_id"), 10, 32)
	order, err := h.workOrderService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"work_order": order.ToResponse()})
}

type createWorkOrderBatchRequest struct {
	CustomerID       uint   `json:"customer_id"`
	BookingID        *uint  `json:"booking_id"`
	WorkOrderTypeIDs []uint `json:"work_order_type_ids"`
	services.WorkOrderCommonFields
}

// @Summary Create Work Orders
// @Description Create one work order per selected type, all or nothing
// @Tags WorkOrders
// @Accept json
// @Produce json
// @Param request body createWorkOrderBatchRequest true "Batch Data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /work_orders [post]
func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req createWorkOrderBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orders, err := h.workOrderService.CreateBatch(c.Request.Context(), req.CustomerID, req.BookingID, req.WorkOrderTypeIDs, req.WorkOrderCommonFields)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range orders {
		responses = append(responses, orders[i].ToResponse())
	}

	h.dashboardService.InvalidateCache(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"work_orders": responses})
}

// @Summary Update Work Order
// @Description Update a work order's mutable fields
// @Tags WorkOrders
// @Accept json
// @Produce json
// @Param work_order_id path int true "Work Order ID"
// @Param request body services.WorkOrderUpdateInput true "Work Order Data"
// @Success 200 {object} models.WorkOrderResponse
// @Router /work_orders/{work_order_id} [put]
func (h *WorkOrderHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("work_order_id"), 10, 32)
	var input services.WorkOrderUpdateInput
	if err := BindNestedOrFlat(c, "work_order", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.workOrderService.Update(c.Request.Context(), uint(id), input)
	if err != nil {
		respondError(c, err)
		return
	}

	h.dashboardService.InvalidateCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"work_order": order.ToResponse()})
}

// @Summary Upload Work Order Attachment
// @Description Attach a file to a work order
// @Tags WorkOrders
// @Accept multipart/form-data
// @Produce json
// @Param work_order_id path int true "Work Order ID"
// @Param attachment formData file true "Attachment"
// @Success 200 {object} models.WorkOrderResponse
// @Router /work_orders/{work_order_id}/attachment [post]
func (h *WorkOrderHandler) UploadAttachment(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("work_order_id"), 10, 32)

	file, header, err := c.Request.FormFile("attachment")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "attachment file is required"})
		return
	}
	defer file.Close()

	order, err := h.workOrderService.AttachFile(c.Request.Context(), uint(id), file, header)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"work_order": order.ToResponse()})
}

// @Summary Delete Work Order
// @Description Delete a work order and its attachment
// @Tags WorkOrders
// @Produce json
// @Param work_order_id path int true "Work Order ID"
// @Success 200 {object} map[string]string
// @Router /work_orders/{work_order_id} [delete]
func (h *WorkOrderHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("work_order_id"), 10, 32)
	if err := h.workOrderService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	h.dashboardService.InvalidateCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Work order deleted"})
}

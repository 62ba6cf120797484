package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmejia/opsledger-api/internal/services"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// @Summary List Booking Types
// @Tags Catalogs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalogs/booking_types [get]
func (h *CatalogHandler) BookingTypes(c *gin.Context) {
	types, err := h.catalogService.ListBookingTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_types": types})
}

// @Summary Create Booking Type
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param request body services.CatalogEntryInput true "Booking Type Data"
// @Success 201 {object} models.BookingType
// @Router /catalogs/booking_types [post]
func (h *CatalogHandler) CreateBookingType(c *gin.Context) {
	var input services.CatalogEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bt, err := h.catalogService.CreateBookingType(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking_type": bt})
}

// @Summary List Work Order Types
// @Tags Catalogs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalogs/work_order_types [get]
func (h *CatalogHandler) WorkOrderTypes(c *gin.Context) {
	types, err := h.catalogService.ListWorkOrderTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"work_order_types": types})
}

// @Summary Create Work Order Type
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param request body services.CatalogEntryInput true "Work Order Type Data"
// @Success 201 {object} models.WorkOrderType
// @Router /catalogs/work_order_types [post]
func (h *CatalogHandler) CreateWorkOrderType(c *gin.Context) {
	var input services.CatalogEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wt, err := h.catalogService.CreateWorkOrderType(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"work_order_type": wt})
}

// @Summary List Job Types
// @Tags Catalogs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalogs/job_types [get]
func (h *CatalogHandler) JobTypes(c *gin.Context) {
	types, err := h.catalogService.ListJobTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_types": types})
}

// @Summary Create Job Type
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param request body services.CatalogEntryInput true "Job Type Data"
// @Success 201 {object} models.JobType
// @Router /catalogs/job_types [post]
func (h *CatalogHandler) CreateJobType(c *gin.Context) {
	var input services.CatalogEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jt, err := h.catalogService.CreateJobType(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job_type": jt})
}

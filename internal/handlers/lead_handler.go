package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/services"
)

type LeadHandler struct {
	leadService *services.LeadService
}

func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// @Summary List Leads
// @Description Get a paginated list of leads
// @Tags Leads
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param status query string false "Filter by status"
// @Param lead_type query string false "Filter by lead type"
// @Success 200 {object} map[string]interface{}
// @Router /leads [get]
func (h *LeadHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["status"] = c.Query("status")
	query.Filters["lead_type"] = c.Query("lead_type")

	leads, total, err := h.leadService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads, "pagination": gin.H{"total": total}})
}

// @Summary Get Lead
// @Description Get a lead by ID
// @Tags Leads
// @Produce json
// @Param lead_id path int true "Lead ID"
// @Success 200 {object} models.Lead
// @Failure 404 {object} map[string]string
// @Router /leads/{lead_id} [get]
func (h *LeadHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lead_id"), 10, 32)
	lead, err := h.leadService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// @Summary Create Lead
// @Description Create a new lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body services.LeadInput true "Lead Data"
// @Success 201 {object} models.Lead
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var input services.LeadInput
	if err := BindNestedOrFlat(c, "lead", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.leadService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lead": lead})
}

// @Summary Update Lead
// @Description Update an existing lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead_id path int true "Lead ID"
// @Param request body services.LeadInput true "Lead Data"
// @Success 200 {object} models.Lead
// @Router /leads/{lead_id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lead_id"), 10, 32)
	var input services.LeadInput
	if err := BindNestedOrFlat(c, "lead", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.leadService.Update(c.Request.Context(), uint(id), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// @Summary Convert Lead
// @Description Convert a lead into a customer
// @Tags Leads
// @Produce json
// @Param lead_id path int true "Lead ID"
// @Success 201 {object} models.Customer
// @Failure 409 {object} map[string]string
// @Router /leads/{lead_id}/convert [post]
func (h *LeadHandler) Convert(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lead_id"), 10, 32)
	customer, err := h.leadService.Convert(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

// @Summary Delete Lead
// @Description Delete a lead
// @Tags Leads
// @Produce json
// @Param lead_id path int true "Lead ID"
// @Success 200 {object} map[string]string
// @Router /leads/{lead_id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lead_id"), 10, 32)
	if err := h.leadService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted"})
}

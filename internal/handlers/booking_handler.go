package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/services"
)

type BookingHandler struct {
	bookingService   *services.BookingService
	dashboardService *services.DashboardService
}

func NewBookingHandler(bookingService *services.BookingService, dashboardService *services.DashboardService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, dashboardService: dashboardService}
}

// @Summary List Bookings
// @Description Get a paginated list of bookings
// @Tags Bookings
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param payment_status query string false "Filter by payment status"
// @Param customer_id query int false "Filter by customer"
// @Success 200 {object} map[string]interface{}
// @Router /bookings [get]
func (h *BookingHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["payment_status"] = c.Query("payment_status")
	query.Filters["customer_id"] = c.Query("customer_id")

	bookings, total, err := h.bookingService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"bookings": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Booking
// @Description Get a booking by ID
// @Tags Bookings
// @Produce json
// @Param booking_id path int true "Booking ID"
// @Success 200 {object} models.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{booking_id} [get]
func (h *BookingHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	booking, err := h.bookingService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking.ToResponse()})
}

// @Summary Create Booking
// @Description Create a booking; Paid or Partial status logs an income transaction
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body services.BookingInput true "Booking Data"
// @Success 201 {object} models.BookingResponse
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var input services.BookingInput
	if err := BindNestedOrFlat(c, "booking", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	h.dashboardService.InvalidateCache(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"booking": booking.ToResponse()})
}

// @Summary Update Booking
// @Description Update a booking's scheduling fields
// @Tags Bookings
// @Accept json
// @Produce json
// @Param booking_id path int true "Booking ID"
// @Param request body services.BookingUpdateInput true "Booking Data"
// @Success 200 {object} models.BookingResponse
// @Router /bookings/{booking_id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	var input services.BookingUpdateInput
	if err := BindNestedOrFlat(c, "booking", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.Update(c.Request.Context(), uint(id), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking.ToResponse()})
}

type updatePaymentStatusRequest struct {
	PaymentStatus string  `json:"payment_status"`
	PartialAmount float64 `json:"partial_amount"`
}

// @Summary Update Booking Payment Status
// @Description Transition payment status; Paid/Partial logs an income transaction
// @Tags Bookings
// @Accept json
// @Produce json
// @Param booking_id path int true "Booking ID"
// @Param request body updatePaymentStatusRequest true "New status"
// @Success 200 {object} models.BookingResponse
// @Failure 409 {object} map[string]string
// @Router /bookings/{booking_id}/payment_status [patch]
func (h *BookingHandler) UpdatePaymentStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.UpdatePaymentStatus(c.Request.Context(), uint(id), req.PaymentStatus, req.PartialAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	h.dashboardService.InvalidateCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"booking": booking.ToResponse()})
}

// @Summary Delete Booking
// @Description Delete a booking; logged transactions remain
// @Tags Bookings
// @Produce json
// @Param booking_id path int true "Booking ID"
// @Success 200 {object} map[string]string
// @Router /bookings/{booking_id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err := h.bookingService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	h.dashboardService.InvalidateCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"turfbook/middleware"
	"turfbook/models"
	"turfbook/services/booking"
	"turfbook/utils"
)

// ClaimSlotHandler is the public claim entry point. With a slot ID it runs
// the atomic claim; without one it records a custom, slot-less booking.
func (h *BookingHandler) ClaimSlotHandler(c *gin.Context) {
	var input booking.ClaimInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := middleware.GetActor(c)
	b, err := h.Service.ClaimSlot(c.Request.Context(), actor, input)
	if err != nil {
		utils.JSONError(c, statusFor(err), "failed to claim slot", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// ManualBookingHandler records a walk-in or phone booking.
func (h *BookingHandler) ManualBookingHandler(c *gin.Context) {
	var input models.ManualBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := middleware.GetActor(c)
	b, err := h.Service.CreateManualBooking(c.Request.Context(), actor, input)
	if err != nil {
		utils.JSONError(c, statusFor(err), "failed to record manual booking", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// TransitionBookingHandler applies a booking-status transition.
func (h *BookingHandler) TransitionBookingHandler(c *gin.Context) {
	var input struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := middleware.GetActor(c)
	b, err := h.Service.TransitionBooking(c.Request.Context(), actor, c.Param("bookingID"), input.Status)
	if err != nil {
		utils.JSONError(c, statusFor(err), "failed to transition booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// UpdateCustomerNameHandler corrects the display name on a booking.
func (h *BookingHandler) UpdateCustomerNameHandler(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := middleware.GetActor(c)
	b, err := h.Service.UpdateCustomerName(c.Request.Context(), actor, c.Param("bookingID"), input.Name)
	if err != nil {
		utils.JSONError(c, statusFor(err), "failed to update customer name", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// GetBookingHandler fetches one booking.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		utils.JSONError(c, statusFor(err), "failed to fetch booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListBookingsHandler returns bookings matching the query filter.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	filter := models.BookingFilter{
		Date:          c.Query("date"),
		Status:        models.BookingStatus(c.Query("status")),
		PaymentStatus: models.PaymentStatus(c.Query("paymentStatus")),
		Phone:         c.Query("phone"),
	}

	actor := middleware.GetActor(c)
	bookings, err := h.Service.ListBookings(c.Request.Context(), actor, filter)
	if err != nil {
		utils.JSONError(c, statusFor(err), "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

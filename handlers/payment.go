package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"turfbook/middleware"
	"turfbook/models"
	"turfbook/utils"
)

// SubmitPaymentHandler records a customer's UTR-style payment reference.
func (h *BookingHandler) SubmitPaymentHandler(c *gin.Context) {
	var input struct {
		TxnRef string `json:"txnRef" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := middleware.GetActor(c)
	b, err := h.Service.SubmitPayment(c.Request.Context(), actor, c.Param("bookingID"), input.TxnRef)
	if err != nil {
		utils.JSONError(c, statusFor(err), "failed to submit payment", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// VerifyPaymentHandler records the staff- or gateway-asserted outcome. The
// gateway integration verifies signatures upstream; this endpoint only
// consumes the verified/failed signal.
func (h *BookingHandler) VerifyPaymentHandler(c *gin.Context) {
	var input struct {
		Outcome models.PaymentStatus `json:"outcome" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := middleware.GetActor(c)
	b, err := h.Service.VerifyPayment(c.Request.Context(), actor, c.Param("bookingID"), input.Outcome)
	if err != nil {
		utils.JSONError(c, statusFor(err), "failed to record payment outcome", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

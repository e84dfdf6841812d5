package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"turfbook/middleware"
	"turfbook/utils"
)

// CreateSlotHandler deploys a single slot.
func (h *BookingHandler) CreateSlotHandler(c *gin.Context) {
	var input struct {
		Date  string `json:"date" binding:"required"`
		Start int    `json:"start"`
		End   int    `json:"end" binding:"required"`
		Price int    `json:"price"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := middleware.GetActor(c)
	slot, err := h.Service.CreateSlot(c.Request.Context(), actor, input.Date, input.Start, input.End, input.Price)
	if err != nil {
		utils.JSONError(c, statusFor(err), "failed to create slot", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

// DeploySlotsHandler carves a day into fixed-length slots.
func (h *BookingHandler) DeploySlotsHandler(c *gin.Context) {
	var input struct {
		Date        string `json:"date" binding:"required"`
		Open        int    `json:"open"`
		Close       int    `json:"close" binding:"required"`
		SlotMinutes int    `json:"slotMinutes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := middleware.GetActor(c)
	slots, err := h.Service.DeploySlots(c.Request.Context(), actor, input.Date, input.Open, input.Close, input.SlotMinutes)
	if err != nil {
		utils.JSONError(c, statusFor(err), "failed to deploy slots", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slots": slots, "count": len(slots)})
}

// DeleteSlotHandler removes a free slot.
func (h *BookingHandler) DeleteSlotHandler(c *gin.Context) {
	actor := middleware.GetActor(c)
	if err := h.Service.DeleteSlot(c.Request.Context(), actor, c.Param("slotID")); err != nil {
		utils.JSONError(c, statusFor(err), "failed to delete slot", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// AssignStaffHandler points a slot at a staff identifier.
func (h *BookingHandler) AssignStaffHandler(c *gin.Context) {
	var input struct {
		StaffID string `json:"staffId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := middleware.GetActor(c)
	if err := h.Service.AssignStaff(c.Request.Context(), actor, c.Param("slotID"), input.StaffID); err != nil {
		utils.JSONError(c, statusFor(err), "failed to assign staff", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"assigned": true})
}

// ListSlotsHandler returns the slots for a date (all dates when omitted).
func (h *BookingHandler) ListSlotsHandler(c *gin.Context) {
	slots, err := h.Service.ListSlots(c.Request.Context(), c.Query("date"))
	if err != nil {
		utils.JSONError(c, statusFor(err), "failed to list slots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"turfbook/handlers"
	"turfbook/middleware"
)

// RegisterRoutes wires every endpoint of the booking engine.
func RegisterRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.ActorMiddleware())

	// Public endpoints: browsing and the claim/payment flow.
	api.GET("/slots", h.ListSlotsHandler)
	api.POST("/bookings/claim", h.ClaimSlotHandler)
	api.GET("/bookings/:bookingID", h.GetBookingHandler)
	api.POST("/bookings/:bookingID/payment", h.SubmitPaymentHandler)
	// Customers may cancel through the same transition endpoint; the engine
	// enforces which edges their role is allowed to take.
	api.PUT("/bookings/:bookingID/status", h.TransitionBookingHandler)

	// Staff endpoints.
	staff := api.Group("")
	staff.Use(middleware.RequireTrusted())
	{
		staff.POST("/slots", h.CreateSlotHandler)
		staff.POST("/slots/deploy", h.DeploySlotsHandler)
		staff.DELETE("/slots/:slotID", h.DeleteSlotHandler)
		staff.PUT("/slots/:slotID/staff", h.AssignStaffHandler)

		staff.POST("/bookings/manual", h.ManualBookingHandler)
		staff.GET("/bookings", h.ListBookingsHandler)
		staff.PUT("/bookings/:bookingID/payment/verify", h.VerifyPaymentHandler)
		staff.PATCH("/bookings/:bookingID/name", h.UpdateCustomerNameHandler)
	}
}

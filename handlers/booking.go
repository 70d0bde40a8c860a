package handlers

import (
	"net/http"
	"time"

	bookingRepo "zmina/database/repository/booking"
	"zmina/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes read access to bookings and their audit trails.
type BookingHandler struct {
	Bookings bookingRepo.BookingRepository
}

func NewBookingHandler(repo bookingRepo.BookingRepository) *BookingHandler {
	return &BookingHandler{Bookings: repo}
}

// ListBookingsHandler returns bookings within a date range. Defaults to the
// next ten days when no range is given.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	now := time.Now()
	from := c.DefaultQuery("from", now.Format("2006-01-02"))
	to := c.DefaultQuery("to", now.AddDate(0, 0, 10).Format("2006-01-02"))

	if _, err := time.Parse("2006-01-02", from); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid 'from' date", from)
		return
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid 'to' date", to)
		return
	}

	bookings, err := h.Bookings.GetByDateRange(c.Request.Context(), from, to)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// BookingChangesHandler returns the audit trail of one booking, newest first.
func (h *BookingHandler) BookingChangesHandler(c *gin.Context) {
	id := c.Param("id")
	entries, err := h.Bookings.AuditForBooking(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load audit trail", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"changes": entries})
}

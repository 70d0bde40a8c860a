package routes

import (
	"zmina/handlers"
	"zmina/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router needs.
type HandlerBundle struct {
	Chat    *handlers.ChatHandler
	Booking *handlers.BookingHandler
	Admin   *handlers.AdminHandler
}

// RegisterRoutes wires all endpoints.
func RegisterRoutes(r *gin.Engine, b *HandlerBundle) {
	r.Use(cors.Default())

	r.GET("/health", handlers.HealthHandler)

	chat := r.Group("/api/chat")
	chat.Use(middleware.JWTAuthStaffMiddleware())
	{
		chat.POST("/message", b.Chat.HandleChatMessage)
		chat.POST("/reset", b.Chat.HandleChatReset)
	}

	admin := r.Group("/api")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		admin.GET("/bookings", b.Booking.ListBookingsHandler)
		admin.GET("/bookings/:id/changes", b.Booking.BookingChangesHandler)
		admin.POST("/admin/assignments", b.Admin.SetAssignmentsHandler)
		admin.POST("/admin/staff", b.Admin.UpsertStaffHandler)
	}
}

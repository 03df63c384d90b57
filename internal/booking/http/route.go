package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts booking routes under /enterprises/:email/bookings.
// adminMiddleware runs after authMiddleware on every non-public route, in
// order.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc, adminMiddleware ...gin.HandlerFunc) {
	group := g.Group("/enterprises/:email/bookings")

	// === Public Routes ===
	group.POST("", h.Create)

	// === Authenticated Routes ===
	admin := group.Group("", append([]gin.HandlerFunc{authMiddleware}, adminMiddleware...)...)
	{
		admin.GET("", h.List)
		admin.PATCH("/:id/status", h.UpdateStatus)
		admin.DELETE("/:id", h.Delete)
	}
}

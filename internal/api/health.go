package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthSource is what the liveness endpoint reports on.
type HealthSource interface {
	PrimaryUp() bool
	PendingLocal() map[string]int
}

type healthResponse struct {
	Status        string `json:"status"`
	PrimaryStore  string `json:"primary_store"`
	FallbackItems int    `json:"fallback_items"`
}

// Health always answers 200 while the process serves traffic; a degraded
// primary store is reported in the body.
func Health(src HealthSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := healthResponse{Status: "ok", PrimaryStore: "up"}
		if !src.PrimaryUp() {
			resp.Status = "degraded"
			resp.PrimaryStore = "down"
		}
		for _, n := range src.PendingLocal() {
			resp.FallbackItems += n
		}
		c.JSON(http.StatusOK, resp)
	}
}

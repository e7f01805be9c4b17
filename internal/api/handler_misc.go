package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ListPeople handles GET /api/people.
func (h *Handler) ListPeople(c *gin.Context) {
	people, err := h.store.ListPeople(c.Request.Context())
	if err != nil {
		failStore(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sucesso": true, "dados": people})
}

// Health handles GET /api/health. It probes the store: acquire a
// connection, ping, release.
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "indisponível",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"servico":   "API Backend KeyControl",
	})
}

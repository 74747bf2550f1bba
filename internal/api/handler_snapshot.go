package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSnapshot returns the whole registry in one payload.
func (h *Handler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot())
}

// GetKPIs returns the yard's aggregate figures.
func (h *Handler) GetKPIs(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.KPIs())
}

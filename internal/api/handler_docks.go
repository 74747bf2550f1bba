package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDocks reports dock occupancy, availability and the maintenance set.
func (h *Handler) GetDocks(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Docks())
}

type maintenanceRequest struct {
	DockIDs []string `json:"dockIds"`
}

// PutMaintenance replaces the set of docks that are out of service.
func (h *Handler) PutMaintenance(c *gin.Context) {
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SetMaintenanceDocks(c.Request.Context(), req.DockIDs); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

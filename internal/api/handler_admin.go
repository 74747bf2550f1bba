package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dockflow-backend/internal/yard"
)

type supplierRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" binding:"required"`
}

// PostSupplier creates a supplier, or renames it when an existing id is given.
func (h *Handler) PostSupplier(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sup, err := h.svc.UpsertSupplier(c.Request.Context(), req.ID, req.Name)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, sup)
}

// DeleteSupplier removes a supplier. Vehicles keep their supplier id and
// render with the unknown-supplier placeholder afterwards.
func (h *Handler) DeleteSupplier(c *gin.Context) {
	if err := h.svc.DeleteSupplier(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSuppliers lists the suppliers in collection order.
func (h *Handler) GetSuppliers(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot().Suppliers)
}

// GetShifts lists the shift reference data.
func (h *Handler) GetShifts(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot().Shifts)
}

// PutStatusTexts overrides display labels. The body is a status-to-label
// map; listed statuses change, the rest keep their current label. The batch
// applies as a whole or not at all.
func (h *Handler) PutStatusTexts(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one status label is required"})
		return
	}

	labels := make(map[yard.Status]string, len(req))
	for status, label := range req {
		labels[yard.Status(status)] = label
	}
	if err := h.svc.SetStatusTexts(c.Request.Context(), labels); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dockflow-backend/internal/yard"
)

type registerVehicleRequest struct {
	RegistrationNumber string `json:"registrationNumber" binding:"required"`
	SupplierID         string `json:"supplierId" binding:"required"`
	ASN                string `json:"asn"`
}

// PostVehicle registers a newly arrived vehicle into the staging area.
func (h *Handler) PostVehicle(c *gin.Context) {
	var req registerVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.svc.RegisterArrival(c.Request.Context(), yard.ArrivalInput{
		RegistrationNumber: req.RegistrationNumber,
		SupplierID:         req.SupplierID,
		ASN:                req.ASN,
	})
	if err != nil {
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, v)
}

// GetVehicles returns the enriched vehicle list, newest first.
func (h *Handler) GetVehicles(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Vehicles())
}

type callInRequest struct {
	DockID string `json:"dockId" binding:"required"`
}

// PostCallIn moves a staging vehicle to a dock.
func (h *Handler) PostCallIn(c *gin.Context) {
	var req callInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.CallInToDock(c.Request.Context(), c.Param("id"), req.DockID); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type assignResourcesRequest struct {
	DriverName            string `json:"driverName" binding:"required"`
	AssignedDock          string `json:"assignedDock" binding:"required"`
	LoadmenCount          int    `json:"loadmenCount" binding:"required"`
	CleaningCrewAvailable bool   `json:"cleaningCrewAvailable"`
}

// PostResources assigns unloading resources and starts the unloading phase.
func (h *Handler) PostResources(c *gin.Context) {
	var req assignResourcesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.AssignResources(c.Request.Context(), c.Param("id"), yard.ResourceInput{
		DriverName:            req.DriverName,
		AssignedDock:          req.AssignedDock,
		LoadmenCount:          req.LoadmenCount,
		CleaningCrewAvailable: req.CleaningCrewAvailable,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PostComplete ends the unloading phase.
func (h *Handler) PostComplete(c *gin.Context) {
	if err := h.svc.CompleteUnloading(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PostDepart records the vehicle leaving the yard.
func (h *Handler) PostDepart(c *gin.Context) {
	if err := h.svc.MarkDeparted(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type remarksRequest struct {
	Remarks string `json:"remarks"`
}

// PutRemarks replaces a vehicle's delay note.
func (h *Handler) PutRemarks(c *gin.Context) {
	var req remarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SetDelayRemark(c.Request.Context(), c.Param("id"), req.Remarks); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteVehicle removes a vehicle from the registry.
func (h *Handler) DeleteVehicle(c *gin.Context) {
	if err := h.svc.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

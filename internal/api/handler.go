package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"dockflow-backend/internal/service"
	"dockflow-backend/internal/store"
	"dockflow-backend/internal/yard"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc     *service.Service
	store   store.Store
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(svc *service.Service, s store.Store, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		svc:     svc,
		store:   s,
		webpush: webpushOptions,
	}
}

// writeErr translates a yard error into an HTTP response.
func writeErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, yard.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, yard.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, yard.ErrInvalidTransition), errors.Is(err, yard.ErrDockUnavailable):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"dockflow-backend/config"
	"dockflow-backend/internal/mw"
	"dockflow-backend/internal/service"
	"dockflow-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, svc *service.Service, s store.Store, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(svc, s, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter, mw.FlushOnWrite(cacheStore))
	{
		api.POST("/vehicles", handler.PostVehicle)
		api.GET("/vehicles", handler.GetVehicles)
		api.POST("/vehicles/:id/dock", handler.PostCallIn)
		api.POST("/vehicles/:id/resources", handler.PostResources)
		api.POST("/vehicles/:id/complete", handler.PostComplete)
		api.POST("/vehicles/:id/depart", handler.PostDepart)
		api.PUT("/vehicles/:id/remarks", handler.PutRemarks)
		api.DELETE("/vehicles/:id", handler.DeleteVehicle)

		api.GET("/docks", handler.GetDocks)
		api.PUT("/docks/maintenance", handler.PutMaintenance)

		api.GET("/snapshot", handler.GetSnapshot)
		api.GET("/kpis", caching, handler.GetKPIs)
		api.GET("/report", caching, handler.GetReport)
		api.GET("/report/csv", handler.GetReportCSV)

		api.GET("/suppliers", handler.GetSuppliers)
		api.POST("/suppliers", handler.PostSupplier)
		api.DELETE("/suppliers/:id", handler.DeleteSupplier)
		api.GET("/shifts", caching, handler.GetShifts)
		api.PUT("/status-texts", handler.PutStatusTexts)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}

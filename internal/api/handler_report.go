package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dockflow-backend/internal/yard"
)

// GetReport returns the report projection as JSON: a header row plus one row
// per vehicle, newest first.
func (h *Handler) GetReport(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"header": yard.ReportHeader,
		"rows":   h.svc.ReportRows(),
	})
}

// GetReportCSV streams the report as a CSV download.
func (h *Handler) GetReportCSV(c *gin.Context) {
	filename := fmt.Sprintf("dockflow_report_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := yard.WriteCSV(c.Writer, h.svc.ReportRows()); err != nil {
		// Headers are already written, so just record the error.
		c.Error(err)
	}
}

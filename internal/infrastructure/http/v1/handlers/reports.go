package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"locafest/internal/core/apperror"
	"locafest/internal/domain/cashflow"
	"locafest/internal/domain/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves dashboard aggregates and XLSX exports.
type ReportHandler struct {
	*BaseHandler
	reports *report.Service
}

func NewReportHandler(base *BaseHandler, reports *report.Service) *ReportHandler {
	return &ReportHandler{BaseHandler: base, reports: reports}
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	dash, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// ExportCashFlow streams the filtered ledger as an XLSX download.
func (h *ReportHandler) ExportCashFlow(c *gin.Context) {
	filter := cashflow.Filter{
		Search: c.Query("search"),
	}
	if v := c.Query("kind"); v != "" {
		kind := cashflow.Kind(v)
		filter.Kind = &kind
	}
	if v := c.Query("dateFrom"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.Error(c, apperror.NewValidation("dateFrom must be YYYY-MM-DD"))
			return
		}
		filter.DateFrom = &from
	}
	if v := c.Query("dateTo"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.Error(c, apperror.NewValidation("dateTo must be YYYY-MM-DD"))
			return
		}
		filter.DateTo = &to
	}

	data, err := h.reports.ExportCashFlow(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("cashflow-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ExportInventory streams the stock position as an XLSX download.
func (h *ReportHandler) ExportInventory(c *gin.Context) {
	data, err := h.reports.ExportInventory(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

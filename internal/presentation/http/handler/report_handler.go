package handler

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/jeneeldumasia/mp/internal/application/service"
	"github.com/jeneeldumasia/mp/internal/presentation/http/dto/request"
	"github.com/jeneeldumasia/mp/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles sales reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily returns the summary of one day
func (h *ReportHandler) Daily(c *gin.Context) {
	var q request.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	summary, err := h.reportService.DailySummary(c.Request.Context(), dateOrToday(q.Date))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Daily report retrieved", summary)
}

// Weekly returns the Monday to Sunday total of the week containing date
func (h *ReportHandler) Weekly(c *gin.Context) {
	var q request.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	ref, err := service.ParseDate("date", dateOrToday(q.Date))
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.reportService.WeeklySummary(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Weekly report retrieved", summary)
}

// ExportDaily downloads the sales of one day as a spreadsheet
func (h *ReportHandler) ExportDaily(c *gin.Context) {
	var q request.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	date := dateOrToday(q.Date)

	var buf bytes.Buffer
	if err := h.reportService.ExportDailyXLSX(c.Request.Context(), date, &buf); err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "sales-"+date+".xlsx", xlsxContentType, buf.Bytes())
}

// Range returns the sale totals of an inclusive date range
func (h *ReportHandler) Range(c *gin.Context) {
	var q request.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "start and end are required")
		return
	}

	totals, err := h.reportService.SalesForDateRange(c.Request.Context(), q.Start, q.End)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales totals retrieved", gin.H{
		"start":  q.Start,
		"end":    q.End,
		"count":  len(totals),
		"total":  decimal.Sum(decimal.Zero, totals...),
		"totals": totals,
	})
}

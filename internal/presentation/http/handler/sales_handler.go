package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jeneeldumasia/mp/internal/application/service"
	"github.com/jeneeldumasia/mp/internal/presentation/http/dto/request"
	"github.com/jeneeldumasia/mp/internal/presentation/http/dto/response"
	"github.com/jeneeldumasia/mp/pkg/pagination"
)

// SalesHandler handles recorded sales
type SalesHandler struct {
	reportService  *service.ReportService
	printerService *service.PrinterService
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(reportService *service.ReportService, printerService *service.PrinterService) *SalesHandler {
	return &SalesHandler{reportService: reportService, printerService: printerService}
}

// ListByDate returns the sales of one day, newest first
func (h *SalesHandler) ListByDate(c *gin.Context) {
	var q request.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	sales, err := h.reportService.SalesForDate(c.Request.Context(), dateOrToday(q.Date))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales retrieved", sales)
}

// History returns every sale one page at a time
func (h *SalesHandler) History(c *gin.Context) {
	params := pagination.Defaults()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.reportService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Sales retrieved", result)
}

// Get returns one sale with its receipt preview
func (h *SalesHandler) Get(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}

	printed, err := h.printerService.PreviewSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved", printed)
}

// Reprint prints the receipt of a past sale again
func (h *SalesHandler) Reprint(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}

	printed, err := h.printerService.ReprintSale(c.Request.Context(), id)
	if err != nil {
		// the receipt was built but the printer failed
		if printed != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": printed,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt reprinted", gin.H{"receipt": printed})
}

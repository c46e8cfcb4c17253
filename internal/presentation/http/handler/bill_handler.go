package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jeneeldumasia/mp/internal/application/service"
	"github.com/jeneeldumasia/mp/internal/domain/enum"
	"github.com/jeneeldumasia/mp/internal/presentation/http/dto/request"
	"github.com/jeneeldumasia/mp/internal/presentation/http/dto/response"
	"github.com/jeneeldumasia/mp/pkg/apperror"
)

// BillHandler handles the live bill of the till
type BillHandler struct {
	billingService *service.BillingService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingService *service.BillingService) *BillHandler {
	return &BillHandler{billingService: billingService}
}

// Get returns the current bill
func (h *BillHandler) Get(c *gin.Context) {
	response.OK(c, "Bill retrieved", h.billingService.View(c.Request.Context()))
}

// AddItem adds one unit of a menu item
func (h *BillHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.billingService.AddMenuItem(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", view)
}

// UpdateQuantity changes the quantity of one line
func (h *BillHandler) UpdateQuantity(c *gin.Context) {
	var req request.UpdateQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	view := h.billingService.UpdateQuantity(c.Request.Context(), c.Param("name"), req.Delta)
	response.OK(c, "Quantity updated", view)
}

// SetOptions changes the discount and GST toggle
func (h *BillHandler) SetOptions(c *gin.Context) {
	var req request.BillOptionsRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.billingService.SetOptions(c.Request.Context(), &service.BillOptionsInput{
		DiscountPercent: req.DiscountPercent,
		ApplyTax:        req.ApplyTax,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill options updated", view)
}

// Clear abandons the current bill
func (h *BillHandler) Clear(c *gin.Context) {
	response.OK(c, "Bill cleared", h.billingService.Clear(c.Request.Context()))
}

// Complete records the bill as a sale and prints the receipt
func (h *BillHandler) Complete(c *gin.Context) {
	var req request.CompleteSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	method, err := enum.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		response.Error(c, apperror.NewFieldError("payment_method", "must be Cash or UPI"))
		return
	}

	result, err := h.billingService.Complete(c.Request.Context(), &service.CompleteSaleInput{
		PaymentMethod: method,
		CashReceived:  req.CashReceived,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Sale completed"
	if result.PrintWarning != "" {
		message = "Sale completed but printing failed"
	}
	response.Success(c, http.StatusCreated, message, result)
}

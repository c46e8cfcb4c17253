package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jeneeldumasia/mp/internal/application/service"
	"github.com/jeneeldumasia/mp/internal/presentation/http/dto/request"
	"github.com/jeneeldumasia/mp/internal/presentation/http/dto/response"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the shop settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	response.OK(c, "Settings retrieved successfully", h.settingsService.ShopSettings(c.Request.Context()))
}

// Unlock checks the settings password and issues a token
func (h *SettingsHandler) Unlock(c *gin.Context) {
	var req request.UnlockRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.settingsService.Unlock(c.Request.Context(), req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings unlocked", result)
}

// UpdateSettings changes the shop settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	settings, err := h.settingsService.UpdateShopSettings(c.Request.Context(), &service.UpdateShopSettingsInput{
		ShopName:       req.ShopName,
		CurrencySymbol: req.CurrencySymbol,
		BillFooter:     req.BillFooter,
		GSTRate:        req.GSTRate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings updated successfully", settings)
}

// ChangePassword replaces the settings password
func (h *SettingsHandler) ChangePassword(c *gin.Context) {
	var req request.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.settingsService.ChangePassword(c.Request.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password changed successfully", nil)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jeneeldumasia/mp/internal/application/service"
	"github.com/jeneeldumasia/mp/internal/presentation/http/dto/request"
	"github.com/jeneeldumasia/mp/internal/presentation/http/dto/response"
)

// maxImportSize bounds an uploaded menu workbook
const maxImportSize = 5 << 20

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// List returns the menu
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.menuService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu retrieved successfully", items)
}

// Replace swaps the whole menu
func (h *MenuHandler) Replace(c *gin.Context) {
	var req request.ReplaceMenuRequest
	if !bindJSON(c, &req) {
		return
	}

	rows := make([]service.MenuRowInput, len(req.Rows))
	for i, row := range req.Rows {
		rows[i] = service.MenuRowInput{Name: row.Name, Price: row.Price}
	}

	items, err := h.menuService.ReplaceMenu(c.Request.Context(), rows)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu saved successfully", items)
}

// Import replaces the menu from an uploaded spreadsheet
func (h *MenuHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A spreadsheet must be uploaded as \"file\"")
		return
	}
	if fileHeader.Size > maxImportSize {
		response.BadRequest(c, "Spreadsheet is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Cannot read uploaded file")
		return
	}
	defer file.Close()

	items, err := h.menuService.ImportXLSX(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu imported successfully", items)
}

// Upsert adds an item or changes its price
func (h *MenuHandler) Upsert(c *gin.Context) {
	var req request.UpsertMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.menuService.Upsert(c.Request.Context(), c.Param("name"), req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item saved successfully", item)
}

// Delete removes an item from the menu
func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.menuService.Delete(c.Request.Context(), c.Param("name")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item deleted successfully", nil)
}

package request

// MenuRow is one editable menu row
type MenuRow struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// ReplaceMenuRequest replaces the whole menu
type ReplaceMenuRequest struct {
	Rows []MenuRow `json:"rows" binding:"required"`
}

// UpsertMenuItemRequest sets the price of one item
type UpsertMenuItemRequest struct {
	Price string `json:"price" binding:"required"`
}

package request

// UnlockRequest exchanges the settings password for a token
type UnlockRequest struct {
	Password string `json:"password" binding:"required"`
}

// UpdateSettingsRequest represents a shop settings change; omitted fields are kept
type UpdateSettingsRequest struct {
	ShopName       *string `json:"shop_name"`
	CurrencySymbol *string `json:"currency_symbol"`
	BillFooter     *string `json:"bill_footer"`
	GSTRate        *string `json:"gst_rate"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/internal/domain/repository"
	"github.com/jeneeldumasia/mp/pkg/apperror"
	"github.com/jeneeldumasia/mp/pkg/logger"
	"github.com/jeneeldumasia/mp/pkg/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Fallbacks used when a config key is missing or unreadable
const (
	DefaultShopName       = "MISTY PAV BHAJI"
	DefaultGSTRate        = "5.0"
	DefaultCurrencySymbol = "₹"
	DefaultBillFooter     = "Thank you! Visit again!"
)

var maxGSTRate = decimal.NewFromInt(100)

// SettingsService is the shop-wide key/value configuration store plus the
// password gate in front of settings and menu edits
type SettingsService struct {
	configRepo repository.ConfigRepository
	jwtManager *utils.JWTManager
	log        *logger.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(configRepo repository.ConfigRepository, jwtManager *utils.JWTManager, log *logger.Logger) *SettingsService {
	return &SettingsService{
		configRepo: configRepo,
		jwtManager: jwtManager,
		log:        log.WithComponent("settings"),
	}
}

// Get returns the stored value for key, or def when the key is missing or
// the store fails. It never returns an error.
func (s *SettingsService) Get(ctx context.Context, key, def string) string {
	entry, err := s.configRepo.Get(ctx, key)
	if err != nil {
		s.log.Warn("config lookup failed, using default", "key", key, "error", err)
		return def
	}
	if entry == nil {
		return def
	}
	return entry.Value
}

// Set creates or replaces the value for key
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	if err := s.configRepo.Upsert(ctx, &entity.ConfigEntry{Key: key, Value: value}); err != nil {
		return apperror.NewPersistenceError("save setting "+key, err)
	}
	return nil
}

// TaxRate returns the configured GST percentage. An unparsable value falls
// back to the default rate.
func (s *SettingsService) TaxRate(ctx context.Context) decimal.Decimal {
	raw := s.Get(ctx, entity.ConfigGSTRate, DefaultGSTRate)
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		s.log.Warn("invalid gst_rate in config, using default", "value", raw)
		return decimal.RequireFromString(DefaultGSTRate)
	}
	return rate
}

// ShopSettings is the typed view of the shop configuration
type ShopSettings struct {
	ShopName       string          `json:"shop_name"`
	CurrencySymbol string          `json:"currency_symbol"`
	BillFooter     string          `json:"bill_footer"`
	GSTRate        decimal.Decimal `json:"gst_rate"`
}

// ShopSettings reads every display setting
func (s *SettingsService) ShopSettings(ctx context.Context) *ShopSettings {
	return &ShopSettings{
		ShopName:       s.Get(ctx, entity.ConfigShopName, DefaultShopName),
		CurrencySymbol: s.Get(ctx, entity.ConfigCurrencySymbol, DefaultCurrencySymbol),
		BillFooter:     s.Get(ctx, entity.ConfigBillFooter, DefaultBillFooter),
		GSTRate:        s.TaxRate(ctx),
	}
}

// ReceiptHeader returns the shop details printed on receipts
func (s *SettingsService) ReceiptHeader(ctx context.Context) entity.ReceiptHeader {
	shop := s.ShopSettings(ctx)
	return entity.ReceiptHeader{
		ShopName: shop.ShopName,
		Footer:   shop.BillFooter,
		Currency: shop.CurrencySymbol,
	}
}

// UpdateShopSettingsInput holds the fields to change; nil fields are kept
type UpdateShopSettingsInput struct {
	ShopName       *string
	CurrencySymbol *string
	BillFooter     *string
	GSTRate        *string
}

// UpdateShopSettings validates and stores the given settings in one write
func (s *SettingsService) UpdateShopSettings(ctx context.Context, input *UpdateShopSettingsInput) (*ShopSettings, error) {
	var fieldErrors []apperror.FieldError
	var entries []entity.ConfigEntry

	if input.ShopName != nil {
		name := strings.TrimSpace(*input.ShopName)
		if name == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "shop_name", Message: "cannot be empty"})
		}
		entries = append(entries, entity.ConfigEntry{Key: entity.ConfigShopName, Value: name})
	}
	if input.CurrencySymbol != nil {
		symbol := strings.TrimSpace(*input.CurrencySymbol)
		if symbol == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "currency_symbol", Message: "cannot be empty"})
		}
		entries = append(entries, entity.ConfigEntry{Key: entity.ConfigCurrencySymbol, Value: symbol})
	}
	if input.BillFooter != nil {
		entries = append(entries, entity.ConfigEntry{Key: entity.ConfigBillFooter, Value: *input.BillFooter})
	}
	if input.GSTRate != nil {
		raw := strings.TrimSpace(*input.GSTRate)
		rate, err := decimal.NewFromString(raw)
		switch {
		case err != nil:
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "gst_rate", Message: "must be a number"})
		case rate.IsNegative() || rate.GreaterThan(maxGSTRate):
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "gst_rate", Message: "must be between 0 and 100"})
		}
		entries = append(entries, entity.ConfigEntry{Key: entity.ConfigGSTRate, Value: raw})
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	if err := s.configRepo.UpsertMany(ctx, entries); err != nil {
		return nil, apperror.NewPersistenceError("save settings", err)
	}

	s.log.Info("shop settings updated", "keys", len(entries))
	return s.ShopSettings(ctx), nil
}

// VerifyPassword checks password against the stored one. Values that are
// not bcrypt hashes are compared as plain text.
func (s *SettingsService) VerifyPassword(ctx context.Context, password string) bool {
	stored := s.Get(ctx, entity.ConfigPassword, "")
	if stored == "" {
		return false
	}
	if _, err := bcrypt.Cost([]byte(stored)); err == nil {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// ChangePassword replaces the settings password after checking the current one
func (s *SettingsService) ChangePassword(ctx context.Context, current, next string) error {
	if !s.VerifyPassword(ctx, current) {
		return apperror.ErrWrongPassword
	}
	if len(strings.TrimSpace(next)) < 4 {
		return apperror.NewFieldError("new_password", "must be at least 4 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewAppError(http.StatusInternalServerError, "Failed to hash password")
	}
	if err := s.Set(ctx, entity.ConfigPassword, string(hash)); err != nil {
		return err
	}

	s.log.Info("settings password changed")
	return nil
}

// UnlockResult is the token granting settings access
type UnlockResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Unlock exchanges the settings password for a short-lived token
func (s *SettingsService) Unlock(ctx context.Context, password string) (*UnlockResult, error) {
	if !s.VerifyPassword(ctx, password) {
		s.log.Warn("settings unlock rejected")
		return nil, apperror.ErrWrongPassword
	}

	token, expiresAt, err := s.jwtManager.GenerateToken(utils.ScopeSettings)
	if err != nil {
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Failed to issue token")
	}
	return &UnlockResult{Token: token, ExpiresAt: expiresAt}, nil
}

// Authorize validates a settings token
func (s *SettingsService) Authorize(token string) error {
	claims, err := s.jwtManager.ValidateToken(token)
	switch {
	case errors.Is(err, utils.ErrTokenExpired):
		return apperror.ErrTokenExpired
	case err != nil, claims.Scope != utils.ScopeSettings:
		return apperror.ErrInvalidToken
	}
	return nil
}

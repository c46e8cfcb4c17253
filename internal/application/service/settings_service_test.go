package service

import (
	"context"
	"testing"
	"time"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/internal/infrastructure/repository"
	"github.com/jeneeldumasia/mp/pkg/apperror"
	"github.com/jeneeldumasia/mp/pkg/logger"
	"github.com/jeneeldumasia/mp/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSettingsGetFallsBackToDefault(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.Equal(t, "MISTY PAV BHAJI", env.settings.Get(ctx, entity.ConfigShopName, "x"))
	assert.Equal(t, "fallback", env.settings.Get(ctx, "no_such_key", "fallback"))
}

func TestSettingsGetNeverFailsOutward(t *testing.T) {
	svc := NewSettingsService(failingConfigRepo{}, utils.NewJWTManager("s", "mp", time.Minute), logger.Nop())
	ctx := context.Background()

	assert.Equal(t, "dflt", svc.Get(ctx, entity.ConfigShopName, "dflt"))
	assert.True(t, svc.TaxRate(ctx).Equal(dec(DefaultGSTRate)))
	assert.False(t, svc.VerifyPassword(ctx, "1234"))
}

func TestSettingsSetAndTaxRate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.True(t, env.settings.TaxRate(ctx).Equal(dec("5")))

	require.NoError(t, env.settings.Set(ctx, entity.ConfigGSTRate, "12.5"))
	assert.True(t, env.settings.TaxRate(ctx).Equal(dec("12.5")))

	require.NoError(t, env.settings.Set(ctx, entity.ConfigGSTRate, "abc"))
	assert.True(t, env.settings.TaxRate(ctx).Equal(dec("5")))
}

func TestUpdateShopSettings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	shop, err := env.settings.UpdateShopSettings(ctx, &UpdateShopSettingsInput{
		ShopName:   strPtr("  CORNER CAFE "),
		BillFooter: strPtr("Come again"),
		GSTRate:    strPtr("18"),
	})
	require.NoError(t, err)
	assert.Equal(t, "CORNER CAFE", shop.ShopName)
	assert.Equal(t, "Come again", shop.BillFooter)
	assert.Equal(t, "₹", shop.CurrencySymbol)
	assert.True(t, shop.GSTRate.Equal(dec("18")))
}

func TestUpdateShopSettingsValidation(t *testing.T) {
	tests := []struct {
		name  string
		input UpdateShopSettingsInput
		field string
	}{
		{"non numeric gst", UpdateShopSettingsInput{GSTRate: strPtr("five")}, "gst_rate"},
		{"gst above 100", UpdateShopSettingsInput{GSTRate: strPtr("150")}, "gst_rate"},
		{"negative gst", UpdateShopSettingsInput{GSTRate: strPtr("-1")}, "gst_rate"},
		{"blank shop name", UpdateShopSettingsInput{ShopName: strPtr("  ")}, "shop_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			input := tt.input
			input.BillFooter = strPtr("should not be saved")

			_, err := env.settings.UpdateShopSettings(ctx, &input)
			require.True(t, apperror.IsValidationError(err))
			assert.Equal(t, tt.field, apperror.GetAppError(err).Errors[0].Field)
			assert.Equal(t, DefaultBillFooter, env.settings.Get(ctx, entity.ConfigBillFooter, ""))
		})
	}
}

func TestPasswordUnlockFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.True(t, env.settings.VerifyPassword(ctx, "1234"))
	assert.False(t, env.settings.VerifyPassword(ctx, "0000"))

	_, err := env.settings.Unlock(ctx, "0000")
	assert.ErrorIs(t, err, apperror.ErrWrongPassword)

	res, err := env.settings.Unlock(ctx, "1234")
	require.NoError(t, err)
	assert.NoError(t, env.settings.Authorize(res.Token))
	assert.ErrorIs(t, env.settings.Authorize("garbage"), apperror.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.ErrorIs(t, env.settings.ChangePassword(ctx, "wrong", "5678"), apperror.ErrWrongPassword)
	assert.True(t, apperror.IsValidationError(env.settings.ChangePassword(ctx, "1234", "12")))

	require.NoError(t, env.settings.ChangePassword(ctx, "1234", "5678"))
	assert.False(t, env.settings.VerifyPassword(ctx, "1234"))
	assert.True(t, env.settings.VerifyPassword(ctx, "5678"))
}

func TestPlainTextPasswordStillVerifies(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewConfigRepository(db)
	require.NoError(t, repo.Upsert(context.Background(), &entity.ConfigEntry{Key: entity.ConfigPassword, Value: "letmein"}))
	svc := NewSettingsService(repo, utils.NewJWTManager("s", "mp", time.Minute), logger.Nop())

	assert.True(t, svc.VerifyPassword(context.Background(), "letmein"))
	assert.False(t, svc.VerifyPassword(context.Background(), "letmeout"))
}

func TestPlainTextPasswordLookingLikeHash(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewConfigRepository(db)
	require.NoError(t, repo.Upsert(context.Background(), &entity.ConfigEntry{Key: entity.ConfigPassword, Value: "$2till"}))
	svc := NewSettingsService(repo, utils.NewJWTManager("s", "mp", time.Minute), logger.Nop())

	assert.True(t, svc.VerifyPassword(context.Background(), "$2till"))
	assert.False(t, svc.VerifyPassword(context.Background(), "till"))
}

func TestExpiredTokenIsRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(repository.NewConfigRepository(db), utils.NewJWTManager("s", "mp", -time.Minute), logger.Nop())

	res, err := svc.Unlock(context.Background(), "1234")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Authorize(res.Token), apperror.ErrTokenExpired)
}

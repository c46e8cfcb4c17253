package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jeneeldumasia/mp/internal/config"
	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/internal/domain/enum"
	"github.com/jeneeldumasia/mp/internal/infrastructure/database"
	"github.com/jeneeldumasia/mp/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sale(ts, total string, method enum.PaymentMethod) *entity.Sale {
	return &entity.Sale{
		Timestamp:     ts,
		Items:         entity.SaleItems{{Name: "Pav Bhaji", Price: dec(total), Quantity: 1}},
		Subtotal:      dec(total),
		TotalAmount:   dec(total),
		PaymentMethod: method,
	}
}

func TestSaleRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSaleRepository(newTestDB(t))

	s := &entity.Sale{
		Timestamp: "2024-05-15 13:45:10",
		Items: entity.SaleItems{
			{Name: "Pav Bhaji", Price: dec("80.00"), Quantity: 2},
			{Name: "Pulao", Price: dec("90.00"), Quantity: 1},
		},
		Subtotal:      dec("250.00"),
		Discount:      dec("25.00"),
		Tax:           dec("11.25"),
		TotalAmount:   dec("236.25"),
		PaymentMethod: enum.PaymentMethodUPI,
	}
	require.NoError(t, repo.Create(ctx, s))
	require.NotZero(t, s.ID)
	assert.Regexp(t, `^INV-[0-9A-F]{8}$`, s.InvoiceNo)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2024-05-15 13:45:10", got.Timestamp)
	assert.True(t, got.TotalAmount.Equal(dec("236.25")))
	assert.True(t, got.Tax.Equal(dec("11.25")))
	assert.Equal(t, enum.PaymentMethodUPI, got.PaymentMethod)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Pav Bhaji", got.Items[0].Name)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.Items[1].Price.Equal(dec("90")))

	missing, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaleRepositoryListBetween(t *testing.T) {
	ctx := context.Background()
	repo := NewSaleRepository(newTestDB(t))

	for _, s := range []*entity.Sale{
		sale("2024-05-14 23:59:59", "10", enum.PaymentMethodCash),
		sale("2024-05-15 00:00:00", "20", enum.PaymentMethodCash),
		sale("2024-05-15 18:30:00", "30", enum.PaymentMethodUPI),
		sale("2024-05-15 09:00:00", "40", enum.PaymentMethodCash),
		sale("2024-05-16 00:00:00", "50", enum.PaymentMethodCash),
	} {
		require.NoError(t, repo.Create(ctx, s))
	}

	sales, err := repo.ListBetween(ctx, "2024-05-15 00:00:00", "2024-05-15 23:59:59")
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, "2024-05-15 18:30:00", sales[0].Timestamp)
	assert.Equal(t, "2024-05-15 09:00:00", sales[1].Timestamp)
	assert.Equal(t, "2024-05-15 00:00:00", sales[2].Timestamp)

	totals, err := repo.TotalsBetween(ctx, "2024-05-14 00:00:00", "2024-05-15 23:59:59")
	require.NoError(t, err)
	sum := decimal.Zero
	for _, v := range totals {
		sum = sum.Add(v)
	}
	assert.Len(t, totals, 4)
	assert.True(t, sum.Equal(dec("100")), sum.String())

	none, err := repo.ListBetween(ctx, "2023-01-01 00:00:00", "2023-01-01 23:59:59")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSaleRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewSaleRepository(newTestDB(t))
	for i := 0; i < 5; i++ {
		ts := time.Date(2024, 5, 15, 10, i, 0, 0, time.Local).Format(entity.TimestampLayout)
		require.NoError(t, repo.Create(ctx, sale(ts, "10", enum.PaymentMethodCash)))
	}

	page, total, err := repo.List(ctx, &pagination.Params{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "2024-05-15 10:02:00", page[0].Timestamp)
	assert.Equal(t, "2024-05-15 10:01:00", page[1].Timestamp)
}

func TestMenuRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMenuRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, &entity.MenuItem{Name: "Pulao", Price: dec("90.00")}))
	require.NoError(t, repo.Upsert(ctx, &entity.MenuItem{Name: "Chai", Price: dec("15.00")}))
	require.NoError(t, repo.Upsert(ctx, &entity.MenuItem{Name: "Pulao", Price: dec("95.50")}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Chai", items[0].Name)
	assert.True(t, items[1].Price.Equal(dec("95.5")))

	item, err := repo.GetByName(ctx, "Chai")
	require.NoError(t, err)
	require.NotNil(t, item)
	missing, err := repo.GetByName(ctx, "Dosa")
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := repo.DeleteByName(ctx, "Chai")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.DeleteByName(ctx, "Chai")
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, repo.ReplaceAll(ctx, []entity.MenuItem{
		{Name: "Vada Pav", Price: dec("25")},
		{Name: "Misal", Price: dec("60")},
	}))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	gone, err := repo.GetByName(ctx, "Pulao")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMenuReplaceAllRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewMenuRepository(newTestDB(t))
	require.NoError(t, repo.Upsert(ctx, &entity.MenuItem{Name: "Pulao", Price: dec("90")}))

	err := repo.ReplaceAll(ctx, []entity.MenuItem{
		{Name: "Misal", Price: dec("60")},
		{Name: "Misal", Price: dec("70")},
	})
	require.Error(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pulao", items[0].Name)
}

func TestConfigRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewConfigRepository(newTestDB(t))

	missing, err := repo.Get(ctx, entity.ConfigShopName)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Upsert(ctx, &entity.ConfigEntry{Key: entity.ConfigShopName, Value: "A"}))
	require.NoError(t, repo.Upsert(ctx, &entity.ConfigEntry{Key: entity.ConfigShopName, Value: "B"}))
	require.NoError(t, repo.UpsertMany(ctx, []entity.ConfigEntry{
		{Key: entity.ConfigGSTRate, Value: "12"},
		{Key: entity.ConfigBillFooter, Value: "Bye"},
	}))

	entry, err := repo.Get(ctx, entity.ConfigShopName)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "B", entry.Value)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, entity.ConfigBillFooter, all[0].Key)
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", Endpoint: "/bill/complete", ResponseCode: 201, ResponseBody: "{}",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k2", Endpoint: "/bill/complete", ResponseCode: 201,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	got, err := repo.GetByKey(ctx, "k1", "/bill/complete")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	other, err := repo.GetByKey(ctx, "k1", "/other")
	require.NoError(t, err)
	assert.Nil(t, other)

	removed, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jeneeldumasia/mp/internal/config"
	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/internal/domain/enum"
	domainRepo "github.com/jeneeldumasia/mp/internal/domain/repository"
	"github.com/jeneeldumasia/mp/internal/infrastructure/database"
	"github.com/jeneeldumasia/mp/internal/infrastructure/repository"
	"github.com/jeneeldumasia/mp/pkg/logger"
	"github.com/jeneeldumasia/mp/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errStoreDown = errors.New("database is locked")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// recordingPrinter keeps every print job in memory
type recordingPrinter struct {
	mu   sync.Mutex
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return true }

func (p *recordingPrinter) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.jobs)
}

// failingSaleRepo refuses inserts
type failingSaleRepo struct {
	domainRepo.SaleRepository
	err error
}

func (r *failingSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if r.err != nil {
		return r.err
	}
	return r.SaleRepository.Create(ctx, sale)
}

// failingConfigRepo fails every read
type failingConfigRepo struct {
	domainRepo.ConfigRepository
}

func (failingConfigRepo) Get(context.Context, string) (*entity.ConfigEntry, error) {
	return nil, errStoreDown
}

type testEnv struct {
	db       *gorm.DB
	saleRepo *failingSaleRepo
	settings *SettingsService
	sales    *SaleService
	reports  *ReportService
	menu     *MenuService
	printer  *PrinterService
	billing  *BillingService
	device   *recordingPrinter
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedDefaultData(db, logger.Nop()))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := logger.Nop()

	env := &testEnv{
		db:       db,
		saleRepo: &failingSaleRepo{SaleRepository: repository.NewSaleRepository(db)},
		device:   &recordingPrinter{},
	}
	jwtManager := utils.NewJWTManager("test-secret", "mp", time.Minute)
	env.settings = NewSettingsService(repository.NewConfigRepository(db), jwtManager, log)
	env.sales = NewSaleService(env.saleRepo, log)
	env.reports = NewReportService(env.saleRepo, log)
	env.menu = NewMenuService(repository.NewMenuRepository(db), log)
	env.printer = NewPrinterService(env.device, env.sales, env.settings, "network", 32, log)
	env.billing = NewBillingService(env.menu, env.settings, env.sales, env.printer, log)
	return env
}

// insertSale stores a sale with a fixed timestamp
func (e *testEnv) insertSale(t *testing.T, ts, total string, method enum.PaymentMethod, items ...entity.SaleItem) *entity.Sale {
	t.Helper()
	if len(items) == 0 {
		items = []entity.SaleItem{{Name: "Pav Bhaji", Price: dec(total), Quantity: 1}}
	}
	sale := &entity.Sale{
		Timestamp:     ts,
		Items:         items,
		Subtotal:      dec(total),
		TotalAmount:   dec(total),
		PaymentMethod: method,
	}
	require.NoError(t, e.saleRepo.Create(context.Background(), sale))
	return sale
}

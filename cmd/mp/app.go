package main

import (
	"fmt"

	"github.com/jeneeldumasia/mp/internal/application/service"
	"github.com/jeneeldumasia/mp/internal/config"
	domainRepo "github.com/jeneeldumasia/mp/internal/domain/repository"
	"github.com/jeneeldumasia/mp/internal/infrastructure/database"
	"github.com/jeneeldumasia/mp/internal/infrastructure/repository"
	"github.com/jeneeldumasia/mp/pkg/logger"
	"github.com/jeneeldumasia/mp/pkg/printer"
	"github.com/jeneeldumasia/mp/pkg/utils"
	"gorm.io/gorm"
)

// application holds every wired service of the till
type application struct {
	cfg *config.Config
	log *logger.Logger
	db  *gorm.DB

	printer         printer.Printer
	idempotencyRepo domainRepo.IdempotencyRepository

	settings *service.SettingsService
	sales    *service.SaleService
	reports  *service.ReportService
	menu     *service.MenuService
	printing *service.PrinterService
	billing  *service.BillingService
}

// openDatabase connects, migrates and seeds
func openDatabase(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		closeDatabase(db)
		return nil, err
	}
	if err := database.SeedDefaultData(db, log.WithComponent("database")); err != nil {
		closeDatabase(db)
		return nil, fmt.Errorf("failed to seed default data: %w", err)
	}
	return db, nil
}

func closeDatabase(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func newApplication(cfg *config.Config, log *logger.Logger) (*application, error) {
	db, err := openDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	thermalPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Warn("failed to initialize printer, printing disabled", "type", cfg.Printer.Type, "error", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	saleRepo := repository.NewSaleRepository(db)
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.App.Name, cfg.JWT.Expiry)

	app := &application{
		cfg:             cfg,
		log:             log,
		db:              db,
		printer:         thermalPrinter,
		idempotencyRepo: repository.NewIdempotencyRepository(db),
	}
	app.settings = service.NewSettingsService(repository.NewConfigRepository(db), jwtManager, log)
	app.sales = service.NewSaleService(saleRepo, log)
	app.reports = service.NewReportService(saleRepo, log)
	app.menu = service.NewMenuService(repository.NewMenuRepository(db), log)
	app.printing = service.NewPrinterService(thermalPrinter, app.sales, app.settings, cfg.Printer.Type, cfg.Printer.Width, log)
	app.billing = service.NewBillingService(app.menu, app.settings, app.sales, app.printing, log)
	return app, nil
}

func (a *application) Close() {
	if err := a.printer.Close(); err != nil {
		a.log.Warn("failed to close printer", "error", err)
	}
	closeDatabase(a.db)
}

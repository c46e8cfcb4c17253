package database

import (
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/jeneeldumasia/mp/internal/config"
	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultMenu is inserted when the menu table is empty
var DefaultMenu = []entity.MenuItem{
	{Name: "Pav Bhaji", Price: decimal.RequireFromString("80.00")},
	{Name: "Pulao", Price: decimal.RequireFromString("90.00")},
}

// DefaultConfig holds the value of every config key on first run.
// The password is hashed before it is stored.
var DefaultConfig = []entity.ConfigEntry{
	{Key: entity.ConfigShopName, Value: "MISTY PAV BHAJI"},
	{Key: entity.ConfigPassword, Value: "1234"},
	{Key: entity.ConfigGSTRate, Value: "5.0"},
	{Key: entity.ConfigCurrencySymbol, Value: "₹"},
	{Key: entity.ConfigBillFooter, Value: "Thank you! Visit again!"},
}

// newGormLogger logs slow queries and errors, or every statement when debug
// is set. ErrRecordNotFound is never logged.
func newGormLogger(w gormlogger.Writer, debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.New(w, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Open connects to the configured database driver
func Open(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: newGormLogger(stdlog.New(os.Stderr, "\r\n", stdlog.LstdFlags), debug)}

	driver := strings.ToLower(cfg.Driver)
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		})
	case "mysql":
		dialector = mysql.Open(cfg.MySQLDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if driver == "" || driver == "sqlite" {
		// single writer; also keeps an in-memory database alive
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}

	return db, nil
}

func sqliteDSN(path string) string {
	if path == "" {
		path = "shop_data.db"
	}
	if path == ":memory:" || strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)"
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.MenuItem{},
		&entity.Sale{},
		&entity.ConfigEntry{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedDefaultData fills the menu when it is empty and adds missing config
// keys. Existing rows are never overwritten.
func SeedDefaultData(db *gorm.DB, log *logger.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var menuCount int64
		if err := tx.Model(&entity.MenuItem{}).Count(&menuCount).Error; err != nil {
			return fmt.Errorf("count menu: %w", err)
		}
		if menuCount == 0 {
			items := make([]entity.MenuItem, len(DefaultMenu))
			copy(items, DefaultMenu)
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("seed menu: %w", err)
			}
			log.Info("seeded default menu", "items", len(items))
		}

		for _, def := range DefaultConfig {
			var existing entity.ConfigEntry
			err := tx.Where(&entity.ConfigEntry{Key: def.Key}).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("read config %s: %w", def.Key, err)
			}

			entry := def
			if entry.Key == entity.ConfigPassword {
				hash, err := bcrypt.GenerateFromPassword([]byte(entry.Value), bcrypt.DefaultCost)
				if err != nil {
					return fmt.Errorf("hash default password: %w", err)
				}
				entry.Value = string(hash)
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("seed config %s: %w", def.Key, err)
			}
			log.Info("seeded config key", "key", def.Key)
		}
		return nil
	})
}

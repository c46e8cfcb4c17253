package repository

import (
	"context"
	"errors"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
	domainRepo "github.com/jeneeldumasia/mp/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type configRepository struct {
	db *gorm.DB
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(db *gorm.DB) domainRepo.ConfigRepository {
	return &configRepository{db: db}
}

// upsertValue overwrites value on key conflict
var upsertValue = clause.OnConflict{
	Columns:   []clause.Column{{Name: "key"}},
	DoUpdates: clause.AssignmentColumns([]string{"value"}),
}

// Get uses struct conditions so the reserved word "key" is quoted per dialect
func (r *configRepository) Get(ctx context.Context, key string) (*entity.ConfigEntry, error) {
	var entry entity.ConfigEntry
	err := r.db.WithContext(ctx).Where(&entity.ConfigEntry{Key: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *configRepository) List(ctx context.Context) ([]entity.ConfigEntry, error) {
	var entries []entity.ConfigEntry
	err := r.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&entries).Error
	return entries, err
}

func (r *configRepository) Upsert(ctx context.Context, entry *entity.ConfigEntry) error {
	return r.db.WithContext(ctx).Clauses(upsertValue).Create(entry).Error
}

func (r *configRepository) UpsertMany(ctx context.Context, entries []entity.ConfigEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(upsertValue).Create(&entries).Error
	})
}

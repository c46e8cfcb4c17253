package repository

import (
	"context"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
)

// ConfigRepository defines the interface for shop configuration access
type ConfigRepository interface {
	Get(ctx context.Context, key string) (*entity.ConfigEntry, error)
	List(ctx context.Context) ([]entity.ConfigEntry, error)
	Upsert(ctx context.Context, entry *entity.ConfigEntry) error
	// UpsertMany writes all entries in one transaction
	UpsertMany(ctx context.Context, entries []entity.ConfigEntry) error
}

package repository

import (
	"context"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
)

// MenuRepository defines the interface for menu data operations
type MenuRepository interface {
	// List returns all menu items ordered by name
	List(ctx context.Context) ([]entity.MenuItem, error)
	GetByName(ctx context.Context, name string) (*entity.MenuItem, error)
	Count(ctx context.Context) (int64, error)
	// Upsert inserts the item or updates the price of the item with the same name
	Upsert(ctx context.Context, item *entity.MenuItem) error
	DeleteByName(ctx context.Context, name string) (bool, error)
	// ReplaceAll swaps the whole menu in one transaction
	ReplaceAll(ctx context.Context, items []entity.MenuItem) error
}

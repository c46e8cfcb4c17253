package repository

import (
	"context"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sale data operations.
// from and to are inclusive timestamps in entity.TimestampLayout.
type SaleRepository interface {
	// Create inserts the sale in its own transaction
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uint) (*entity.Sale, error)
	// ListBetween returns sales newest first
	ListBetween(ctx context.Context, from, to string) ([]entity.Sale, error)
	// TotalsBetween returns the total_amount of each sale in the range
	TotalsBetween(ctx context.Context, from, to string) ([]decimal.Decimal, error)
	List(ctx context.Context, params *pagination.Params) ([]entity.Sale, int64, error)
}

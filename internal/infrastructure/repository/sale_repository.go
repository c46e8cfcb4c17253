package repository

import (
	"context"
	"errors"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
	domainRepo "github.com/jeneeldumasia/mp/internal/domain/repository"
	"github.com/jeneeldumasia/mp/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// timestampColumn is quoted by gorm; the bare word is a type name in some dialects
var timestampColumn = clause.Column{Name: "timestamp"}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: timestampColumn, Desc: true},
		{Column: clause.Column{Name: "id"}, Desc: true},
	}})
}

func between(from, to string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("? BETWEEN ? AND ?", timestampColumn, from, to)
	}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(sale).Error
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uint) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) ListBetween(ctx context.Context, from, to string) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Scopes(between(from, to), newestFirst).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) TotalsBetween(ctx context.Context, from, to string) ([]decimal.Decimal, error) {
	var rows []struct {
		TotalAmount decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Select("total_amount").
		Scopes(between(from, to)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]decimal.Decimal, len(rows))
	for i, row := range rows {
		totals[i] = row.TotalAmount
	}
	return totals, nil
}

func (r *saleRepository) List(ctx context.Context, params *pagination.Params) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Sale{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Scopes(newestFirst).
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&sales).Error
	return sales, total, err
}

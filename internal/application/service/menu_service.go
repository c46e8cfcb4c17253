package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/internal/domain/repository"
	"github.com/jeneeldumasia/mp/pkg/apperror"
	"github.com/jeneeldumasia/mp/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// MenuService manages the products offered on the billing screen
type MenuService struct {
	menuRepo repository.MenuRepository
	log      *logger.Logger
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repository.MenuRepository, log *logger.Logger) *MenuService {
	return &MenuService{
		menuRepo: menuRepo,
		log:      log.WithComponent("menu"),
	}
}

// MenuRowInput is one editable menu row as typed by the operator
type MenuRowInput struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// List returns the menu ordered by name
func (s *MenuService) List(ctx context.Context) ([]entity.MenuItem, error) {
	items, err := s.menuRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("load menu", err)
	}
	if items == nil {
		items = []entity.MenuItem{}
	}
	return items, nil
}

// Find returns the menu item called name
func (s *MenuService) Find(ctx context.Context, name string) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, apperror.NewPersistenceError("load menu item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

func parsePrice(raw string) (decimal.Decimal, string) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	switch {
	case err != nil:
		return decimal.Zero, "must be a number"
	case !price.IsPositive():
		return decimal.Zero, "must be greater than zero"
	case !price.Equal(price.Round(2)):
		return decimal.Zero, "must have at most two decimal places"
	}
	return price, ""
}

// validateRows turns operator rows into menu items. Rows with both cells
// blank are skipped.
func validateRows(rows []MenuRowInput) ([]entity.MenuItem, error) {
	var fieldErrors []apperror.FieldError
	items := make([]entity.MenuItem, 0, len(rows))
	seen := map[string]int{}

	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" && strings.TrimSpace(row.Price) == "" {
			continue
		}
		field := fmt.Sprintf("rows[%d]", i+1)

		if name == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".name", Message: "cannot be empty"})
			continue
		}
		if first, dup := seen[strings.ToLower(name)]; dup {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicates row %d", first),
			})
			continue
		}
		seen[strings.ToLower(name)] = i + 1

		price, msg := parsePrice(row.Price)
		if msg != "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field + ".price", Message: msg})
			continue
		}
		items = append(items, entity.MenuItem{Name: name, Price: price})
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	return items, nil
}

// ReplaceMenu validates every row, then swaps the whole menu at once
func (s *MenuService) ReplaceMenu(ctx context.Context, rows []MenuRowInput) ([]entity.MenuItem, error) {
	items, err := validateRows(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewFieldError("rows", "menu needs at least one item")
	}

	if err := s.menuRepo.ReplaceAll(ctx, items); err != nil {
		return nil, apperror.NewPersistenceError("save menu", err)
	}

	s.log.Info("menu replaced", "items", len(items))
	return s.List(ctx)
}

// Upsert adds an item or changes the price of an existing one
func (s *MenuService) Upsert(ctx context.Context, name, price string) (*entity.MenuItem, error) {
	items, err := validateRows([]MenuRowInput{{Name: name, Price: price}})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewFieldError("name", "cannot be empty")
	}

	item := items[0]
	if err := s.menuRepo.Upsert(ctx, &item); err != nil {
		return nil, apperror.NewPersistenceError("save menu item", err)
	}
	return s.Find(ctx, item.Name)
}

// Delete removes the item called name
func (s *MenuService) Delete(ctx context.Context, name string) error {
	deleted, err := s.menuRepo.DeleteByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return apperror.NewPersistenceError("delete menu item", err)
	}
	if !deleted {
		return apperror.NewNotFoundError("Menu item")
	}
	return nil
}

// ImportXLSX replaces the menu with the Name and Price columns of the first
// sheet. A header row is detected by its first cell reading "name".
func (s *MenuService) ImportXLSX(ctx context.Context, r io.Reader) ([]entity.MenuItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid spreadsheet: " + err.Error())
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, apperror.NewBadRequestError("Cannot read spreadsheet: " + err.Error())
	}

	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "name") {
		rows = rows[1:]
	}

	input := make([]MenuRowInput, 0, len(rows))
	for _, row := range rows {
		var in MenuRowInput
		if len(row) > 0 {
			in.Name = row[0]
		}
		if len(row) > 1 {
			in.Price = row[1]
		}
		input = append(input, in)
	}

	return s.ReplaceMenu(ctx, input)
}

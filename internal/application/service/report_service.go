package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/internal/domain/enum"
	"github.com/jeneeldumasia/mp/internal/domain/repository"
	"github.com/jeneeldumasia/mp/pkg/apperror"
	"github.com/jeneeldumasia/mp/pkg/logger"
	"github.com/jeneeldumasia/mp/pkg/pagination"
	"github.com/jeneeldumasia/mp/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const salesSheet = "Sales"

// ReportService answers historical sales queries
type ReportService struct {
	saleRepo repository.SaleRepository
	log      *logger.Logger
}

// NewReportService creates a new report service
func NewReportService(saleRepo repository.SaleRepository, log *logger.Logger) *ReportService {
	return &ReportService{
		saleRepo: saleRepo,
		log:      log.WithComponent("reports"),
	}
}

// ParseDate validates a YYYY-MM-DD calendar date in local time
func ParseDate(field, date string) (time.Time, error) {
	t, err := time.ParseInLocation(entity.DateLayout, strings.TrimSpace(date), time.Local)
	if err != nil {
		return time.Time{}, apperror.NewFieldError(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// dayRange returns the inclusive timestamp bounds covering start..end
func dayRange(start, end time.Time) (string, string) {
	return utils.BeginningOfDay(start).Format(entity.TimestampLayout),
		utils.EndOfDay(end).Format(entity.TimestampLayout)
}

// SalesForDate returns the sales recorded on date, newest first
func (s *ReportService) SalesForDate(ctx context.Context, date string) ([]entity.Sale, error) {
	day, err := ParseDate("date", date)
	if err != nil {
		return nil, err
	}

	from, to := dayRange(day, day)
	sales, err := s.saleRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, apperror.NewPersistenceError("load sales", err)
	}
	return sales, nil
}

// SalesForDateRange returns the total of every sale dated start..end inclusive
func (s *ReportService) SalesForDateRange(ctx context.Context, start, end string) ([]decimal.Decimal, error) {
	from, err := ParseDate("start", start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate("end", end)
	if err != nil {
		return nil, err
	}
	return s.totalsBetween(ctx, from, to)
}

func (s *ReportService) totalsBetween(ctx context.Context, start, end time.Time) ([]decimal.Decimal, error) {
	from, to := dayRange(start, end)
	totals, err := s.saleRepo.TotalsBetween(ctx, from, to)
	if err != nil {
		return nil, apperror.NewPersistenceError("load sale totals", err)
	}
	return totals, nil
}

// WeeklyTotal sums the sales of the Monday..Sunday week containing reference
func (s *ReportService) WeeklyTotal(ctx context.Context, reference time.Time) (decimal.Decimal, error) {
	monday, sunday := utils.WeekBounds(reference)
	totals, err := s.totalsBetween(ctx, monday, sunday)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, totals...), nil
}

// ItemQuantity is how much of one menu item sold
type ItemQuantity struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DailySummary is the history view of one day
type DailySummary struct {
	Date      string          `json:"date"`
	Sales     []entity.Sale   `json:"sales"`
	SaleCount int             `json:"sale_count"`
	Total     decimal.Decimal `json:"total"`
	CashTotal decimal.Decimal `json:"cash_total"`
	UPITotal  decimal.Decimal `json:"upi_total"`
	Items     []ItemQuantity  `json:"items"`
}

// DailySummary aggregates the sales of date by payment method and item
func (s *ReportService) DailySummary(ctx context.Context, date string) (*DailySummary, error) {
	sales, err := s.SalesForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		Date:      strings.TrimSpace(date),
		Sales:     sales,
		SaleCount: len(sales),
		Total:     decimal.Zero,
		CashTotal: decimal.Zero,
		UPITotal:  decimal.Zero,
		Items:     []ItemQuantity{},
	}

	byName := map[string]*ItemQuantity{}
	for _, sale := range sales {
		summary.Total = summary.Total.Add(sale.TotalAmount)
		switch sale.PaymentMethod {
		case enum.PaymentMethodCash:
			summary.CashTotal = summary.CashTotal.Add(sale.TotalAmount)
		case enum.PaymentMethodUPI:
			summary.UPITotal = summary.UPITotal.Add(sale.TotalAmount)
		}

		for _, item := range sale.Items {
			iq, ok := byName[item.Name]
			if !ok {
				iq = &ItemQuantity{Name: item.Name, Revenue: decimal.Zero}
				byName[item.Name] = iq
			}
			iq.Quantity += item.Quantity
			iq.Revenue = iq.Revenue.Add(item.Total())
		}
	}

	for _, iq := range byName {
		summary.Items = append(summary.Items, *iq)
	}
	sort.Slice(summary.Items, func(i, j int) bool {
		a, b := summary.Items[i], summary.Items[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Name < b.Name
	})
	return summary, nil
}

// WeeklySummary is the week total shown beside the daily history
type WeeklySummary struct {
	Start     string          `json:"start"`
	End       string          `json:"end"`
	Label     string          `json:"label"`
	SaleCount int             `json:"sale_count"`
	Total     decimal.Decimal `json:"total"`
}

// WeeklySummary reports the Monday..Sunday week containing reference
func (s *ReportService) WeeklySummary(ctx context.Context, reference time.Time) (*WeeklySummary, error) {
	monday, sunday := utils.WeekBounds(reference)
	totals, err := s.totalsBetween(ctx, monday, sunday)
	if err != nil {
		return nil, err
	}
	return &WeeklySummary{
		Start:     monday.Format(entity.DateLayout),
		End:       sunday.Format(entity.DateLayout),
		Label:     monday.Format("Jan 02") + " - " + sunday.Format("Jan 02"),
		SaleCount: len(totals),
		Total:     decimal.Sum(decimal.Zero, totals...),
	}, nil
}

// ListSales returns the sales history one page at a time, newest first
func (s *ReportService) ListSales(ctx context.Context, params *pagination.Params) (*pagination.Result[entity.Sale], error) {
	params.Normalize()
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("load sales", err)
	}
	return pagination.NewResult(sales, params, total), nil
}

// ExportDailyXLSX writes the sales of date as a workbook with a total row
func (s *ReportService) ExportDailyXLSX(ctx context.Context, date string, w io.Writer) error {
	summary, err := s.DailySummary(ctx, date)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), salesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(salesSheet, "A1", &[]interface{}{"Time", "Invoice", "Items", "Payment", "Total"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	// oldest first reads naturally in a spreadsheet
	row := 2
	for i := len(summary.Sales) - 1; i >= 0; i-- {
		sale := summary.Sales[i]
		clock := sale.Timestamp
		if t, err := sale.Time(); err == nil {
			clock = t.Format("3:04 PM")
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{clock, sale.InvoiceNo, sale.Summary(), sale.PaymentMethod.String(), sale.TotalAmount.Round(2).InexactFloat64()}
		if err := f.SetSheetRow(salesSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	totalCell, _ := excelize.CoordinatesToCellName(4, row)
	if err := f.SetSheetRow(salesSheet, totalCell, &[]interface{}{"Total", summary.Total.Round(2).InexactFloat64()}); err != nil {
		return fmt.Errorf("write total: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	lastCell, _ := excelize.CoordinatesToCellName(5, row)
	if err := f.SetCellStyle(salesSheet, "E2", lastCell, money); err != nil {
		return fmt.Errorf("style totals: %w", err)
	}
	_ = f.SetColWidth(salesSheet, "C", "C", 40)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	s.log.Info("daily sales exported", "date", summary.Date, "sales", summary.SaleCount)
	return nil
}

package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/internal/domain/enum"
	"github.com/jeneeldumasia/mp/pkg/apperror"
	"github.com/jeneeldumasia/mp/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seedWeek(t *testing.T, env *testEnv) {
	t.Helper()
	// 2024-03-04 is a Monday
	env.insertSale(t, "2024-03-03 23:59:59", "50", enum.PaymentMethodCash)
	env.insertSale(t, "2024-03-04 00:00:00", "100", enum.PaymentMethodCash)
	env.insertSale(t, "2024-03-05 09:15:00", "80", enum.PaymentMethodCash,
		entity.SaleItem{Name: "Pav Bhaji", Price: dec("80"), Quantity: 1})
	env.insertSale(t, "2024-03-05 18:30:00", "250", enum.PaymentMethodUPI,
		entity.SaleItem{Name: "Pav Bhaji", Price: dec("80"), Quantity: 2},
		entity.SaleItem{Name: "Pulao", Price: dec("90"), Quantity: 1})
	env.insertSale(t, "2024-03-10 23:59:59", "40", enum.PaymentMethodUPI)
	env.insertSale(t, "2024-03-11 00:00:00", "999", enum.PaymentMethodCash)
}

func TestSalesForDate(t *testing.T) {
	env := newTestEnv(t)
	seedWeek(t, env)

	sales, err := env.reports.SalesForDate(context.Background(), "2024-03-05")
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "2024-03-05 18:30:00", sales[0].Timestamp)
	assert.Equal(t, "2024-03-05 09:15:00", sales[1].Timestamp)

	none, err := env.reports.SalesForDate(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSalesForDateRejectsBadDate(t *testing.T) {
	env := newTestEnv(t)

	for _, date := range []string{"", "05-03-2024", "2024-13-01", "yesterday"} {
		_, err := env.reports.SalesForDate(context.Background(), date)
		assert.True(t, apperror.IsValidationError(err), date)
	}
}

func TestSalesForDateRangeIsInclusive(t *testing.T) {
	env := newTestEnv(t)
	seedWeek(t, env)

	totals, err := env.reports.SalesForDateRange(context.Background(), "2024-03-04", "2024-03-10")
	require.NoError(t, err)
	assert.Len(t, totals, 4)

	_, err = env.reports.SalesForDateRange(context.Background(), "2024-03-04", "bad")
	require.True(t, apperror.IsValidationError(err))
	assert.Equal(t, "end", apperror.GetAppError(err).Errors[0].Field)
}

func TestWeeklyTotal(t *testing.T) {
	env := newTestEnv(t)
	seedWeek(t, env)

	for _, ref := range []time.Time{
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local),
		time.Date(2024, 3, 7, 12, 0, 0, 0, time.Local),
		time.Date(2024, 3, 10, 23, 0, 0, 0, time.Local),
	} {
		total, err := env.reports.WeeklyTotal(context.Background(), ref)
		require.NoError(t, err)
		assert.True(t, total.Equal(dec("470")), "reference %s got %s", ref, total)
	}

	empty, err := env.reports.WeeklyTotal(context.Background(), time.Date(2023, 1, 2, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestWeeklySummary(t *testing.T) {
	env := newTestEnv(t)
	seedWeek(t, env)

	summary, err := env.reports.WeeklySummary(context.Background(), time.Date(2024, 3, 6, 10, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", summary.Start)
	assert.Equal(t, "2024-03-10", summary.End)
	assert.Equal(t, "Mar 04 - Mar 10", summary.Label)
	assert.Equal(t, 4, summary.SaleCount)
	assert.True(t, summary.Total.Equal(dec("470")))
}

func TestDailySummary(t *testing.T) {
	env := newTestEnv(t)
	seedWeek(t, env)

	summary, err := env.reports.DailySummary(context.Background(), "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.SaleCount)
	assert.True(t, summary.Total.Equal(dec("330")))
	assert.True(t, summary.CashTotal.Equal(dec("80")))
	assert.True(t, summary.UPITotal.Equal(dec("250")))

	require.Len(t, summary.Items, 2)
	assert.Equal(t, "Pav Bhaji", summary.Items[0].Name)
	assert.Equal(t, 3, summary.Items[0].Quantity)
	assert.True(t, summary.Items[0].Revenue.Equal(dec("240")))
	assert.Equal(t, "Pulao", summary.Items[1].Name)
}

func TestDailySummaryEmptyDay(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.reports.DailySummary(context.Background(), "2024-03-05")
	require.NoError(t, err)
	assert.Zero(t, summary.SaleCount)
	assert.True(t, summary.Total.IsZero())
	assert.NotNil(t, summary.Items)
}

func TestListSales(t *testing.T) {
	env := newTestEnv(t)
	seedWeek(t, env)

	page, err := env.reports.ListSales(context.Background(), &pagination.Params{Page: 1, PerPage: 4})
	require.NoError(t, err)
	assert.Len(t, page.Items, 4)
	assert.Equal(t, "2024-03-11 00:00:00", page.Items[0].Timestamp)
	assert.Equal(t, int64(6), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)

	last, err := env.reports.ListSales(context.Background(), &pagination.Params{Page: 2, PerPage: 4})
	require.NoError(t, err)
	assert.Len(t, last.Items, 2)
	assert.False(t, last.Pagination.HasNext)
}

func TestExportDailyXLSX(t *testing.T) {
	env := newTestEnv(t)
	seedWeek(t, env)

	var buf bytes.Buffer
	require.NoError(t, env.reports.ExportDailyXLSX(context.Background(), "2024-03-05", &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sales")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Time", "Invoice", "Items", "Payment", "Total"}, rows[0])
	assert.Equal(t, "9:15 AM", rows[1][0])
	assert.Equal(t, "1x Pav Bhaji", rows[1][2])
	assert.Equal(t, "Cash", rows[1][3])
	assert.Equal(t, "6:30 PM", rows[2][0])
	assert.Equal(t, "2x Pav Bhaji, 1x Pulao", rows[2][2])
	assert.Equal(t, "UPI", rows[2][3])

	total, err := f.GetCellValue("Sales", "D4")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)
	raw, err := f.GetCellValue("Sales", "E4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "330", raw)
}

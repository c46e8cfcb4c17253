package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jeneeldumasia/mp/internal/domain/bill"
	"github.com/jeneeldumasia/mp/internal/domain/enum"
	"github.com/jeneeldumasia/mp/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// TimestampLayout is the stored form of Sale.Timestamp
	TimestampLayout = "2006-01-02 15:04:05"
	// DateLayout is the ISO calendar date accepted by date queries
	DateLayout = "2006-01-02"
)

// Sale is an immutable record of a completed bill
type Sale struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	InvoiceNo     string             `gorm:"size:32;uniqueIndex;not null" json:"invoice_no"`
	Timestamp     string             `gorm:"column:timestamp;size:19;not null;index" json:"timestamp"`
	Items         SaleItems          `gorm:"type:text;not null" json:"items"`
	Subtotal      decimal.Decimal    `gorm:"type:decimal(14,2);not null;default:0" json:"subtotal"`
	Discount      decimal.Decimal    `gorm:"type:decimal(14,2);not null;default:0" json:"discount"`
	Tax           decimal.Decimal    `gorm:"type:decimal(14,2);not null;default:0" json:"tax"`
	TotalAmount   decimal.Decimal    `gorm:"column:total_amount;type:decimal(14,2);not null" json:"total_amount"`
	PaymentMethod enum.PaymentMethod `gorm:"size:10;not null" json:"payment_method"`
}

// BeforeCreate assigns an invoice number when none was set
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.InvoiceNo == "" {
		s.InvoiceNo = utils.GenerateInvoiceNo("INV-")
	}
	return nil
}

// MoneyScale is the number of decimal places kept for sale amounts
const MoneyScale = 2

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// Time parses the stored timestamp in local time
func (s *Sale) Time() (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s.Timestamp, time.Local)
}

// Summary renders the items as "2x Pav Bhaji, 1x Pulao"
func (s *Sale) Summary() string {
	parts := make([]string, len(s.Items))
	for i, item := range s.Items {
		parts[i] = fmt.Sprintf("%dx %s", item.Quantity, item.Name)
	}
	return strings.Join(parts, ", ")
}

// SaleItem is a frozen copy of a ledger line at completion time
type SaleItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Total returns price times quantity
func (i SaleItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SaleItems is stored as a JSON list of {name, price, quantity}
type SaleItems []SaleItem

// SaleItemsFromLedger snapshots ledger lines
func SaleItemsFromLedger(items []bill.LineItem) SaleItems {
	out := make(SaleItems, len(items))
	for i, item := range items {
		out[i] = SaleItem{Name: item.Name, Price: item.UnitPrice, Quantity: item.Quantity}
	}
	return out
}

// wireSaleItem keeps prices as JSON numbers without going through float64
type wireSaleItem struct {
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
}

func (items SaleItems) MarshalJSON() ([]byte, error) {
	wire := make([]wireSaleItem, len(items))
	for i, item := range items {
		wire[i] = wireSaleItem{Name: item.Name, Price: json.Number(item.Price.String()), Quantity: item.Quantity}
	}
	return json.Marshal(wire)
}

func (items *SaleItems) UnmarshalJSON(data []byte) error {
	var wire []wireSaleItem
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	out := make(SaleItems, len(wire))
	for i, w := range wire {
		price, err := decimal.NewFromString(w.Price.String())
		if err != nil {
			return fmt.Errorf("item %q: invalid price %q: %w", w.Name, w.Price, err)
		}
		out[i] = SaleItem{Name: w.Name, Price: price, Quantity: w.Quantity}
	}
	*items = out
	return nil
}

func (items SaleItems) Value() (driver.Value, error) {
	b, err := items.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (items *SaleItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		return items.UnmarshalJSON([]byte(v))
	case []byte:
		return items.UnmarshalJSON(v)
	case nil:
		*items = nil
		return nil
	}
	return fmt.Errorf("cannot scan %T into SaleItems", value)
}

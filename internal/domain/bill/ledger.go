package bill

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidItem is returned when a line item would break the ledger invariants
var ErrInvalidItem = errors.New("line item requires a name and a positive price")

// LineItem is one distinct product on the bill with its aggregated quantity
type LineItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// NewLineItem creates a line item with quantity 1
func NewLineItem(name string, price decimal.Decimal) (LineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" || !price.IsPositive() {
		return LineItem{}, ErrInvalidItem
	}
	return LineItem{Name: name, UnitPrice: price, Quantity: 1}, nil
}

// LineTotal returns unit price times quantity
func (i LineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Ledger is the bill currently being assembled. Items keep the order in
// which their names were first added.
type Ledger struct {
	items []LineItem
}

// NewLedger returns an empty ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) indexOf(name string) int {
	for i := range l.items {
		if l.items[i].Name == name {
			return i
		}
	}
	return -1
}

// AddItem adds one unit of name. Re-adding an existing name increments its
// quantity and keeps the price it was first added with.
func (l *Ledger) AddItem(name string, price decimal.Decimal) error {
	item, err := NewLineItem(name, price)
	if err != nil {
		return err
	}
	if i := l.indexOf(item.Name); i >= 0 {
		l.items[i].Quantity++
		return nil
	}
	l.items = append(l.items, item)
	return nil
}

// UpdateQuantity adds delta to the quantity of name. Unknown names are
// ignored; a resulting quantity of zero or less removes the item.
func (l *Ledger) UpdateQuantity(name string, delta int) {
	i := l.indexOf(strings.TrimSpace(name))
	if i < 0 {
		return
	}
	l.items[i].Quantity += delta
	if l.items[i].Quantity <= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
	}
}

// Items returns a copy of the current line items
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of distinct items
func (l *Ledger) Len() int {
	return len(l.items)
}

// IsEmpty reports whether the ledger has no items
func (l *Ledger) IsEmpty() bool {
	return len(l.items) == 0
}

// Clear empties the ledger
func (l *Ledger) Clear() {
	l.items = nil
}

package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMethod is how a sale was settled. Stored as its display string.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "Cash"
	PaymentMethodUPI  PaymentMethod = "UPI"
)

// ParsePaymentMethod accepts "cash" or "upi" in any case
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaymentMethodCash, nil
	case "upi":
		return PaymentMethodUPI, nil
	}
	return "", fmt.Errorf("unknown payment method %q (use Cash or UPI)", s)
}

// IsValid reports whether p is one of the known methods
func (p PaymentMethod) IsValid() bool {
	return p == PaymentMethodCash || p == PaymentMethodUPI
}

func (p PaymentMethod) String() string {
	return string(p)
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p PaymentMethod) Value() (driver.Value, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("invalid payment method %q", string(p))
	}
	return string(p), nil
}

func (p *PaymentMethod) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*p = PaymentMethod(v)
	case []byte:
		*p = PaymentMethod(v)
	case nil:
		*p = ""
	default:
		return fmt.Errorf("cannot scan %T into PaymentMethod", value)
	}
	return nil
}

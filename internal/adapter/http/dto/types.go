package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
)

// Flag is a vendor boolean. Vendors send 0/1, true/false or their string forms.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	raw := strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	switch raw {
	case "1", "true", "yes", "on":
		*f = true
	case "0", "false", "no", "off", "":
		*f = false
	default:
		return fmt.Errorf("invalid flag %s", data)
	}
	return nil
}

// MarshalJSON writes the flag as 0 or 1.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// Bool returns the flag value, false when unset.
func (f *Flag) Bool() bool {
	return f != nil && bool(*f)
}

// Text is an identifier that may arrive as a JSON string or number.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid identifier %s", data)
	}
	*t = Text(n.String())
	return nil
}

func (t Text) String() string { return string(t) }

// Money renders a balance as a JSON number floored to two decimals.
type Money decimal.Decimal

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(domain.FormatMoney(domain.MoneyFloor(decimal.Decimal(m)))), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}

func amountOf(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func int64Of(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

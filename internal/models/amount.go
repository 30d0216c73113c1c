package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Amount is the magnitude of a transaction. The stored value may be a number
// or a numeric string; anything that does not parse decodes to zero.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func AmountFromFloat(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}
	}
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

// ParseAmount parses a numeric string, tolerating surrounding spaces.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	return Amount{Decimal: d}, nil
}

// CoerceAmount converts a loosely typed value into an Amount, returning zero
// for missing or non-numeric input.
func CoerceAmount(v any) Amount {
	switch n := v.(type) {
	case nil:
		return Amount{}
	case Amount:
		return n
	case decimal.Decimal:
		return Amount{Decimal: n}
	case float64:
		return AmountFromFloat(n)
	case float32:
		return AmountFromFloat(float64(n))
	case int:
		return Amount{Decimal: decimal.NewFromInt(int64(n))}
	case int32:
		return Amount{Decimal: decimal.NewFromInt32(n)}
	case int64:
		return Amount{Decimal: decimal.NewFromInt(n)}
	case json.Number:
		a, _ := ParseAmount(n.String())
		return a
	case string:
		a, _ := ParseAmount(n)
		return a
	default:
		return Amount{}
	}
}

func (a Amount) IsNegative() bool {
	return a.Decimal.IsNegative()
}

// MarshalBSONValue writes a double, not Decimal128: stored amounts must stay
// plain numbers in extended JSON.
func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(a.InexactFloat64())
}

func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeDouble:
		f, _ := raw.DoubleOK()
		*a = AmountFromFloat(f)
	case bson.TypeInt32:
		i, _ := raw.Int32OK()
		*a = Amount{Decimal: decimal.NewFromInt32(i)}
	case bson.TypeInt64:
		i, _ := raw.Int64OK()
		*a = Amount{Decimal: decimal.NewFromInt(i)}
	case bson.TypeDecimal128:
		d, _ := raw.Decimal128OK()
		parsed, _ := ParseAmount(d.String())
		*a = parsed
	case bson.TypeString:
		s, _ := raw.StringValueOK()
		parsed, _ := ParseAmount(s)
		*a = parsed
	default:
		*a = Amount{}
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string. null leaves zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidAmount
		}
		parsed, err := ParseAmount(s)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}
	parsed, err := ParseAmount(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

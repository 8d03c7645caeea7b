package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Stored documents may predate the current schema: fields can be missing or
// carry the wrong type. The decoders below coerce field by field instead of
// failing the whole read. Only a malformed container is an error.

// DecodeStatus maps an arbitrary stored string onto a known status,
// defaulting to pending.
func DecodeStatus(raw string) Status {
	s := Status(raw)
	if !s.Valid() {
		return StatusPending
	}
	return s
}

// DecodeItems parses a stored item list. Entries that are not objects are
// dropped; unknown or mistyped fields fall back to safe defaults.
func DecodeItems(raw []byte) ([]OrderItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var entries []map[string]interface{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	items := make([]OrderItem, 0, len(entries))
	for _, m := range entries {
		items = append(items, OrderItem{
			ProductID: coerceString(m["productId"]),
			Name:      coerceString(m["name"]),
			Quantity:  coerceInt(m["quantity"], 1),
			Price:     coerceDecimal(m["price"]),
		})
	}
	return items, nil
}

func coerceString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func coerceInt(v interface{}, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case int:
		return n
	}
	return fallback
}

func coerceDecimal(v interface{}) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d
		}
	}
	return decimal.Zero
}

// Package common provides shared utilities for value formatting and integer
// coercion used by the slicing engine, label indexes and display code.
package common

import (
	"fmt"
	"math"
	"strconv"
)

// NullString is the display form of a missing value.
const NullString = "<NA>"

// ToInt converts any Go integer type to int. Floats, strings and other types
// are rejected; ok is false when value is not an integer or overflows int.
func ToInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, false
		}
		return int(v), true
	case uint:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// IsFloatType checks if a value is of a floating-point type.
func IsFloatType(value any) bool {
	switch value.(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

// FormatValue renders a cell value for display, row-name coercion and key
// matching. Nil renders as NullString.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return NullString
	case string:
		return v
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// KeyOf renders a value as a join key. Every missing value shares one key,
// so missing keys match each other. Unlike FormatValue, that key is one no
// real string can produce, so missing keys never match data.
func KeyOf(value any) string {
	if value == nil {
		return "\x00" + NullString
	}
	return FormatValue(value)
}

package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Year is a publication year coerced from free-form input.
// An invalid year is kept rather than rejected; it encodes as JSON null.
type Year struct {
	Value int64
	Valid bool
}

// InvalidYear is the sentinel stored for input that is not a number.
var InvalidYear = Year{}

// maxExactYear bounds the magnitude of a year: every integer up to 2^53 is
// exact in a float64, so stored years survive a decode and encode unchanged.
const maxExactYear = 1 << 53

// YearOf returns a valid year holding v.
func YearOf(v int64) Year {
	return Year{Value: v, Valid: true}
}

// ParseYear coerces s to a Year. Blank input is year 0; decimal, exponent and
// prefixed integer forms are accepted and fractions truncate toward zero.
func ParseYear(s string) Year {
	s = strings.TrimSpace(s)
	if s == "" {
		return YearOf(0)
	}

	if base, digits, ok := splitIntPrefix(s); ok {
		return parsePrefixedInt(digits, base)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return InvalidYear
	}
	return yearFromFloat(f)
}

// splitIntPrefix recognizes the 0x, 0o and 0b integer forms.
func splitIntPrefix(s string) (int, string, bool) {
	if len(s) < 2 || s[0] != '0' {
		return 0, "", false
	}
	switch s[1] {
	case 'x', 'X':
		return 16, s[2:], true
	case 'o', 'O':
		return 8, s[2:], true
	case 'b', 'B':
		return 2, s[2:], true
	}
	return 0, "", false
}

// parsePrefixedInt accepts bare digits only: no sign and no underscores.
func parsePrefixedInt(digits string, base int) Year {
	if digits == "" || strings.ContainsAny(digits, "+-_") {
		return InvalidYear
	}
	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil || n > maxExactYear {
		return InvalidYear
	}
	return YearOf(int64(n))
}

func yearFromFloat(f float64) Year {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return InvalidYear
	}
	t := math.Trunc(f)
	if t > maxExactYear || t < -maxExactYear {
		return InvalidYear
	}
	return YearOf(int64(t))
}

func (y Year) String() string {
	if !y.Valid {
		return "NaN"
	}
	return strconv.FormatInt(y.Value, 10)
}

func (y Year) MarshalJSON() ([]byte, error) {
	if !y.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, y.Value, 10), nil
}

// UnmarshalJSON accepts a number, a numeric string or null.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = InvalidYear
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode year: %w", err)
		}
		*y = ParseYear(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode year: %w", err)
	}
	*y = yearFromFloat(f)
	return nil
}

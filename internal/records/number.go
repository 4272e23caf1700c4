package records

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numberPrefix matches the longest leading decimal literal, the way
// browsers and form tooling read "12.50 USD" as 12.5.
var numberPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// Number is a float that encodes non-finite values as JSON null and decodes
// null back to NaN.
type Number float64

// ParseNumber reads the leading numeric prefix of s. Input with no numeric
// prefix yields NaN rather than an error.
func ParseNumber(s string) Number {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	m := numberPrefix.FindString(s)
	if m == "" {
		return Number(math.NaN())
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil && !math.IsInf(f, 0) {
		return Number(math.NaN())
	}
	return Number(f)
}

// IsNaN reports whether n is not a number.
func (n Number) IsNaN() bool { return math.IsNaN(float64(n)) }

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Number(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Numeric is a whole number that clients may send either as a JSON number
// or as a numeric string, e.g. 15000 or "15000". A missing or null value
// leaves it invalid, which fails the "present" validation tag.
type Numeric struct {
	value int64
	valid bool
}

func NewNumeric(v int64) Numeric {
	return Numeric{value: v, valid: true}
}

func (n Numeric) Int64() int64 { return n.value }

func (n Numeric) Valid() bool { return n.valid }

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Numeric{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
	}

	v, err := parseWhole(raw)
	if err != nil {
		return err
	}
	*n = NewNumeric(v)
	return nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(n.value, 10)), nil
}

func parseWhole(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q must be a whole number", s)
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return int64(f), nil
}

package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// FlexInt accepts 3, 3.0 and "3". Set is false for a missing or null value;
// Valid is false when the value was present but is not an integer.
type FlexInt struct {
	Value int64
	Set   bool
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*f = FlexInt{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	f.Set = true

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			f.Set = false
			return nil
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			f.Value, f.Valid = v, true
		}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return nil
	}
	if v, err := n.Int64(); err == nil {
		f.Value, f.Valid = v, true
		return nil
	}
	if fl, err := n.Float64(); err == nil && fl == math.Trunc(fl) && math.Abs(fl) < 1<<53 {
		f.Value, f.Valid = int64(fl), true
	}
	return nil
}

// Or returns def when no value was sent and bad when an unusable one was.
func (f FlexInt) Or(def, bad int64) int64 {
	switch {
	case !f.Set:
		return def
	case !f.Valid:
		return bad
	default:
		return f.Value
	}
}

// Ptr returns nil when no usable value was sent.
func (f FlexInt) Ptr() *int64 {
	if !f.Set || !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

func parseIDParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt64(c echo.Context, name string) (*int64, bool) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func queryInt(c echo.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

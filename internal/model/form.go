package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FormValue is a raw form field. It decodes from a JSON string, number or
// null so clients may post either typed or untyped form data.
type FormValue string

func (v *FormValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

// Text returns the value with surrounding whitespace removed.
func (v FormValue) Text() string {
	return strings.TrimSpace(string(v))
}

// Float parses the value as a decimal number, returning 0 when it cannot.
func (v FormValue) Float() float64 {
	f, err := strconv.ParseFloat(v.Text(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Int parses the value as an integer, returning 0 when it cannot. A value
// with a fractional part such as "12.7" is truncated to 12.
func (v FormValue) Int() int {
	s := v.Text()
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return int(f)
}

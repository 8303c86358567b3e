package model

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Series is an hourly time series, typically 8760 entries. A JSON null
// inside a series decodes to NaN; Sanitize substitutes zeros and reports
// how many entries were repaired.
type Series []float64

// UnmarshalJSON decodes a JSON array, mapping nulls to NaN so the
// substitution can be counted later instead of silently hidden.
func (s *Series) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Series, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	*s = out
	return nil
}

// MarshalJSON encodes NaN entries as null.
func (s Series) MarshalJSON() ([]byte, error) {
	raw := make([]*float64, len(s))
	for i := range s {
		if !math.IsNaN(s[i]) {
			v := s[i]
			raw[i] = &v
		}
	}
	return json.Marshal(raw)
}

// Zeros returns an all-zero series of length n.
func Zeros(n int) Series {
	return make(Series, n)
}

// Sanitize returns a copy with NaN entries replaced by zero and the
// number of substituted entries.
func (s Series) Sanitize() (Series, int) {
	out := make(Series, len(s))
	subs := 0
	for i, v := range s {
		if math.IsNaN(v) {
			subs++
			continue
		}
		out[i] = v
	}
	return out, subs
}

// Clone returns a copy of the series.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// CheckLen verifies the series has length n.
func (s Series) CheckLen(n int, what string) error {
	if len(s) != n {
		return &InvariantViolation{What: what, Want: n, Got: len(s)}
	}
	return nil
}

// AddInPlace adds src element-wise into dst. Length mismatch is an
// invariant violation, never silently truncated.
func AddInPlace(dst, src Series, what string) error {
	if err := src.CheckLen(len(dst), what); err != nil {
		return err
	}
	floats.Add(dst, src)
	return nil
}

// Scaled returns a copy of s scaled by f.
func (s Series) Scaled(f float64) Series {
	out := s.Clone()
	floats.Scale(f, out)
	return out
}

// Peak returns the maximum value, 0 for an empty series.
func (s Series) Peak() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Max(s)
}

// MinElementwise returns the element-wise minimum of a and b.
func MinElementwise(a, b Series, what string) (Series, error) {
	if err := b.CheckLen(len(a), what); err != nil {
		return nil, err
	}
	out := make(Series, len(a))
	for i := range a {
		out[i] = math.Min(a[i], b[i])
	}
	return out, nil
}

// Constant returns a series of length n with every entry set to v.
func Constant(n int, v float64) Series {
	out := make(Series, n)
	for i := range out {
		out[i] = v
	}
	return out
}

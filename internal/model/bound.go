package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type boundKind uint8

const (
	boundUnset boundKind = iota
	boundFinite
	boundUnbounded
)

// UnboundedLiteral is the JSON spelling of an open-ended upper bound.
const UnboundedLiteral = "unbounded"

// Bound is the upper limit of a usage tier. The zero value means the user has
// not entered anything yet, which is distinct from an intentionally open tier.
type Bound struct {
	kind  boundKind
	value int64
}

// Bounded returns a finite, inclusive upper bound.
func Bounded(n int64) Bound { return Bound{kind: boundFinite, value: n} }

// Unbounded returns an open-ended upper bound.
func Unbounded() Bound { return Bound{kind: boundUnbounded} }

func (b Bound) IsSet() bool       { return b.kind != boundUnset }
func (b Bound) IsUnbounded() bool { return b.kind == boundUnbounded }

// Value returns the finite limit; ok is false for unset and unbounded bounds.
func (b Bound) Value() (n int64, ok bool) {
	return b.value, b.kind == boundFinite
}

func (b Bound) String() string {
	switch b.kind {
	case boundFinite:
		return strconv.FormatInt(b.value, 10)
	case boundUnbounded:
		return UnboundedLiteral
	default:
		return "unset"
	}
}

func (b Bound) MarshalJSON() ([]byte, error) {
	switch b.kind {
	case boundFinite:
		return []byte(strconv.FormatInt(b.value, 10)), nil
	case boundUnbounded:
		return json.Marshal(UnboundedLiteral)
	default:
		return []byte("null"), nil
	}
}

func (b *Bound) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = Bound{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != UnboundedLiteral {
			return fmt.Errorf("max_usage: unexpected value %q", s)
		}
		*b = Unbounded()
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("max_usage: %w", err)
	}
	*b = Bounded(n)
	return nil
}

// MarshalYAML and UnmarshalYAML mirror the JSON spelling for draft templates.
func (b Bound) MarshalYAML() (any, error) {
	switch b.kind {
	case boundFinite:
		return b.value, nil
	case boundUnbounded:
		return UnboundedLiteral, nil
	default:
		return nil, nil
	}
}

func (b *Bound) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*b = Bound{}
	case int:
		*b = Bounded(int64(v))
	case int64:
		*b = Bounded(v)
	case string:
		if v != UnboundedLiteral {
			return fmt.Errorf("max_usage: unexpected value %q", v)
		}
		*b = Unbounded()
	default:
		return fmt.Errorf("max_usage: unsupported type %T", raw)
	}
	return nil
}

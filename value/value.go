// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package value defines the in-memory TOML value tree: a tagged sum
// type with one concrete Go type per TOML value kind, in the spirit of
// the leaf-node types in a hand-written CST (see e.g. the Identifier/
// String/Number/Boolean/DateTime node family many TOML and config
// parsers in this corpus use). Exhaustive matching over Kind replaces
// a duck-typed "mixed" return.
package value

import "fmt"

// Kind tags the dynamic type of a Value.
type Kind int

const (
	StringKind Kind = iota
	IntegerKind
	FloatKind
	BooleanKind
	OffsetDateTimeKind
	LocalDateTimeKind
	LocalDateKind
	LocalTimeKind
	ArrayKind
	TableKind
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "String"
	case IntegerKind:
		return "Integer"
	case FloatKind:
		return "Float"
	case BooleanKind:
		return "Boolean"
	case OffsetDateTimeKind:
		return "OffsetDateTime"
	case LocalDateTimeKind:
		return "LocalDateTime"
	case LocalDateKind:
		return "LocalDate"
	case LocalTimeKind:
		return "LocalTime"
	case ArrayKind:
		return "Array"
	case TableKind:
		return "Table"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is any TOML value: exactly one of String, Integer, Float,
// Boolean, one of the four datetime kinds, Array, or Table.
type Value interface {
	Kind() Kind
	// value is unexported so the Value set is closed to this
	// package; callers type-switch on the concrete types below.
	value()
}

// String is a TOML basic, literal, or multiline string value, already
// fully decoded (escapes applied, delimiters stripped).
type String struct{ Val string }

func (String) Kind() Kind { return StringKind }
func (String) value()     {}

// Integer is a TOML integer value. The CORE represents the full
// signed-64 range; see the builder package for the out-of-range
// policy.
type Integer struct{ Val int64 }

func (Integer) Kind() Kind { return IntegerKind }
func (Integer) value()     {}

// Float is a TOML float value, including ±Inf and NaN.
type Float struct{ Val float64 }

func (Float) Kind() Kind { return FloatKind }
func (Float) value()     {}

// Boolean is a TOML boolean value.
type Boolean struct{ Val bool }

func (Boolean) Kind() Kind { return BooleanKind }
func (Boolean) value()     {}

// OffsetDateTime is an RFC 3339 datetime with a zone offset, stored in
// canonical form: "T" separator, uppercase "Z", seconds always present,
// fractional seconds padded to at least millisecond precision.
type OffsetDateTime struct{ Val string }

func (OffsetDateTime) Kind() Kind { return OffsetDateTimeKind }
func (OffsetDateTime) value()     {}

// LocalDateTime is an RFC 3339 datetime with no zone offset.
type LocalDateTime struct{ Val string }

func (LocalDateTime) Kind() Kind { return LocalDateTimeKind }
func (LocalDateTime) value()     {}

// LocalDate is a bare calendar date, "YYYY-MM-DD".
type LocalDate struct{ Val string }

func (LocalDate) Kind() Kind { return LocalDateKind }
func (LocalDate) value()     {}

// LocalTime is a bare time of day, canonicalized the same way as
// OffsetDateTime/LocalDateTime (seconds present, fraction padded).
type LocalTime struct{ Val string }

func (LocalTime) Kind() Kind { return LocalTimeKind }
func (LocalTime) value()     {}

// Array is an ordered, possibly heterogeneous, sequence of values.
type Array struct{ Elems []Value }

func (Array) Kind() Kind { return ArrayKind }
func (Array) value()     {}

// Table is an ordered mapping from string key to Value. Insertion order
// is preserved in Keys even though TOML gives the CORE no order
// guarantee to uphold — it costs nothing and makes output
// deterministic, which the façade's formatters rely on.
type Table struct {
	fields map[string]Value
	Keys   []string
}

func (*Table) Kind() Kind { return TableKind }
func (*Table) value()     {}

// NewTable returns an empty Table ready for Set.
func NewTable() *Table {
	return &Table{fields: make(map[string]Value)}
}

// Get returns the value at key and whether it was present.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.fields[key]
	return v, ok
}

// Has reports whether key is already set on t.
func (t *Table) Has(key string) bool {
	_, ok := t.fields[key]
	return ok
}

// Set assigns key to v, recording the key in insertion order the first
// time it is set. Set does not itself enforce uniqueness: that is the
// builder's DuplicateKey bookkeeping's job (lenient mode skips the Set
// call entirely for a key already present, keeping the first-assigned
// value).
func (t *Table) Set(key string, v Value) {
	if _, ok := t.fields[key]; !ok {
		t.Keys = append(t.Keys, key)
	}
	t.fields[key] = v
}

// Len reports the number of direct keys in t.
func (t *Table) Len() int { return len(t.Keys) }

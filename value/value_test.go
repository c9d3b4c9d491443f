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

package value

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestTableSetPreservesInsertionOrder(t *testing.T) {
	tbl := NewTable()
	tbl.Set("z", String{Val: "first"})
	tbl.Set("a", Integer{Val: 1})
	tbl.Set("m", Boolean{Val: true})

	qt.Assert(t, qt.DeepEquals(tbl.Keys, []string{"z", "a", "m"}))
	qt.Assert(t, qt.Equals(tbl.Len(), 3))
}

func TestTableSetOverwriteKeepsPosition(t *testing.T) {
	tbl := NewTable()
	tbl.Set("a", Integer{Val: 1})
	tbl.Set("b", Integer{Val: 2})
	tbl.Set("a", Integer{Val: 99})

	qt.Assert(t, qt.DeepEquals(tbl.Keys, []string{"a", "b"}))
	v, ok := tbl.Get("a")
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(v.(Integer).Val, int64(99)))
}

func TestTableHasAndGetAbsentKey(t *testing.T) {
	tbl := NewTable()
	qt.Assert(t, qt.Equals(tbl.Has("missing"), false))
	_, ok := tbl.Get("missing")
	qt.Assert(t, qt.Equals(ok, false))
}

func TestKindStringsAreExhaustive(t *testing.T) {
	kinds := []Kind{
		StringKind, IntegerKind, FloatKind, BooleanKind,
		OffsetDateTimeKind, LocalDateTimeKind, LocalDateKind, LocalTimeKind,
		ArrayKind, TableKind,
	}
	for _, k := range kinds {
		if k.String() == "" {
			t.Fatalf("Kind(%d).String() returned empty string", int(k))
		}
	}
}

func TestConcreteValuesImplementKind(t *testing.T) {
	var vs = []Value{
		String{Val: "x"},
		Integer{Val: 1},
		Float{Val: 1.5},
		Boolean{Val: true},
		OffsetDateTime{Val: "2024-01-01T00:00:00Z"},
		LocalDateTime{Val: "2024-01-01T00:00:00"},
		LocalDate{Val: "2024-01-01"},
		LocalTime{Val: "00:00:00"},
		&Array{},
		NewTable(),
	}
	want := []Kind{
		StringKind, IntegerKind, FloatKind, BooleanKind,
		OffsetDateTimeKind, LocalDateTimeKind, LocalDateKind, LocalTimeKind,
		ArrayKind, TableKind,
	}
	for i, v := range vs {
		qt.Assert(t, qt.Equals(v.Kind(), want[i]))
	}
}

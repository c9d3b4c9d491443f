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

package builder

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/app-hive/toml-sub000/diag"
	"github.com/app-hive/toml-sub000/scanner"
	"github.com/app-hive/toml-sub000/value"
)

func buildSource(t *testing.T, src string, strict bool) (*value.Table, []diag.Warning, *diag.Failure) {
	t.Helper()
	toks, fail := scanner.Tokenize([]byte(src))
	if fail != nil {
		t.Fatalf("Tokenize(%q): unexpected failure: %v", src, fail)
	}
	h := &diag.Handler{Strict: strict, Source: []byte(src)}
	tree, fail := New(toks, h).Build()
	return tree, h.Warnings, fail
}

func mustBuild(t *testing.T, src string) *value.Table {
	t.Helper()
	tree, _, fail := buildSource(t, src, true)
	if fail != nil {
		t.Fatalf("Build(%q): unexpected failure: %v", src, fail)
	}
	return tree
}

func getPath(t *testing.T, root *value.Table, path ...string) value.Value {
	t.Helper()
	cur := root
	for i, seg := range path {
		v, ok := cur.Get(seg)
		if !ok {
			t.Fatalf("path %v: %q not found at segment %d", path, seg, i)
		}
		if i == len(path)-1 {
			return v
		}
		nt, ok := v.(*value.Table)
		if !ok {
			t.Fatalf("path %v: segment %d (%q) is not a table", path, i, seg)
		}
		cur = nt
	}
	return cur
}

// Scenario 1: plain dotted keys build nested tables rooted at the
// document, with the leaf value attached at the final segment.
func TestScenarioDottedKeyCreatesNestedTables(t *testing.T) {
	root := mustBuild(t, "a.b.c = 1\n")
	v := getPath(t, root, "a", "b", "c")
	qt.Assert(t, qt.Equals(v.(value.Integer).Val, int64(1)))
}

// Scenario 2: an explicit table header targeting a path that was only
// ever implicitly created by a dotted key is a DottedKeyConflict.
func TestScenarioExplicitHeaderOverImplicitDottedIsConflict(t *testing.T) {
	_, _, fail := buildSource(t, "a.b = 1\n[a]\nc = 2\n", true)
	if fail == nil {
		t.Fatalf("expected failure")
	}
	qt.Assert(t, qt.Equals(fail.Kind, diag.DottedKeyConflict))
}

// Scenario 3: repeated [[array of tables]] headers append successive
// elements, each independently addressable by positional index.
func TestScenarioArrayOfTablesAppendsElements(t *testing.T) {
	root := mustBuild(t, "[[fruit]]\nname = \"apple\"\n[[fruit]]\nname = \"banana\"\n")
	v, ok := root.Get("fruit")
	if !ok {
		t.Fatalf("fruit not found")
	}
	arr, ok := v.(*value.Array)
	if !ok {
		t.Fatalf("fruit is not an array, got %T", v)
	}
	qt.Assert(t, qt.Equals(len(arr.Elems), 2))

	first, ok := arr.Elems[0].(*value.Table)
	if !ok {
		t.Fatalf("fruit[0] is not a table")
	}
	name, _ := first.Get("name")
	qt.Assert(t, qt.Equals(name.(value.String).Val, "apple"))

	second, ok := arr.Elems[1].(*value.Table)
	if !ok {
		t.Fatalf("fruit[1] is not a table")
	}
	name2, _ := second.Get("name")
	qt.Assert(t, qt.Equals(name2.(value.String).Val, "banana"))
}

// Scenario 4: writing through a dotted key into a previously-closed
// inline table is an InlineTableImmutability violation.
func TestScenarioDottedWriteIntoInlineTableIsImmutable(t *testing.T) {
	_, _, fail := buildSource(t, "t = {a = 1}\nt.b = 2\n", true)
	if fail == nil {
		t.Fatalf("expected failure")
	}
	qt.Assert(t, qt.Equals(fail.Kind, diag.InlineTableImmutability))
}

// Scenario 5: a plain key-value pair at the document root.
func TestScenarioRootLevelAssignment(t *testing.T) {
	root := mustBuild(t, "title = \"hello\"\n")
	v, ok := root.Get("title")
	if !ok {
		t.Fatalf("title not found")
	}
	qt.Assert(t, qt.Equals(v.(value.String).Val, "hello"))
}

// Scenario 6: a space-separated offset datetime is canonicalized to
// 'T' separator, uppercase 'Z', and explicit ":00" seconds.
func TestScenarioSpaceSeparatedOffsetDateTimeCanonicalizes(t *testing.T) {
	root := mustBuild(t, "dt = 1987-07-05 17:45z\n")
	v, ok := root.Get("dt")
	if !ok {
		t.Fatalf("dt not found")
	}
	qt.Assert(t, qt.Equals(v.(value.OffsetDateTime).Val, "1987-07-05T17:45:00Z"))
}

// Scenario 7: a line-ending backslash inside a multiline basic string
// consumes the newline and any leading whitespace of the next line.
func TestScenarioMultilineBasicStringLineContinuation(t *testing.T) {
	root := mustBuild(t, "s = \"\"\"foo \\\n    bar\"\"\"\n")
	v, ok := root.Get("s")
	if !ok {
		t.Fatalf("s not found")
	}
	qt.Assert(t, qt.Equals(v.(value.String).Val, "foo bar"))
}

// A "[[a.b]]" array-of-tables element pins "a" as a plain table; a
// later "[[a]]" targeting the same prefix is a conflict. This
// implementation reports DottedKeyConflict rather than TypeConflict,
// since that kind's own description ("cross-context dotted write")
// fits the implicit-pinning-by-AoT case more precisely; see DESIGN.md.
func TestScenarioNestedArrayOfTablesPinsParentAsTable(t *testing.T) {
	_, _, fail := buildSource(t, "[[a.b]]\n[[a]]\n", true)
	if fail == nil {
		t.Fatalf("expected failure")
	}
	qt.Assert(t, qt.Equals(fail.Kind, diag.DottedKeyConflict))
}

// Lenient mode downgrades a duplicate-key violation to a warning and
// keeps the first definition, dropping the second.
func TestLenientDuplicateKeyKeepsFirstDefinition(t *testing.T) {
	root, warnings, fail := buildSource(t, "a = 1\na = 2\n", false)
	if fail != nil {
		t.Fatalf("unexpected failure: %v", fail)
	}
	v, _ := root.Get("a")
	qt.Assert(t, qt.Equals(v.(value.Integer).Val, int64(1)))
	qt.Assert(t, qt.Equals(len(warnings), 1))
	qt.Assert(t, qt.Equals(warnings[0].Kind, diag.DuplicateKey))
}

// Strict mode always fails on a duplicate key, regardless of whether
// the kind is recoverable.
func TestStrictDuplicateKeyFails(t *testing.T) {
	_, _, fail := buildSource(t, "a = 1\na = 2\n", true)
	if fail == nil {
		t.Fatalf("expected failure")
	}
	qt.Assert(t, qt.Equals(fail.Kind, diag.DuplicateKey))
}

// A static array is not array-of-tables indexable: redeclaring it as a
// table header is a TypeConflict, not a silent append.
func TestStaticArrayCannotBeReopenedAsTable(t *testing.T) {
	_, _, fail := buildSource(t, "a = [1, 2, 3]\n[a]\n", true)
	if fail == nil {
		t.Fatalf("expected failure")
	}
	qt.Assert(t, qt.Equals(fail.Kind, diag.TypeConflict))
}

// An inline table nested inside another inline table in the same
// literal is frozen as soon as its closing brace is parsed: a later
// entry in the same literal cannot reopen it via a dotted key.
func TestInlineTableRejectsReopeningWithinSameLiteral(t *testing.T) {
	_, _, fail := buildSource(t, "t = {a = {x = 1}, a.y = 2}\n", true)
	if fail == nil {
		t.Fatalf("expected failure")
	}
	qt.Assert(t, qt.Equals(fail.Kind, diag.InlineTableImmutability))
}

// A table header nested under an array-of-tables path extends the most
// recent element: "[fruit.physical]" after "[[fruit]]" creates
// "physical" inside that "fruit" element.
func TestArrayOfTablesElementAcceptsNestedHeader(t *testing.T) {
	root := mustBuild(t, "[[fruit]]\nname = \"apple\"\n[fruit.physical]\ncolor = \"red\"\n")
	v := getPath(t, root, "fruit")
	arr := v.(*value.Array)
	elem := arr.Elems[0].(*value.Table)
	physical := getPath(t, elem, "physical", "color")
	qt.Assert(t, qt.Equals(physical.(value.String).Val, "red"))
}

// Each array-of-tables element gets its own sub-table namespace: the
// same sub-header repeated under two distinct "[[fruit]]" elements is
// not a DuplicateTable, since each element is a physically distinct
// table.
func TestArrayOfTablesElementsDoNotShareSubHeaderNamespace(t *testing.T) {
	root := mustBuild(t, "[[fruit]]\nname = \"apple\"\n[fruit.physical]\ncolor = \"red\"\n"+
		"[[fruit]]\nname = \"banana\"\n[fruit.physical]\ncolor = \"yellow\"\n")
	arr := getPath(t, root, "fruit").(*value.Array)
	qt.Assert(t, qt.Equals(len(arr.Elems), 2))

	first := arr.Elems[0].(*value.Table)
	firstName := getPath(t, first, "name")
	qt.Assert(t, qt.Equals(firstName.(value.String).Val, "apple"))
	firstColor := getPath(t, first, "physical", "color")
	qt.Assert(t, qt.Equals(firstColor.(value.String).Val, "red"))

	second := arr.Elems[1].(*value.Table)
	secondName := getPath(t, second, "name")
	qt.Assert(t, qt.Equals(secondName.(value.String).Val, "banana"))
	secondColor := getPath(t, second, "physical", "color")
	qt.Assert(t, qt.Equals(secondColor.(value.String).Val, "yellow"))
}

// Integer literals at the signed-64 boundary succeed; one past the
// boundary is rejected (Open Question resolution: reject overflow).
func TestIntegerBoundary(t *testing.T) {
	root := mustBuild(t, "a = 9223372036854775807\nb = -9223372036854775808\n")
	a, _ := root.Get("a")
	qt.Assert(t, qt.Equals(a.(value.Integer).Val, int64(9223372036854775807)))
	b, _ := root.Get("b")
	qt.Assert(t, qt.Equals(b.(value.Integer).Val, int64(-9223372036854775808)))

	_, _, fail := buildSource(t, "c = 9223372036854775808\n", true)
	if fail == nil {
		t.Fatalf("expected overflow failure")
	}
	qt.Assert(t, qt.Equals(fail.Kind, diag.InvalidNumber))
}

// A leading-zero integer is a recoverable InvalidNumber: fatal under
// strict mode, a warning (value still parsed) under lenient mode.
func TestLeadingZeroIntegerStrictVsLenient(t *testing.T) {
	_, _, fail := buildSource(t, "a = 007\n", true)
	if fail == nil {
		t.Fatalf("expected failure in strict mode")
	}
	qt.Assert(t, qt.Equals(fail.Kind, diag.InvalidNumber))

	root, warnings, fail := buildSource(t, "a = 007\n", false)
	if fail != nil {
		t.Fatalf("unexpected failure in lenient mode: %v", fail)
	}
	v, _ := root.Get("a")
	qt.Assert(t, qt.Equals(v.(value.Integer).Val, int64(7)))
	qt.Assert(t, qt.Equals(len(warnings), 1))
}

// A local time without seconds is canonicalized with an explicit
// ":00", and sub-millisecond fractions are padded, never truncated.
func TestLocalTimeNormalization(t *testing.T) {
	root := mustBuild(t, "a = 07:32\nb = 12:34:56.6\nc = 12:34:56.123456\n")
	a, _ := root.Get("a")
	qt.Assert(t, qt.Equals(a.(value.LocalTime).Val, "07:32:00"))
	b, _ := root.Get("b")
	qt.Assert(t, qt.Equals(b.(value.LocalTime).Val, "12:34:56.600"))
	c, _ := root.Get("c")
	qt.Assert(t, qt.Equals(c.(value.LocalTime).Val, "12:34:56.123456"))
}

// A static array can hold mixed element types and permits a trailing
// comma and interior newlines (TOML 1.1.0's multiline array grammar).
func TestStaticArrayMixedTypesAndTrailingComma(t *testing.T) {
	root := mustBuild(t, "a = [\n  1,\n  \"two\",\n  true,\n]\n")
	v, _ := root.Get("a")
	arr := v.(*value.Array)
	qt.Assert(t, qt.Equals(len(arr.Elems), 3))
	qt.Assert(t, qt.Equals(arr.Elems[0].(value.Integer).Val, int64(1)))
	qt.Assert(t, qt.Equals(arr.Elems[1].(value.String).Val, "two"))
	qt.Assert(t, qt.Equals(arr.Elems[2].(value.Boolean).Val, true))
}

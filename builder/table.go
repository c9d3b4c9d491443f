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
	"github.com/app-hive/toml-sub000/diag"
	"github.com/app-hive/toml-sub000/token"
	"github.com/app-hive/toml-sub000/value"
)

// descend resolves one path segment from cur as a Table. prefix is the
// full dotted path reaching seg (inclusive), used to tell a genuine
// array-of-tables element — where indexing the last element is
// correct — from a plain static array, which is a type conflict no
// matter what kind of node is being navigated through.
func (b *Builder) descend(cur *value.Table, seg, prefix string, line, col int) (*value.Table, *diag.Failure) {
	existing, ok := cur.Get(seg)
	if !ok {
		t := value.NewTable()
		cur.Set(seg, t)
		return t, nil
	}
	switch v := existing.(type) {
	case *value.Table:
		return v, nil
	case *value.Array:
		if !b.aotPaths[prefix] {
			return nil, b.h.Fail(diag.TypeConflict, line, col, "key %q is a statically-defined array, not a table", seg)
		}
		if len(v.Elems) == 0 {
			return nil, b.h.Fail(diag.TypeConflict, line, col, "key %q is an empty array of tables", seg)
		}
		last, ok := v.Elems[len(v.Elems)-1].(*value.Table)
		if !ok {
			return nil, b.h.Fail(diag.TypeConflict, line, col, "key %q is an array, not an array of tables", seg)
		}
		return last, nil
	default:
		return nil, b.h.Fail(diag.TypeConflict, line, col, "key %q already has a non-table value", seg)
	}
}

// navigatePath walks path from the root, creating/reusing tables at
// every segment via descend. It is used for table headers (the full
// header path) and for the key-value and array-of-tables parent walks.
func (b *Builder) navigatePath(path []string, line, col int) (*value.Table, *diag.Failure) {
	cur := b.root
	for i, seg := range path {
		prefix := joinPath(path[:i+1])
		var fail *diag.Failure
		cur, fail = b.descend(cur, seg, prefix, line, col)
		if fail != nil {
			return nil, fail
		}
	}
	return cur, nil
}

// parseTableHeader parses a "[" dotted-key "]" table header.
func (b *Builder) parseTableHeader() *diag.Failure {
	open := b.cur()
	b.advance() // '['

	path, fail := b.parseDottedKey()
	if fail != nil {
		return fail
	}
	if _, fail := b.expect(token.RBracket); fail != nil {
		return fail
	}

	full := joinPath(path)

	if b.aotPaths[full] {
		return b.h.Fail(diag.TypeConflict, open.Line, open.Column,
			"%q is an array of tables, not a table", full)
	}
	if b.definedTables[full] {
		if r := b.h.Report(diag.DuplicateTable, open.Line, open.Column,
			"table %q is defined more than once", full); r != nil {
			return r
		}
	}
	if b.implicitDotted[full] {
		return b.h.Fail(diag.DottedKeyConflict, open.Line, open.Column,
			"table %q was already implicitly defined via a dotted key", full)
	}
	if hasPrefixIn(b.inlineFrozen, path) {
		return b.h.Fail(diag.InlineTableImmutability, open.Line, open.Column,
			"table header %q would reopen a frozen inline table", full)
	}

	b.definedTables[full] = true

	if _, fail := b.navigatePath(path, open.Line, open.Column); fail != nil {
		return fail
	}
	b.currentPath = path
	return nil
}

// parseArrayOfTablesHeader parses a "[[" dotted-key "]]" header.
func (b *Builder) parseArrayOfTablesHeader() *diag.Failure {
	open := b.cur()
	b.advance() // '['
	b.advance() // '['

	path, fail := b.parseDottedKey()
	if fail != nil {
		return fail
	}
	if _, fail := b.expect(token.RBracket); fail != nil {
		return fail
	}
	if _, fail := b.expect(token.RBracket); fail != nil {
		return fail
	}

	full := joinPath(path)

	if b.staticArrayPaths[full] {
		return b.h.Fail(diag.TypeConflict, open.Line, open.Column,
			"%q is a statically-defined array, not an array of tables", full)
	}
	if b.definedTables[full] && !b.aotPaths[full] {
		return b.h.Fail(diag.TypeConflict, open.Line, open.Column,
			"%q is a table, not an array of tables", full)
	}
	if b.implicitDotted[full] {
		return b.h.Fail(diag.DottedKeyConflict, open.Line, open.Column,
			"%q was already implicitly defined via a dotted key", full)
	}
	if b.implicitTableByAot[full] {
		return b.h.Fail(diag.DottedKeyConflict, open.Line, open.Column,
			"%q was already implicitly pinned as a table by a prior [[...]] header", full)
	}
	if hasPrefixIn(b.inlineFrozen, path) {
		return b.h.Fail(diag.InlineTableImmutability, open.Line, open.Column,
			"array-of-tables header %q would reopen a frozen inline table", full)
	}

	for i := 1; i < len(path); i++ {
		prefix := joinPath(path[:i])
		if !b.aotPaths[prefix] {
			b.implicitTableByAot[prefix] = true
		}
	}
	b.aotPaths[full] = true

	// A new element starts a fresh table, so bookkeeping recorded against
	// a prior element's descendant paths no longer applies: "[[fruit]]"
	// followed by "[fruit.physical]" must not collide with the
	// "fruit.physical" recorded for the previous "[[fruit]]" element.
	clearDescendants(b.inlineFrozen, full)
	clearDescendants(b.definedTables, full)
	clearDescendants(b.implicitDotted, full)
	clearDescendants(b.implicitTableByAot, full)

	parent, fail := b.navigatePath(path[:len(path)-1], open.Line, open.Column)
	if fail != nil {
		return fail
	}

	last := path[len(path)-1]
	existing, ok := parent.Get(last)
	var arr *value.Array
	if !ok {
		arr = &value.Array{}
		parent.Set(last, arr)
	} else {
		a, ok := existing.(*value.Array)
		if !ok {
			return b.h.Fail(diag.TypeConflict, open.Line, open.Column,
				"%q already has a non-array-of-tables value", full)
		}
		arr = a
	}

	arr.Elems = append(arr.Elems, value.NewTable())
	b.currentPath = path
	return nil
}

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

// parseKeyValueAssignment parses a dotted-key "=" value production,
// rooted at the builder's current table (the most recent header, or
// the document root before any header). Entries inside an inline
// table are parsed by parseInlineEntry instead.
func (b *Builder) parseKeyValueAssignment() *diag.Failure {
	start := b.cur()
	local, fail := b.parseDottedKey()
	if fail != nil {
		return fail
	}
	if _, fail := b.expect(token.Equals); fail != nil {
		return fail
	}
	val, fail := b.parseValue()
	if fail != nil {
		return fail
	}

	full := make([]string, 0, len(b.currentPath)+len(local))
	full = append(full, b.currentPath...)
	full = append(full, local...)

	if hasPrefixIn(b.inlineFrozen, full) {
		return b.h.Fail(diag.InlineTableImmutability, start.Line, start.Column,
			"%q would modify a frozen inline table", joinPath(full))
	}

	for i := 1; i < len(local); i++ {
		b.implicitDotted[joinPath(full[:len(b.currentPath)+i])] = true
	}

	cur, fail := b.navigatePath(full[:len(full)-1], start.Line, start.Column)
	if fail != nil {
		return fail
	}

	leaf := local[len(local)-1]
	if cur.Has(leaf) {
		if r := b.h.Report(diag.DuplicateKey, start.Line, start.Column,
			"key %q is defined more than once", joinPath(full)); r != nil {
			return r
		}
		// Lenient recovery: keep the first definition, drop this one.
		return nil
	}
	cur.Set(leaf, val)

	fullStr := joinPath(full)
	switch v := val.(type) {
	case *value.Array:
		b.staticArrayPaths[fullStr] = true
	case *value.Table:
		b.freezeInlineSubtree(fullStr, v)
	}
	return nil
}

// freezeInlineSubtree marks full and every descendant path reachable
// through nested tables/arrays of t as inline_frozen: the post-set
// tracking for a value whose source form was an inline table.
func (b *Builder) freezeInlineSubtree(full string, t *value.Table) {
	b.inlineFrozen[full] = true
	for _, k := range t.Keys {
		v, _ := t.Get(k)
		child := full + "." + k
		switch cv := v.(type) {
		case *value.Table:
			b.freezeInlineSubtree(child, cv)
		case *value.Array:
			b.freezeInlineArray(child, cv)
		default:
			b.inlineFrozen[child] = true
		}
	}
}

func (b *Builder) freezeInlineArray(path string, a *value.Array) {
	b.inlineFrozen[path] = true
	for _, e := range a.Elems {
		if t, ok := e.(*value.Table); ok {
			b.freezeInlineSubtree(path, t)
		}
	}
}

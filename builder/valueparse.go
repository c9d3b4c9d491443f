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

// parseValue dispatches on the current token's kind to parse one value.
func (b *Builder) parseValue() (value.Value, *diag.Failure) {
	tok := b.cur()
	switch tok.Kind {
	case token.Integer:
		b.advance()
		return b.parseIntegerLiteral(tok)
	case token.Float:
		b.advance()
		return b.parseFloatLiteral(tok)
	case token.Boolean:
		b.advance()
		return value.Boolean{Val: tok.Lit == "true"}, nil
	case token.BasicString, token.LiteralString, token.MlBasicString, token.MlLiteralString:
		b.advance()
		return value.String{Val: tok.Lit}, nil
	case token.LocalDate:
		b.advance()
		return value.LocalDate{Val: tok.Lit}, nil
	case token.LocalTime:
		b.advance()
		return value.LocalTime{Val: normalizeTime(tok.Lit)}, nil
	case token.LocalDateTime:
		b.advance()
		return value.LocalDateTime{Val: normalizeLocalDateTime(tok.Lit)}, nil
	case token.OffsetDateTime:
		b.advance()
		return value.OffsetDateTime{Val: normalizeOffsetDateTime(tok.Lit)}, nil
	case token.LBrace:
		return b.parseInlineTable()
	case token.LBracket:
		return b.parseStaticArray()
	default:
		return nil, b.h.Fail(diag.SyntaxError, tok.Line, tok.Column, "expected a value, found %s", tok)
	}
}

// parseStaticArray parses a "[" ... "]" array literal. Newlines and a
// trailing comma are permitted between elements; element types may be
// mixed.
func (b *Builder) parseStaticArray() (value.Value, *diag.Failure) {
	open := b.cur()
	b.advance() // '['
	arr := &value.Array{}

	b.skipNewlines()
	if b.cur().Kind == token.RBracket {
		b.advance()
		return arr, nil
	}

	for {
		v, fail := b.parseValue()
		if fail != nil {
			return nil, fail
		}
		arr.Elems = append(arr.Elems, v)

		b.skipNewlines()
		switch b.cur().Kind {
		case token.Comma:
			b.advance()
			b.skipNewlines()
			if b.cur().Kind == token.RBracket {
				b.advance()
				return arr, nil
			}
		case token.RBracket:
			b.advance()
			return arr, nil
		default:
			tok := b.cur()
			return nil, b.h.Fail(diag.SyntaxError, tok.Line, tok.Column,
				"expected ',' or ']' in array starting at %d:%d, found %s", open.Line, open.Column, tok)
		}
	}
}

// inlineScope is a second, inline_frozen-style set that exists only
// for the lifetime of one inline table literal, to reject
// a later entry in the same literal from reopening a subtable an
// earlier entry created as a nested inline table (subtables created
// by a dotted key stay open to later dotted keys in the same literal),
// without touching the document-wide inline_frozen set
// (that gets populated once, for the whole literal, when it is
// attached to its parent — see freezeInlineSubtree).
type inlineScope struct {
	frozen map[string]bool
}

// parseInlineTable parses a "{" ... "}" inline table literal.
func (b *Builder) parseInlineTable() (value.Value, *diag.Failure) {
	open := b.cur()
	b.advance() // '{'
	t := value.NewTable()
	scope := &inlineScope{frozen: map[string]bool{}}

	b.skipNewlines()
	if b.cur().Kind == token.RBrace {
		b.advance()
		return t, nil
	}

	for {
		if fail := b.parseInlineEntry(t, scope); fail != nil {
			return nil, fail
		}

		b.skipNewlines()
		switch b.cur().Kind {
		case token.Comma:
			b.advance()
			b.skipNewlines()
			if b.cur().Kind == token.RBrace {
				b.advance()
				return t, nil
			}
		case token.RBrace:
			b.advance()
			return t, nil
		default:
			tok := b.cur()
			return nil, b.h.Fail(diag.SyntaxError, tok.Line, tok.Column,
				"expected ',' or '}' in inline table starting at %d:%d, found %s", open.Line, open.Column, tok)
		}
	}
}

// parseInlineEntry parses one "dotted-key = value" pair of an inline
// table and inserts it into t, following the same dotted-key
// assignment rule as a top-level entry but scoped to t and the inline
// table's own local frozen-path tracking rather than the document-wide
// bookkeeping sets.
func (b *Builder) parseInlineEntry(t *value.Table, scope *inlineScope) *diag.Failure {
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

	if hasPrefixIn(scope.frozen, local) {
		return b.h.Fail(diag.InlineTableImmutability, start.Line, start.Column,
			"%q would modify a previously frozen entry of this inline table", joinPath(local))
	}

	cur := t
	for _, seg := range local[:len(local)-1] {
		existing, ok := cur.Get(seg)
		if !ok {
			nt := value.NewTable()
			cur.Set(seg, nt)
			cur = nt
			continue
		}
		nt, ok := existing.(*value.Table)
		if !ok {
			return b.h.Fail(diag.TypeConflict, start.Line, start.Column,
				"key %q already has a non-table value", seg)
		}
		cur = nt
	}

	leaf := local[len(local)-1]
	if cur.Has(leaf) {
		if r := b.h.Report(diag.DuplicateKey, start.Line, start.Column,
			"key %q is defined more than once in this inline table", joinPath(local)); r != nil {
			return r
		}
		return nil
	}
	cur.Set(leaf, val)

	if nested, ok := val.(*value.Table); ok {
		markInlineScopeFrozen(scope, joinPath(local), nested)
	}
	return nil
}

func markInlineScopeFrozen(scope *inlineScope, path string, t *value.Table) {
	scope.frozen[path] = true
	for _, k := range t.Keys {
		v, _ := t.Get(k)
		if nt, ok := v.(*value.Table); ok {
			markInlineScopeFrozen(scope, path+"."+k, nt)
		}
	}
}

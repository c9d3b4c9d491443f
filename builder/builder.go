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

// Package builder is the Tree Builder: it consumes the token sequence
// the scanner produced and builds the TOML value tree, enforcing the
// non-local invariants — tables cannot be reopened, an inline table's
// subtree freezes at its closing brace, a "[[a.b]]" pins "a" to be a
// non-array-of-tables table, and so on.
//
// The shape follows cue/parser: a struct holding a token cursor
// (pos into toks, read with cur() and peek()), advanced by advance(),
// with expect(kind) bundling the "check and advance" idiom. Where it
// differs from cue/parser is the token source: the scanner here
// always materializes a full token slice up front, so the cursor
// indexes a slice instead of pulling from a live scanner.
package builder

import (
	"strings"

	"github.com/app-hive/toml-sub000/diag"
	"github.com/app-hive/toml-sub000/token"
	"github.com/app-hive/toml-sub000/value"
)

// Builder holds the bookkeeping needed to enforce the tree's structural
// invariants across a single parse. A Builder is used once: construct
// with New, call Build.
type Builder struct {
	toks []token.Token
	pos  int
	h    *diag.Handler

	root *value.Table

	definedTables      map[string]bool
	implicitDotted     map[string]bool
	aotPaths           map[string]bool
	inlineFrozen       map[string]bool
	staticArrayPaths   map[string]bool
	implicitTableByAot map[string]bool

	currentPath []string
}

// New creates a Builder over a complete token sequence (ending in EOF)
// with the given diagnostic handler.
func New(toks []token.Token, h *diag.Handler) *Builder {
	return &Builder{
		toks:               toks,
		h:                  h,
		root:               value.NewTable(),
		definedTables:      map[string]bool{},
		implicitDotted:     map[string]bool{},
		aotPaths:           map[string]bool{},
		inlineFrozen:       map[string]bool{},
		staticArrayPaths:   map[string]bool{},
		implicitTableByAot: map[string]bool{},
	}
}

// Build runs the top-level production loop to completion, returning
// the finished tree or the first fatal diagnostic.
func (b *Builder) Build() (*value.Table, *diag.Failure) {
	for {
		b.skipNewlines()
		if b.cur().Kind == token.EOF {
			return b.root, nil
		}

		var fail *diag.Failure
		if b.cur().Kind == token.LBracket {
			if b.isArrayOfTablesHeader() {
				fail = b.parseArrayOfTablesHeader()
			} else {
				fail = b.parseTableHeader()
			}
		} else {
			fail = b.parseKeyValueAssignment()
		}
		if fail != nil {
			return nil, fail
		}

		if tok := b.cur(); tok.Kind != token.Newline && tok.Kind != token.EOF {
			return nil, b.h.Fail(diag.SyntaxError, tok.Line, tok.Column,
				"expected newline after top-level production, found %s", tok)
		}
	}
}

// --- token cursor -----------------------------------------------------

func (b *Builder) cur() token.Token {
	return b.toks[b.pos]
}

func (b *Builder) peek(n int) token.Token {
	if b.pos+n >= len(b.toks) {
		return b.toks[len(b.toks)-1] // Eof
	}
	return b.toks[b.pos+n]
}

func (b *Builder) advance() {
	if b.pos < len(b.toks)-1 {
		b.pos++
	}
}

func (b *Builder) expect(kind token.Kind) (token.Token, *diag.Failure) {
	tok := b.cur()
	if tok.Kind != kind {
		return tok, b.h.Fail(diag.SyntaxError, tok.Line, tok.Column,
			"expected %s, found %s", kind, tok)
	}
	b.advance()
	return tok, nil
}

func (b *Builder) skipNewlines() {
	for b.cur().Kind == token.Newline {
		b.advance()
	}
}

// isArrayOfTablesHeader reports whether the cursor sits on a "[[" pair:
// two single-char LBracket tokens, adjacent (same line, columns one
// apart) — the scanner never fuses them into one token.
func (b *Builder) isArrayOfTablesHeader() bool {
	a, c := b.cur(), b.peek(1)
	return c.Kind == token.LBracket && a.Line == c.Line && c.Column == a.Column+1
}

// joinPath renders a dotted path as the flat string used for every
// bookkeeping-set membership check: the same join rule is used on both
// sides of every comparison, which is what makes the otherwise-lossy
// flattening safe.
func joinPath(path []string) string {
	return strings.Join(path, ".")
}

func hasPrefixIn(set map[string]bool, path []string) bool {
	for i := 1; i <= len(path); i++ {
		if set[joinPath(path[:i])] {
			return true
		}
	}
	return false
}

// clearDescendants deletes every entry of set whose dotted path is a
// strict descendant of prefix (prefix itself is left untouched), used
// to drop bookkeeping recorded against a prior array-of-tables
// element's subtree when a new element begins.
func clearDescendants(set map[string]bool, prefix string) {
	dotted := prefix + "."
	for k := range set {
		if strings.HasPrefix(k, dotted) {
			delete(set, k)
		}
	}
}

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

// Package scanner implements the Source Validator and Tokenizer for
// TOML v1.1.0: a hand-written deterministic scanner over a validated
// UTF-8 byte stream, in the style of cue/scanner — a single tokenizing
// entry point (Tokenize, mirroring Scanner.Scan) that classifies the
// next run of bytes and tracks line/column as it goes, reporting a
// *diag.Failure at the first lexical error rather than an
// error-handler callback, since every lexical violation is
// unconditionally fatal.
package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/app-hive/toml-sub000/diag"
	"github.com/app-hive/toml-sub000/token"
)

// scanner holds scanning state for a single Tokenize call.
type scanner struct {
	src  []byte
	pos  int // byte offset of the next unread byte
	line int
	col  int
	h    *diag.Handler
}

// Tokenize classifies src into a flat token sequence ending in exactly
// one token.Kind == token.EOF. src must already have passed Validate;
// Tokenize does not re-check UTF-8 validity.
func Tokenize(src []byte) ([]token.Token, *diag.Failure) {
	s := &scanner{src: src, pos: 0, line: 1, col: 1, h: &diag.Handler{Source: src}}
	var out []token.Token
	for {
		tok, fail := s.next()
		if fail != nil {
			return nil, fail
		}
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out, nil
		}
	}
}

func (s *scanner) fail(kind diag.Kind, line, col int, format string, args ...interface{}) *diag.Failure {
	return s.h.Fail(kind, line, col, format, args...)
}

// peek returns the byte at relative offset n from the cursor, or 0 if
// out of bounds.
func (s *scanner) peek(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

// cursor snapshots the scanner's (pos, line, col) so a speculative scan
// can be rolled back without corrupting subsequent position tracking.
type cursor struct {
	pos, line, col int
}

func (s *scanner) mark() cursor {
	return cursor{pos: s.pos, line: s.line, col: s.col}
}

func (s *scanner) reset(c cursor) {
	s.pos, s.line, s.col = c.pos, c.line, c.col
}

// advance consumes n raw bytes, updating line/column bookkeeping. It
// must not be used to cross a UTF-8 rune boundary in the middle of
// multi-byte content; callers that might see non-ASCII bytes use
// advanceRune instead.
func (s *scanner) advance(n int) {
	for i := 0; i < n && !s.eof(); i++ {
		if s.src[s.pos] == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
		s.pos++
	}
}

// advanceRune consumes one full UTF-8 rune (1-4 bytes) from the
// cursor, which may appear inside string content.
func (s *scanner) advanceRune() rune {
	r, size := utf8.DecodeRune(s.src[s.pos:])
	s.advance(size)
	return r
}

func isBareKeyByte(b byte) bool {
	return b == '_' || b == '-' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// skipWhitespace consumes runs of space/tab, not newlines.
func (s *scanner) skipWhitespace() {
	for !s.eof() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.advance(1)
	}
}

// next scans and returns the single next token.
func (s *scanner) next() (token.Token, *diag.Failure) {
	s.skipWhitespace()

	if s.eof() {
		return token.Token{Kind: token.EOF, Line: s.line, Column: s.col}, nil
	}

	line, col := s.line, s.col
	b := s.src[s.pos]

	switch {
	case b == '#':
		s.skipComment()
		return s.next()
	case b == '\n':
		s.advance(1)
		return token.Token{Kind: token.Newline, Lit: "\n", Line: line, Column: col}, nil
	case b == '\r' && s.peek(1) == '\n':
		s.advance(2)
		return token.Token{Kind: token.Newline, Lit: "\r\n", Line: line, Column: col}, nil
	case b == '[':
		s.advance(1)
		return token.Token{Kind: token.LBracket, Lit: "[", Line: line, Column: col}, nil
	case b == ']':
		s.advance(1)
		return token.Token{Kind: token.RBracket, Lit: "]", Line: line, Column: col}, nil
	case b == '{':
		s.advance(1)
		return token.Token{Kind: token.LBrace, Lit: "{", Line: line, Column: col}, nil
	case b == '}':
		s.advance(1)
		return token.Token{Kind: token.RBrace, Lit: "}", Line: line, Column: col}, nil
	case b == '=':
		s.advance(1)
		return token.Token{Kind: token.Equals, Lit: "=", Line: line, Column: col}, nil
	case b == '.':
		s.advance(1)
		return token.Token{Kind: token.Dot, Lit: ".", Line: line, Column: col}, nil
	case b == ',':
		s.advance(1)
		return token.Token{Kind: token.Comma, Lit: ",", Line: line, Column: col}, nil
	case b == '"' || b == '\'':
		return s.scanString(line, col)
	case isDigit(b):
		return s.scanDigitLeading(line, col)
	case (b == '+' || b == '-') && (isDigit(s.peek(1)) || s.startsInfOrNan(1)):
		return s.scanNumber(line, col)
	case b == 'i' && s.matchesKeyword("inf"):
		s.advance(3)
		return token.Token{Kind: token.Float, Lit: "inf", Line: line, Column: col}, nil
	case b == 'n' && s.matchesKeyword("nan"):
		s.advance(3)
		return token.Token{Kind: token.Float, Lit: "nan", Line: line, Column: col}, nil
	case b == 't' && s.matchesKeyword("true"):
		s.advance(4)
		return token.Token{Kind: token.Boolean, Lit: "true", Line: line, Column: col}, nil
	case b == 'f' && s.matchesKeyword("false"):
		s.advance(5)
		return token.Token{Kind: token.Boolean, Lit: "false", Line: line, Column: col}, nil
	case isBareKeyByte(b):
		return s.scanBareKey(line, col), nil
	default:
		r := s.advanceRune()
		return token.Token{}, s.fail(diag.UnexpectedCharacter, line, col,
			"unexpected character %q", r)
	}
}

// skipComment consumes a '#' comment to end of line. It does no
// validation of its own: bare control characters in comments are
// rejected document-wide by the Source Validator, which runs first.
func (s *scanner) skipComment() {
	for !s.eof() && s.src[s.pos] != '\n' {
		s.advance(1)
	}
}

// matchesKeyword reports whether the bytes at the cursor spell kw
// followed by a non-bare-key character (or EOF).
func (s *scanner) matchesKeyword(kw string) bool {
	if s.pos+len(kw) > len(s.src) {
		return false
	}
	if string(s.src[s.pos:s.pos+len(kw)]) != kw {
		return false
	}
	next := s.pos + len(kw)
	if next < len(s.src) && isBareKeyByte(s.src[next]) {
		return false
	}
	return true
}

// startsInfOrNan reports whether, starting n bytes past the cursor
// (skipping a sign), the source spells "inf" or "nan".
func (s *scanner) startsInfOrNan(n int) bool {
	rest := s.src[min(s.pos+n, len(s.src)):]
	return strings.HasPrefix(string(rest), "inf") || strings.HasPrefix(string(rest), "nan")
}

func (s *scanner) scanBareKey(line, col int) token.Token {
	start := s.pos
	for !s.eof() && isBareKeyByte(s.src[s.pos]) {
		s.advance(1)
	}
	return token.Token{Kind: token.BareKey, Lit: string(s.src[start:s.pos]), Line: line, Column: col}
}

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

package scanner

import (
	"strings"

	"github.com/app-hive/toml-sub000/diag"
	"github.com/app-hive/toml-sub000/token"
)

// scanString dispatches among the four string kinds by checking for a
// tripled opening delimiter, then decodes the body.
// Unlike every other token, a string's Lit is the decoded text, not
// the raw source span (per the Token doc comment in package token).
func (s *scanner) scanString(line, col int) (token.Token, *diag.Failure) {
	quote := s.src[s.pos]
	basic := quote == '"'
	multiline := s.peek(1) == quote && s.peek(2) == quote

	if multiline {
		s.advance(3)
		s.skipFirstNewline()
	} else {
		s.advance(1)
	}

	var text string
	var fail *diag.Failure
	switch {
	case basic && multiline:
		text, fail = s.scanStringBody(quote, true, true)
	case basic && !multiline:
		text, fail = s.scanStringBody(quote, true, false)
	case !basic && multiline:
		text, fail = s.scanStringBody(quote, false, true)
	default:
		text, fail = s.scanStringBody(quote, false, false)
	}
	if fail != nil {
		return token.Token{}, fail
	}

	kind := token.LiteralString
	switch {
	case basic && multiline:
		kind = token.MlBasicString
	case basic:
		kind = token.BasicString
	case multiline:
		kind = token.MlLiteralString
	}
	return token.Token{Kind: kind, Lit: text, Line: line, Column: col}, nil
}

// skipFirstNewline implements "a newline immediately after the opening
// delimiter is stripped" for multiline strings.
func (s *scanner) skipFirstNewline() {
	if s.peek(0) == '\r' && s.peek(1) == '\n' {
		s.advance(2)
	} else if s.peek(0) == '\n' {
		s.advance(1)
	}
}

// scanStringBody consumes and decodes a string body up to its closing
// delimiter, which has already had its opening consumed by the
// caller. escapes selects basic (true) vs literal (false) handling;
// multiline selects whether raw newlines are content instead of
// errors and whether the closing run may include up to two extra
// quote characters.
func (s *scanner) scanStringBody(quote byte, escapes, multiline bool) (string, *diag.Failure) {
	startLine, startCol := s.line, s.col
	var b strings.Builder
	for {
		if s.eof() {
			return "", s.fail(diag.UnterminatedString, startLine, startCol, "string literal not terminated")
		}
		ch := s.src[s.pos]

		if ch == quote {
			if !multiline {
				s.advance(1)
				return b.String(), nil
			}
			run := s.quoteRunLength(quote)
			if run >= 3 {
				extra := run - 3
				if extra > 2 {
					extra = 2
				}
				for i := 0; i < extra; i++ {
					b.WriteByte(quote)
				}
				s.advance(run)
				return b.String(), nil
			}
			for i := 0; i < run; i++ {
				b.WriteByte(quote)
			}
			s.advance(run)
			continue
		}

		if ch == '\n' {
			if !multiline {
				return "", s.fail(diag.UnterminatedString, startLine, startCol, "string literal not terminated")
			}
			b.WriteByte('\n')
			s.advance(1)
			continue
		}

		if ch == '\r' && s.peek(1) == '\n' {
			if !multiline {
				return "", s.fail(diag.UnterminatedString, startLine, startCol, "string literal not terminated")
			}
			if !escapes {
				// CRLF inside a multiline literal string is normalized to LF.
				b.WriteByte('\n')
			} else {
				b.WriteByte('\r')
				b.WriteByte('\n')
			}
			s.advance(2)
			continue
		}

		if ch == '\\' && escapes {
			line, col := s.line, s.col
			s.advance(1)
			if multiline && s.tryConsumeLineContinuation() {
				continue
			}
			if fail := s.scanEscape(&b, line, col); fail != nil {
				return "", fail
			}
			continue
		}

		// Any other byte, including the non-quote half of a literal
		// backslash, is copied as a full UTF-8 rune.
		r := s.advanceRune()
		b.WriteRune(r)
	}
}

// quoteRunLength counts consecutive occurrences of quote at the
// cursor, without consuming them.
func (s *scanner) quoteRunLength(quote byte) int {
	n := 0
	for s.peek(n) == quote {
		n++
	}
	return n
}

// tryConsumeLineContinuation implements the multiline-basic
// line-ending backslash rule: a backslash at end of line (after
// optional trailing spaces/tabs) consumes the newline and all
// following whitespace up to the next non-whitespace character. The
// backslash itself has already been consumed by the caller. It
// returns false (consuming nothing) if what follows isn't this
// pattern, leaving the backslash to be handled as the start of a
// normal escape sequence.
func (s *scanner) tryConsumeLineContinuation() bool {
	mark := s.mark()
	for s.peek(0) == ' ' || s.peek(0) == '\t' {
		s.advance(1)
	}
	switch {
	case s.peek(0) == '\n':
		s.advance(1)
	case s.peek(0) == '\r' && s.peek(1) == '\n':
		s.advance(2)
	default:
		s.reset(mark)
		return false
	}
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\n':
			s.advance(1)
		case '\r':
			if s.peek(1) == '\n' {
				s.advance(2)
				continue
			}
			return true
		default:
			return true
		}
	}
	return true
}

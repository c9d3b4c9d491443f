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
	"github.com/app-hive/toml-sub000/diag"
	"github.com/app-hive/toml-sub000/token"
)

var daysInMonth = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// scanDigitLeading is reached on a leading digit byte. It follows a
// bounded-lookahead rule: try a datetime shape first, fall back to a
// number, and if what was scanned is immediately
// followed by another bare-key byte, the whole span is actually a
// bare key (e.g. a numeric-looking table/key segment like "1a2", whose
// digits are followed by letters).
func (s *scanner) scanDigitLeading(line, col int) (token.Token, *diag.Failure) {
	start := s.pos

	if s.looksLikeLocalTime() {
		tok, fail := s.scanLocalTime(line, col)
		if fail != nil {
			return tok, fail
		}
		return s.maybeBareKey(start, tok), nil
	}

	if s.looksLikeDate() {
		tok, fail := s.scanDateOrDateTime(line, col)
		if fail != nil {
			return tok, fail
		}
		return s.maybeBareKey(start, tok), nil
	}

	tok, fail := s.scanNumber(line, col)
	if fail != nil {
		return tok, fail
	}
	return s.maybeBareKey(start, tok), nil
}

// maybeBareKey re-scans [start, s.pos) plus any further bare-key bytes
// as a single BareKey token when the cursor lands on a bare-key
// continuation byte the number/datetime grammar above cannot absorb
// (chiefly a letter). This keeps e.g. `1a2 = 3` a legal dotted-key
// segment, as TOML's grammar — not the lexer's arithmetic — dictates.
func (s *scanner) maybeBareKey(start int, tok token.Token) token.Token {
	if s.eof() || !isBareKeyByte(s.src[s.pos]) {
		return tok
	}
	for !s.eof() && isBareKeyByte(s.src[s.pos]) {
		s.advance(1)
	}
	return token.Token{Kind: token.BareKey, Lit: string(s.src[start:s.pos]), Line: tok.Line, Column: tok.Column}
}

func (s *scanner) digitAt(n int) (int, bool) {
	b := s.peek(n)
	if !isDigit(b) {
		return 0, false
	}
	return int(b - '0'), true
}

// looksLikeLocalTime reports whether the next three bytes match
// DD: — i.e. two digits then a colon.
func (s *scanner) looksLikeLocalTime() bool {
	return isDigit(s.peek(0)) && isDigit(s.peek(1)) && s.peek(2) == ':'
}

// looksLikeDate reports whether the next ten bytes match the shape
// DDDD-DD-DD.
func (s *scanner) looksLikeDate() bool {
	for _, i := range []int{0, 1, 2, 3, 5, 6, 8, 9} {
		if !isDigit(s.peek(i)) {
			return false
		}
	}
	return s.peek(4) == '-' && s.peek(7) == '-'
}

// twoDigitsAt reads exactly two ASCII digits at offset n from the
// cursor without consuming, returning their value.
func (s *scanner) twoDigitsAt(n int) (int, bool) {
	a, ok1 := s.digitAt(n)
	b, ok2 := s.digitAt(n + 1)
	if !ok1 || !ok2 {
		return 0, false
	}
	return a*10 + b, true
}

// scanLocalTime scans "HH:MM[:SS[.frac]]" at the cursor. Seconds are
// optional per TOML 1.1.0.
func (s *scanner) scanLocalTime(line, col int) (token.Token, *diag.Failure) {
	start := s.pos
	if _, ok := s.timeComponent(0, 0, 23); !ok {
		return token.Token{}, s.fail(diag.InvalidDateTime, line, col, "malformed local time")
	}
	s.advance(2)
	s.advance(1) // ':'
	if _, ok := s.timeComponent(0, 0, 59); !ok {
		return token.Token{}, s.fail(diag.InvalidDateTime, line, col, "malformed local time: expected minute")
	}
	s.advance(2)
	if s.peek(0) == ':' {
		s.advance(1)
		if _, ok := s.timeComponent(0, 0, 59); !ok {
			return token.Token{}, s.fail(diag.InvalidDateTime, line, col, "malformed local time: expected second")
		}
		s.advance(2)
		s.scanFraction()
	}
	return token.Token{Kind: token.LocalTime, Lit: string(s.src[start:s.pos]), Line: line, Column: col}, nil
}

// timeComponent validates the two-digit component at offset n from the
// cursor lies within [lo, hi], without consuming it.
func (s *scanner) timeComponent(n, lo, hi int) (int, bool) {
	v, ok := s.twoDigitsAt(n)
	if !ok {
		return 0, false
	}
	if v < lo || v > hi {
		return 0, false
	}
	return v, true
}

// scanFraction consumes an optional ".DDDD" fractional-seconds suffix.
func (s *scanner) scanFraction() {
	if s.peek(0) != '.' || !isDigit(s.peek(1)) {
		return
	}
	s.advance(1)
	for isDigit(s.peek(0)) {
		s.advance(1)
	}
}

// scanDateOrDateTime scans "YYYY-MM-DD" and, if a datetime separator
// follows, the time and timezone components too.
func (s *scanner) scanDateOrDateTime(line, col int) (token.Token, *diag.Failure) {
	start := s.pos
	year := int(s.peek(0)-'0')*1000 + int(s.peek(1)-'0')*100 + int(s.peek(2)-'0')*10 + int(s.peek(3)-'0')
	month, ok := s.twoDigitsAt(5)
	if !ok || month < 1 || month > 12 {
		return token.Token{}, s.fail(diag.InvalidDateTime, line, col, "invalid month in date literal")
	}
	day, ok := s.twoDigitsAt(8)
	if !ok || day < 1 {
		return token.Token{}, s.fail(diag.InvalidDateTime, line, col, "invalid day in date literal")
	}
	maxDay := daysInMonth[month-1]
	if month == 2 && isLeapYear(year) {
		maxDay = 29
	}
	if day > maxDay {
		return token.Token{}, s.fail(diag.InvalidDateTime, line, col,
			"day %d is out of range for %04d-%02d", day, year, month)
	}
	s.advance(10) // "YYYY-MM-DD"

	sep := s.peek(0)
	hasSeparator := sep == 'T' || sep == 't'
	spaceSeparator := sep == ' ' && isDigit(s.peek(1))

	if !hasSeparator && !spaceSeparator {
		return token.Token{Kind: token.LocalDate, Lit: string(s.src[start:s.pos]), Line: line, Column: col}, nil
	}

	// Tentatively commit to a time suffix. A literal 'T'/'t' always
	// commits (TOML never allows anything else there); a plain space
	// unwinds to a bare LocalDate if what follows doesn't parse as a
	// time.
	mark := s.mark()
	s.advance(1)
	if !s.looksLikeLocalTime() {
		if hasSeparator {
			return token.Token{}, s.fail(diag.InvalidDateTime, line, col, "expected time after date/time separator")
		}
		s.reset(mark)
		return token.Token{Kind: token.LocalDate, Lit: string(s.src[start:s.pos]), Line: line, Column: col}, nil
	}

	if _, fail := s.scanLocalTime(line, col); fail != nil {
		return token.Token{}, fail
	}

	kind := token.LocalDateTime
	switch s.peek(0) {
	case 'Z', 'z':
		s.advance(1)
		kind = token.OffsetDateTime
	case '+', '-':
		if _, ok := s.timeComponent(1, 0, 23); ok && s.peek(3) == ':' {
			if _, ok := s.timeComponent(4, 0, 59); ok {
				s.advance(6) // sign HH:MM
				kind = token.OffsetDateTime
				break
			}
		}
		return token.Token{}, s.fail(diag.InvalidDateTime, line, col, "malformed timezone offset")
	}

	return token.Token{Kind: kind, Lit: string(s.src[start:s.pos]), Line: line, Column: col}, nil
}

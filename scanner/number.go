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

// scanNumber scans an integer or float lexeme, including a leading
// sign and the inf/nan special floats. It does not reject leading
// zeros — that is a semantic check deferred to the tree builder so it
// can be downgraded to a warning in lenient mode.
func (s *scanner) scanNumber(line, col int) (token.Token, *diag.Failure) {
	start := s.pos

	signed := s.peek(0) == '+' || s.peek(0) == '-'
	if signed {
		s.advance(1)
	}

	if s.startsInfOrNan(0) {
		s.advance(3)
		return token.Token{Kind: token.Float, Lit: string(s.src[start:s.pos]), Line: line, Column: col}, nil
	}

	if s.peek(0) == '0' && (s.peek(1) == 'x' || s.peek(1) == 'o' || s.peek(1) == 'b') {
		if signed {
			return token.Token{}, s.fail(diag.InvalidNumber, line, col,
				"sign not allowed before a radix-prefixed integer literal")
		}
		return s.scanRadixInteger(start, line, col)
	}

	if !s.scanDecimalRun() {
		return token.Token{}, s.fail(diag.InvalidNumber, line, col, "malformed number literal")
	}

	tok := token.Integer
	if s.peek(0) == '.' && isDigit(s.peek(1)) {
		tok = token.Float
		s.advance(1)
		if !s.scanDecimalRun() {
			return token.Token{}, s.fail(diag.InvalidNumber, line, col, "malformed fractional part")
		}
	}

	if s.peek(0) == 'e' || s.peek(0) == 'E' {
		tok = token.Float
		s.advance(1)
		if s.peek(0) == '+' || s.peek(0) == '-' {
			s.advance(1)
		}
		if !s.scanDecimalRun() {
			return token.Token{}, s.fail(diag.InvalidNumber, line, col, "malformed exponent")
		}
	}

	return token.Token{Kind: tok, Lit: string(s.src[start:s.pos]), Line: line, Column: col}, nil
}

// scanRadixInteger scans a "0x"/"0o"/"0b" prefixed integer. No sign is
// permitted before these prefixes; the caller rejects a signed literal
// before ever calling this.
func (s *scanner) scanRadixInteger(start, line, col int) (token.Token, *diag.Failure) {
	base := 16
	switch s.peek(1) {
	case 'o':
		base = 8
	case 'b':
		base = 2
	}
	s.advance(2) // "0x"/"0o"/"0b"
	digits := s.pos
	if !s.scanDigitsInBase(base) || s.pos == digits {
		return token.Token{}, s.fail(diag.InvalidNumber, line, col, "expected at least one digit after radix prefix")
	}
	return token.Token{Kind: token.Integer, Lit: string(s.src[start:s.pos]), Line: line, Column: col}, nil
}

// scanDecimalRun consumes a run of ASCII decimal digits, permitting
// single underscores strictly between two digits. It returns false if
// the run is empty or an underscore is leading/trailing/doubled.
func (s *scanner) scanDecimalRun() bool {
	return s.scanDigitsInBase(10)
}

// scanDigitsInBase consumes a run of digits valid in the given base
// (10, 16, 8, or 2), with the same underscore-placement rule as
// scanDecimalRun. It returns false if the run is empty or malformed.
func (s *scanner) scanDigitsInBase(base int) bool {
	start := s.pos
	lastWasUnderscore := false
	sawDigit := false
	for {
		b := s.peek(0)
		switch {
		case isDigitInBase(b, base):
			sawDigit = true
			lastWasUnderscore = false
			s.advance(1)
		case b == '_':
			if !sawDigit || lastWasUnderscore {
				return false
			}
			lastWasUnderscore = true
			s.advance(1)
		default:
			if lastWasUnderscore {
				return false
			}
			return s.pos > start && sawDigit
		}
	}
}

func isDigitInBase(b byte, base int) bool {
	switch base {
	case 2:
		return b == '0' || b == '1'
	case 8:
		return '0' <= b && b <= '7'
	case 16:
		return isDigit(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
	default:
		return isDigit(b)
	}
}

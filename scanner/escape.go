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
)

// scanEscape decodes a single backslash escape sequence (the leading
// backslash already consumed) and writes the resulting rune(s) to b.
// line/col is the position of the backslash, used for diagnostics.
func (s *scanner) scanEscape(b *strings.Builder, line, col int) *diag.Failure {
	if s.eof() {
		return s.fail(diag.InvalidEscape, line, col, "escape sequence not terminated")
	}
	switch s.src[s.pos] {
	case 'b':
		s.advance(1)
		b.WriteByte(0x08)
	case 't':
		s.advance(1)
		b.WriteByte('\t')
	case 'n':
		s.advance(1)
		b.WriteByte('\n')
	case 'f':
		s.advance(1)
		b.WriteByte(0x0C)
	case 'r':
		s.advance(1)
		b.WriteByte('\r')
	case 'e':
		s.advance(1)
		b.WriteByte(0x1B)
	case '"':
		s.advance(1)
		b.WriteByte('"')
	case '\\':
		s.advance(1)
		b.WriteByte('\\')
	case 'x':
		s.advance(1)
		return s.scanHexEscape(b, line, col, 2)
	case 'u':
		s.advance(1)
		return s.scanHexEscape(b, line, col, 4)
	case 'U':
		s.advance(1)
		return s.scanHexEscape(b, line, col, 8)
	default:
		return s.fail(diag.InvalidEscape, line, col, "unknown escape sequence %q", "\\"+string(s.src[s.pos]))
	}
	return nil
}

// scanHexEscape decodes exactly n hex digits following \x, \u, or \U
// and appends the resulting code point, rejecting surrogates and
// values above U+10FFFF.
func (s *scanner) scanHexEscape(b *strings.Builder, line, col int, n int) *diag.Failure {
	var v rune
	for i := 0; i < n; i++ {
		if s.eof() {
			return s.fail(diag.InvalidEscape, line, col, "escape sequence not terminated")
		}
		d, ok := hexVal(s.src[s.pos])
		if !ok {
			return s.fail(diag.InvalidEscape, line, col, "invalid hex digit %q in escape sequence", s.src[s.pos])
		}
		v = v*16 + rune(d)
		s.advance(1)
	}
	if v >= 0xD800 && v <= 0xDFFF {
		return s.fail(diag.InvalidEscape, line, col, "escape sequence encodes a surrogate code point")
	}
	if v > 0x10FFFF {
		return s.fail(diag.InvalidEscape, line, col, "escape sequence exceeds U+10FFFF")
	}
	b.WriteRune(v)
	return nil
}

func hexVal(b byte) (int, bool) {
	switch {
	case '0' <= b && b <= '9':
		return int(b - '0'), true
	case 'a' <= b && b <= 'f':
		return int(b-'a') + 10, true
	case 'A' <= b && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

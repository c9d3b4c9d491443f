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
	"math"
	"strconv"
	"strings"

	"github.com/app-hive/toml-sub000/diag"
	"github.com/app-hive/toml-sub000/token"
	"github.com/app-hive/toml-sub000/value"
)

// hasLeadingZero reports whether digits (sign already stripped) has a
// superfluous leading zero, e.g. "007" or "01" but not "0" itself.
func hasLeadingZero(digits string) bool {
	return len(digits) > 1 && digits[0] == '0'
}

// parseIntegerLiteral parses an Integer literal. Overflow of the
// signed-64 range is rejected outright (a policy decision; see
// DESIGN.md) — this is always fatal, never routed through the
// leading-zero warning path.
func (b *Builder) parseIntegerLiteral(tok token.Token) (value.Value, *diag.Failure) {
	lex := tok.Lit
	rest := lex
	signed := rest[0] == '+' || rest[0] == '-'
	negative := false
	if signed {
		negative = rest[0] == '-'
		rest = rest[1:]
	}

	if len(rest) >= 2 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'o' || rest[1] == 'b') {
		if signed {
			return nil, b.h.Fail(diag.InvalidNumber, tok.Line, tok.Column,
				"sign not allowed before a radix-prefixed integer literal %q", lex)
		}
		base := 16
		switch rest[1] {
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
		digits := strings.ReplaceAll(rest[2:], "_", "")
		mag, err := strconv.ParseUint(digits, base, 64)
		if err != nil {
			return nil, b.h.Fail(diag.InvalidNumber, tok.Line, tok.Column,
				"integer literal %q out of range", lex)
		}
		if mag > math.MaxInt64 {
			return nil, b.h.Fail(diag.InvalidNumber, tok.Line, tok.Column,
				"integer literal %q exceeds the signed 64-bit range", lex)
		}
		return value.Integer{Val: int64(mag)}, nil
	}

	digits := strings.ReplaceAll(rest, "_", "")
	if hasLeadingZero(digits) {
		if r := b.h.Report(diag.InvalidNumber, tok.Line, tok.Column,
			"leading zero in integer literal %q", lex); r != nil {
			return nil, r
		}
	}

	mag, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return nil, b.h.Fail(diag.InvalidNumber, tok.Line, tok.Column,
			"integer literal %q exceeds the signed 64-bit range", lex)
	}
	if negative {
		if mag > uint64(math.MaxInt64)+1 {
			return nil, b.h.Fail(diag.InvalidNumber, tok.Line, tok.Column,
				"integer literal %q exceeds the signed 64-bit range", lex)
		}
		if mag == uint64(math.MaxInt64)+1 {
			return value.Integer{Val: math.MinInt64}, nil
		}
		return value.Integer{Val: -int64(mag)}, nil
	}
	if mag > math.MaxInt64 {
		return nil, b.h.Fail(diag.InvalidNumber, tok.Line, tok.Column,
			"integer literal %q exceeds the signed 64-bit range", lex)
	}
	return value.Integer{Val: int64(mag)}, nil
}

// parseFloatLiteral parses a Float literal.
func (b *Builder) parseFloatLiteral(tok token.Token) (value.Value, *diag.Failure) {
	lex := tok.Lit
	rest := lex
	negative := false
	if rest[0] == '+' || rest[0] == '-' {
		negative = rest[0] == '-'
		rest = rest[1:]
	}

	switch strings.ToLower(rest) {
	case "inf":
		if negative {
			return value.Float{Val: math.Inf(-1)}, nil
		}
		return value.Float{Val: math.Inf(1)}, nil
	case "nan":
		return value.Float{Val: math.NaN()}, nil
	}

	intPart := rest
	if i := strings.IndexAny(rest, ".eE"); i >= 0 {
		intPart = rest[:i]
	}
	if hasLeadingZero(strings.ReplaceAll(intPart, "_", "")) {
		if r := b.h.Report(diag.InvalidNumber, tok.Line, tok.Column,
			"leading zero in float literal %q", lex); r != nil {
			return nil, r
		}
	}

	clean := strings.ReplaceAll(lex, "_", "")
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil, b.h.Fail(diag.InvalidNumber, tok.Line, tok.Column,
			"malformed float literal %q", lex)
	}
	return value.Float{Val: f}, nil
}

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
	"strings"

	"github.com/app-hive/toml-sub000/diag"
	"github.com/app-hive/toml-sub000/token"
)

// parseDottedKey parses a sequence of simple keys joined by Dot tokens.
// A simple key is a bare key, any of the four string
// kinds (decoded text used verbatim, including an empty string), or a
// numeric-shaped token used as a literal label: its raw lexeme becomes
// the key text, except a Float token — which the scanner necessarily
// produces for something written as "3.14" — is split on its '.' into
// two key segments, since the grammar has no other way to tell a
// fractional number from two dotted numeric keys apart at this point.
// A Float token with no '.' (such as "inf" or "1e5") is one key.
func (b *Builder) parseDottedKey() ([]string, *diag.Failure) {
	var segs []string
	for {
		tok := b.cur()
		switch tok.Kind {
		case token.BareKey,
			token.BasicString, token.LiteralString,
			token.MlBasicString, token.MlLiteralString:
			segs = append(segs, tok.Lit)
			b.advance()
		case token.Integer, token.Boolean,
			token.OffsetDateTime, token.LocalDateTime,
			token.LocalDate, token.LocalTime:
			segs = append(segs, tok.Lit)
			b.advance()
		case token.Float:
			parts := strings.SplitN(tok.Lit, ".", 2)
			segs = append(segs, parts...)
			b.advance()
		default:
			return nil, b.h.Fail(diag.SyntaxError, tok.Line, tok.Column,
				"expected a key, found %s", tok)
		}

		if b.cur().Kind != token.Dot {
			return segs, nil
		}
		b.advance()
	}
}

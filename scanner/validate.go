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
	"unicode/utf8"

	"github.com/app-hive/toml-sub000/diag"
)

// Validate is the Source Validator: a single pass over src that
// rejects malformed UTF-8 (including overlong encodings, encoded
// surrogates, and encodings above U+10FFFF — all of which Go's strict
// utf8.DecodeRune already refuses to decode as anything but
// utf8.RuneError) and bare control characters before the tokenizer
// ever sees the bytes. It returns nil if src is clean.
func Validate(src []byte) *diag.Failure {
	h := &diag.Handler{Source: src}
	line, col := 1, 1
	for i := 0; i < len(src); {
		b := src[i]
		if b < utf8.RuneSelf {
			if isBareControl(b, src, i) {
				return h.Fail(diag.InvalidEncoding, line, col,
					"bare control character 0x%02X is not permitted in source", b)
			}
			i++
			if b == '\n' {
				line++
				col = 1
			} else {
				col++
			}
			continue
		}

		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size <= 1 {
			return h.Fail(diag.InvalidEncoding, line, col,
				"invalid UTF-8 encoding at byte offset %d", i)
		}
		i += size
		col += size
	}
	return nil
}

// isBareControl reports whether b at position i is a forbidden control
// byte: anything below 0x20 except TAB and LF, 0x7F (DEL), and a lone
// CR not immediately followed by LF.
func isBareControl(b byte, src []byte, i int) bool {
	switch {
	case b == '\t', b == '\n':
		return false
	case b == '\r':
		return i+1 >= len(src) || src[i+1] != '\n'
	case b == 0x7F:
		return true
	case b < 0x20:
		return true
	default:
		return false
	}
}

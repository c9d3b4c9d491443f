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

import "strings"

// normalizeTime canonicalizes a LocalTime lexeme: seconds are appended
// as ":00" when absent, and a fractional-seconds suffix is padded to
// at least three digits.
func normalizeTime(t string) string {
	parts := strings.SplitN(t, ":", 3)
	if len(parts) == 2 {
		return parts[0] + ":" + parts[1] + ":00"
	}
	sec := parts[2]
	if dot := strings.IndexByte(sec, '.'); dot >= 0 {
		whole, frac := sec[:dot], sec[dot+1:]
		for len(frac) < 3 {
			frac += "0"
		}
		sec = whole + "." + frac
	}
	return parts[0] + ":" + parts[1] + ":" + sec
}

// splitDateTimeLexeme separates a LocalDateTime/OffsetDateTime lexeme
// into its date, time, and timezone-suffix parts. The date/time
// separator (whatever byte the source used: 'T', 't', or ' ') is
// discarded — the canonical form always uses 'T'.
func splitDateTimeLexeme(lexeme string) (date, timePart, tz string) {
	date = lexeme[:10]
	rest := lexeme[11:]
	switch {
	case strings.HasSuffix(rest, "Z") || strings.HasSuffix(rest, "z"):
		return date, rest[:len(rest)-1], "Z"
	case len(rest) >= 6 && (rest[len(rest)-6] == '+' || rest[len(rest)-6] == '-') && rest[len(rest)-3] == ':':
		return date, rest[:len(rest)-6], rest[len(rest)-6:]
	default:
		return date, rest, ""
	}
}

// normalizeLocalDateTime canonicalizes a LocalDateTime lexeme.
func normalizeLocalDateTime(lexeme string) string {
	date, timePart, _ := splitDateTimeLexeme(lexeme)
	return date + "T" + normalizeTime(timePart)
}

// normalizeOffsetDateTime canonicalizes an OffsetDateTime lexeme,
// uppercasing a 'Z'/'z' zone designator (the +HH:MM form is already
// canonical as scanned).
func normalizeOffsetDateTime(lexeme string) string {
	date, timePart, tz := splitDateTimeLexeme(lexeme)
	return date + "T" + normalizeTime(timePart) + tz
}

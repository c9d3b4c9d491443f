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

// Package diag defines the closed set of diagnostic kinds a parse can
// raise, the snippet-rendering used to report them, and the
// strict/lenient gate that decides whether a semantic violation aborts
// the parse or is recorded as a warning.
//
// The shape mirrors cue/errors: a kind-tagged value carrying a message
// and a position, with a shared routine for turning source + position
// into a human-readable snippet. Unlike cue/errors, the kind set here
// is closed (a fixed enum, not an open Error interface) because the
// TOML compliance surface is exactly the set of kinds in Kind's
// declaration block — nothing else can go wrong in a conforming parser.
package diag

import (
	"fmt"
	"strings"
)

// Kind identifies the category of a diagnostic. The set is closed: every
// failure or warning the CORE can produce carries exactly one of these.
type Kind int

const (
	InvalidEncoding Kind = iota
	UnexpectedCharacter
	UnterminatedString
	InvalidEscape
	InvalidNumber
	InvalidDateTime
	SyntaxError
	DuplicateKey
	DuplicateTable
	TypeConflict
	InlineTableImmutability
	DottedKeyConflict
	IoError
)

var kindNames = [...]string{
	InvalidEncoding:         "InvalidEncoding",
	UnexpectedCharacter:     "UnexpectedCharacter",
	UnterminatedString:      "UnterminatedString",
	InvalidEscape:           "InvalidEscape",
	InvalidNumber:           "InvalidNumber",
	InvalidDateTime:         "InvalidDateTime",
	SyntaxError:             "SyntaxError",
	DuplicateKey:            "DuplicateKey",
	DuplicateTable:          "DuplicateTable",
	TypeConflict:            "TypeConflict",
	InlineTableImmutability: "InlineTableImmutability",
	DottedKeyConflict:       "DottedKeyConflict",
	IoError:                 "IoError",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// recoverable reports whether a violation of this kind may be downgraded
// to a warning in lenient mode. Every syntax-level kind is always fatal;
// among semantic kinds, only DuplicateKey, DuplicateTable and the
// leading-zero flavor of InvalidNumber are recoverable: continuing past
// a TypeConflict or an InlineTableImmutability violation would silently
// corrupt the tree.
func (k Kind) recoverable() bool {
	switch k {
	case DuplicateKey, DuplicateTable, InvalidNumber:
		return true
	}
	return false
}

// Diagnostic is the shared payload of both Warning and *Failure.
type Diagnostic struct {
	Kind    Kind
	Message string
	Line    int
	Column  int
	Snippet string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Kind, d.Message)
}

// Warning is a recoverable diagnostic recorded while parsing in lenient
// mode. The tree is left in the documented recovery state for its kind
// (see builder package).
type Warning Diagnostic

func (w Warning) String() string { return Diagnostic(w).String() }

// Failure is the error type returned for a fatal diagnostic: any
// syntax-level violation, or a semantic violation encountered in strict
// mode (or one whose kind is never recoverable).
type Failure Diagnostic

func (f *Failure) Error() string {
	if f.Snippet != "" {
		return fmt.Sprintf("%s\n%s", Diagnostic(*f).String(), f.Snippet)
	}
	return Diagnostic(*f).String()
}

// Snippet renders up to two lines of context before and after the line
// containing the offending position, marking the offending line with
// "> NN | " and placing a caret under the column on the following line.
func Snippet(src []byte, line, column int) string {
	lines := strings.Split(string(src), "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	const context = 2
	start := line - context
	if start < 1 {
		start = 1
	}
	end := line + context
	if end > len(lines) {
		end = len(lines)
	}

	width := len(fmt.Sprintf("%d", end))
	var b strings.Builder
	for n := start; n <= end; n++ {
		text := lines[n-1]
		if n == line {
			fmt.Fprintf(&b, "> %*d | %s\n", width, n, text)
			if column >= 1 {
				fmt.Fprintf(&b, "%s | %s^\n", strings.Repeat(" ", width+1), strings.Repeat(" ", column-1))
			}
		} else {
			fmt.Fprintf(&b, "  %*d | %s\n", width, n, text)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Handler collects diagnostics produced during a single parse. It is the
// single choke point through which every recoverable check passes: the
// builder calls Report for each recoverable violation and branches on
// whether it got back a non-nil *Failure, so adding a new recoverable
// kind never requires touching the builder's control flow.
type Handler struct {
	Strict   bool
	Source   []byte
	Warnings []Warning
}

// Report records a diagnostic of the given kind at (line, column). It
// returns a non-nil *Failure when the parse must abort: always for a
// non-recoverable kind, and in strict mode for any kind. Otherwise the
// diagnostic is appended to Warnings and Report returns nil, signaling
// the builder should continue.
func (h *Handler) Report(kind Kind, line, column int, format string, args ...interface{}) *Failure {
	msg := fmt.Sprintf(format, args...)
	snippet := Snippet(h.Source, line, column)
	d := Diagnostic{Kind: kind, Message: msg, Line: line, Column: column, Snippet: snippet}
	if h.Strict || !kind.recoverable() {
		f := Failure(d)
		return &f
	}
	h.Warnings = append(h.Warnings, Warning(d))
	return nil
}

// Fail constructs an always-fatal *Failure regardless of strictness, for
// syntax-level violations that are unconditionally fatal
// (UnexpectedCharacter, UnterminatedString, InvalidEscape,
// InvalidDateTime, a malformed InvalidNumber literal, generic
// SyntaxError, and InvalidEncoding).
func (h *Handler) Fail(kind Kind, line, column int, format string, args ...interface{}) *Failure {
	msg := fmt.Sprintf(format, args...)
	f := Failure{Kind: kind, Message: msg, Line: line, Column: column, Snippet: Snippet(h.Source, line, column)}
	return &f
}

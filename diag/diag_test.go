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

package diag

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestKindRecoverability(t *testing.T) {
	recoverable := []Kind{DuplicateKey, DuplicateTable, InvalidNumber}
	for _, k := range recoverable {
		qt.Assert(t, qt.Equals(k.recoverable(), true))
	}

	fatal := []Kind{
		InvalidEncoding, UnexpectedCharacter, UnterminatedString, InvalidEscape,
		InvalidDateTime, SyntaxError, TypeConflict, InlineTableImmutability,
		DottedKeyConflict, IoError,
	}
	for _, k := range fatal {
		qt.Assert(t, qt.Equals(k.recoverable(), false))
	}
}

func TestHandlerReportStrictAlwaysFails(t *testing.T) {
	h := &Handler{Strict: true, Source: []byte("a = 1\n")}
	f := h.Report(DuplicateKey, 1, 1, "duplicate %s", "a")
	if f == nil {
		t.Fatalf("expected a failure in strict mode")
	}
	qt.Assert(t, qt.Equals(f.Kind, DuplicateKey))
	qt.Assert(t, qt.Equals(len(h.Warnings), 0))
}

func TestHandlerReportLenientRecoverableDowngrades(t *testing.T) {
	h := &Handler{Strict: false, Source: []byte("a = 1\n")}
	f := h.Report(DuplicateKey, 1, 1, "duplicate %s", "a")
	if f != nil {
		t.Fatalf("expected no failure, got %v", f)
	}
	qt.Assert(t, qt.Equals(len(h.Warnings), 1))
	qt.Assert(t, qt.Equals(h.Warnings[0].Kind, DuplicateKey))
}

func TestHandlerReportLenientNonRecoverableStillFails(t *testing.T) {
	h := &Handler{Strict: false, Source: []byte("a = {x=1}\n")}
	f := h.Report(TypeConflict, 1, 1, "conflict")
	if f == nil {
		t.Fatalf("expected a failure even in lenient mode for a non-recoverable kind")
	}
	qt.Assert(t, qt.Equals(f.Kind, TypeConflict))
	qt.Assert(t, qt.Equals(len(h.Warnings), 0))
}

func TestHandlerFailIgnoresStrictness(t *testing.T) {
	h := &Handler{Strict: false, Source: []byte("a = 1\n")}
	f := h.Fail(SyntaxError, 1, 1, "bad token")
	if f == nil {
		t.Fatalf("Fail must always return a non-nil failure")
	}
	qt.Assert(t, qt.Equals(f.Kind, SyntaxError))
	qt.Assert(t, qt.Equals(len(h.Warnings), 0))
}

func TestSnippetMarksOffendingLineAndColumn(t *testing.T) {
	src := "a = 1\nb = \n c = 3\n"
	snippet := Snippet([]byte(src), 2, 5)
	if !strings.Contains(snippet, "> 2 | b = ") {
		t.Fatalf("snippet missing marked line, got:\n%s", snippet)
	}
	if !strings.Contains(snippet, "^") {
		t.Fatalf("snippet missing caret, got:\n%s", snippet)
	}
}

func TestSnippetOutOfRangeLineReturnsEmpty(t *testing.T) {
	snippet := Snippet([]byte("a = 1\n"), 99, 1)
	qt.Assert(t, qt.Equals(snippet, ""))
}

func TestFailureErrorIncludesSnippet(t *testing.T) {
	h := &Handler{Strict: true, Source: []byte("a = ~\n")}
	f := h.Fail(UnexpectedCharacter, 1, 5, "unexpected character")
	msg := f.Error()
	if !strings.Contains(msg, "UnexpectedCharacter") {
		t.Fatalf("Error() missing kind name, got: %s", msg)
	}
	if !strings.Contains(msg, "a = ~") {
		t.Fatalf("Error() missing source snippet, got: %s", msg)
	}
}

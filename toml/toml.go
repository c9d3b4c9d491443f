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

// Package toml is the parser's external interface: it wires the
// Source Validator, Tokenizer, and Tree Builder into the single
// `parse(source, config) -> (tree, warnings) | failure` entry point,
// and nothing else — a file-reading, path-handling façade is
// explicitly out of this package's scope.
package toml

import (
	"github.com/app-hive/toml-sub000/builder"
	"github.com/app-hive/toml-sub000/diag"
	"github.com/app-hive/toml-sub000/scanner"
	"github.com/app-hive/toml-sub000/value"
)

// ParserConfig selects strict vs. lenient semantic-violation handling.
// The zero value has Strict false and is therefore lenient; strict
// parsing is selected with StrictConfig.
type ParserConfig struct {
	Strict bool
}

// StrictConfig returns the strict convenience constructor: every
// semantic violation is a fatal ParseFailure.
func StrictConfig() ParserConfig { return ParserConfig{Strict: true} }

// LenientConfig returns the lenient convenience constructor: the
// recoverable kinds (DuplicateKey, DuplicateTable, leading-zero
// InvalidNumber) are downgraded to warnings and parsing continues.
func LenientConfig() ParserConfig { return ParserConfig{Strict: false} }

// Warning is the value type for a downgraded semantic violation.
type Warning = diag.Warning

// ParseFailure is the value type returned for any fatal diagnostic.
type ParseFailure = diag.Failure

// Parse runs Source Validator → Tokenizer → Tree Builder over source,
// which must be UTF-8, and returns the finished tree plus a
// (possibly empty) warning list, or a single failure.
func Parse(source []byte, cfg ParserConfig) (*value.Table, []Warning, *ParseFailure) {
	if fail := scanner.Validate(source); fail != nil {
		return nil, nil, fail
	}

	toks, fail := scanner.Tokenize(source)
	if fail != nil {
		return nil, nil, fail
	}

	h := &diag.Handler{Strict: cfg.Strict, Source: source}
	tree, fail := builder.New(toks, h).Build()
	if fail != nil {
		return nil, nil, fail
	}
	return tree, h.Warnings, nil
}

// ParseString is a convenience wrapper over Parse for callers already
// holding a decoded string.
func ParseString(source string, cfg ParserConfig) (*value.Table, []Warning, *ParseFailure) {
	return Parse([]byte(source), cfg)
}

// Parser is a reusable handle that retains the diagnostic state of its
// most recent Parse call: a façade can hold one of these to retrieve
// warnings after a lenient-mode parse without threading a warning
// slice through its own API.
type Parser struct {
	cfg ParserConfig
	h   *diag.Handler
}

// NewParser creates a Parser with the given configuration.
func NewParser(cfg ParserConfig) *Parser {
	return &Parser{cfg: cfg}
}

// Parse parses source, remembering the resulting warning list (if any)
// for a subsequent call to Warnings.
func (p *Parser) Parse(source []byte) (*value.Table, *ParseFailure) {
	if fail := scanner.Validate(source); fail != nil {
		p.h = nil
		return nil, fail
	}
	toks, fail := scanner.Tokenize(source)
	if fail != nil {
		p.h = nil
		return nil, fail
	}
	h := &diag.Handler{Strict: p.cfg.Strict, Source: source}
	tree, fail := builder.New(toks, h).Build()
	if fail != nil {
		p.h = nil
		return nil, fail
	}
	p.h = h
	return tree, nil
}

// Warnings returns the warnings accumulated by the most recent Parse
// call, or nil if none has run yet or the most recent call failed.
func (p *Parser) Warnings() []Warning {
	if p.h == nil {
		return nil
	}
	return p.h.Warnings
}

// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Reader reads a benchmark report from an io.Reader.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
}

// maxLine is the longest input line a Reader accepts.
const maxLine = 1 << 20

// NewReader constructs a reader to parse a benchmark report from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	r.s.Buffer(nil, maxLine)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.line = 0
}

// Read consumes the whole input and returns the parsed Report.
//
// Malformed lines never cause an error; they are classified as well
// as possible or ignored. Read only fails if the underlying reader
// does, in which case the error identifies the file and line.
func (r *Reader) Read() (*Report, error) {
	var p parser
	p.init()
	for r.s.Scan() {
		r.line++
		p.feed(r.s.Text())
	}
	if err := r.s.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return p.finish(), nil
}

// Parse parses the full text of one benchmark report.
func Parse(text string) *Report {
	var p parser
	p.init()
	for len(text) > 0 {
		var line string
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, text = text[:i], text[i+1:]
		} else {
			line, text = text, ""
		}
		p.feed(strings.TrimSuffix(line, "\r"))
	}
	return p.finish()
}

// A state is a parser state.
type state int

const (
	// statePreamble consumes metadata lines before the first
	// table-related line.
	statePreamble state = iota
	// stateSeeking has no active header. Data rows are ignored.
	stateSeeking
	// stateInTable has an active header and accumulates rows.
	stateInTable
)

func (s state) String() string {
	switch s {
	case statePreamble:
		return "preamble"
	case stateSeeking:
		return "seeking"
	case stateInTable:
		return "inTable"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// A lineKind classifies a trimmed line outside the preamble.
type lineKind int

const (
	lineWarning lineKind = iota
	lineBlank
	lineSeparator
	lineHeader
	lineTitle
	lineCells // Contains '|' but is not a header.
)

var lineKindNames = [...]string{"warning", "blank", "separator", "header", "title", "cells"}

func (k lineKind) String() string {
	if int(k) < len(lineKindNames) {
		return lineKindNames[k]
	}
	return fmt.Sprintf("lineKind(%d)", int(k))
}

// metricNames are the header fields that name a measurement rather
// than a table title.
var metricNames = []string{"ns/op", "op/s", "err%", "cyc/op"}

// isMetric reports whether header field f names a metric.
func isMetric(f string) bool {
	f = strings.ToLower(f)
	for _, m := range metricNames {
		if strings.Contains(f, m) {
			return true
		}
	}
	return false
}

// classify returns the kind of trimmed line s. It does not depend on
// parser state.
func classify(s string) lineKind {
	switch {
	case isWarning(s):
		return lineWarning
	case s == "":
		return lineBlank
	case isSeparator(s):
		return lineSeparator
	case strings.Contains(s, "|") && strings.Contains(s, "ns/op"):
		return lineHeader
	case !strings.Contains(s, "|"):
		return lineTitle
	}
	return lineCells
}

func isWarning(s string) bool {
	return strings.HasPrefix(s, "Warning") ||
		strings.HasPrefix(s, "Recommendations") ||
		strings.HasPrefix(s, "* ") ||
		strings.HasPrefix(s, "See ") ||
		strings.Contains(strings.ToLower(s), "stability")
}

func isSeparator(s string) bool {
	if utf8.RuneCountInString(s) <= 3 {
		return false
	}
	for _, r := range s {
		if !(unicode.IsSpace(r) || r == '|' || r == ':' || r == '-' || r == '+') {
			return false
		}
	}
	return true
}

// splitCells splits a '|'-delimited line into trimmed fields,
// dropping empty fields at either end. Empty interior fields are kept
// as "" so cells stay aligned with their columns.
func splitCells(s string) []string {
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// parseSectionLine parses "=== title ===".
func parseSectionLine(s string) (title string, ok bool) {
	if len(s) < 7 || !strings.HasPrefix(s, "===") || !strings.HasSuffix(s, "===") {
		return "", false
	}
	inner := s[3 : len(s)-3]
	if t := strings.TrimSpace(inner); t != "" {
		return t, true
	}
	return inner, true
}

// parseKeyValueLine attempts to parse s as a "key: value" metadata
// line. The key begins with a word character and may contain word
// characters, spaces, parentheses and hyphens.
func parseKeyValueLine(s string) (key, val string, ok bool) {
	colon := -1
	for i, r := range s {
		if i == 0 {
			if !isWordRune(r) {
				return
			}
			continue
		}
		if r == ':' {
			colon = i
			break
		}
		if !(isWordRune(r) || unicode.IsSpace(r) || r == '(' || r == ')' || r == '-') {
			return
		}
	}
	if colon < 0 {
		return
	}
	rest := s[colon+1:]
	if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) {
		return
	}
	val = strings.TrimSpace(rest)
	if val == "" {
		return
	}
	return strings.TrimSpace(s[:colon]), val, true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// parser is the line-classification state machine behind Reader and
// Parse.
type parser struct {
	rep   *Report
	state state

	title  string
	header []string
	rows   []Row
}

func (p *parser) init() {
	p.rep = &Report{Metadata: make(map[string]string)}
	p.state = statePreamble
}

func (p *parser) feed(line string) {
	s := strings.TrimSpace(line)
	if p.state == statePreamble {
		if p.preamble(s) {
			return
		}
		p.state = stateSeeking
	}
	kind := classify(s)
	switch p.state {
	case stateSeeking:
		p.seeking(kind, s)
	case stateInTable:
		p.inTable(kind, s)
	}
}

// preamble consumes s if it is a preamble line.
func (p *parser) preamble(s string) bool {
	if s == "" {
		return true
	}
	if title, ok := parseSectionLine(s); ok {
		p.rep.Metadata[SectionKey] = title
		return true
	}
	if strings.HasPrefix(s, "|") || strings.Contains(s, "ns/op") {
		return false
	}
	if key, val, ok := parseKeyValueLine(s); ok {
		p.rep.Metadata[key] = val
		return true
	}
	return false
}

func (p *parser) seeking(kind lineKind, s string) {
	switch kind {
	case lineWarning:
		p.rep.Warnings = append(p.rep.Warnings, s)
	case lineHeader:
		p.startTable(s)
	case lineTitle:
		p.title = s
	}
	// Blank, separator and stray cell lines are ignored.
}

func (p *parser) inTable(kind lineKind, s string) {
	switch kind {
	case lineWarning:
		p.rep.Warnings = append(p.rep.Warnings, s)
	case lineBlank:
		// A blank line ends a table, but a header that has not
		// collected any rows yet stays active.
		if len(p.rows) > 0 {
			p.flush()
		}
	case lineHeader:
		if len(p.rows) > 0 {
			p.flush()
		}
		p.startTable(s)
	case lineTitle:
		if len(p.rows) > 0 {
			p.flush()
		}
		p.title = s
	case lineCells:
		p.addRow(s)
	}
}

// startTable installs the header line s. If its last field is not a
// metric name, that field is also the table title. It stays a column
// because data rows carry the row's name in that position.
func (p *parser) startTable(s string) {
	fields := splitCells(s)
	if len(fields) > 0 && !isMetric(fields[len(fields)-1]) {
		p.title = fields[len(fields)-1]
	}
	p.header = fields
	p.rows = nil
	p.state = stateInTable
}

func (p *parser) addRow(s string) {
	cells := splitCells(s)
	if len(cells) < 2 {
		return
	}
	row := Row{Fields: make([]Field, 0, len(p.header))}
	for i, col := range p.header {
		// Missing and empty cells are Null, so a gap never
		// becomes the row's name.
		var v Value
		if i < len(cells) && cells[i] != "" {
			v = Coerce(cells[i])
		}
		row.Set(col, v)
	}
	p.rows = append(p.rows, row)
}

// flush moves the accumulated table into the report and clears the
// active header.
func (p *parser) flush() {
	if len(p.rows) > 0 {
		p.rep.Tables = append(p.rep.Tables, &Table{
			Title:   p.title,
			Columns: p.header,
			Rows:    p.rows,
		})
	}
	p.header, p.rows = nil, nil
	p.state = stateSeeking
}

func (p *parser) finish() *Report {
	p.flush()
	return p.rep
}

// Package fortios parses FortiGate configuration exports into partition-scoped
// object records. The grammar is line-oriented: "config <section>" opens a
// scope, "edit <name>" opens a named entry, "set"/"append" assign attributes,
// "next" closes the entry and "end" closes the scope. Sections outside the
// recognized object set are skipped, counted, and never fail the parse.
package fortios

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
	"github.com/netcfgtools/fgt-dup-detector/internal/core/ports"
	"github.com/netcfgtools/fgt-dup-detector/internal/errors"
)

const ParserTypeFortiOS = "fortios"

// DefaultPartition names the implicit partition of exports that contain no
// "config vdom" marker.
const DefaultPartition = "root"

var objectSections = map[string]domain.ObjectType{
	"firewall address":        domain.TypeAddress,
	"firewall addrgrp":        domain.TypeAddressGroup,
	"firewall service custom": domain.TypeService,
	"firewall service group":  domain.TypeServiceGroup,
}

type Config struct {
	// IgnoredAttributes are never recorded on parsed objects. Matched
	// case-insensitively. The exporter writes per-device values such as
	// "uuid" here that would make every duplicate look divergent.
	IgnoredAttributes []string `mapstructure:"ignored_attributes"`
}

type Parser struct {
	ignored map[string]struct{}
	logger  ports.Logger
}

func NewParser(cfg Config, logger ports.Logger) *Parser {
	ignored := make(map[string]struct{}, len(cfg.IgnoredAttributes))
	for _, attr := range cfg.IgnoredAttributes {
		ignored[strings.ToLower(attr)] = struct{}{}
	}
	return &Parser{
		ignored: ignored,
		logger:  logger.WithFields(map[string]any{"component": "fortios_parser"}),
	}
}

func (p *Parser) Type() string {
	return ParserTypeFortiOS
}

// Parse reads and parses one export. The returned error is I/O-level only;
// malformed content becomes ParseWarnings on the result.
func (p *Parser) Parse(ctx context.Context, path string) (*domain.ParseResult, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInputReadError, fmt.Sprintf("failed to read config file %s", path))
	}

	result := p.parseBytes(path, raw)
	p.logger.Debugf(ctx, "parsed %s: %d records, %d warnings, %d skipped section types",
		path, len(result.Records), len(result.Warnings), len(result.SkippedSections))
	return result, nil
}

type scopeKind int

const (
	scopeVdom scopeKind = iota
	scopePartition
	scopeSection
	scopeObject
	scopeIgnored
)

type scope struct {
	kind scopeKind
	typ  domain.ObjectType
	name string
	rec  *domain.ObjectRecord
	line int
}

type fileParser struct {
	path    string
	ignored map[string]struct{}
	stack   []scope
	result  *domain.ParseResult
}

func (p *Parser) parseBytes(path string, raw []byte) *domain.ParseResult {
	fp := &fileParser{
		path:    path,
		ignored: p.ignored,
		result: &domain.ParseResult{
			File:            path,
			SkippedSections: make(map[string]int),
		},
	}

	// Exports are nominally UTF-8; stray bytes from other encodings are
	// replaced rather than failing the file.
	raw = bytes.ToValidUTF8(raw, []byte("�"))

	lineNo := 0
	for len(raw) > 0 {
		lineNo++
		var line []byte
		if i := bytes.IndexByte(raw, '\n'); i >= 0 {
			line, raw = raw[:i], raw[i+1:]
		} else {
			line, raw = raw, nil
		}
		fp.consumeLine(lineNo, strings.TrimRight(string(line), "\r"))
	}
	fp.finish()

	return fp.result
}

func (fp *fileParser) consumeLine(lineNo int, line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}

	tokens := splitTokens(trimmed)
	if len(tokens) == 0 {
		return
	}

	switch tokens[0] {
	case "config":
		fp.openSection(lineNo, tokens[1:])
	case "edit":
		fp.openEntry(lineNo, tokens[1:])
	case "set", "append":
		fp.setAttribute(tokens)
	case "next":
		fp.closeEntry(lineNo)
	case "end":
		fp.closeSection(lineNo)
	default:
		// Unknown directives (unset, get, ...) carry no structure.
	}
}

func (fp *fileParser) openSection(lineNo int, rest []string) {
	name := strings.Join(rest, " ")
	top := fp.top()

	atObjectLevel := top == nil || top.kind == scopePartition
	if !atObjectLevel {
		// Nested table inside an entry or inside an unrecognized
		// section. Consume it without interpreting.
		fp.push(scope{kind: scopeIgnored, name: name, line: lineNo})
		return
	}

	if name == "vdom" && top == nil {
		fp.push(scope{kind: scopeVdom, name: name, line: lineNo})
		return
	}

	if typ, ok := objectSections[name]; ok {
		fp.push(scope{kind: scopeSection, typ: typ, name: name, line: lineNo})
		return
	}

	fp.result.SkippedSections[name]++
	fp.push(scope{kind: scopeIgnored, name: name, line: lineNo})
}

func (fp *fileParser) openEntry(lineNo int, rest []string) {
	if len(rest) == 0 {
		fp.warn(lineNo, "edit directive without a name")
		fp.push(scope{kind: scopeIgnored, line: lineNo})
		return
	}
	name := rest[0]

	top := fp.top()
	switch {
	case top == nil:
		fp.warn(lineNo, fmt.Sprintf("edit %q outside any config section", name))
		fp.push(scope{kind: scopeIgnored, name: name, line: lineNo})
	case top.kind == scopeVdom:
		fp.push(scope{kind: scopePartition, name: name, line: lineNo})
	case top.kind == scopeSection:
		fp.push(scope{
			kind: scopeObject,
			typ:  top.typ,
			name: name,
			line: lineNo,
			rec: &domain.ObjectRecord{
				Type:       top.typ,
				Name:       name,
				Source:     domain.Source{File: fp.path, Partition: fp.currentPartition()},
				Attributes: domain.NewAttributes(),
				Line:       lineNo,
			},
		})
	default:
		fp.push(scope{kind: scopeIgnored, name: name, line: lineNo})
	}
}

func (fp *fileParser) setAttribute(tokens []string) {
	top := fp.top()
	if top == nil || top.kind != scopeObject || len(tokens) < 3 {
		return
	}

	key := tokens[1]
	if _, skip := fp.ignored[strings.ToLower(key)]; skip {
		return
	}

	values := tokens[2:]
	var value domain.AttributeValue
	if tokens[0] == "append" || len(values) > 1 {
		value = domain.ListValue(values...)
	} else {
		value = domain.ScalarValue(normalizeValue(key, values[0]))
	}
	top.rec.Attributes.Add(key, value)
}

func (fp *fileParser) closeEntry(lineNo int) {
	top := fp.top()
	if top == nil || top.kind == scopeSection || top.kind == scopeVdom {
		fp.warn(lineNo, "next without a matching edit")
		return
	}
	fp.pop()
	if top.kind == scopeObject {
		fp.result.Records = append(fp.result.Records, *top.rec)
	}
}

func (fp *fileParser) closeSection(lineNo int) {
	for {
		top := fp.top()
		if top == nil {
			fp.warn(lineNo, "end without a matching config")
			return
		}
		fp.pop()
		switch top.kind {
		case scopeObject:
			// An object block must be closed with next before its
			// section ends; drop it and keep going.
			fp.warn(top.line, fmt.Sprintf("object block %q not closed with next; dropped", top.name))
		case scopePartition:
			// end closes the enclosing vdom section as well.
		default:
			return
		}
	}
}

func (fp *fileParser) finish() {
	for {
		top := fp.top()
		if top == nil {
			return
		}
		fp.pop()
		if top.kind == scopeObject {
			fp.warn(top.line, fmt.Sprintf("object block %q not closed before end of file; dropped", top.name))
		}
	}
}

func (fp *fileParser) currentPartition() string {
	for i := len(fp.stack) - 1; i >= 0; i-- {
		if fp.stack[i].kind == scopePartition {
			return fp.stack[i].name
		}
	}
	return DefaultPartition
}

func (fp *fileParser) top() *scope {
	if len(fp.stack) == 0 {
		return nil
	}
	return &fp.stack[len(fp.stack)-1]
}

func (fp *fileParser) push(s scope) {
	fp.stack = append(fp.stack, s)
}

func (fp *fileParser) pop() {
	fp.stack = fp.stack[:len(fp.stack)-1]
}

func (fp *fileParser) warn(line int, message string) {
	fp.result.Warnings = append(fp.result.Warnings, domain.ParseWarning{
		File:    fp.path,
		Line:    line,
		Message: message,
	})
}

// normalizeValue applies the exporter quirks the original tool compensated
// for: multi-line comments collapse to single-spaced text.
func normalizeValue(key, value string) string {
	if strings.EqualFold(key, "comment") {
		return strings.Join(strings.Fields(value), " ")
	}
	return value
}

// splitTokens splits a directive line into tokens, honoring double quotes and
// backslash escapes. Each quoted string is one token: `set member "A" "B"`
// yields [set member A B], `set comment "a b"` yields [set comment "a b"].
func splitTokens(line string) []string {
	var tokens []string
	var cur strings.Builder
	inQuote := false
	escaped := false
	started := false

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && inQuote:
			escaped = true
		case r == '"':
			inQuote = !inQuote
			started = true
		case (r == ' ' || r == '\t') && !inQuote:
			if started {
				tokens = append(tokens, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

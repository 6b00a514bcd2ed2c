// Package lex provides the lexical building blocks shared by the macro
// preprocessor and the two assembly passes: whitespace skipping, label and
// directive extraction, numeric and label validation, comment stripping,
// and whitespace normalization.
//
// The cursor-based helpers take a byte position by pointer and advance it,
// keeping index juggling out of the call sites that use them.
package lex

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxLineLength is the longest physical source line the assembler accepts,
// not counting the trailing newline.
const MaxLineLength = 80

// MaxLabelLength is the longest a label or macro name may be.
const MaxLabelLength = 31

// Content range for .data / immediate values, mirroring pkg/word's limits
// without importing it (lex has no business knowing about ARE bits).
const (
	MinContent = -(1 << 20)
	MaxContent = (1 << 20) - 1
)

// CheckLineLength reports a *syntax/line-length* style error if line exceeds
// MaxLineLength bytes.
func CheckLineLength(line string) error {
	if len(line) > MaxLineLength {
		return fmt.Errorf("line exceeds %d characters", MaxLineLength)
	}
	return nil
}

// SkipWhitespace advances pos past spaces and tabs.
func SkipWhitespace(s string, pos *int) {
	for *pos < len(s) && (s[*pos] == ' ' || s[*pos] == '\t') {
		*pos++
	}
}

// ExtractLabel attempts to consume a leading "name:" label at *pos. On
// success it returns the label text (without the colon) and advances pos
// past the colon. On failure (no alphabetic lead, or no terminating colon)
// pos is left untouched and ok is false.
func ExtractLabel(s string, pos *int) (label string, ok bool) {
	start := *pos
	SkipWhitespace(s, &start)
	if start >= len(s) || !isAlpha(s[start]) {
		return "", false
	}
	i := start
	for i < len(s) && isAlphaNumUnderscore(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != ':' {
		return "", false
	}
	label = s[start:i]
	*pos = i + 1
	return label, true
}

// ExtractDirective consumes a leading ".word"-shaped directive token
// starting at *pos, e.g. ".data". Returns ok=false if the next non-space
// character isn't '.'.
func ExtractDirective(s string, pos *int) (directive string, ok bool) {
	start := *pos
	SkipWhitespace(s, &start)
	if start >= len(s) || s[start] != '.' {
		return "", false
	}
	i := start
	for i < len(s) && s[i] != ' ' && s[i] != '\t' {
		i++
	}
	*pos = i
	return s[start:i], true
}

// ExtractArguments returns the remainder of the line from *pos to the end,
// with leading and trailing spaces/tabs trimmed, and advances pos to the end
// of the line.
func ExtractArguments(s string, pos *int) string {
	SkipWhitespace(s, pos)
	rest := s[*pos:]
	*pos = len(s)
	return strings.TrimRight(rest, " \t")
}

// ErrOutOfRange marks a parsed value that doesn't fit [MinContent,
// MaxContent] -- as opposed to a malformed token, which is a syntax error.
// Callers distinguish the two with errors.Is.
var ErrOutOfRange = errors.New("value out of range")

// ParseDataValues parses a comma-separated list of optionally signed decimal
// integers, as used by .data. Each value must fit [MinContent, MaxContent].
func ParseDataValues(args string) ([]int, error) {
	parts := strings.Split(args, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("empty value in .data list")
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q in .data list", p)
		}
		if n < MinContent || n > MaxContent {
			return nil, fmt.Errorf("value %d out of range [%d, %d]: %w", n, MinContent, MaxContent, ErrOutOfRange)
		}
		values = append(values, n)
	}
	return values, nil
}

// ParseStringValue parses a double-quoted string literal, as used by
// .string. The returned slice holds each byte's code point followed by a
// trailing null terminator. No escape processing is performed.
func ParseStringValue(args string) ([]int, error) {
	s := strings.TrimSpace(args)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return nil, fmt.Errorf("string value must be enclosed in double quotes")
	}
	inner := s[1 : len(s)-1]
	out := make([]int, 0, len(inner)+1)
	for i := 0; i < len(inner); i++ {
		out = append(out, int(inner[i]))
	}
	out = append(out, 0)
	return out, nil
}

// IsValidLabel reports whether name is a legal label/macro identifier: first
// character alphabetic, remaining alphanumeric or underscore, length 1..31.
func IsValidLabel(name string) bool {
	if len(name) == 0 || len(name) > MaxLabelLength {
		return false
	}
	if !isAlpha(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isAlphaNumUnderscore(name[i]) {
			return false
		}
	}
	return true
}

// RemoveComment truncates line at the first ';', if any.
func RemoveComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i]
	}
	return line
}

// NormalizeString trims leading/trailing whitespace and, when collapse is
// set, replaces any run of whitespace with a single space.
func NormalizeString(line string, collapse bool) string {
	line = strings.TrimSpace(line)
	if !collapse {
		return line
	}
	return strings.Join(strings.Fields(line), " ")
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isAlphaNumUnderscore(b byte) bool {
	return isAlpha(b) || (b >= '0' && b <= '9') || b == '_'
}

// Package macro implements the parameterless macro table and preprocessor:
// a line-by-line state machine that recognizes "mcro NAME" / "endmcro"
// blocks and expands bare invocation lines into their recorded body.
//
// Output accumulates into a strings.Builder as the scan proceeds, with a
// side-table of macro bodies threaded alongside it.
package macro

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"asm24/pkg/diag"
	"asm24/pkg/isa"
	"asm24/pkg/lex"
)

// MaxMacros is the cap on distinct macro definitions per file.
const MaxMacros = 100

// MaxBodyLines is the cap on body lines per macro definition.
const MaxBodyLines = 100

// Table maps macro name to its ordered body lines.
type Table struct {
	bodies map[string][]string
	order  []string
}

// New returns an empty macro table.
func New() *Table {
	return &Table{bodies: make(map[string][]string)}
}

// Lookup returns the body lines for name, if defined.
func (t *Table) Lookup(name string) ([]string, bool) {
	lines, ok := t.bodies[name]
	return lines, ok
}

// Len returns the number of macros defined.
func (t *Table) Len() int {
	return len(t.order)
}

func (t *Table) add(name string) error {
	if len(t.order) >= MaxMacros {
		return fmt.Errorf("macro table full (max %d)", MaxMacros)
	}
	if _, exists := t.bodies[name]; exists {
		return fmt.Errorf("macro %q already defined", name)
	}
	t.bodies[name] = nil
	t.order = append(t.order, name)
	return nil
}

func (t *Table) appendLine(name, line string) error {
	if len(t.bodies[name]) >= MaxBodyLines {
		return fmt.Errorf("macro %q exceeds %d lines", name, MaxBodyLines)
	}
	t.bodies[name] = append(t.bodies[name], line)
	return nil
}

// Preprocess reads source text from r and returns the macro-expanded text,
// the macro table it built along the way, and an error if the source is
// malformed. The macro table is not consulted by either pass -- it exists
// only for this call's duration, per the data model's lifecycle note.
func Preprocess(r io.Reader, sink *diag.Sink) (string, *Table, error) {
	tbl := New()
	var out strings.Builder

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	defining := ""
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		sink.SetLine(lineNo)
		raw := scanner.Text()

		if err := lex.CheckLineLength(raw); err != nil {
			sink.Report(diag.Syntax, "%v", err)
			return "", nil, err
		}

		norm := lex.NormalizeString(raw, true)

		switch {
		case strings.HasPrefix(norm, "mcro"):
			if defining != "" {
				err := fmt.Errorf("nested macro definition (already defining %q)", defining)
				sink.Report(diag.Syntax, "%v", err)
				return "", nil, err
			}
			name := strings.TrimSpace(strings.TrimPrefix(norm, "mcro"))
			if name == "" || !lex.IsValidLabel(name) {
				err := fmt.Errorf("invalid macro name %q", name)
				sink.Report(diag.Macro, "%v", err)
				return "", nil, err
			}
			if isReserved(name) {
				err := fmt.Errorf("macro name %q collides with a reserved keyword", name)
				sink.Report(diag.Macro, "%v", err)
				return "", nil, err
			}
			if err := tbl.add(name); err != nil {
				sink.Report(diag.Macro, "%v", err)
				return "", nil, err
			}
			defining = name

		case strings.HasPrefix(norm, "endmcro"):
			if defining == "" {
				err := fmt.Errorf("endmcro without matching mcro")
				sink.Report(diag.Syntax, "%v", err)
				return "", nil, err
			}
			defining = ""

		case defining != "":
			if err := tbl.appendLine(defining, norm); err != nil {
				sink.Report(diag.Macro, "%v", err)
				return "", nil, err
			}

		default:
			if body, ok := tbl.Lookup(norm); ok {
				for _, bline := range body {
					out.WriteString(bline)
					out.WriteByte('\n')
				}
			} else {
				out.WriteString(raw)
				out.WriteByte('\n')
			}
		}
	}
	if err := scanner.Err(); err != nil {
		sink.Report(diag.File, "%v", err)
		return "", nil, err
	}

	if defining != "" {
		err := fmt.Errorf("unterminated macro definition %q", defining)
		sink.Report(diag.Syntax, "%v", err)
		return "", nil, err
	}

	return out.String(), tbl, nil
}

func isReserved(name string) bool {
	switch name {
	case "mcro", "endmcro", "data", "string", "entry", "extern":
		return true
	default:
		return isa.IsOpcode(name)
	}
}

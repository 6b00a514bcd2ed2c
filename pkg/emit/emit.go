// Package emit writes the three cross-referenced output artifacts -- object
// (.ob), entry (.ent), and external-reference (.ext) listings -- from a
// finished compilation state, plus the macro-expanded source (.am).
//
// Each writer follows the same shape: os.Create, wrap in a bufio.Writer,
// defer Close, flush on the way out.
package emit

import (
	"bufio"
	"fmt"
	"os"

	"asm24/pkg/assembler"
)

// WriteExpanded writes the macro-expanded source to path.
func WriteExpanded(path, expanded string) error {
	return writeFile(path, func(w *bufio.Writer) error {
		_, err := w.WriteString(expanded)
		return err
	})
}

// WriteObject writes the object listing: a header line "<IC> <DC>" followed
// by one "%04d %06X" line per code word and then per data word, with data
// addresses continuing immediately after the code block.
func WriteObject(path string, st *assembler.State) error {
	return writeFile(path, func(w *bufio.Writer) error {
		if _, err := fmt.Fprintf(w, "%d %d\n", len(st.Code), len(st.Data)); err != nil {
			return err
		}
		for i, cw := range st.Code {
			if _, err := fmt.Fprintf(w, "%04d %06X\n", st.CodeBase(i), cw.Packed()); err != nil {
				return err
			}
		}
		for i, dw := range st.Data {
			if _, err := fmt.Fprintf(w, "%04d %06X\n", st.DataBase(i), dw.Packed()); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteEntries writes one "<name> %04d" line per symbol whose entry-flag is
// set, in symbol-table insertion order.
func WriteEntries(path string, st *assembler.State) error {
	return writeFile(path, func(w *bufio.Writer) error {
		for i := 0; i < st.Symbols.Len(); i++ {
			sym := st.Symbols.At(i)
			if !sym.Entry {
				continue
			}
			if _, err := fmt.Fprintf(w, "%s %04d\n", sym.Name, sym.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteExterns writes one "<name> %04d" line per recorded external
// reference, in reference order.
func WriteExterns(path string, st *assembler.State) error {
	return writeFile(path, func(w *bufio.Writer) error {
		for _, ref := range st.Externs {
			if _, err := fmt.Fprintf(w, "%s %04d\n", ref.Name, ref.Address); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeFile(path string, fn func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return w.Flush()
}

// Package assembler implements the two-pass compilation core: FirstPass
// populates the symbol table and data image and sizes the code image;
// SecondPass re-reads the expanded source to resolve operands, finalize the
// code image, and record external references.
//
// Each pass is a function taking this shared state, returning a plain
// error rather than a pass/fail flag.
package assembler

import (
	"asm24/pkg/diag"
	"asm24/pkg/symtab"
	"asm24/pkg/word"
)

// ExternRef records one use-site of an external symbol: the name referenced
// and the absolute instruction-word address where it was referenced.
type ExternRef struct {
	Name    string
	Address int
}

// State is the shared, mutable compilation state for one source file,
// threaded explicitly through both passes rather than held as package-level
// statics.
type State struct {
	Code []word.Word
	Data []word.Word

	IC int // instruction words counted so far
	DC int // data words counted so far

	Symbols *symtab.Table
	Externs []ExternRef

	Sink *diag.Sink
}

// NewState returns a fresh compilation state with an empty symbol table.
func NewState(sink *diag.Sink) *State {
	return &State{
		Symbols: symtab.New(),
		Sink:    sink,
	}
}

// CodeBase returns the absolute address of code word i.
func (s *State) CodeBase(i int) int {
	return word.BaseAddress + i
}

// DataBase returns the absolute address of data word i, once the code
// image's final size (s.IC) is known.
func (s *State) DataBase(i int) int {
	return word.BaseAddress + s.IC + i
}

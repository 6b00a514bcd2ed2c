// Package isa defines the instruction set shared by the macro preprocessor
// (reserved-word checking) and the assembler's two passes (operand arity
// and addressing-mode rules). Splitting it out of pkg/assembler avoids a
// macro -> assembler -> macro import cycle.
package isa

import "strings"

// AddrMode is the addressing mode of one instruction operand, selected by
// its lexical prefix: '#' immediate, bare label direct, '&' relative
// (jump-family only), '@' register.
type AddrMode int

const (
	ModeImmediate AddrMode = 0
	ModeDirect    AddrMode = 1
	ModeRelative  AddrMode = 2
	ModeRegister  AddrMode = 3
)

// Arity says how many operands an opcode takes.
type Arity int

const (
	Arity0 Arity = 0
	Arity1 Arity = 1
	Arity2 Arity = 2
)

// OpSpec describes one mnemonic's encoding shape.
type OpSpec struct {
	Code  int
	Arity Arity
	Jumpy bool // true if '&' relative addressing is permitted (jmp/bne/jsr)
}

// opcodes is the canonical 16-mnemonic instruction set this assembler
// targets, keyed by mnemonic with its numeric opcode, operand arity, and
// whether relative addressing is permitted.
var opcodes = map[string]OpSpec{
	"mov":  {0, Arity2, false},
	"cmp":  {1, Arity2, false},
	"add":  {2, Arity2, false},
	"sub":  {3, Arity2, false},
	"not":  {4, Arity1, false},
	"clr":  {5, Arity1, false},
	"lea":  {6, Arity2, false},
	"inc":  {7, Arity1, false},
	"dec":  {8, Arity1, false},
	"jmp":  {9, Arity1, true},
	"bne":  {10, Arity1, true},
	"red":  {11, Arity1, false},
	"prn":  {12, Arity1, false},
	"jsr":  {13, Arity1, true},
	"rts":  {14, Arity0, false},
	"stop": {15, Arity0, false},
}

// Lookup returns the OpSpec for name, case-insensitively.
func Lookup(name string) (OpSpec, bool) {
	spec, ok := opcodes[strings.ToLower(name)]
	return spec, ok
}

// IsOpcode reports whether name names a known instruction mnemonic.
func IsOpcode(name string) bool {
	_, ok := opcodes[strings.ToLower(name)]
	return ok
}

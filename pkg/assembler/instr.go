package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"asm24/pkg/isa"
)

// AddrMode aliases the instruction set's addressing modes.
type AddrMode = isa.AddrMode

const (
	ModeImmediate = isa.ModeImmediate
	ModeDirect    = isa.ModeDirect
	ModeRelative  = isa.ModeRelative
	ModeRegister  = isa.ModeRegister
)

// Operand is one parsed instruction operand.
type Operand struct {
	Mode  AddrMode
	Imm   int    // valid when Mode == ModeImmediate
	Label string // valid when Mode == ModeDirect or ModeRelative
	Reg   int    // valid when Mode == ModeRegister, 0..7
}

// ParsedInstruction is one decoded instruction line, before symbol
// resolution.
type ParsedInstruction struct {
	Mnemonic string
	Spec     isa.OpSpec
	Operands []Operand
}

// ParseInstruction splits an instruction line's arguments (already stripped
// of any label and directive prefix) into mnemonic and decoded operands.
func ParseInstruction(mnemonic, args string) (*ParsedInstruction, error) {
	spec, ok := isa.Lookup(mnemonic)
	if !ok {
		return nil, fmt.Errorf("unknown instruction %q", mnemonic)
	}

	args = strings.TrimSpace(args)
	var fields []string
	if args != "" {
		for _, f := range strings.Split(args, ",") {
			fields = append(fields, strings.TrimSpace(f))
		}
	}

	if len(fields) != int(spec.Arity) {
		return nil, fmt.Errorf("%s expects %d operand(s), got %d", mnemonic, spec.Arity, len(fields))
	}

	operands := make([]Operand, 0, len(fields))
	for _, f := range fields {
		op, err := parseOperand(f, spec.Jumpy)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", mnemonic, err)
		}
		operands = append(operands, op)
	}

	return &ParsedInstruction{Mnemonic: strings.ToLower(mnemonic), Spec: spec, Operands: operands}, nil
}

func parseOperand(tok string, jumpy bool) (Operand, error) {
	if tok == "" {
		return Operand{}, fmt.Errorf("empty operand")
	}
	switch tok[0] {
	case '#':
		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			return Operand{}, fmt.Errorf("invalid immediate %q", tok)
		}
		return Operand{Mode: ModeImmediate, Imm: n}, nil
	case '&':
		if !jumpy {
			return Operand{}, fmt.Errorf("relative addressing not valid here: %q", tok)
		}
		return Operand{Mode: ModeRelative, Label: tok[1:]}, nil
	case '@':
		reg, err := parseRegister(tok[1:])
		if err != nil {
			return Operand{}, err
		}
		return Operand{Mode: ModeRegister, Reg: reg}, nil
	default:
		return Operand{Mode: ModeDirect, Label: tok}, nil
	}
}

func parseRegister(tok string) (int, error) {
	if len(tok) < 2 || (tok[0] != 'r' && tok[0] != 'R') {
		return 0, fmt.Errorf("invalid register %q", tok)
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil || n < 0 || n > 7 {
		return 0, fmt.Errorf("invalid register %q", tok)
	}
	return n, nil
}

// WordCount returns how many MachineWords this instruction occupies: one
// opcode word, plus one word per operand of any mode, except that two
// register operands share a single word.
func (p *ParsedInstruction) WordCount() int {
	n := 1
	switch len(p.Operands) {
	case 0:
		// nothing more
	case 1:
		n++
	case 2:
		if p.Operands[0].Mode == ModeRegister && p.Operands[1].Mode == ModeRegister {
			n++
		} else {
			n += 2
		}
	}
	return n
}

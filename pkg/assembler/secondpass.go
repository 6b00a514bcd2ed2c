package assembler

import (
	"bufio"
	"fmt"
	"io"

	"asm24/pkg/diag"
	"asm24/pkg/lex"
	"asm24/pkg/symtab"
	"asm24/pkg/word"
)

// SecondPass re-reads the macro-expanded source with the symbol table
// populated by FirstPass. It resolves instruction operands, writes the
// final code image, marks .entry symbols, and records external references.
//
// Both passes size each instruction with the same
// ParsedInstruction.WordCount, so the code offsets laid out here match the
// label values resolved by FirstPass. A failing line is reported to the
// sink and scanning continues; SecondPass then returns the first such error.
func SecondPass(r io.Reader, st *State) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	ic := 0 // running code offset for this pass's own layout
	lineNo := 0
	var firstErr error
	for scanner.Scan() {
		lineNo++
		st.Sink.SetLine(lineNo)
		raw := scanner.Text()

		line := lex.RemoveComment(raw)
		line = lex.NormalizeString(line, false)
		if line == "" {
			continue
		}

		next, err := secondPassLine(line, st, ic)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		ic = next
	}
	if err := scanner.Err(); err != nil {
		st.Sink.Report(diag.File, "%v", err)
		return err
	}

	st.IC = ic
	return firstErr
}

func secondPassLine(line string, st *State, ic int) (int, error) {
	pos := 0
	_, _ = lex.ExtractLabel(line, &pos)

	directive, hasDirective := lex.ExtractDirective(line, &pos)
	if hasDirective {
		args := lex.ExtractArguments(line, &pos)
		switch directive {
		case ".entry":
			name := args
			if err := st.Symbols.MarkEntry(name); err != nil {
				st.Sink.Report(diag.Symbol, "%v", err)
				return ic, err
			}
		case ".data", ".string", ".extern":
			// Already fully handled in FirstPass; nothing to do here.
		default:
			// Already reported by FirstPass; skip without double-reporting.
		}
		return ic, nil
	}

	// Instruction line: re-split into mnemonic + operand text.
	rest := line[pos:]
	mnemonic, args := splitMnemonic(rest)
	if mnemonic == "" {
		return ic, nil
	}

	inst, err := ParseInstruction(mnemonic, args)
	if err != nil {
		st.Sink.Report(diag.Instruction, "%v", err)
		return ic, err
	}

	baseAddr := word.BaseAddress + ic
	opWord, err := encodeOpWord(inst)
	if err != nil {
		st.Sink.Report(diag.Instruction, "%v", err)
		return ic, err
	}
	st.writeCodeWord(ic, opWord)
	next := ic + 1

	switch len(inst.Operands) {
	case 0:
		// no additional words
	case 1:
		w, err := st.encodeOperand(inst.Operands[0], baseAddr+1)
		if err != nil {
			return ic, err
		}
		st.writeCodeWord(next, w)
		next++
	case 2:
		a, b := inst.Operands[0], inst.Operands[1]
		if inst.WordCount() == 2 {
			// Both operands register: they share one word.
			w := word.New((a.Reg<<3)|b.Reg, word.Absolute)
			st.writeCodeWord(next, w)
			next++
		} else {
			wa, err := st.encodeOperand(a, baseAddr+1)
			if err != nil {
				return ic, err
			}
			st.writeCodeWord(next, wa)
			next++
			wb, err := st.encodeOperand(b, baseAddr+2)
			if err != nil {
				return ic, err
			}
			st.writeCodeWord(next, wb)
			next++
		}
	}

	if next-ic != inst.WordCount() {
		return ic, fmt.Errorf("%s: internal word-count mismatch", inst.Mnemonic)
	}

	return next, nil
}

// writeCodeWord stores w at code offset i, growing the code image as
// needed. Offsets are always visited in increasing order by SecondPass, so
// this never needs to overwrite a gap.
func (s *State) writeCodeWord(i int, w word.Word) {
	for len(s.Code) <= i {
		s.Code = append(s.Code, word.Word{})
	}
	s.Code[i] = w
}

func encodeOpWord(inst *ParsedInstruction) (word.Word, error) {
	src, dst := ModeImmediate, ModeImmediate
	switch len(inst.Operands) {
	case 1:
		dst = inst.Operands[0].Mode
	case 2:
		src = inst.Operands[0].Mode
		dst = inst.Operands[1].Mode
	}
	content := (inst.Spec.Code << 4) | (int(src) << 2) | int(dst)
	return word.New(content, word.Absolute), nil
}

// encodeOperand resolves one operand to its additional MachineWord. addr is
// the absolute address of this operand's own word, used to record extern
// references at the correct use-site.
func (s *State) encodeOperand(op Operand, addr int) (word.Word, error) {
	switch op.Mode {
	case ModeImmediate:
		if !word.InRange(op.Imm) {
			err := fmt.Errorf("immediate value %d out of range", op.Imm)
			s.Sink.Report(diag.Range, "%v", err)
			return word.Word{}, err
		}
		return word.New(op.Imm, word.Absolute), nil

	case ModeRegister:
		return word.New(op.Reg, word.Absolute), nil

	case ModeDirect, ModeRelative:
		sym, ok := s.Symbols.Get(op.Label)
		if !ok {
			err := fmt.Errorf("undefined symbol %q", op.Label)
			s.Sink.Report(diag.Symbol, "%v", err)
			return word.Word{}, err
		}
		if sym.Kind == symtab.Extern {
			s.Externs = append(s.Externs, ExternRef{Name: sym.Name, Address: addr})
			return word.New(0, word.External), nil
		}
		if op.Mode == ModeRelative {
			return word.New(sym.Value-addr, word.Absolute), nil
		}
		return word.New(sym.Value, word.Relocatable), nil

	default:
		return word.Word{}, fmt.Errorf("unknown addressing mode")
	}
}

// splitMnemonic splits an instruction-line remainder into its leading
// mnemonic token and the (untrimmed) remainder as operand text.
func splitMnemonic(s string) (mnemonic, rest string) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	for i < len(s) && s[i] != ' ' && s[i] != '\t' {
		i++
	}
	if start == i {
		return "", ""
	}
	mnemonic = s[start:i]
	rest = s[i:]
	return mnemonic, rest
}

package assembler

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"asm24/pkg/diag"
	"asm24/pkg/lex"
	"asm24/pkg/symtab"
	"asm24/pkg/word"
)

// FirstPass reads the macro-expanded source once, populating the symbol
// table and data image and counting instruction words. It does not write
// code words -- that's SecondPass's job, once every label has a value.
func FirstPass(r io.Reader, st *State) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		st.Sink.SetLine(lineNo)
		raw := scanner.Text()

		line := lex.RemoveComment(raw)
		line = lex.NormalizeString(line, false)
		if line == "" {
			continue
		}

		if err := firstPassLine(line, st); err != nil {
			// Recoverable categories: keep scanning so multiple errors
			// surface in one invocation, per the propagation policy.
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		st.Sink.Report(diag.File, "%v", err)
		return err
	}

	st.Symbols.AdjustDataAddresses(word.BaseAddress + st.IC)
	if err := st.Symbols.Validate(); err != nil {
		st.Sink.Report(diag.Symbol, "%v", err)
		return err
	}
	return nil
}

func firstPassLine(line string, st *State) error {
	pos := 0
	label, hasLabel := lex.ExtractLabel(line, &pos)
	if hasLabel && !lex.IsValidLabel(label) {
		err := fmt.Errorf("invalid label %q", label)
		st.Sink.Report(diag.Symbol, "%v", err)
		return err
	}

	directive, hasDirective := lex.ExtractDirective(line, &pos)

	if !hasDirective {
		if hasLabel {
			if err := st.Symbols.Add(label, word.BaseAddress+st.IC, symtab.Code); err != nil {
				st.Sink.Report(diag.Symbol, "%v", err)
				return err
			}
		}
		// Charge this instruction's real width, the same WordCount SecondPass
		// lays its code image out with, so both passes share one address
		// space. A malformed instruction is left to SecondPass to report;
		// it costs this pass nothing to guess a single word here since
		// assembly won't succeed either way.
		width := 1
		mnemonic, args := splitMnemonic(line[pos:])
		if inst, err := ParseInstruction(mnemonic, args); err == nil {
			width = inst.WordCount()
		}
		st.IC += width
		return nil
	}

	args := lex.ExtractArguments(line, &pos)

	switch directive {
	case ".data":
		values, err := lex.ParseDataValues(args)
		if err != nil {
			kind := diag.Syntax
			if errors.Is(err, lex.ErrOutOfRange) {
				kind = diag.Range
			}
			st.Sink.Report(kind, "%v", err)
			return err
		}
		var symErr error
		if hasLabel {
			if err := st.Symbols.Add(label, st.DC, symtab.Data); err != nil {
				st.Sink.Report(diag.Symbol, "%v", err)
				symErr = err
			}
		}
		for _, v := range values {
			st.Data = append(st.Data, word.New(v, word.Absolute))
			st.DC++
		}
		return symErr

	case ".string":
		codes, err := lex.ParseStringValue(args)
		if err != nil {
			st.Sink.Report(diag.Syntax, "%v", err)
			return err
		}
		var symErr error
		if hasLabel {
			if err := st.Symbols.Add(label, st.DC, symtab.Data); err != nil {
				st.Sink.Report(diag.Symbol, "%v", err)
				symErr = err
			}
		}
		for _, c := range codes {
			st.Data = append(st.Data, word.New(c, word.Absolute))
			st.DC++
		}
		return symErr

	case ".extern":
		name := args
		if !lex.IsValidLabel(name) {
			err := fmt.Errorf("invalid extern name %q", name)
			st.Sink.Report(diag.Symbol, "%v", err)
			return err
		}
		if err := st.Symbols.Add(name, 0, symtab.Extern); err != nil {
			st.Sink.Report(diag.Symbol, "%v", err)
			return err
		}
		return nil

	case ".entry":
		// Resolved in the second pass, once every symbol has a final value.
		return nil

	default:
		err := fmt.Errorf("unknown directive %q", directive)
		st.Sink.Report(diag.Syntax, "%v", err)
		return err
	}
}

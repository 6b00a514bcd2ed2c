package assembler

import (
	"fmt"
	"strings"

	"asm24/pkg/diag"
	"asm24/pkg/macro"
)

// Result bundles everything one compiled file produces: the macro-expanded
// text (for the .am artifact) and the finished compilation state (for
// .ob/.ent/.ext).
type Result struct {
	Expanded string
	State    *State
}

// Assemble runs the full pipeline over src -- preprocess, first pass, second
// pass -- as a chain of stages, each returning a plain error, stopping at
// the first one that fails.
func Assemble(src string, sink *diag.Sink) (*Result, error) {
	expanded, _, err := macro.Preprocess(strings.NewReader(src), sink)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}

	st := NewState(sink)

	if err := FirstPass(strings.NewReader(expanded), st); err != nil {
		return &Result{Expanded: expanded, State: st}, fmt.Errorf("first pass: %w", err)
	}

	if err := SecondPass(strings.NewReader(expanded), st); err != nil {
		return &Result{Expanded: expanded, State: st}, fmt.Errorf("second pass: %w", err)
	}

	if sink.HasErrors() {
		return &Result{Expanded: expanded, State: st}, fmt.Errorf("%d error(s) reported", sink.Count())
	}

	return &Result{Expanded: expanded, State: st}, nil
}

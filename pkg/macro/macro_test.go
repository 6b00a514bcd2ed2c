package macro

import (
	"strings"
	"testing"

	"asm24/pkg/diag"
)

func TestPreprocessExpandsMacro(t *testing.T) {
	src := "mcro GREET\n" +
		"mov r1, r2\n" +
		"add r3, r4\n" +
		"endmcro\n" +
		"GREET\n" +
		"GREET\n"

	out, tbl, err := Preprocess(strings.NewReader(src), diag.New())
	if err != nil {
		t.Fatalf("Preprocess() error: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", tbl.Len())
	}

	wantLines := []string{"mov r1, r2", "add r3, r4", "mov r1, r2", "add r3, r4"}
	gotLines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(gotLines) != len(wantLines) {
		t.Fatalf("got %v; want %v", gotLines, wantLines)
	}
	for i := range wantLines {
		if gotLines[i] != wantLines[i] {
			t.Errorf("line %d = %q; want %q", i, gotLines[i], wantLines[i])
		}
	}
	if strings.Contains(out, "mcro") || strings.Contains(out, "endmcro") {
		t.Errorf("expanded output still contains mcro/endmcro: %q", out)
	}
}

func TestPreprocessNestedMacroFails(t *testing.T) {
	src := "mcro A\nmcro B\nendmcro\nendmcro\n"
	_, _, err := Preprocess(strings.NewReader(src), diag.New())
	if err == nil {
		t.Error("expected error for nested macro definition")
	}
}

func TestPreprocessUnterminatedMacroFails(t *testing.T) {
	src := "mcro A\nmov r1, r2\n"
	_, _, err := Preprocess(strings.NewReader(src), diag.New())
	if err == nil {
		t.Error("expected error for unterminated macro")
	}
}

func TestPreprocessEndmcroWithoutMcroFails(t *testing.T) {
	src := "endmcro\n"
	_, _, err := Preprocess(strings.NewReader(src), diag.New())
	if err == nil {
		t.Error("expected error for stray endmcro")
	}
}

func TestPreprocessPassesThroughNonMacroLines(t *testing.T) {
	src := "LEN: .data 1, 2, 3\n.entry LEN\n"
	out, _, err := Preprocess(strings.NewReader(src), diag.New())
	if err != nil {
		t.Fatalf("Preprocess() error: %v", err)
	}
	if out != src {
		t.Errorf("Preprocess() = %q; want %q", out, src)
	}
}

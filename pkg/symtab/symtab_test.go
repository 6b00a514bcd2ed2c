package symtab

import "testing"

func TestAddAndGet(t *testing.T) {
	tb := New()
	if err := tb.Add("LEN", 0, Data); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	sym, ok := tb.Get("LEN")
	if !ok {
		t.Fatal("Get() did not find LEN")
	}
	if sym.Kind != Data || sym.Value != 0 {
		t.Errorf("sym = %+v", sym)
	}
}

func TestAddDuplicateFails(t *testing.T) {
	tb := New()
	if err := tb.Add("M1", 0, Data); err != nil {
		t.Fatalf("first Add() error: %v", err)
	}
	if err := tb.Add("M1", 0, Data); err == nil {
		t.Error("expected error on duplicate add")
	}
}

func TestMarkEntryRejectsExtern(t *testing.T) {
	tb := New()
	if err := tb.Add("X", 0, Extern); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := tb.MarkEntry("X"); err == nil {
		t.Error("expected error marking extern symbol as entry")
	}
}

func TestMarkEntryUnknown(t *testing.T) {
	tb := New()
	if err := tb.MarkEntry("nope"); err == nil {
		t.Error("expected error for unknown symbol")
	}
}

func TestAdjustDataAddresses(t *testing.T) {
	tb := New()
	_ = tb.Add("LEN", 0, Data)
	_ = tb.Add("START", 100, Code)
	tb.AdjustDataAddresses(100)

	data, _ := tb.Get("LEN")
	if data.Value != 100 {
		t.Errorf("LEN.Value = %d; want 100", data.Value)
	}
	code, _ := tb.Get("START")
	if code.Value != 100 {
		t.Errorf("START.Value should be untouched, got %d", code.Value)
	}
}

func TestValidateRejectsExternEntry(t *testing.T) {
	tb := New()
	_ = tb.Add("X", 0, Extern)
	_ = tb.Add("Y", 0, Data)
	tb.byName["X"].Entry = true

	if err := tb.Validate(); err == nil {
		t.Error("expected validation error")
	}
}

func TestInsertionOrderIteration(t *testing.T) {
	tb := New()
	names := []string{"A", "B", "C"}
	for i, n := range names {
		_ = tb.Add(n, i, Code)
	}
	if tb.Len() != 3 {
		t.Fatalf("Len() = %d; want 3", tb.Len())
	}
	for i, n := range names {
		if tb.At(i).Name != n {
			t.Errorf("At(%d).Name = %q; want %q", i, tb.At(i).Name, n)
		}
	}
}

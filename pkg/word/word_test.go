package word

import "testing"

func TestNewMasksFields(t *testing.T) {
	w := New(-3, Absolute)
	if w.ARE != Absolute {
		t.Errorf("ARE = %d; want %d", w.ARE, Absolute)
	}
	// -3 in 21 bits two's complement is 0x1FFFFD.
	if uint32(w.Content) != 0x1FFFFD {
		t.Errorf("Content = %#x; want 0x1FFFFD", uint32(w.Content))
	}
}

func TestPacked(t *testing.T) {
	tests := []struct {
		content int
		are     byte
		want    uint32
	}{
		{7, Absolute, 0x00003C},
		{42, Absolute, 0x000154},
		{-3, Absolute, 0xFFFFEC},
		{0, External, 0x000001},
	}
	for _, tc := range tests {
		got := New(tc.content, tc.are).Packed()
		if got != tc.want {
			t.Errorf("New(%d, %d).Packed() = %#06X; want %#06X", tc.content, tc.are, got, tc.want)
		}
	}
}

func TestInRange(t *testing.T) {
	if !InRange(MinContent) || !InRange(MaxContent) {
		t.Error("boundary values should be in range")
	}
	if InRange(MaxContent + 1) {
		t.Error("MaxContent+1 should be out of range")
	}
	if InRange(MinContent - 1) {
		t.Error("MinContent-1 should be out of range")
	}
}

func TestBinary(t *testing.T) {
	s := Binary(0x000038)
	if len(s) != 24 {
		t.Fatalf("len(Binary()) = %d; want 24", len(s))
	}
	want := "000000000000000000111000"
	if s != want {
		t.Errorf("Binary(0x38) = %q; want %q", s, want)
	}
}

func TestHex(t *testing.T) {
	if got := Hex(0x150); got != "000150" {
		t.Errorf("Hex(0x150) = %q; want %q", got, "000150")
	}
	if got := Hex(0xFFFFFFFF); got != "FFFFFF" {
		t.Errorf("Hex masks to 24 bits: got %q", got)
	}
}

func TestBase64UsesCustomAlphabet(t *testing.T) {
	s := Base64(0x000038)
	if len(s) != 4 {
		t.Fatalf("len(Base64()) = %d; want 4", len(s))
	}
	for _, c := range s {
		if !contains(base64Alphabet, byte(c)) {
			t.Errorf("Base64() produced char %q outside custom alphabet", c)
		}
	}
}

func contains(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

package core

import (
	"testing"
)

func TestKeepFull(t *testing.T) {
	b := Beat{Valid: true, Keep: KeepFullMask}
	if !b.KeepFull() {
		t.Error("expected full keep mask to report full")
	}

	b.Keep = KeepFullMask >> 1
	if b.KeepFull() {
		t.Error("expected partial keep mask to report not full")
	}
	if got := b.KeepBytes(); got != BeatBytes-1 {
		t.Errorf("expected %d keep bytes, got %d", BeatBytes-1, got)
	}

	b.Keep = 0
	if got := b.KeepBytes(); got != 0 {
		t.Errorf("expected 0 keep bytes, got %d", got)
	}
}

func TestAssembleWindowConcatenation(t *testing.T) {
	var first, second Beat
	first.Valid = true
	first.Keep = KeepFullMask
	second.Valid = true
	second.Keep = KeepFullMask
	for i := 0; i < BeatBytes; i++ {
		first.Data[i] = byte(i)
		second.Data[i] = byte(0x80 + i)
	}

	w := AssembleWindow(first, second)
	if !w.Valid {
		t.Fatal("expected valid window from two valid full beats")
	}
	for i := 0; i < BeatBytes; i++ {
		if w.Bytes[i] != byte(i) {
			t.Fatalf("byte %d: expected %#x, got %#x", i, byte(i), w.Bytes[i])
		}
		if w.Bytes[BeatBytes+i] != byte(0x80+i) {
			t.Fatalf("byte %d: expected %#x, got %#x", BeatBytes+i, byte(0x80+i), w.Bytes[BeatBytes+i])
		}
	}
}

func TestAssembleWindowValidity(t *testing.T) {
	full := Beat{Valid: true, Keep: KeepFullMask}
	partial := Beat{Valid: true, Keep: 0xFF}
	invalid := Beat{Keep: KeepFullMask}

	cases := []struct {
		name   string
		first  Beat
		second Beat
		valid  bool
	}{
		{"both valid full", full, full, true},
		{"partial first beat", partial, full, false},
		{"invalid first beat", invalid, full, false},
		{"invalid second beat", full, invalid, false},
		{"partial second beat accepted", full, partial, true},
	}
	for _, tc := range cases {
		if got := AssembleWindow(tc.first, tc.second).Valid; got != tc.valid {
			t.Errorf("%s: expected valid=%v, got %v", tc.name, tc.valid, got)
		}
	}
}

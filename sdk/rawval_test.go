package sdk

import (
	"errors"
	"testing"
)

func TestRawValLayout(t *testing.T) {
	tests := []struct {
		name string
		raw  RawVal
		want uint64
	}{
		{"void", Void, 0x4},
		{"true", True, 0x14},
		{"false", False, 0x24},
		{"u32 7", FromU32(7), 0x70},
		{"i32 -1", FromI32(-1), 0xffffffff2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if uint64(tt.raw) != tt.want {
				t.Errorf("got %#x, want %#x", uint64(tt.raw), tt.want)
			}
		})
	}
}

func TestU63(t *testing.T) {
	raw, err := FromU63(MaxU63)
	if err != nil {
		t.Fatalf("FromU63: %v", err)
	}
	if !raw.IsU63() || raw.U63() != MaxU63 {
		t.Errorf("payload lost: %v", raw)
	}
	if _, err := FromU63(MaxU63 + 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestRawValString(t *testing.T) {
	sym, _ := FromSymbol("mint")
	tests := map[RawVal]string{
		Void:         "void",
		True:         "true",
		FromU32(3):   "u32(3)",
		FromI32(-5):  "i32(-5)",
		sym:          "symbol(mint)",
		RawVal(0x0b): "u63(5)",
	}
	for raw, want := range tests {
		if got := raw.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		in      Symbol
		wantErr bool
	}{
		{"", false},
		{"a", false},
		{"transfer_1", false},
		{"ABCxyz_09", false},
		{"toolongname", true},
		{"bad-char", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			raw, err := FromSymbol(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSymbol) {
					t.Fatalf("expected ErrInvalidSymbol, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromSymbol: %v", err)
			}
			back, err := symbolFromBody(raw.Body())
			if err != nil || back != tt.in {
				t.Errorf("round trip: got %q, %v", back, err)
			}
		})
	}
}

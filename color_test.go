package gglayer

import (
	"errors"
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff8800", RGB(255, 136, 0)},
		{"ff8800", RGB(255, 136, 0)},
		{"#F80", RGB(255, 136, 0)},
		{"#f808", RGBA(255, 136, 0, 136)},
		{"#01020304", RGBA(1, 2, 3, 4)},
		{"#000", RGB(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if err != nil {
				t.Fatalf("ParseHex(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#12345", "#gg0000", "#+f0000", "red"} {
		if _, err := ParseHex(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHex(%q) error = %v, want %v", in, err, ErrInvalidColor)
		}
	}
}

func TestClamp255(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-10, 0},
		{0, 0},
		{127.5, 127.5},
		{255, 255},
		{1e9, 255},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := clamp255(tt.in); got != tt.want {
			t.Errorf("clamp255(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

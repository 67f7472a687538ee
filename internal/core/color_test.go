package core

import (
	"errors"
	"math"
	"testing"
)

func TestNewColorValidation(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float32
		wantErr bool
	}{
		{"black", 0, 0, 0, false},
		{"white", 1, 1, 1, false},
		{"mid grey", 0.5, 0.5, 0.5, false},
		{"red above one", 1.01, 0, 0, true},
		{"green negative", 0, -0.1, 0, true},
		{"blue above one", 0, 0, 2, true},
		{"nan", float32(math.NaN()), 0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewColor(tc.r, tc.g, tc.b)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("NewColor(%v, %v, %v) should fail", tc.r, tc.g, tc.b)
				}
				if !errors.Is(err, ErrColorRange) {
					t.Errorf("error = %v, expected ErrColorRange", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewColor() unexpected error: %v", err)
			}
			if c.A() != 1 {
				t.Errorf("A() = %v, expected 1", c.A())
			}
			if c.RGB() != [3]float32{tc.r, tc.g, tc.b} {
				t.Errorf("RGB() = %v, expected %v", c.RGB(), [3]float32{tc.r, tc.g, tc.b})
			}
		})
	}
}

func TestNewColorAAlphaRange(t *testing.T) {
	if _, err := NewColorA(0, 0, 0, 1.5); err == nil {
		t.Error("alpha above 1 should be rejected")
	}
	c, err := NewColorA(0.2, 0.3, 0.4, 0)
	if err != nil {
		t.Fatalf("NewColorA() unexpected error: %v", err)
	}
	if !c.IsTransparent() {
		t.Error("zero alpha color should report transparent")
	}
}

func TestColorFromSlice(t *testing.T) {
	if _, err := ColorFromSlice([]float32{1, 0}); err == nil {
		t.Error("two channels should be rejected")
	}
	c, err := ColorFromSlice([]float32{0, 1, 0})
	if err != nil {
		t.Fatalf("ColorFromSlice() unexpected error: %v", err)
	}
	if c != Green {
		t.Errorf("ColorFromSlice() = %v, expected %v", c, Green)
	}
	c, err = ColorFromSlice([]float32{0, 0, 1, 0.5})
	if err != nil {
		t.Fatalf("ColorFromSlice() unexpected error: %v", err)
	}
	if c.A() != 0.5 {
		t.Errorf("A() = %v, expected 0.5", c.A())
	}
}

func TestColorScale(t *testing.T) {
	darker, err := Red.Scale(0.9)
	if err != nil {
		t.Fatalf("Scale() unexpected error: %v", err)
	}
	if darker.R() != 0.9 || darker.G() != 0 || darker.B() != 0 {
		t.Errorf("Scale(0.9) = %v, expected rgb(0.9, 0, 0)", darker)
	}

	if _, err := White.Scale(1.5); !errors.Is(err, ErrColorRange) {
		t.Errorf("Scale(1.5) error = %v, expected ErrColorRange", err)
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c        Color
		expected string
	}{
		{Red, "#ff0000"},
		{Black, "#000000"},
		{White, "#ffffff"},
		{Grey, "#808080"},
	}
	for _, tc := range tests {
		if got := tc.c.Hex(); got != tc.expected {
			t.Errorf("Hex(%v) = %q, expected %q", tc.c, got, tc.expected)
		}
	}
}

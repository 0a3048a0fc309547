package vin

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"Test valid uppercase", "1HGCM82633A004352", "1HGCM82633A004352", nil},
		{"Test lowercase is upper-cased", "1hgcm82633a004352", "1HGCM82633A004352", nil},
		{"Test surrounding whitespace is trimmed", "  1HGCM82633A004352\t\n", "1HGCM82633A004352", nil},
		{"Test bad check digit is accepted", "1HGCM82633A00435X", "1HGCM82633A00435X", nil},
		{"Test empty", "", "", ErrInvalidLength},
		{"Test whitespace only", "     ", "", ErrInvalidLength},
		{"Test too short", "1HGCM82633A00435", "", ErrInvalidLength},
		{"Test too long", "1HGCM82633A0043521", "", ErrInvalidLength},
		{"Test inner whitespace counts", "1HGCM8263 3A004352", "", ErrInvalidLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Validate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidate_AnyOtherLengthFails(t *testing.T) {
	for n := 0; n <= 40; n++ {
		if n == Length {
			continue
		}
		input := strings.Repeat("A", n)
		if _, err := Validate(input); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("length %d: expected ErrInvalidLength, got %v", n, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(" 5yj3e1ea7kf317000 "); got != "5YJ3E1EA7KF317000" {
		t.Errorf("Normalize() = %q", got)
	}
}

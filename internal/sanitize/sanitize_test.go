package sanitize

import (
	"errors"
	"strings"
	"testing"
)

func TestInput_SizeLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", 0, DefaultMaxInputSize - 1, false},
		{"Exact Limit", 0, DefaultMaxInputSize, false},
		{"Over Limit", 0, DefaultMaxInputSize + 1, true},
		{"Custom Limit", 10, 11, true},
		{"Custom Limit Ok", 10, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Input(strings.Repeat("a", tt.inputSize), tt.limit)
			if tt.wantErr {
				if !errors.Is(err, ErrInputTooLarge) {
					t.Errorf("Input() expected ErrInputTooLarge for size %d, got %v", tt.inputSize, err)
				}
			} else if err != nil {
				t.Errorf("Input() unexpected error: %v", err)
			}
		})
	}
}

func TestInput_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "Bonjour le monde", "Bonjour le monde"},
		{"Safe Controls", "Line1\nLine2\tTabbed\r\n", "Line1\nLine2\tTabbed\r\n"},
		{"ANSI Code", "\x1b[31m12*8\x1b[0m", "[31m12*8[0m"},
		{"Null Byte", "2+\x002", "2+2"},
		{"Bell", "Ding\x07", "Ding"},
		{"Unicode", "übersetze ça", "übersetze ça"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Input(tt.input, 0)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestInput_InvalidUTF8(t *testing.T) {
	if _, err := Input("bad \xff byte", 0); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("Expected ErrInvalidUTF8, got %v", err)
	}
}

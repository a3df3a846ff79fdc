package permissions

import (
	"os"
	"testing"
)

func TestParseOctalString(t *testing.T) {
	tests := []struct {
		input    string
		expected os.FileMode
	}{
		{"", DefaultFilePerms},
		{"644", 0o644},
		{"0644", 0o644},
		{"0o600", 0o600},
		{"0444", 0o444},
		{"755", 0o755},
	}

	for _, tt := range tests {
		got, err := ParseOctalString(tt.input)
		if err != nil {
			t.Errorf("ParseOctalString(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseOctalString(%q) = %o, want %o", tt.input, got, tt.expected)
		}
	}
}

func TestParseOctalString_Invalid(t *testing.T) {
	for _, input := range []string{"0", "888", "rw-r--r--", "01777", "0200"} {
		if _, err := ParseOctalString(input); err == nil {
			t.Errorf("ParseOctalString(%q) expected error", input)
		}
	}
}

func TestFormatOctal(t *testing.T) {
	if got := FormatOctal(0o644); got != "0644" {
		t.Errorf("FormatOctal(0644) = %q, want %q", got, "0644")
	}
}

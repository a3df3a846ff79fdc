package shellparse

import (
	"errors"
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "only whitespace",
			input:    " \t ",
			expected: []string{},
		},
		{
			name:     "single compiler",
			input:    "cc",
			expected: []string{"cc"},
		},
		{
			name:     "compiler wrapper",
			input:    "ccache  gcc",
			expected: []string{"ccache", "gcc"},
		},
		{
			name:     "flags with tabs",
			input:    "-O2\t-Wall  -D_GNU_SOURCE",
			expected: []string{"-O2", "-Wall", "-D_GNU_SOURCE"},
		},
		{
			name:     "double quoted include dir",
			input:    `-I "/opt/my headers" -O2`,
			expected: []string{"-I", "/opt/my headers", "-O2"},
		},
		{
			name:     "single quoted define",
			input:    `-DNAME='a b'`,
			expected: []string{"-DNAME=a b"},
		},
		{
			name:     "single quotes keep backslashes",
			input:    `'C:\sdk\include'`,
			expected: []string{`C:\sdk\include`},
		},
		{
			name:     "escaped space",
			input:    `-I/opt/my\ headers`,
			expected: []string{"-I/opt/my headers"},
		},
		{
			name:     "escape in double quotes",
			input:    `"-DMSG=\"hi\""`,
			expected: []string{`-DMSG="hi"`},
		},
		{
			name:     "non-special escape in double quotes",
			input:    `"a\nb"`,
			expected: []string{`a\nb`},
		},
		{
			name:     "empty quoted argument",
			input:    `cc ''`,
			expected: []string{"cc", ""},
		},
		{
			name:     "adjacent quoting",
			input:    `pre"mid"'post'`,
			expected: []string{"premidpost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Split(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(result, tt.expected) {
				t.Errorf("Split(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSplit_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"unclosed single quote", `cc 'abc`, ErrUnclosedQuote},
		{"unclosed double quote", `cc "abc`, ErrUnclosedQuote},
		{"trailing escape", `cc abc\`, ErrTrailingEscape},
		{"trailing escape in double quotes", `cc "abc\`, ErrTrailingEscape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(tt.input)
			if !errors.Is(err, tt.err) {
				t.Errorf("Split(%q) error = %v, want %v", tt.input, err, tt.err)
			}
		})
	}
}

func TestJoin_RoundTrip(t *testing.T) {
	inputs := [][]string{
		{"gcc"},
		{"gcc", "-I", "/opt/my headers"},
		{"-DQUOTE=it's", "-DEMPTY=", ""},
		{`-DPATH=C:\x`, "-D$HOME", "a`b`"},
	}

	for _, args := range inputs {
		line := Join(args)
		got, err := Split(line)
		if err != nil {
			t.Fatalf("Split(Join(%q)) error: %v", args, err)
		}
		if !slices.Equal(got, args) {
			t.Errorf("Split(%q) = %q, want %q", line, got, args)
		}
	}
}

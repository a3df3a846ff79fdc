// Package shellparse splits compiler command strings such as $CC and $CFLAGS
// into argument vectors using POSIX shell quoting rules.
package shellparse

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrUnclosedQuote is returned when a quoted string is not properly closed
	ErrUnclosedQuote = errors.New("unclosed quote in command string")

	// ErrTrailingEscape is returned when a backslash appears at the end of input
	ErrTrailingEscape = errors.New("trailing escape character at end of command")
)

type state int

const (
	stateWord state = iota
	stateSingle
	stateDouble
)

// Split parses a command string into arguments.
//
//	Split(`ccache gcc`)          => ["ccache", "gcc"]
//	Split(`-I "/opt/my inc" -O2`) => ["-I", "/opt/my inc", "-O2"]
//	Split(`-DNAME='a b'`)        => ["-DNAME=a b"]
//
// Inside double quotes a backslash only escapes ", \, $ and `.
func Split(input string) ([]string, error) {
	args := []string{}

	var (
		cur     strings.Builder
		inWord  bool
		st      = stateWord
		escaped bool
	)

	for _, ch := range input {
		if escaped {
			if st == stateDouble && !strings.ContainsRune("\"\\$`", ch) {
				cur.WriteRune('\\')
			}
			cur.WriteRune(ch)
			escaped = false
			continue
		}

		switch st {
		case stateSingle:
			if ch == '\'' {
				st = stateWord
			} else {
				cur.WriteRune(ch)
			}
		case stateDouble:
			switch ch {
			case '"':
				st = stateWord
			case '\\':
				escaped = true
			default:
				cur.WriteRune(ch)
			}
		default:
			switch {
			case ch == '\\':
				escaped = true
				inWord = true
			case ch == '\'':
				st = stateSingle
				inWord = true
			case ch == '"':
				st = stateDouble
				inWord = true
			case unicode.IsSpace(ch):
				if inWord {
					args = append(args, cur.String())
					cur.Reset()
					inWord = false
				}
			default:
				cur.WriteRune(ch)
				inWord = true
			}
		}
	}

	switch {
	case escaped:
		return nil, ErrTrailingEscape
	case st == stateSingle:
		return nil, fmt.Errorf("%w: unclosed single quote", ErrUnclosedQuote)
	case st == stateDouble:
		return nil, fmt.Errorf("%w: unclosed double quote", ErrUnclosedQuote)
	}

	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}

// Join renders args as a command string that Split parses back into args.
func Join(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = quote(arg)
	}
	return strings.Join(quoted, " ")
}

func quote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsFunc(arg, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("'\"\\$`", r)
	}) {
		return arg
	}
	// Single quotes are literal; an embedded quote closes, escapes and reopens.
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

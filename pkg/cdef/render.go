package cdef

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
)

// Entry is the resolved state of one constant.
type Entry struct {
	Name    string
	Defined bool
	Value   int64
}

// Defined returns an entry for a constant the platform provides.
func Defined(name string, value int64) Entry {
	return Entry{Name: name, Defined: true, Value: value}
}

// Undefined returns an entry for a constant the platform lacks.
func Undefined(name string) Entry {
	return Entry{Name: name}
}

// Line returns the output line for e without the trailing newline.
func (e Entry) Line() string {
	if e.Defined {
		return "enum " + e.Name + " = " + strconv.FormatInt(e.Value, 10) + ";"
	}
	return "// " + e.Name + " not defined"
}

// Render writes the module declaration followed by one line per entry.
func Render(w io.Writer, module string, entries []Entry) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("module ")
	bw.WriteString(module)
	bw.WriteString(";\n")
	for _, e := range entries {
		bw.WriteString(e.Line())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Format is Render into a byte slice.
func Format(module string, entries []Entry) []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer do not fail.
	_ = Render(&buf, module, entries)
	return buf.Bytes()
}

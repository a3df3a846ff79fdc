package cdef

import (
	"bytes"
	"fmt"
)

// FeatureMacros are defined ahead of the group header so that extension
// constants (O_DIRECT, O_PATH, O_TMPFILE, ...) are visible, matching what a
// C++ compiler exposes by default.
var FeatureMacros = []string{"_GNU_SOURCE", "_DARWIN_C_SOURCE", "_BSD_SOURCE", "_DEFAULT_SOURCE"}

// ProbeSource returns a C program that reports every name of g.
//
// The header is included before <stdio.h> and the table is built before
// <stdio.h> too, so only the group header can define the probed names.
// Each output line is either "NAME 1 VALUE" or "NAME 0".
func ProbeSource(g Group) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "/* Code generated by cdef-gen for %s. DO NOT EDIT. */\n", g.Output)
	for _, macro := range FeatureMacros {
		fmt.Fprintf(&b, "#ifndef %s\n#define %s 1\n#endif\n", macro, macro)
	}
	fmt.Fprintf(&b, "#include <%s>\n\n", g.Header)

	b.WriteString("static const struct {\n")
	b.WriteString("\tconst char *name;\n")
	b.WriteString("\tint defined;\n")
	b.WriteString("\tlong long value;\n")
	b.WriteString("} cdef_probes[] = {\n")
	for _, name := range g.Names {
		fmt.Fprintf(&b, "#ifdef %s\n", name)
		fmt.Fprintf(&b, "\t{\"%s\", 1, (long long)(%s)},\n", name, name)
		b.WriteString("#else\n")
		fmt.Fprintf(&b, "\t{\"%s\", 0, 0},\n", name)
		b.WriteString("#endif\n")
	}
	// Keeps the array non-empty for groups without names.
	b.WriteString("\t{0, 0, 0}\n")
	b.WriteString("};\n\n")

	b.WriteString("#include <stdio.h>\n\n")
	b.WriteString("int main(void)\n{\n")
	b.WriteString("\tunsigned i;\n\n")
	b.WriteString("\tfor (i = 0; cdef_probes[i].name; i++) {\n")
	b.WriteString("\t\tif (cdef_probes[i].defined)\n")
	b.WriteString("\t\t\tprintf(\"%s 1 %lld\\n\", cdef_probes[i].name, cdef_probes[i].value);\n")
	b.WriteString("\t\telse\n")
	b.WriteString("\t\t\tprintf(\"%s 0\\n\", cdef_probes[i].name);\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn 0;\n}\n")

	return b.Bytes()
}

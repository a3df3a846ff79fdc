// Package permissions parses and formats the file modes of generated files
package permissions

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultFilePerms is the mode of generated constant tables
const DefaultFilePerms os.FileMode = 0o644

// ParseOctalString parses an octal permission string into a file mode.
// Handles formats like "644", "0644", "0o644"; empty means DefaultFilePerms.
func ParseOctalString(s string) (os.FileMode, error) {
	if s == "" {
		return DefaultFilePerms, nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0")
	if digits == "" {
		return 0, fmt.Errorf("invalid permission string %q: no permission bits", s)
	}

	val, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid permission string %q: %w", s, err)
	}
	if val&^uint64(os.ModePerm) != 0 {
		return 0, fmt.Errorf("invalid permission string %q: only permission bits are allowed", s)
	}
	if val&0o400 == 0 {
		return 0, fmt.Errorf("invalid permission string %q: owner must be able to read", s)
	}

	return os.FileMode(val), nil
}

// FormatOctal formats a permission value as an octal string
func FormatOctal(perm os.FileMode) string {
	return fmt.Sprintf("0%o", perm.Perm())
}

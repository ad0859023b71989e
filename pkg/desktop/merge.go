package desktop

import (
	"slices"
	"strings"
)

// MergeFlags ensures every flag in flags appears in command.
//
// A flag is considered present when it occurs anywhere in the original
// command text as a substring, not only as a whole token. Missing flags are
// inserted right after the executable, in the given order, ahead of the
// existing arguments. An empty command stays empty.
func MergeFlags(command string, flags []string) string {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return ""
	}

	executable := parts[0]
	originalArgs := parts[1:]

	var missing []string
	for _, flag := range flags {
		if strings.Contains(command, flag) || slices.Contains(missing, flag) {
			continue
		}
		missing = append(missing, flag)
	}

	final := make([]string, 0, 1+len(missing)+len(originalArgs))
	final = append(final, executable)
	final = append(final, missing...)
	final = append(final, originalArgs...)
	return strings.Join(final, " ")
}

package domain

import (
	"regexp"
	"strings"
)

// valgrindProgram is the memory-check supervisor prepended to both targets
// when memory checking is enabled.
const valgrindProgram = "valgrind"

// valgrindArgs puts valgrind in full leak-check mode with quiet diagnostics,
// so a clean run produces no stderr at all.
var valgrindArgs = []string{"--leak-check=full", "--quiet"}

var (
	errorSummaryRe   = regexp.MustCompile(`ERROR SUMMARY: ([\d,]+) errors`)
	definitelyLostRe = regexp.MustCompile(`definitely lost: ([\d,]+) bytes`)
)

// WrapValgrind prepends the memory-check invocation to a target argv.
func WrapValgrind(argv []string) []string {
	wrapped := make([]string, 0, len(argv)+1+len(valgrindArgs))
	wrapped = append(wrapped, valgrindProgram)
	wrapped = append(wrapped, valgrindArgs...)
	wrapped = append(wrapped, argv...)

	return wrapped
}

// MemoryErrorDetected reports whether a valgrind diagnostic stream indicates
// a memory error: an error summary with a nonzero count, or a "definitely
// lost" line whose byte count is not exactly zero. Empty diagnostics (a
// clean quiet run) are never a memory error.
func MemoryErrorDetected(diagnostics string) bool {
	if match := errorSummaryRe.FindStringSubmatch(diagnostics); match != nil {
		if !isZeroCount(match[1]) {
			return true
		}
	}

	for _, match := range definitelyLostRe.FindAllStringSubmatch(diagnostics, -1) {
		if !isZeroCount(match[1]) {
			return true
		}
	}

	return false
}

// isZeroCount treats valgrind counts with thousands separators ("1,024") as
// plain numbers.
func isZeroCount(count string) bool {
	count = strings.ReplaceAll(count, ",", "")
	for _, r := range count {
		if r != '0' {
			return false
		}
	}

	return true
}

package sandbox

import (
	"errors"
	"strings"

	"github.com/dop251/goja"
)

// timeoutMarker is the sentinel passed to Runtime.Interrupt on budget
// expiry. Any error text carrying it is normalized to the full timeout
// wording before surfacing.
const timeoutMarker = "execution timed out"

// goErrorPrefix is what goja prepends to errors thrown from Go code
// (rejected dispatch calls). Stripped so generated code's mistakes and
// tool failures read uniformly.
const goErrorPrefix = "GoError: "

// sanitizeError derives a caller-safe message from an execution error.
func sanitizeError(err error) string {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return timeoutMarker
	}
	var exception *goja.Exception
	if errors.As(err, &exception) {
		return sanitizeMessage(exception.Value().String())
	}
	return sanitizeMessage(err.Error())
}

// sanitizeMessage strips the GoError prefix and any stack-trace lines
// that reference the sandbox host rather than the submitted code, so no
// information about the hosting process leaks to the caller.
func sanitizeMessage(msg string) string {
	msg = strings.TrimPrefix(msg, goErrorPrefix)

	if !strings.Contains(msg, "\n") {
		return msg
	}
	lines := strings.Split(msg, "\n")
	kept := lines[:1]
	for _, line := range lines[1:] {
		if isHostFrame(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimRight(strings.Join(kept, "\n"), "\n")
}

// isHostFrame reports whether a stack line points at host machinery
// instead of the submitted code.
func isHostFrame(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "at ") {
		return false
	}
	return strings.Contains(trimmed, "native") ||
		strings.Contains(trimmed, "github.com/") ||
		strings.Contains(trimmed, ".go:")
}

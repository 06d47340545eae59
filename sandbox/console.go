package sandbox

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/dop251/goja"
)

// Severity prefixes for captured log entries. Plain calls carry no prefix.
const (
	warnPrefix  = "[warn] "
	errorPrefix = "[error] "
)

// consoleCapture is the output-capturing replacement for the logging
// primitive. One instance per execution; entries are strictly ordered by
// capture time. The mutex covers the executor reading entries while the
// loop goroutine may still be appending after a timeout.
type consoleCapture struct {
	mu      sync.Mutex
	enabled bool
	entries []string
}

func newConsoleCapture(enabled bool) *consoleCapture {
	return &consoleCapture{enabled: enabled}
}

// install replaces the context's console with capturing variants.
// log/info/debug capture plain, warn and error capture prefixed.
func (c *consoleCapture) install(vm *goja.Runtime) error {
	console := vm.NewObject()
	plain := c.writer("")
	for _, name := range []string{"log", "info", "debug"} {
		if err := console.Set(name, plain); err != nil {
			return err
		}
	}
	if err := console.Set("warn", c.writer(warnPrefix)); err != nil {
		return err
	}
	if err := console.Set("error", c.writer(errorPrefix)); err != nil {
		return err
	}
	return vm.Set("console", console)
}

func (c *consoleCapture) writer(prefix string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if c.enabled {
			parts := make([]string, len(call.Arguments))
			for i, arg := range call.Arguments {
				parts[i] = renderValue(arg)
			}
			c.append(prefix + strings.Join(parts, " "))
		}
		return goja.Undefined()
	}
}

func (c *consoleCapture) append(entry string) {
	c.mu.Lock()
	c.entries = append(c.entries, entry)
	c.mu.Unlock()
}

// snapshot returns the entries captured so far.
func (c *consoleCapture) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return nil
	}
	return append([]string(nil), c.entries...)
}

// renderValue serializes one logged value: scalars as-is, structured
// values as indented JSON so the textual form is stable.
func renderValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	switch exported := v.Export().(type) {
	case map[string]any, []any:
		data, err := json.MarshalIndent(exported, "", "  ")
		if err != nil {
			return v.String()
		}
		return string(data)
	default:
		return v.String()
	}
}

package sandbox

import (
	"encoding/json"
	"fmt"

	"github.com/dop251/goja"
)

// allowedGlobals is the complete set of globals visible to sandboxed
// code before the executor installs `tools`, `console` and the request
// args. Every global binding not in this table is removed from the
// context (denial by omission). Notably absent: eval, globalThis,
// require, and every host-environment handle.
var allowedGlobals = []string{
	// Values
	"undefined", "Infinity", "NaN",

	// Fundamental objects
	"Object", "Function", "Boolean", "Symbol",

	// Errors
	"Error", "AggregateError", "EvalError", "RangeError",
	"ReferenceError", "SyntaxError", "TypeError", "URIError",

	// Numbers, text, dates
	"Number", "BigInt", "Math", "Date", "String", "RegExp",
	"parseFloat", "parseInt", "isFinite", "isNaN",

	// Collections and structured data
	"Array", "Map", "Set", "WeakMap", "WeakSet", "WeakRef",
	"ArrayBuffer", "DataView", "JSON",
	"Int8Array", "Uint8Array", "Uint8ClampedArray",
	"Int16Array", "Uint16Array", "Int32Array", "Uint32Array",
	"Float32Array", "Float64Array", "BigInt64Array", "BigUint64Array",

	// Control and reflection (sandbox-internal only)
	"Promise", "Proxy", "Reflect",

	// URI helpers
	"decodeURI", "decodeURIComponent", "encodeURI", "encodeURIComponent",
	"escape", "unescape",

	// Timers (registered by the event loop)
	"setTimeout", "clearTimeout", "setInterval", "clearInterval",
}

// lockdown removes every global binding not present in allowedGlobals.
// It runs before anything execution-specific is installed, so the
// resulting capability surface is exactly the allow-list plus whatever
// the executor adds afterwards.
func lockdown(vm *goja.Runtime) error {
	keep, err := json.Marshal(allowedGlobals)
	if err != nil {
		return err
	}
	script := fmt.Sprintf(`(function (allowed) {
	var keep = {};
	for (var i = 0; i < allowed.length; i++) keep[allowed[i]] = true;
	var names = Object.getOwnPropertyNames(this);
	for (var j = 0; j < names.length; j++) {
		if (!keep[names[j]]) {
			try { delete this[names[j]]; } catch (_) {}
		}
	}
})(%s);`, keep)
	_, err = vm.RunString(script)
	return err
}

package sandbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/eventloop"

	"github.com/mrorigo/mcp-orchestrator/apigen"
)

// DefaultTimeout is the wall-clock budget applied when a request does
// not specify one.
const DefaultTimeout = 5 * time.Second

// programName is the script name used for compilation; it appears in
// stack traces for the submitted code.
const programName = "snippet.js"

// Options configures an Executor.
type Options struct {
	// DefaultTimeout is the budget applied to requests with a zero
	// Timeout. Defaults to DefaultTimeout.
	DefaultTimeout time.Duration
}

// Executor runs code snippets in isolated contexts. Safe for concurrent
// use; every Execute call owns its own runtime, binding table view, and
// log buffer.
type Executor struct {
	timeout time.Duration
}

// New creates an Executor.
func New(opts Options) *Executor {
	timeout := opts.DefaultTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{timeout: timeout}
}

// settled is the terminal signal from the sandbox side: either the
// wrapper promise resolved with a value, or something failed.
type settled struct {
	value  any
	errMsg string
	failed bool
}

// Execute runs one request to a terminal state. It never returns a Go
// error: parse failures, thrown errors, rejected tool calls, timeouts
// and cancellation are all folded into the result. DurationMs is always
// populated and Output reflects every capture call up to the point of
// completion or termination.
func (e *Executor) Execute(ctx context.Context, req ExecutionRequest) ExecutionResult {
	start := time.Now()

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = e.timeout
	}

	capture := newConsoleCapture(req.captureOutput())

	// Buffered so a late RunProgram error after an interrupt can never
	// block the loop goroutine.
	settledCh := make(chan settled, 2)
	vmCh := make(chan *goja.Runtime, 1)

	// Bindings observe the same deadline as the execution, so a blocked
	// dispatch call unwinds promptly when the budget expires.
	bindCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	loop := eventloop.NewEventLoop(eventloop.EnableConsole(false))
	loop.Start()
	defer loop.StopNoWait()

	loop.RunOnLoop(func(vm *goja.Runtime) {
		vmCh <- vm
		if err := e.prepare(vm, bindCtx, req, capture, settledCh); err != nil {
			settledCh <- settled{failed: true, errMsg: sanitizeMessage(err.Error())}
			return
		}
		prog, err := goja.Compile(programName, wrapCode(req.Code), false)
		if err != nil {
			settledCh <- settled{failed: true, errMsg: sanitizeMessage(err.Error())}
			return
		}
		if _, err := vm.RunProgram(prog); err != nil {
			settledCh <- settled{failed: true, errMsg: sanitizeError(err)}
		}
		// On the success path the wrapper's then-handler delivers the
		// value, possibly after pending timers drain.
	})

	vm := <-vmCh

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var result ExecutionResult
	select {
	case s := <-settledCh:
		if s.failed {
			result = ExecutionResult{
				State: StateFailed,
				Error: e.normalize(s.errMsg, timeout),
			}
			if strings.Contains(s.errMsg, timeoutMarker) {
				result.State = StateTimedOut
			}
		} else {
			result = ExecutionResult{
				Success: true,
				State:   StateCompleted,
				Value:   s.value,
			}
		}
	case <-timer.C:
		vm.Interrupt(timeoutMarker)
		result = ExecutionResult{
			State: StateTimedOut,
			Error: timeoutMessage(timeout),
		}
	case <-ctx.Done():
		vm.Interrupt("execution canceled")
		result = ExecutionResult{
			State: StateFailed,
			Error: fmt.Sprintf("execution canceled: %v", ctx.Err()),
		}
	}

	result.Output = capture.snapshot()
	result.DurationMs = time.Since(start).Milliseconds()
	return result
}

// normalize rewrites any timeout-marked message to the canonical
// timeout wording; other messages pass through untouched.
func (e *Executor) normalize(msg string, timeout time.Duration) string {
	if strings.Contains(msg, timeoutMarker) {
		return timeoutMessage(timeout)
	}
	return msg
}

func timeoutMessage(timeout time.Duration) string {
	return fmt.Sprintf("execution timed out after %dms", timeout.Milliseconds())
}

// prepare locks the context down to the allow-list and installs the
// execution-specific surface: console, the tools namespace, the request
// args, and the completion hooks used by the code wrapper.
func (e *Executor) prepare(vm *goja.Runtime, ctx context.Context, req ExecutionRequest, capture *consoleCapture, settledCh chan<- settled) error {
	if err := lockdown(vm); err != nil {
		return err
	}
	if err := capture.install(vm); err != nil {
		return err
	}
	if err := installBindings(vm, ctx, req.Bindings); err != nil {
		return err
	}
	for name, value := range req.Args {
		if err := vm.Set(name, value); err != nil {
			return err
		}
	}

	resolve := func(v goja.Value) {
		settledCh <- settled{value: exportValue(v)}
	}
	reject := func(msg string) {
		settledCh <- settled{failed: true, errMsg: sanitizeMessage(msg)}
	}
	if err := vm.Set("__sandboxResolve", resolve); err != nil {
		return err
	}
	return vm.Set("__sandboxReject", reject)
}

// installBindings exposes the binding table as the `tools` namespace.
// Each tool call dispatches synchronously on the loop goroutine but
// returns a real Promise, so both `await tools.x(...)` and `.then(...)`
// behave as the generated interface text advertises.
func installBindings(vm *goja.Runtime, ctx context.Context, bindings apigen.Bindings) error {
	tools := vm.NewObject()
	for name, binding := range bindings {
		binding := binding
		fn := func(call goja.FunctionCall) goja.Value {
			var input map[string]any
			if len(call.Arguments) > 0 && !goja.IsUndefined(call.Arguments[0]) && !goja.IsNull(call.Arguments[0]) {
				if err := vm.ExportTo(call.Arguments[0], &input); err != nil {
					panic(vm.NewTypeError("tool input must be an object: %s", err.Error()))
				}
			}
			promise, resolve, reject := vm.NewPromise()
			value, err := binding(ctx, input)
			if err != nil {
				reject(vm.NewGoError(err))
			} else {
				resolve(vm.ToValue(value))
			}
			return vm.ToValue(promise)
		}
		if err := tools.Set(name, fn); err != nil {
			return err
		}
	}
	return vm.Set("tools", tools)
}

// wrapCode wraps the submitted code in an async IIFE whose settlement,
// not the appearance of output, marks the execution complete.
func wrapCode(code string) string {
	var b strings.Builder
	b.WriteString("(async () => {\n")
	b.WriteString(code)
	b.WriteString("\n})().then(\n")
	b.WriteString("  (value) => { __sandboxResolve(value); },\n")
	b.WriteString("  (err) => { __sandboxReject(err instanceof Error ? err.message : String(err)); }\n")
	b.WriteString(");\n")
	return b.String()
}

// exportValue converts the wrapper's resolution value to a plain Go
// value while still on the loop goroutine.
func exportValue(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v.Export()
}

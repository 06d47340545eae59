// Package sandbox executes one piece of generated JavaScript against one
// tool binding table, under strict capability and time bounds, returning
// a fully-populated ExecutionResult and never returning a Go error.
//
// Each execution owns a fresh goja runtime driven by a goja_nodejs event
// loop. The context is stripped down to a declarative allow-list of
// side-effect-free builtins plus timers; everything else (process and
// environment handles, module loading, filesystem, sockets, the host's
// global object) is simply absent. Code that probes for an absent
// capability sees "undefined"; code that tries to use one fails with an
// ordinary runtime error that flows through the normal error path.
// This is denial by omission, not denial by exception.
//
// Submitted code is wrapped in an async IIFE, so a bare top-level
// `return <expr>` yields the execution's result value and awaited work
// completes before the execution is considered done. Tool bindings are
// exposed under the `tools` namespace and return real Promises.
//
// # Timeout guarantee
//
// The wall-clock budget is enforced with hard preemption: on expiry the
// runtime is interrupted via goja's Interrupt (which terminates even a
// tight synchronous loop) and the event loop is stopped (which covers
// executions idling on timers). The execution is reported as timed out
// with partial output preserved.
package sandbox

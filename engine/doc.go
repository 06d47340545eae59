// Package engine is the caller-facing facade over the API surface
// generator, the sandbox executor and the repair loop.
//
// The engine consumes the external tool registry only through the
// narrow {ToolSource, Dispatch} boundary and the generating backend
// only through repair.Generator. Descriptors are re-read on every call,
// so the generated surface tracks a registry whose tool set changes
// between calls; nothing is cached or re-registered.
package engine

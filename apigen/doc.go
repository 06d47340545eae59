// Package apigen turns tool descriptors into the two artifacts generated
// code needs: a TypeScript-style interface description for prompting, and
// a runtime table of callable bindings.
//
// Both translations are pure. BuildInterfaceText is deterministic: two
// calls with the same descriptor list (same order) produce byte-identical
// text. BuildBindings produces thin forwarding closures over a Dispatch
// function; it performs no retries, no caching, and no input validation.
// Validation is the dispatcher's responsibility, not this layer's.
//
// A descriptor with a duplicate name overwrites the earlier entry in both
// artifacts (last-write-wins). This is intentional: callers that need
// uniqueness enforce it upstream, where the descriptors originate.
package apigen

// Package repair drives a generating backend and the sandbox executor
// to produce a successful execution within a bounded number of
// attempts, or fail loudly.
//
// The loop performs exactly one generation call on the success path and
// exactly 1+MaxRetries on the failure path. It does not inspect why an
// execution failed before deciding to retry: syntax errors, runtime
// errors, rejected tool calls and timeouts are treated uniformly as
// "ask the model to fix it". The only error the loop surfaces to its
// caller is *ExhaustedError.
package repair

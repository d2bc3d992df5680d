package output

import "context"

// Interpreter interface - Output port for the code sandbox.
// Every Run call gets a fresh interpreter instance with no shared state and
// no filesystem, network or process access.
type Interpreter interface {
	// Supports reports whether language can be executed
	Supports(language string) bool

	// Check parses code without executing it and returns the first syntax error
	Check(language, code string) error

	// Run evaluates code, locates the entry function and calls it with args.
	// It returns the exported result value. A ctx deadline interrupts the
	// program and yields domain.ErrSandboxTimeout, a cancelled ctx yields an
	// error wrapping context.Canceled, and a thrown exception yields
	// domain.ErrSandboxRuntime.
	Run(ctx context.Context, language, code string, args []any) (any, error)
}

package trace

import "errors"

var (
	// ErrSyntax indicates a line that is not a well-formed operation.
	ErrSyntax = errors.New("trace: syntax error")

	// ErrUnknownID indicates an operation naming an id no alloc ever bound.
	ErrUnknownID = errors.New("trace: unknown id")
)

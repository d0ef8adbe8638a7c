// Package trace reads allocation traces and replays them against a region.
//
// A trace is line oriented. Blank lines and lines starting with '#' are
// ignored, and a '#' after an operation starts a trailing comment:
//
//	alloc   <id> <bytes>   # Allocate, binding the handle to id
//	free    <id>           # Free the handle bound to id
//	realloc <id> <bytes>   # Reallocate; an unbound id reallocates Nil
//	write   <id> <byte>    # Fill the whole slot with byte (0x2a, 42, 0o52)
//	reset                  # Reset the region
//
// Ids are arbitrary tokens. Input may be UTF-8 or, when it starts with a
// byte order mark, UTF-16.
package trace

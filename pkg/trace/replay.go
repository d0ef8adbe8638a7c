package trace

import (
	"fmt"

	"github.com/joshuapare/regionkit/region"
)

// Outcome is what one op did to the region.
type Outcome struct {
	Op     Op
	Handle region.Handle // handle bound to the op's id afterwards, Nil if none
	Err    error         // engine error, nil on success
}

// Result summarises a replay.
type Result struct {
	Outcomes []Outcome
	Failures int          // outcomes with a non-nil Err
	Stats    region.Stats // region state after the last op
}

// Replay runs ops against r in order. Engine errors such as ErrNoSpace or
// ErrBadHandle are expected trace content and are recorded per op rather
// than stopping the replay. Replay itself fails only on ErrUnknownID or when
// the final header walk finds corruption.
//
// Freed ids stay bound to their stale handle, so a later free or write of
// the same id exercises the engine's handle validation.
func Replay(r *region.Region, ops []Op) (Result, error) {
	ids := make(map[string]region.Handle)
	res := Result{Outcomes: make([]Outcome, 0, len(ops))}

	for _, op := range ops {
		out := Outcome{Op: op}

		switch op.Kind {
		case KindAlloc:
			h, _, err := r.Allocate(op.Size)
			out.Err = err
			if err == nil {
				ids[op.ID] = h
			}

		case KindRealloc:
			// Unbound ids reallocate Nil, which allocates.
			h, _, err := r.Reallocate(ids[op.ID], op.Size)
			out.Err = err
			if err == nil {
				ids[op.ID] = h
			}

		case KindFree:
			h, ok := ids[op.ID]
			if !ok {
				return res, fmt.Errorf("line %d: free %s: %w", op.Line, op.ID, ErrUnknownID)
			}
			out.Err = r.Free(h)

		case KindWrite:
			h, ok := ids[op.ID]
			if !ok {
				return res, fmt.Errorf("line %d: write %s: %w", op.Line, op.ID, ErrUnknownID)
			}
			p, err := r.Payload(h)
			out.Err = err
			for i := range p {
				p[i] = op.Value
			}

		case KindReset:
			r.Reset()
		}

		if op.ID != "" {
			out.Handle = ids[op.ID]
		}
		if out.Err != nil {
			res.Failures++
		}
		res.Outcomes = append(res.Outcomes, out)
	}

	st, err := r.Stats()
	res.Stats = st
	if err != nil {
		return res, fmt.Errorf("stats after replay: %w", err)
	}
	return res, nil
}

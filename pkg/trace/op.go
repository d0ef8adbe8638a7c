package trace

import (
	"fmt"
	"strconv"
)

// Kind is the operation a trace line performs.
type Kind uint8

const (
	KindAlloc Kind = iota + 1
	KindFree
	KindRealloc
	KindWrite
	KindReset
)

var kindNames = map[Kind]string{
	KindAlloc:   "alloc",
	KindFree:    "free",
	KindRealloc: "realloc",
	KindWrite:   "write",
	KindReset:   "reset",
}

var kindsByName = map[string]Kind{
	"alloc":   KindAlloc,
	"free":    KindFree,
	"realloc": KindRealloc,
	"write":   KindWrite,
	"reset":   KindReset,
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Op is one parsed trace line.
type Op struct {
	Line  int    // 1-based source line
	Kind  Kind
	ID    string // empty for reset
	Size  int    // alloc and realloc
	Value byte   // write
}

// String renders the op in trace syntax.
func (o Op) String() string {
	switch o.Kind {
	case KindAlloc, KindRealloc:
		return fmt.Sprintf("%s %s %d", o.Kind, o.ID, o.Size)
	case KindFree:
		return fmt.Sprintf("%s %s", o.Kind, o.ID)
	case KindWrite:
		return fmt.Sprintf("%s %s 0x%02x", o.Kind, o.ID, o.Value)
	default:
		return o.Kind.String()
	}
}

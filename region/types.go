package region

import (
	"io"
	"log/slog"

	"github.com/joshuapare/regionkit/internal/format"
)

// Handle identifies an allocation by the offset of its payload from the
// region base.
type Handle uint32

// Nil is the zero Handle. It never names an allocation.
const Nil Handle = 0

// HeaderSize is the number of bytes consumed by the header preceding every payload.
const HeaderSize = format.HeaderSize

// MaxRegionSize is the largest backing slice a Region accepts.
const MaxRegionSize = format.MaxPayloadSize

// Config tunes a Region. A nil *Config passed to New means DefaultConfig().
type Config struct {
	// Tracker, when set, is told about every byte range the engine writes:
	// header creation, flag changes and payload bytes copied by Reallocate.
	Tracker DirtyTracker

	// Logger receives warnings about header-chain corruption and debug
	// records for rejected handles. Defaults to discarding output.
	Logger *slog.Logger

	// ZeroOnAlloc clears the payload before it is handed out. Reused slots
	// otherwise still hold whatever the previous owner wrote.
	ZeroOnAlloc bool

	// StrictHandles makes Free, Reallocate and Header walk the header chain
	// to prove a handle sits on a header boundary instead of trusting the
	// header bytes in front of it.
	StrictHandles bool
}

// DefaultConfig returns the configuration used when New receives nil.
func DefaultConfig() *Config {
	return &Config{}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Stats summarises the state of a Region.
type Stats struct {
	Capacity       int `json:"capacity"`        // len of the backing memory
	Used           int `json:"used"`            // high-water mark, headers included
	Available      int `json:"available"`       // bytes still reachable by bump allocation
	Headers        int `json:"headers"`         // headers created since the last reset
	FreeHeaders    int `json:"free_headers"`    // headers currently marked free
	AllocatedBytes int `json:"allocated_bytes"` // recorded payload bytes of allocated slots
	FreeBytes      int `json:"free_bytes"`      // recorded payload bytes of free slots
	LargestFree    int `json:"largest_free"`    // largest free slot, 0 when none
	Overhead       int `json:"overhead"`        // bytes spent on headers
}

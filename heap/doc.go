// Package heap provides the process-wide default allocator under the
// conventional Malloc, Calloc, Realloc and Free names.
//
// By default it is a region.Region bound to a statically sized array of
// BackingSize bytes, for targets where no system allocator should be used.
// The size is chosen at build time:
//
//	go build                    // 64 KiB
//	go build -tags heap_small   // 4 KiB
//	go build -tags heap_large   // 4 MiB
//
// Building with -tags sysalloc compiles the region out entirely and every
// entry point forwards to the Go heap.
//
// The default region lives for the whole process. Reset is available but
// never called automatically. Like the region it wraps, the package is not
// safe for concurrent use.
package heap

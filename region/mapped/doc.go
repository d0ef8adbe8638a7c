// Package mapped provides regions whose backing memory is a memory mapping:
// either a file, so allocations survive the process, or anonymous memory.
//
// # File layout
//
//	Offset  Size  Description
//	0x00    4     Magic "rgnk"
//	0x04    4     Format version (1)
//	0x08    4     Region length in bytes
//	0x0C    4     High-water mark
//	0x10    4     Header count
//	0x14    4     Free header count
//	0x18    36    Reserved, zero
//	0x3C    4     Checksum: XOR of the preceding 15 dwords
//	0x40    ...   Region memory (headers and payloads)
//
// The superblock is rewritten on every Flush. Open validates it, then
// re-walks the header chain up to the recorded high-water mark and checks
// the counters against what it finds.
package mapped

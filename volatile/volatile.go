// Package volatile provides load and store primitives that perform
// exactly one memory access per call. The functions are kept out of
// line so the compiler cannot coalesce, reorder, or eliminate the
// access, which MMIO registers require: the memory may change (or act)
// independently of this program.
package volatile

//go:noinline
//go:nosplit
func Load8(addr *uint8) uint8 { return *addr }

//go:noinline
//go:nosplit
func Load16(addr *uint16) uint16 { return *addr }

//go:noinline
//go:nosplit
func Load32(addr *uint32) uint32 { return *addr }

//go:noinline
//go:nosplit
func Load64(addr *uint64) uint64 { return *addr }

//go:noinline
//go:nosplit
func Store8(addr *uint8, val uint8) { *addr = val }

//go:noinline
//go:nosplit
func Store16(addr *uint16, val uint16) { *addr = val }

//go:noinline
//go:nosplit
func Store32(addr *uint32, val uint32) { *addr = val }

//go:noinline
//go:nosplit
func Store64(addr *uint64, val uint64) { *addr = val }

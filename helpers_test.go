package mmio_test

import "unsafe"

// addrOf treats a Go variable as a fake physical address for the
// Identity mapper tests. The caller keeps the variable alive.
func addrOf[T any](p *T) uintptr { return uintptr(unsafe.Pointer(p)) }

// Package mmiotest provides an in-process mmio.Mapper for testing
// accessor code without hardware: a window of fake physical addresses
// is backed by an ordinary byte buffer, and every Map and Unmap call is
// recorded for assertions.
package mmiotest

import (
	"fmt"
	"unsafe"
)

// Call records one Map or Unmap invocation.
type Call struct {
	Phys  uintptr
	Bytes uintptr
}

// Mapper maps the fake physical window [base, base+size) onto a plain
// buffer, so volatile accesses through an accessor land in memory the
// test can inspect via Bytes. Because the backing store is an ordinary
// memory cell, a write followed by a read round-trips bit for bit.
//
// Maps and Unmaps hold the calls in the order they were made.
type Mapper struct {
	base uintptr
	buf  []byte

	Maps   []Call
	Unmaps []Call
}

// New returns a Mapper covering size bytes of fake physical memory
// starting at base.
func New(base uintptr, size int) *Mapper {
	return &Mapper{base: base, buf: make([]byte, size)}
}

// VirtBase returns the virtual address backing the physical base, for
// asserting an accessor's offset arithmetic.
func (m *Mapper) VirtBase() uintptr { return uintptr(unsafe.Pointer(&m.buf[0])) }

// Bytes returns the backing buffer.
func (m *Mapper) Bytes() []byte { return m.buf }

// Map validates the range against the window, records the call, and
// returns the buffer address backing phys. A range outside the window
// is a test bug and panics.
func (m *Mapper) Map(phys, bytes uintptr) uintptr {
	if bytes == 0 || phys < m.base || phys-m.base+bytes > uintptr(len(m.buf)) {
		panic(fmt.Sprintf("mmiotest: map %#x+%#x outside window %#x+%#x",
			phys, bytes, m.base, len(m.buf)))
	}
	m.Maps = append(m.Maps, Call{Phys: phys, Bytes: bytes})
	return uintptr(unsafe.Pointer(&m.buf[phys-m.base]))
}

// Unmap records the call.
func (m *Mapper) Unmap(phys, bytes uintptr) {
	m.Unmaps = append(m.Unmaps, Call{Phys: phys, Bytes: bytes})
}

//go:build linux

// Package devmem implements mmio.Mapper over a Linux memory device,
// /dev/mem by default. Each Map mmaps the page-aligned span covering
// the requested physical range; Unmap releases that exact mapping.
// Mapping failures are fatal, there is nothing to recover to when the
// hardware window cannot be opened.
package devmem

import (
	"log"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

const pageSize = 4096

// Mapper maps physical ranges by mmapping a memory device. Use New or
// NewFile; the zero value has no device.
type Mapper struct {
	dev string

	mu   sync.Mutex
	f    *os.File
	maps map[[2]uintptr][]byte
}

// New returns a Mapper backed by /dev/mem.
func New() *Mapper { return NewFile("/dev/mem") }

// NewFile returns a Mapper backed by the named memory device.
func NewFile(dev string) *Mapper {
	return &Mapper{dev: dev, maps: make(map[[2]uintptr][]byte)}
}

// file opens the device on first use. Callers hold mu.
func (m *Mapper) file() *os.File {
	if m.f == nil {
		f, err := os.OpenFile(m.dev, os.O_RDWR|os.O_SYNC, 0)
		if err != nil {
			log.Fatalf("%s: %s", m.dev, err)
		}
		m.f = f
	}
	return m.f
}

// pageSpan widens [phys, phys+bytes) to whole pages: the page-aligned
// start, the offset of phys within it, and the rounded-up length.
func pageSpan(phys, bytes uintptr) (page, off, length uintptr) {
	page = phys &^ (pageSize - 1)
	off = phys & (pageSize - 1)
	length = off + bytes
	length += (-length) & (pageSize - 1)
	return
}

// Map mmaps the pages covering [phys, phys+bytes) and returns the
// virtual address corresponding to phys.
func (m *Mapper) Map(phys, bytes uintptr) uintptr {
	page, off, length := pageSpan(phys, bytes)

	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.file()
	data, err := unix.Mmap(int(f.Fd()), int64(page), int(length),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		log.Fatalf("mmap %s %#x+%#x: %s", m.dev, page, length, err)
	}
	m.maps[[2]uintptr{phys, bytes}] = data
	return uintptr(unsafe.Pointer(&data[off]))
}

// Unmap releases the mapping previously created for the same
// (phys, bytes) range.
func (m *Mapper) Unmap(phys, bytes uintptr) {
	key := [2]uintptr{phys, bytes}

	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.maps[key]
	if !ok {
		log.Fatalf("unmap of unknown region %#x+%#x", phys, bytes)
	}
	delete(m.maps, key)
	if err := unix.Munmap(data); err != nil {
		log.Fatalf("munmap %#x+%#x: %s", phys, bytes, err)
	}
}

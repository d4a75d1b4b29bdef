// Package hostmem implements mmio.Mapper over periph.io's host/pmem,
// which knows how to reach physical memory through /dev/mem,
// /dev/gpiomem, or uiomem depending on the host. Prefer this mapper on
// boards periph supports; devmem is the bare alternative.
package hostmem

import (
	"log"
	"sync"
	"unsafe"

	"periph.io/x/periph/host/pmem"
)

// Mapper maps physical ranges as pmem views, one view per mapping.
type Mapper struct {
	mu    sync.Mutex
	views map[[2]uintptr]*pmem.View
}

// New returns an empty Mapper.
func New() *Mapper {
	return &Mapper{views: make(map[[2]uintptr]*pmem.View)}
}

// Map opens a view of [phys, phys+bytes) and returns its virtual base.
func (m *Mapper) Map(phys, bytes uintptr) uintptr {
	v, err := pmem.Map(uint64(phys), int(bytes))
	if err != nil {
		log.Fatalf("pmem map %#x+%#x: %s", phys, bytes, err)
	}
	m.mu.Lock()
	m.views[[2]uintptr{phys, bytes}] = v
	m.mu.Unlock()
	b := v.Bytes()
	return uintptr(unsafe.Pointer(&b[0]))
}

// Unmap closes the view previously opened for the same (phys, bytes)
// range.
func (m *Mapper) Unmap(phys, bytes uintptr) {
	key := [2]uintptr{phys, bytes}

	m.mu.Lock()
	v, ok := m.views[key]
	delete(m.views, key)
	m.mu.Unlock()
	if !ok {
		log.Fatalf("unmap of unknown region %#x+%#x", phys, bytes)
	}
	if err := v.Close(); err != nil {
		log.Fatalf("pmem unmap %#x+%#x: %s", phys, bytes, err)
	}
}

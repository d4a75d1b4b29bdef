package mmio

import (
	"unsafe"

	"github.com/lprylli/mmio/volatile"
)

// region is the mapped span every accessor owns: the physical base it
// was constructed with, the virtual base the Mapper produced, and the
// byte length covered. Unmap is keyed by the physical range, so the
// original base is kept alongside the virtual one.
type region struct {
	phys   uintptr
	virt   uintptr
	bytes  uintptr
	mapper Mapper
	closed bool
}

func mapRegion(phys, bytes uintptr, m Mapper) region {
	virt := m.Map(phys, bytes)
	return region{phys: phys, virt: virt, bytes: bytes, mapper: m}
}

// close releases the mapping. Idempotent, so a deferred Close following
// a manual one cannot unmap twice.
func (r *region) close() {
	if r.closed {
		return
	}
	r.closed = true
	r.mapper.Unmap(r.phys, r.bytes)
}

func (r *region) live() {
	if r.closed {
		panic("mmio: access through closed accessor")
	}
}

func checkAlign[T any](phys uintptr) error {
	var zero T
	a := unsafe.Alignof(zero)
	if phys%a != 0 {
		return &NotAlignedError{Addr: phys, Align: a}
	}
	return nil
}

// load performs a volatile read of a T at addr. Types of register width
// go through one load of that width; wider word-aligned types are
// copied 32 bits at a time, anything else byte by byte, so no single
// access is wider than the element allows.
func load[T any](addr uintptr) T {
	var v T
	p := unsafe.Pointer(addr)
	dst := unsafe.Pointer(&v)
	switch size := unsafe.Sizeof(v); {
	case size == 1:
		*(*uint8)(dst) = volatile.Load8((*uint8)(p))
	case size == 2 && addr%2 == 0:
		*(*uint16)(dst) = volatile.Load16((*uint16)(p))
	case size == 4 && addr%4 == 0:
		*(*uint32)(dst) = volatile.Load32((*uint32)(p))
	case size == 8 && addr%8 == 0:
		*(*uint64)(dst) = volatile.Load64((*uint64)(p))
	case size%4 == 0 && addr%4 == 0:
		for off := uintptr(0); off < size; off += 4 {
			*(*uint32)(unsafe.Add(dst, off)) = volatile.Load32((*uint32)(unsafe.Add(p, off)))
		}
	default:
		for off := uintptr(0); off < size; off++ {
			*(*uint8)(unsafe.Add(dst, off)) = volatile.Load8((*uint8)(unsafe.Add(p, off)))
		}
	}
	return v
}

// store performs a volatile write of v's exact bit pattern at addr,
// with the same width dispatch as load.
func store[T any](addr uintptr, v T) {
	p := unsafe.Pointer(addr)
	src := unsafe.Pointer(&v)
	switch size := unsafe.Sizeof(v); {
	case size == 1:
		volatile.Store8((*uint8)(p), *(*uint8)(src))
	case size == 2 && addr%2 == 0:
		volatile.Store16((*uint16)(p), *(*uint16)(src))
	case size == 4 && addr%4 == 0:
		volatile.Store32((*uint32)(p), *(*uint32)(src))
	case size == 8 && addr%8 == 0:
		volatile.Store64((*uint64)(p), *(*uint64)(src))
	case size%4 == 0 && addr%4 == 0:
		for off := uintptr(0); off < size; off += 4 {
			volatile.Store32((*uint32)(unsafe.Add(p, off)), *(*uint32)(unsafe.Add(src, off)))
		}
	default:
		for off := uintptr(0); off < size; off++ {
			volatile.Store8((*uint8)(unsafe.Add(p, off)), *(*uint8)(unsafe.Add(src, off)))
		}
	}
}

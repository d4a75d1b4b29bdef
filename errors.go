package mmio

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroLen is returned when an array accessor is constructed
	// with a non-positive element count.
	ErrZeroLen = errors.New("mmio: array length must be positive")

	// ErrZeroSize is returned when the element type has zero size; a
	// zero-length byte range is undefined under the Mapper contract.
	ErrZeroSize = errors.New("mmio: element type has zero size")

	// ErrOverflow is returned when element size times count does not
	// fit in the address space.
	ErrOverflow = errors.New("mmio: byte length overflows the address space")
)

// NotAlignedError reports a physical base address that does not satisfy
// the element type's alignment.
type NotAlignedError struct {
	Addr  uintptr
	Align uintptr
}

func (e *NotAlignedError) Error() string {
	return fmt.Sprintf("mmio: address %#x is not %d byte aligned", e.Addr, e.Align)
}

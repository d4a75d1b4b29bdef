package mmio

import (
	"fmt"
	"iter"
	"unsafe"
)

// array is the capability-free core shared by the Array variants.
type array[T any] struct {
	region
	n int
}

func newArray[T any](phys uintptr, n int, m Mapper) (array[T], error) {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return array[T]{}, ErrZeroSize
	}
	if n <= 0 {
		return array[T]{}, ErrZeroLen
	}
	if uintptr(n) > ^uintptr(0)/size {
		return array[T]{}, ErrOverflow
	}
	if err := checkAlign[T](phys); err != nil {
		return array[T]{}, err
	}
	return array[T]{region: mapRegion(phys, size*uintptr(n), m), n: n}, nil
}

// addr computes the virtual address of element i. Out-of-range indexes
// are fatal, never clamped.
func (a *array[T]) addr(i int) uintptr {
	a.live()
	if i < 0 || i >= a.n {
		panic(fmt.Sprintf("mmio: index %d out of range [0:%d]", i, a.n))
	}
	var zero T
	return a.virt + uintptr(i)*unsafe.Sizeof(zero)
}

func (a *array[T]) readAt(i int) T {
	return load[T](a.addr(i))
}

func (a *array[T]) writeAt(i int, v T) {
	store(a.addr(i), v)
}

func (a *array[T]) values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < a.n; i++ {
			if !yield(a.readAt(i)) {
				return
			}
		}
	}
}

// Len returns the element count. It is available on every capability
// variant; the length of a region is knowable whether or not its
// contents are.
func (a *array[T]) Len() int { return a.n }

// Addr returns the physical base address the accessor was constructed
// with.
func (a *array[T]) Addr() uintptr { return a.phys }

// Close releases the mapping covering the whole array. At most one
// Unmap is issued; any access after the first Close panics.
func (a *array[T]) Close() { a.close() }

// Array reads and writes n contiguous values of type T starting at a
// fixed physical address. Element accesses are bounds-checked against
// the length fixed at construction.
type Array[T any] struct {
	array[T]
}

// NewArray maps n*sizeof(T) bytes at phys through m and returns a
// read-write accessor over the elements. The byte length is checked
// against address-space overflow before any Map call; exactly one Map
// call is made on success, none on rejection.
//
// The validity obligations of NewSingle apply to the whole range.
func NewArray[T any](phys uintptr, n int, m Mapper) (*Array[T], error) {
	c, err := newArray[T](phys, n, m)
	if err != nil {
		return nil, err
	}
	return &Array[T]{c}, nil
}

// ReadAt performs one volatile load of element i. It panics if i is out
// of range.
func (a *Array[T]) ReadAt(i int) T { return a.readAt(i) }

// WriteAt performs one volatile store of v as element i. It panics if i
// is out of range.
func (a *Array[T]) WriteAt(i int, v T) { a.writeAt(i, v) }

// UpdateAt reads element i, lets f modify it, and writes it back.
func (a *Array[T]) UpdateAt(i int, f func(*T)) {
	v := a.readAt(i)
	f(&v)
	a.writeAt(i, v)
}

// Values iterates over the elements in index order, one volatile load
// each.
func (a *Array[T]) Values() iter.Seq[T] { return a.values() }

// ArrayRO is an Array without a write path.
type ArrayRO[T any] struct {
	array[T]
}

// NewArrayRO is NewArray restricted to the read capability.
func NewArrayRO[T any](phys uintptr, n int, m Mapper) (*ArrayRO[T], error) {
	c, err := newArray[T](phys, n, m)
	if err != nil {
		return nil, err
	}
	return &ArrayRO[T]{c}, nil
}

// ReadAt performs one volatile load of element i. It panics if i is out
// of range.
func (a *ArrayRO[T]) ReadAt(i int) T { return a.readAt(i) }

// Values iterates over the elements in index order, one volatile load
// each.
func (a *ArrayRO[T]) Values() iter.Seq[T] { return a.values() }

// ArrayWO is an Array without a read path.
type ArrayWO[T any] struct {
	array[T]
}

// NewArrayWO is NewArray restricted to the write capability.
func NewArrayWO[T any](phys uintptr, n int, m Mapper) (*ArrayWO[T], error) {
	c, err := newArray[T](phys, n, m)
	if err != nil {
		return nil, err
	}
	return &ArrayWO[T]{c}, nil
}

// WriteAt performs one volatile store of v as element i. It panics if i
// is out of range.
func (a *ArrayWO[T]) WriteAt(i int, v T) { a.writeAt(i, v) }

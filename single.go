package mmio

import "unsafe"

// single is the capability-free core shared by the Single variants.
// Its read and write are unexported; each public variant re-exports the
// subset its capability allows.
type single[T any] struct {
	region
}

func newSingle[T any](phys uintptr, m Mapper) (single[T], error) {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return single[T]{}, ErrZeroSize
	}
	if err := checkAlign[T](phys); err != nil {
		return single[T]{}, err
	}
	return single[T]{mapRegion(phys, size, m)}, nil
}

func (a *single[T]) read() T {
	a.live()
	return load[T](a.virt)
}

func (a *single[T]) write(v T) {
	a.live()
	store(a.virt, v)
}

// Addr returns the physical address the accessor was constructed with.
func (a *single[T]) Addr() uintptr { return a.phys }

// Close releases the mapping. At most one Unmap is issued no matter how
// often Close runs; any access after the first Close panics.
func (a *single[T]) Close() { a.close() }

// Single reads and writes one value of type T at a fixed physical
// address. See the package comment for the ownership and validity
// obligations that come with constructing one.
type Single[T any] struct {
	single[T]
}

// NewSingle maps sizeof(T) bytes at phys through m and returns a
// read-write accessor over them. Exactly one Map call is made; none if
// construction is rejected.
//
// phys must designate valid hardware memory aligned for T, with no
// other live accessor covering the range. Violating that is undefined
// behavior, not a checked error.
func NewSingle[T any](phys uintptr, m Mapper) (*Single[T], error) {
	s, err := newSingle[T](phys, m)
	if err != nil {
		return nil, err
	}
	return &Single[T]{s}, nil
}

// Read performs one volatile load and returns an exact bitwise copy of
// the value.
func (a *Single[T]) Read() T { return a.read() }

// Write performs one volatile store of v's exact bit pattern.
func (a *Single[T]) Write(v T) { a.write(v) }

// Update reads the value, lets f modify it, and writes it back.
// Registers whose fields do not read back as written (command ring
// pointers and the like) should be updated at most once this way.
func (a *Single[T]) Update(f func(*T)) {
	v := a.read()
	f(&v)
	a.write(v)
}

// SingleRO is a Single without a write path, for registers that must
// not be stored to.
type SingleRO[T any] struct {
	single[T]
}

// NewSingleRO is NewSingle restricted to the read capability.
func NewSingleRO[T any](phys uintptr, m Mapper) (*SingleRO[T], error) {
	s, err := newSingle[T](phys, m)
	if err != nil {
		return nil, err
	}
	return &SingleRO[T]{s}, nil
}

// Read performs one volatile load and returns an exact bitwise copy of
// the value.
func (a *SingleRO[T]) Read() T { return a.read() }

// SingleWO is a Single without a read path, for registers with
// write-only or read-to-clear semantics.
type SingleWO[T any] struct {
	single[T]
}

// NewSingleWO is NewSingle restricted to the write capability.
func NewSingleWO[T any](phys uintptr, m Mapper) (*SingleWO[T], error) {
	s, err := newSingle[T](phys, m)
	if err != nil {
		return nil, err
	}
	return &SingleWO[T]{s}, nil
}

// Write performs one volatile store of v's exact bit pattern.
func (a *SingleWO[T]) Write(v T) { a.write(v) }

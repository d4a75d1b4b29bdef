package mmio

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Struct-field views: accessors for one field of a struct-typed element
// that borrow the parent accessor's mapping. The field accessor is
// built over Identity at parent base + element offset + field offset,
// so closing it unmaps nothing; it must not outlive or be used after
// closing its parent.

// OffsetOf returns the byte offset of the named field within the struct
// type S, like unsafe.Offsetof for a field named at run time. It panics
// if S is not a struct type or has no such field.
func OffsetOf[S any](name string) uintptr {
	t := reflect.TypeOf((*S)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("mmio: OffsetOf on non-struct type %v", t))
	}
	f, ok := t.FieldByName(name)
	if !ok {
		panic(fmt.Sprintf("mmio: type %v has no field %q", t, name))
	}
	return f.Offset
}

// fieldWindow checks that an F at off fits inside an element of
// elemSize bytes and builds the Identity-backed core for it.
func fieldWindow[F any](base, off, elemSize uintptr) single[F] {
	var zero F
	if off+unsafe.Sizeof(zero) > elemSize {
		panic(fmt.Sprintf("mmio: %d byte field at offset %#x exceeds %d byte element",
			unsafe.Sizeof(zero), off, elemSize))
	}
	s, err := newSingle[F](base+off, Identity{})
	if err != nil {
		panic(err)
	}
	return s
}

func elemSize[S any]() uintptr {
	var zero S
	return unsafe.Sizeof(zero)
}

// Field returns a read-write accessor over the F-typed field at byte
// offset off inside a's element. It panics if the field window does not
// fit in the element or is misaligned for F.
func Field[F, S any](a *Single[S], off uintptr) *Single[F] {
	a.live()
	return &Single[F]{fieldWindow[F](a.virt, off, elemSize[S]())}
}

// FieldRO is Field for a read-only parent; the view is read-only too.
func FieldRO[F, S any](a *SingleRO[S], off uintptr) *SingleRO[F] {
	a.live()
	return &SingleRO[F]{fieldWindow[F](a.virt, off, elemSize[S]())}
}

// FieldAt returns a read-write accessor over the F-typed field at byte
// offset off inside element i of a. It panics if i is out of range or
// the field window is invalid.
func FieldAt[F, S any](a *Array[S], i int, off uintptr) *Single[F] {
	return &Single[F]{fieldWindow[F](a.addr(i), off, elemSize[S]())}
}

// FieldAtRO is FieldAt for a read-only parent.
func FieldAtRO[F, S any](a *ArrayRO[S], i int, off uintptr) *SingleRO[F] {
	return &SingleRO[F]{fieldWindow[F](a.addr(i), off, elemSize[S]())}
}

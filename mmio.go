// Package mmio provides typed, volatile access to values at fixed
// physical memory addresses, the access pattern used for memory-mapped
// I/O registers.
//
// An accessor is constructed from a physical address and a Mapper. The
// Mapper translates the physical range into a virtual address the
// process can dereference; the accessor then performs reads and writes
// as volatile loads and stores at that address, and releases the
// mapping exactly once when closed. Single covers one value, Array a
// contiguous run of values.
//
// Which operations an accessor exposes is fixed by its type: Single and
// Array read and write, SingleRO and ArrayRO only read, SingleWO and
// ArrayWO only write. A write-only register therefore cannot be read by
// code that compiles.
//
// The library cannot tell a device register from a random address.
// Constructing an accessor over memory that is not valid, mapped
// hardware memory of the right alignment, or over a range already
// covered by another live accessor, is undefined behavior. Accessors
// are single-owner values: do not copy them and do not share one across
// goroutines without external synchronization.
package mmio

// Mapper translates a physical address range into a virtual address
// range the process can access with ordinary loads and stores, and
// later reverses that mapping. Accessors call Map exactly once at
// construction and Unmap at most once at Close, always with the same
// (phys, bytes) pair.
//
// There is no error return: mapping a range the host cannot provide is
// fatal at the implementation (the usual policy is log.Fatal). Map is
// never called with bytes == 0. A Mapper that keeps global bookkeeping
// and is shared across accessors must do its own locking.
type Mapper interface {
	Map(phys, bytes uintptr) uintptr
	Unmap(phys, bytes uintptr)
}

// Identity is the Mapper for environments without an address
// translation layer: the virtual address is the physical address.
// Unmap is a no-op, which also makes Identity the mapper behind
// struct-field views that borrow an existing mapping.
type Identity struct{}

func (Identity) Map(phys, bytes uintptr) uintptr { return phys }

func (Identity) Unmap(phys, bytes uintptr) {}

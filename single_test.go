package mmio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lprylli/mmio"
	"github.com/lprylli/mmio/mmiotest"
)

func TestSingleMapUnmapOnce(t *testing.T) {
	m := mmiotest.New(0x1000, 64)

	a, err := mmio.NewSingle[uint32](0x1000, m)
	require.NoError(t, err)
	require.Equal(t, []mmiotest.Call{{Phys: 0x1000, Bytes: 4}}, m.Maps)
	require.Empty(t, m.Unmaps)

	a.Close()
	a.Close() // second close must not unmap again
	assert.Equal(t, []mmiotest.Call{{Phys: 0x1000, Bytes: 4}}, m.Unmaps)
}

func TestSingleRoundTrip(t *testing.T) {
	m := mmiotest.New(0x1000, 64)

	a, err := mmio.NewSingle[uint32](0x1000, m)
	require.NoError(t, err)
	a.Write(3)
	assert.Equal(t, uint32(3), a.Read())

	a.Close()
	assert.Equal(t, []mmiotest.Call{{Phys: 0x1000, Bytes: 4}}, m.Unmaps)
}

// A register block layout, to check that struct-typed elements copy bit
// for bit.
type hcCaps struct {
	Length  uint8
	Rsvd    uint8
	Version uint16
	Params1 uint32
	Params2 uint32
}

func TestSingleStructRoundTrip(t *testing.T) {
	m := mmiotest.New(0x4000, 64)

	a, err := mmio.NewSingle[hcCaps](0x4000, m)
	require.NoError(t, err)
	defer a.Close()

	want := hcCaps{Length: 0x20, Version: 0x0110, Params1: 0xdeadbeef, Params2: 0x42}
	a.Write(want)
	assert.Equal(t, want, a.Read())
	assert.Equal(t, []mmiotest.Call{{Phys: 0x4000, Bytes: 12}}, m.Maps)
}

func TestSingleUpdate(t *testing.T) {
	m := mmiotest.New(0x1000, 64)

	a, err := mmio.NewSingle[uint32](0x1000, m)
	require.NoError(t, err)
	defer a.Close()

	a.Write(21)
	a.Update(func(v *uint32) { *v *= 2 })
	assert.Equal(t, uint32(42), a.Read())
}

func TestSingleNotAligned(t *testing.T) {
	m := mmiotest.New(0x1000, 64)

	_, err := mmio.NewSingle[uint32](0x1002, m)
	var na *mmio.NotAlignedError
	require.ErrorAs(t, err, &na)
	assert.Equal(t, uintptr(0x1002), na.Addr)
	assert.Equal(t, uintptr(4), na.Align)
	assert.Empty(t, m.Maps, "rejected construction must not map")
}

func TestSingleUseAfterClose(t *testing.T) {
	m := mmiotest.New(0x1000, 64)

	a, err := mmio.NewSingle[uint32](0x1000, m)
	require.NoError(t, err)
	a.Close()

	assert.Panics(t, func() { a.Read() })
	assert.Panics(t, func() { a.Write(1) })
}

func TestSingleAddr(t *testing.T) {
	m := mmiotest.New(0x1000, 64)

	a, err := mmio.NewSingleRO[uint32](0x1010, m)
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, uintptr(0x1010), a.Addr())
}

// The capability restriction is a compile-time property: the narrowed
// variants simply have no method for the forbidden operation. Checked
// here by interface shape.
func TestSingleCapabilityShape(t *testing.T) {
	m := mmiotest.New(0x1000, 64)

	ro, err := mmio.NewSingleRO[uint32](0x1000, m)
	require.NoError(t, err)
	defer ro.Close()
	_, writable := any(ro).(interface{ Write(uint32) })
	assert.False(t, writable, "read-only accessor must not expose Write")
	_, readable := any(ro).(interface{ Read() uint32 })
	assert.True(t, readable)

	wo, err := mmio.NewSingleWO[uint32](0x1004, m)
	require.NoError(t, err)
	defer wo.Close()
	_, readable = any(wo).(interface{ Read() uint32 })
	assert.False(t, readable, "write-only accessor must not expose Read")
	_, writable = any(wo).(interface{ Write(uint32) })
	assert.True(t, writable)

	rw, err := mmio.NewSingle[uint32](0x1008, m)
	require.NoError(t, err)
	defer rw.Close()
	_, readable = any(rw).(interface{ Read() uint32 })
	_, writable = any(rw).(interface{ Write(uint32) })
	assert.True(t, readable)
	assert.True(t, writable)
}

func TestSingleWriteOnlyLandsInMemory(t *testing.T) {
	m := mmiotest.New(0x1000, 64)

	wo, err := mmio.NewSingleWO[uint8](0x1003, m)
	require.NoError(t, err)
	defer wo.Close()

	wo.Write(0xa5)
	assert.Equal(t, byte(0xa5), m.Bytes()[3])
}

func TestSingleIdentityMapper(t *testing.T) {
	// Identity maps an address to itself; back it with a real variable.
	var cell uint64
	addr := addrOf(&cell)

	a, err := mmio.NewSingle[uint64](addr, mmio.Identity{})
	require.NoError(t, err)
	a.Write(0x1122334455667788)
	assert.Equal(t, uint64(0x1122334455667788), cell)
	assert.Equal(t, cell, a.Read())
	a.Close()
}

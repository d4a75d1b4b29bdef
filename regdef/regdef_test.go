package regdef_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lprylli/mmio/regdef"
)

const spiDef = `
0 CEType
  16 CE write type
  1:0 CE Flash type
0x10 Ce0Ctl
  30:28 IO mode
  11:8 ClkSpeed
  2 CeStopActive
0x94 DataInputDelay
`

func TestParse(t *testing.T) {
	regs := regdef.Parse(spiDef)
	require.Len(t, regs, 3)

	assert.Equal(t, "CEType", regs[0].Name)
	assert.Equal(t, uintptr(0), regs[0].Off)
	require.Len(t, regs[0].Fields, 2)
	assert.Equal(t, "CE write type", regs[0].Fields[0].Name)
	assert.Equal(t, uint8(16), regs[0].Fields[0].FirstBit)
	assert.Equal(t, uint8(1), regs[0].Fields[0].NumBits)
	assert.Equal(t, uint8(0), regs[0].Fields[1].FirstBit)
	assert.Equal(t, uint8(2), regs[0].Fields[1].NumBits)

	assert.Equal(t, uintptr(0x10), regs[1].Off)
	require.Len(t, regs[1].Fields, 3)
	assert.Same(t, regs[1], regs[1].Fields[0].Parent)

	assert.Equal(t, "DataInputDelay", regs[2].Name)
	assert.Empty(t, regs[2].Fields)
}

func TestExtract(t *testing.T) {
	regs := regdef.Parse(spiDef)
	ctl := regs[1]

	val := uint32(0x5000_0204)
	assert.Equal(t, uint32(5), ctl.Fields[0].Extract(val)) // IO mode, bits 30:28
	assert.Equal(t, uint32(2), ctl.Fields[1].Extract(val)) // ClkSpeed, bits 11:8
	assert.Equal(t, uint32(1), ctl.Fields[2].Extract(val)) // CeStopActive, bit 2

	assert.Equal(t, uint32(1), regdef.Bit(val, 2))
	assert.Equal(t, uint32(0), regdef.Bit(val, 3))
	assert.Equal(t, uint32(0x204), regdef.Bits(val, 0, 12))
}

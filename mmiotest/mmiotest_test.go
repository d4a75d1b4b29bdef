package mmiotest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lprylli/mmio/mmiotest"
)

func TestMapRecordsAndTranslates(t *testing.T) {
	m := mmiotest.New(0x9000, 32)

	virt := m.Map(0x9008, 4)
	require.Equal(t, []mmiotest.Call{{Phys: 0x9008, Bytes: 4}}, m.Maps)
	assert.Equal(t, m.VirtBase()+8, virt)

	m.Unmap(0x9008, 4)
	assert.Equal(t, []mmiotest.Call{{Phys: 0x9008, Bytes: 4}}, m.Unmaps)
}

func TestMapOutsideWindowPanics(t *testing.T) {
	m := mmiotest.New(0x9000, 32)

	assert.Panics(t, func() { m.Map(0x8fff, 4) })
	assert.Panics(t, func() { m.Map(0x9000, 33) })
	assert.Panics(t, func() { m.Map(0x9000, 0) })
}

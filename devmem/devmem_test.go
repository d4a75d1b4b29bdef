//go:build linux

package devmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageSpan(t *testing.T) {
	page, off, length := pageSpan(0x1e780044, 4)
	assert.Equal(t, uintptr(0x1e780000), page)
	assert.Equal(t, uintptr(0x44), off)
	assert.Equal(t, uintptr(4096), length)

	// A range straddling a page boundary maps both pages.
	page, off, length = pageSpan(0xfff, 8)
	assert.Equal(t, uintptr(0), page)
	assert.Equal(t, uintptr(0xfff), off)
	assert.Equal(t, uintptr(8192), length)

	// Already page-aligned spans round only the length.
	page, off, length = pageSpan(0x2000, 4096)
	assert.Equal(t, uintptr(0x2000), page)
	assert.Equal(t, uintptr(0), off)
	assert.Equal(t, uintptr(4096), length)
}

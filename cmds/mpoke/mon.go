//go:build linux

package main

import (
	"fmt"
	"log"
	"time"

	"github.com/lprylli/mmio"
)

// monitor polls the 32-bit register at addr as fast as it can and
// prints every transition outside mask, with time since start and
// since the previous change.
func monitor(addr uintptr, m mmio.Mapper, mask uint32) {
	a, err := mmio.NewSingleRO[uint32](addr, m)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	start := time.Now()
	var old uint32
	valid := false
	last := time.Duration(0)
	for {
		val := a.Read()
		if valid && val&^mask != old&^mask {
			t := time.Since(start)
			fmt.Printf("%12v +%-12v %#08x -> %#08x diff=%#08x\n",
				t.Round(time.Microsecond), (t - last).Round(time.Microsecond),
				old, val, old^val)
			last = t
		}
		old, valid = val, true
	}
}

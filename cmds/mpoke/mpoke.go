//go:build linux

// mpoke reads, writes, dumps, and monitors physical memory through the
// mmio accessor library.
//
//	mpoke [options] <memaddr>[.<width>] [ <newval> ]
//
// Width is one of b/w/l/q (or 1/2/4/8) for 8/16/32/64 bit access and
// defaults to l. With -n, mpoke dumps n 32-bit words starting at
// memaddr instead; with -mon it polls a 32-bit register and prints
// transitions.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lprylli/mmio"
	"github.com/lprylli/mmio/devmem"
	"github.com/lprylli/mmio/hostmem"
	"github.com/lprylli/mmio/regdef"
)

func usage() {
	log.Printf("usage: mpoke [options] <memaddr>[.<width>] [ <newval> ]\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func peek[T uint8 | uint16 | uint32 | uint64](addr uintptr, m mmio.Mapper) uint64 {
	a, err := mmio.NewSingleRO[T](addr, m)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()
	return uint64(a.Read())
}

func poke[T uint8 | uint16 | uint32 | uint64](addr uintptr, m mmio.Mapper, val uint64) {
	a, err := mmio.NewSingleWO[T](addr, m)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()
	a.Write(T(val))
}

func dump(addr uintptr, n int, m mmio.Mapper, regs []*regdef.Reg) {
	a, err := mmio.NewArrayRO[uint32](addr, n, m)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()
	for i := 0; i < a.Len(); i++ {
		off := uintptr(i) * 4
		val := a.ReadAt(i)
		fmt.Printf("%#08x = %#08x\n", addr+off, val)
		for _, r := range regs {
			if r.Off != off {
				continue
			}
			for _, f := range r.Fields {
				fmt.Printf("\t%s.%s: %#x\n", r.Name, f.Name, f.Extract(val))
			}
		}
	}
}

func main() {
	var dev string
	var host bool
	var n int
	var regsFile string
	var mon bool
	var mask uint64

	flag.StringVar(&dev, "devmem", "/dev/mem", "mem device to use")
	flag.BoolVar(&host, "host", false, "map through periph.io host/pmem instead of the mem device")
	flag.IntVar(&n, "n", 0, "dump n 32-bit words starting at memaddr")
	flag.StringVar(&regsFile, "regs", "", "register description file for labeling dumps")
	flag.BoolVar(&mon, "mon", false, "poll a 32-bit register and print changes")
	flag.Uint64Var(&mask, "mask", 0, "bits to ignore in -mon mode")
	flag.Parse()

	var mapper mmio.Mapper
	if host {
		mapper = hostmem.New()
	} else {
		mapper = devmem.NewFile(dev)
	}

	if len(flag.Args()) < 1 || len(flag.Args()) > 2 {
		usage()
	}
	locs := strings.Split(flag.Arg(0), ".")
	addr64, err := strconv.ParseUint(locs[0], 0, 64)
	if err != nil {
		log.Fatalf("cannot parse address %q", locs[0])
	}
	addr := uintptr(addr64)

	if n > 0 {
		var regs []*regdef.Reg
		if regsFile != "" {
			def, err := os.ReadFile(regsFile)
			if err != nil {
				log.Fatal(err)
			}
			regs = regdef.Parse(string(def))
		}
		dump(addr, n, mapper, regs)
		return
	}
	if mon {
		monitor(addr, mapper, uint32(mask))
		return
	}

	mod := byte('l')
	if len(locs) > 1 {
		if len(locs[1]) != 1 {
			usage()
		}
		mod = locs[1][0]
	}

	if len(flag.Args()) == 2 {
		val, err := strconv.ParseUint(flag.Arg(1), 0, 64)
		if err != nil {
			log.Fatalf("cannot parse value %q", flag.Arg(1))
		}
		switch mod {
		case '1', 'b', 'B':
			poke[uint8](addr, mapper, val)
		case '2', 'w', 'W':
			poke[uint16](addr, mapper, val)
		case '4', 'l', 'L':
			poke[uint32](addr, mapper, val)
		case '8', 'q', 'Q':
			poke[uint64](addr, mapper, val)
		default:
			usage()
		}
		fmt.Printf("%#08x.%c := %#x\n", addr, mod, val)
		return
	}

	var res uint64
	f := "%#x"
	switch mod {
	case '1', 'b', 'B':
		res = peek[uint8](addr, mapper)
	case '2', 'w', 'W':
		res = peek[uint16](addr, mapper)
	case '4', 'l', 'L':
		res = peek[uint32](addr, mapper)
		f = "%#08x"
	case '8', 'q', 'Q':
		res = peek[uint64](addr, mapper)
	default:
		usage()
	}
	fmt.Printf("%#08x.%c = "+f+"\n", addr, mod, res)
}

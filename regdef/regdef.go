// Package regdef parses textual register descriptions:
//
//	0x10 Ce0Ctl
//	  30:28 IO mode
//	  12 CmdMerge
//	0x94 DataInputDelay
//
// A register line is "offset name"; indented lines under it are fields,
// "hi:lo name" for a bit range or "bit name" for a single bit. Malformed
// descriptions are fatal, these are compiled-in tables.
package regdef

import (
	"log"
	"strconv"
	"strings"
)

type Reg struct {
	Name   string
	Off    uintptr
	Fields []*Field
}

type Field struct {
	Parent            *Reg
	Name              string
	FirstBit, NumBits uint8
}

// Extract returns the field's bits of val, shifted down.
func (f *Field) Extract(val uint32) uint32 {
	return Bits(val, f.FirstBit, f.NumBits)
}

// Bit returns bit pos of val.
func Bit(val uint32, pos uint8) uint32 {
	return (val >> pos) & 1
}

// Bits returns the num-bit field of val starting at pos.
func Bits(val uint32, pos, num uint8) uint32 {
	return (val >> pos) & ((1 << num) - 1)
}

func parseField(r *Reg, line string, cols []string) {
	if r == nil || len(cols) < 2 {
		log.Fatalf("regdef: cannot parse field line: %q", line)
	}
	f := &Field{Parent: r, Name: strings.Join(cols[1:], " ")}
	bits := strings.Split(cols[0], ":")
	hi, err := strconv.ParseUint(bits[0], 10, 8)
	if err != nil {
		log.Fatalf("regdef: cannot parse field line: %q", line)
	}
	switch len(bits) {
	case 1:
		f.FirstBit = uint8(hi)
		f.NumBits = 1
	case 2:
		lo, err := strconv.ParseUint(bits[1], 10, 8)
		if err != nil || hi <= lo {
			log.Fatalf("regdef: cannot parse field line: %q", line)
		}
		f.FirstBit = uint8(lo)
		f.NumBits = uint8(hi + 1 - lo)
	default:
		log.Fatalf("regdef: cannot parse field line: %q", line)
	}
	r.Fields = append(r.Fields, f)
}

func parseReg(line string, cols []string) *Reg {
	if len(cols) < 2 {
		log.Fatalf("regdef: cannot parse reg line: %q", line)
	}
	off, err := strconv.ParseUint(cols[0], 0, 32)
	if err != nil {
		log.Fatalf("regdef: cannot parse offset in reg line: %q", line)
	}
	return &Reg{Name: strings.Join(cols[1:], " "), Off: uintptr(off)}
}

// Parse parses a full description. Indentation decides whether a line
// is a register or one of its fields.
func Parse(def string) []*Reg {
	var cur *Reg
	var regs []*Reg
	for _, line := range strings.Split(def, "\n") {
		cols := strings.Fields(line)
		if len(cols) == 0 {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			parseField(cur, line, cols)
		} else {
			cur = parseReg(line, cols)
			regs = append(regs, cur)
		}
	}
	return regs
}

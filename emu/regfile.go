// Package emu provides the architectural state and the non-pipelined
// reference emulator for the MIPS32 simulator.
package emu

// RegFile represents the MIPS32 integer register file.
// It contains 32 signed 32-bit registers; register 0 ($zero) is
// hardwired to zero and writes to it are discarded.
type RegFile struct {
	r [32]int32
}

// Read returns the value of a register.
func (f *RegFile) Read(reg uint8) int32 {
	return f.r[reg]
}

// Write sets a register value. Writes to register 0 are discarded.
func (f *RegFile) Write(reg uint8, value int32) {
	if reg == 0 {
		return
	}
	f.r[reg] = value
}

// Snapshot returns a copy of all 32 register values, in index order.
func (f *RegFile) Snapshot() [32]int32 {
	return f.r
}

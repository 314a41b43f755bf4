// Package trace renders the simulator output stream: the per-cycle
// register and memory records and the end-of-run report. The formats
// are a wire contract consumed by downstream graders, so every byte
// matters; keep fmt verbs and separators exactly as they are.
package trace

import (
	"fmt"
	"io"

	"github.com/archsim/mipsim/emu"
	"github.com/archsim/mipsim/insts"
)

// Emitter writes simulation trace records.
type Emitter struct {
	w    io.Writer
	opts *Options
}

// NewEmitter creates an Emitter writing to w with the given options.
func NewEmitter(w io.Writer, opts *Options) *Emitter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Emitter{w: w, opts: opts}
}

// Cycle emits one pipelined-mode cycle record: the cycle header, the 32
// register values in lowercase hex, and the cumulative modified-memory
// line.
func (e *Emitter) Cycle(cycle uint64, regs [32]int32, memLog []emu.MemWrite) {
	if !e.opts.PerCycle {
		return
	}
	e.registerLines(cycle, regs)
	fmt.Fprintf(e.w, "%d ", len(memLog))
	for _, w := range memLog {
		fmt.Fprintf(e.w, "%d %d ", w.Addr, w.Value)
	}
	fmt.Fprintln(e.w)
}

// CycleRegisters emits one reference-emulation cycle record, which has
// no memory line.
func (e *Emitter) CycleRegisters(cycle uint64, regs [32]int32) {
	if !e.opts.PerCycle {
		return
	}
	e.registerLines(cycle, regs)
}

func (e *Emitter) registerLines(cycle uint64, regs [32]int32) {
	fmt.Fprintf(e.w, "Cycle number: %d\n", cycle)
	for _, r := range regs {
		// Negative values print as their two's-complement bit pattern.
		fmt.Fprintf(e.w, "%x ", uint32(r))
	}
	fmt.Fprintln(e.w)
}

// Report emits the end-of-run summary: the fault diagnostic if the run
// aborted, the non-zero data memory listing, the total cycle count, and
// the per-instruction execution counts against the retained source
// tokens. Diagnostics go to errw; everything else goes to the trace
// writer.
func (e *Emitter) Report(errw io.Writer, code insts.ExitCode, source [][]string, faultPC int, mem *emu.Memory, cycles uint64, counts []uint64) {
	if !e.opts.Report {
		return
	}
	fmt.Fprintln(e.w)
	if code != insts.Success {
		fmt.Fprintln(errw, code.Message())
		if faultPC >= 0 && faultPC < len(source) {
			fmt.Fprintln(errw, "Error encountered at:")
			for _, tok := range source[faultPC] {
				fmt.Fprintf(errw, "%s ", tok)
			}
			fmt.Fprintln(errw)
		}
	}

	fmt.Fprintln(e.w, "\nFollowing are the non-zero data values:")
	for _, w := range mem.NonZero() {
		fmt.Fprintf(e.w, "%d-%d: %x\n", 4*w.Index, 4*w.Index+3, uint32(w.Value))
	}

	fmt.Fprintf(e.w, "\nTotal number of cycles: %d\n", cycles)
	fmt.Fprintln(e.w, "Count of instructions executed:")
	for i, row := range source {
		fmt.Fprintf(e.w, "%d times:\t", counts[i])
		for _, tok := range row {
			fmt.Fprintf(e.w, "%s ", tok)
		}
		fmt.Fprintln(e.w)
	}
}

package pipeline

import (
	"github.com/archsim/mipsim/emu"
	"github.com/archsim/mipsim/insts"
)

// Statistics holds pipeline performance statistics.
type Statistics struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions that completed decode,
	// including jumps, which are resolved there.
	Instructions uint64
	// Stalls is the number of cycles decode spent stalled on a hazard.
	Stalls uint64
	// Branches is the number of conditional branches issued.
	Branches uint64
	// BranchesTaken is the number of branches resolved taken.
	BranchesTaken uint64
	// Jumps is the number of jumps resolved at decode.
	Jumps uint64
	// MemWrites is the number of stores that reached memory.
	MemWrites uint64
}

// CPI returns the cycles per instruction.
func (s Statistics) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// CycleHook observes the architectural state at the end of each cycle:
// the cycle number, the register file snapshot, and the cumulative
// modified-memory log.
type CycleHook func(cycle uint64, regs [32]int32, memLog []emu.MemWrite)

// PipelineOption is a functional option for configuring the Pipeline.
type PipelineOption func(*Pipeline)

// WithCycleHook installs a per-cycle observer. The trace emitter hangs
// off this.
func WithCycleHook(h CycleHook) PipelineOption {
	return func(p *Pipeline) {
		p.onCycle = h
	}
}

// Pipeline implements the classic five-stage in-order datapath:
// Fetch (IF) -> Decode (ID) -> Execute (EX) -> Memory (MEM) ->
// Writeback (WB). There is no forwarding network; RAW hazards stall
// decode until the producing write retires. Branches freeze fetch at
// decode and resolve at MEM; jumps redirect fetch at decode.
type Pipeline struct {
	program []insts.Instruction

	// Pipeline registers.
	ifid  IFIDRegister
	idex  IDEXRegister
	exmem EXMEMRegister
	memwb MEMWBRegister

	// Hazard detection.
	hazardUnit *HazardUnit

	// Shared architectural state.
	regFile *emu.RegFile
	memory  *emu.Memory

	// Program counters. pcNext is the precomputed successor of the last
	// fetched instruction.
	pcCurr int
	pcNext int

	// Fetch redirection. pcSrc is asserted by MEM when a branch resolves
	// taken; jumpPending is asserted by ID for j.
	pcSrc       bool
	pcTarget    int
	jumpPending bool
	jumpTarget  int

	// haltPC freezes fetch while a branch is in flight; stalled is set
	// by a hazard stall for the current cycle only.
	haltPC  bool
	stalled bool

	// memLog is the append-only modified-memory log.
	memLog []emu.MemWrite

	// counts is the per-instruction fetch count.
	counts []uint64

	onCycle CycleHook
	stats   Statistics
}

// NewPipeline creates a five-stage pipeline executing program against
// the given register file and data memory.
func NewPipeline(program []insts.Instruction, regFile *emu.RegFile, memory *emu.Memory, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		program:    program,
		hazardUnit: NewHazardUnit(),
		regFile:    regFile,
		memory:     memory,
		counts:     make([]uint64, len(program)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PC returns the current program counter, the index of the instruction
// most recently entering fetch.
func (p *Pipeline) PC() int {
	return p.pcCurr
}

// Stats returns the accumulated statistics.
func (p *Pipeline) Stats() Statistics {
	return p.stats
}

// Counts returns the per-instruction execution counts.
func (p *Pipeline) Counts() []uint64 {
	return p.counts
}

// MemLog returns the cumulative modified-memory log.
func (p *Pipeline) MemLog() []emu.MemWrite {
	return p.memLog
}

// HazardVector returns the per-register write-pending bits.
func (p *Pipeline) HazardVector() [32]bool {
	return p.hazardUnit.Vector()
}

// IFID returns the IF/ID pipeline register.
func (p *Pipeline) IFID() *IFIDRegister {
	return &p.ifid
}

// IDEX returns the ID/EX pipeline register.
func (p *Pipeline) IDEX() *IDEXRegister {
	return &p.idex
}

// EXMEM returns the EX/MEM pipeline register.
func (p *Pipeline) EXMEM() *EXMEMRegister {
	return &p.exmem
}

// MEMWB returns the MEM/WB pipeline register.
func (p *Pipeline) MEMWB() *MEMWBRegister {
	return &p.memwb
}

// Drained reports whether every pipeline register is empty. Together
// with fetch being unable to make progress this is the termination
// criterion: a drained pipeline after a completed cycle has no work
// left anywhere.
func (p *Pipeline) Drained() bool {
	return !p.ifid.Valid && !p.idex.Valid && !p.exmem.Valid && !p.memwb.Valid
}

// Tick advances the pipeline by one cycle. Stages run in reverse order
// so each reads its input latch before the upstream stage overwrites
// it, giving single-cycle propagation without double-buffering.
//
// A fault aborts the cycle immediately; the in-flight instructions are
// not completed and no trace record is emitted for the partial cycle.
func (p *Pipeline) Tick() *insts.Error {
	p.stats.Cycles++
	p.stalled = false

	p.writeback()
	if err := p.memAccess(); err != nil {
		return err
	}
	p.execute()
	if err := p.decode(); err != nil {
		return err
	}
	p.fetch()

	if p.onCycle != nil {
		p.onCycle(p.stats.Cycles, p.regFile.Snapshot(), p.memLog)
	}
	return nil
}

// Run executes the program until the pipeline drains. It returns nil on
// success or the fault that aborted the run.
func (p *Pipeline) Run() *insts.Error {
	if len(p.program) >= emu.NumWords {
		return insts.NewError(insts.MemoryError, "")
	}

	for {
		if err := p.Tick(); err != nil {
			return err
		}
		if p.Drained() {
			return nil
		}
	}
}

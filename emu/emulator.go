package emu

import (
	"github.com/archsim/mipsim/insts"
)

// CycleHook observes the architectural register state after each
// completed cycle. The trace emitter hangs off this.
type CycleHook func(cycle uint64, regs [32]int32)

// Emulator executes MIPS32 instructions sequentially, one instruction
// per cycle, with no pipelining. It is the reference model the timing
// simulator is validated against.
type Emulator struct {
	program []insts.Instruction
	regFile *RegFile
	memory  *Memory

	pc     int
	pcNext int

	cycles uint64
	counts []uint64

	onCycle CycleHook
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithCycleHook installs a per-cycle observer.
func WithCycleHook(h CycleHook) EmulatorOption {
	return func(e *Emulator) {
		e.onCycle = h
	}
}

// NewEmulator creates a reference emulator for the given program.
func NewEmulator(program []insts.Instruction, opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		program: program,
		regFile: &RegFile{},
		memory:  NewMemory(),
		counts:  make([]uint64, len(program)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegFile returns the architectural register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the data memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Cycles returns the number of cycles executed so far.
func (e *Emulator) Cycles() uint64 {
	return e.cycles
}

// Counts returns the per-instruction execution counts.
func (e *Emulator) Counts() []uint64 {
	return e.counts
}

// PC returns the current program counter, the index of the instruction
// being executed (or faulted on).
func (e *Emulator) PC() int {
	return e.pc
}

// Run executes the program to completion. It returns nil on success or
// the fault that aborted the run.
func (e *Emulator) Run() *insts.Error {
	if len(e.program) >= NumWords {
		return insts.NewError(insts.MemoryError, "")
	}

	for e.pc < len(e.program) {
		e.cycles++
		if err := e.step(); err != nil {
			return err
		}
		e.counts[e.pc]++
		e.pc = e.pcNext
		if e.onCycle != nil {
			e.onCycle(e.cycles, e.regFile.Snapshot())
		}
	}
	return nil
}

// step executes the instruction at the current PC and sets pcNext.
func (e *Emulator) step() *insts.Error {
	inst := &e.program[e.pc]
	if inst.Err != nil {
		return inst.Err
	}

	e.pcNext = e.pc + 1
	switch inst.Op {
	case insts.OpAdd:
		e.regFile.Write(inst.Rd, e.regFile.Read(inst.Rs)+e.regFile.Read(inst.Rt))
	case insts.OpSub:
		e.regFile.Write(inst.Rd, e.regFile.Read(inst.Rs)-e.regFile.Read(inst.Rt))
	case insts.OpMul:
		e.regFile.Write(inst.Rd, e.regFile.Read(inst.Rs)*e.regFile.Read(inst.Rt))
	case insts.OpSlt:
		var v int32
		if e.regFile.Read(inst.Rs) < e.regFile.Read(inst.Rt) {
			v = 1
		}
		e.regFile.Write(inst.Rd, v)
	case insts.OpAddi:
		e.regFile.Write(inst.Rt, e.regFile.Read(inst.Rs)+inst.Imm)
	case insts.OpLw:
		word, err := e.locate(inst)
		if err != nil {
			return err
		}
		e.regFile.Write(inst.Rt, e.memory.LoadWord(word))
	case insts.OpSw:
		word, err := e.locate(inst)
		if err != nil {
			return err
		}
		e.memory.StoreWord(word, e.regFile.Read(inst.Rt))
	case insts.OpBeq:
		if e.regFile.Read(inst.Rs) == e.regFile.Read(inst.Rt) {
			e.pcNext = inst.Target
		}
	case insts.OpBne:
		if e.regFile.Read(inst.Rs) != e.regFile.Read(inst.Rt) {
			e.pcNext = inst.Target
		}
	case insts.OpJ:
		e.pcNext = inst.Target
	default:
		return insts.NewError(insts.SyntaxError, "")
	}
	return nil
}

func (e *Emulator) locate(inst *insts.Instruction) (int, *insts.Error) {
	byteAddr := int64(e.regFile.Read(inst.Rs)) + int64(inst.Imm)
	return e.memory.Locate(byteAddr, len(e.program))
}

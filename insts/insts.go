// Package insts provides MIPS32 instruction definitions and decoding.
//
// This package implements decoding of tokenized MIPS32 assembly into
// structured instruction representations. It supports:
//   - R-type arithmetic: ADD, SUB, MUL, SLT
//   - Immediate arithmetic: ADDI
//   - Memory access: LW, SW with offset(base) or absolute operands
//   - Control flow: BEQ, BNE, J with label targets
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode([]string{"addi", "$t0", "$zero", "5"}, labels)
//	fmt.Printf("Op: %v, Rt: %d, Rs: %d, Imm: %d\n", inst.Op, inst.Rt, inst.Rs, inst.Imm)
package insts

// Op represents a MIPS32 opcode.
type Op uint8

// MIPS32 opcodes.
const (
	OpInvalid Op = iota
	OpAdd
	OpSub
	OpMul
	OpSlt
	OpAddi
	OpLw
	OpSw
	OpBeq
	OpBne
	OpJ
)

var opNames = map[Op]string{
	OpInvalid: "invalid",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpSlt:     "slt",
	OpAddi:    "addi",
	OpLw:      "lw",
	OpSw:      "sw",
	OpBeq:     "beq",
	OpBne:     "bne",
	OpJ:       "j",
}

// String returns the assembly mnemonic for the opcode.
func (o Op) String() string {
	return opNames[o]
}

// UnresolvedTarget marks a branch or jump whose label did not resolve at
// assembly time. The instruction still assembles; the error surfaces when
// it reaches the decode stage.
const UnresolvedTarget = -1

// Instruction represents a decoded MIPS32 instruction.
//
// Register fields hold canonical indices 0..31. Which fields are
// meaningful depends on Op:
//   - R-type (add/sub/mul/slt): Rd, Rs, Rt
//   - addi: Rt, Rs, Imm
//   - lw/sw: Rt, Rs (base), Imm (byte offset)
//   - beq/bne: Rs, Rt, Target
//   - j: Target
type Instruction struct {
	Op Op

	// Register operands.
	Rd uint8
	Rs uint8
	Rt uint8

	// Imm is the immediate operand or the byte offset for lw/sw.
	Imm int32

	// Target is the resolved instruction index for branches and jumps,
	// or UnresolvedTarget when the label was undefined or poisoned.
	Target int

	// Label is the referenced label name, kept for diagnostics.
	Label string

	// Err records a decode failure (bad register, bad label, malformed
	// token). A non-nil Err makes the instruction a poison value: it may
	// sit in the program but faults the run when it reaches decode.
	Err *Error
}

// WritesRegister reports whether the instruction architecturally writes a
// register, and which one. Stores return false even though they occupy a
// destination slot for hazard tracking.
func (i *Instruction) WritesRegister() (uint8, bool) {
	switch i.Op {
	case OpAdd, OpSub, OpMul, OpSlt:
		return i.Rd, true
	case OpAddi, OpLw:
		return i.Rt, true
	default:
		return 0, false
	}
}

// SourceRegisters returns the registers the instruction reads at decode.
// The conservative hazard policy for sw checks only the base register,
// matching the reference datapath.
func (i *Instruction) SourceRegisters() []uint8 {
	switch i.Op {
	case OpAdd, OpSub, OpMul, OpSlt, OpBeq, OpBne:
		return []uint8{i.Rs, i.Rt}
	case OpAddi, OpLw, OpSw:
		return []uint8{i.Rs}
	default:
		return nil
	}
}

// Package pipeline provides the five-stage pipeline implementation for
// cycle-accurate MIPS32 timing simulation.
package pipeline

import "github.com/archsim/mipsim/insts"

// BranchKind identifies the comparison a branch latch carries.
type BranchKind uint8

const (
	// BranchNone means the latch holds no branch.
	BranchNone BranchKind = iota
	// BranchEQ is a beq comparison.
	BranchEQ
	// BranchNE is a bne comparison.
	BranchNE
)

// IFIDRegister holds state between Fetch and Decode stages.
type IFIDRegister struct {
	// Valid indicates if this pipeline register contains valid data.
	Valid bool

	// PC is the instruction index of the fetched instruction.
	PC int
}

// Clear resets the IF/ID register to empty state.
func (r *IFIDRegister) Clear() {
	*r = IFIDRegister{}
}

// IDEXRegister holds state between Decode and Execute stages.
type IDEXRegister struct {
	// Valid indicates if this pipeline register contains valid data.
	Valid bool

	// Op is the decoded opcode.
	Op insts.Op

	// PC is the instruction index, needed for branch target arithmetic.
	PC int

	// Register values read from the register file.
	Data1 int32
	Data2 int32

	// Imm is the immediate operand; for branches it is the precomputed
	// offset relative to PC+1.
	Imm int32

	// Dest is the destination register slot. For sw it names the store
	// source register, kept for the conservative hazard policy.
	Dest    uint8
	HasDest bool

	// Control signals.
	RegWrite bool
	MemRead  bool
	MemWrite bool
	MemToReg bool
	ALUSrc   bool
	Branch   BranchKind
}

// Clear resets the ID/EX register to empty state.
func (r *IDEXRegister) Clear() {
	*r = IDEXRegister{}
}

// EXMEMRegister holds state between Execute and Memory stages.
type EXMEMRegister struct {
	// Valid indicates if this pipeline register contains valid data.
	Valid bool

	// Op is the decoded opcode.
	Op insts.Op

	// ALUResult is the ALU output: the computed value for arithmetic,
	// the byte address for lw/sw.
	ALUResult int32

	// Branch resolution, captured at EX.
	Branch       BranchKind
	Zero         bool
	BranchTarget int

	// Destination slot and control signals forwarded to MEM/WB.
	Dest     uint8
	HasDest  bool
	RegWrite bool
	MemRead  bool
	MemWrite bool
	MemToReg bool
}

// Clear resets the EX/MEM register to empty state.
func (r *EXMEMRegister) Clear() {
	*r = EXMEMRegister{}
}

// MEMWBRegister holds state between Memory and Writeback stages.
type MEMWBRegister struct {
	// Valid indicates if this pipeline register contains valid data.
	Valid bool

	// ALUResult is the value written back when MemToReg is clear.
	ALUResult int32

	// MemData is the value loaded from memory, written back when
	// MemToReg is set.
	MemData int32

	// Destination slot and control signals consumed by WB.
	Dest     uint8
	HasDest  bool
	RegWrite bool
	MemToReg bool
}

// Clear resets the MEM/WB register to empty state.
func (r *MEMWBRegister) Clear() {
	*r = MEMWBRegister{}
}

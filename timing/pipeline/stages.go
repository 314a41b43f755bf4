package pipeline

import (
	"github.com/archsim/mipsim/emu"
	"github.com/archsim/mipsim/insts"
)

// writeback retires the MEM/WB latch: commit the register write if any,
// then release the hazard slot the instruction claimed at decode.
func (p *Pipeline) writeback() {
	if !p.memwb.Valid {
		return
	}
	r := &p.memwb

	if r.HasDest && r.Dest != 0 {
		if r.RegWrite {
			value := r.ALUResult
			if r.MemToReg {
				value = r.MemData
			}
			p.regFile.Write(r.Dest, value)
		}
		p.hazardUnit.ClearPending(r.Dest)
	}
	r.Clear()
}

// memAccess resolves branches and performs data memory traffic.
//
// Branch resolution lives here: a taken branch asserts pcSrc with the
// target captured at EX, and either way the fetch freeze ends. Loads
// and stores validate the EX byte address and convert it to a word
// index before touching memory; each store is appended to the
// modified-memory log.
func (p *Pipeline) memAccess() *insts.Error {
	if !p.exmem.Valid {
		return nil
	}
	r := &p.exmem

	if r.Branch != BranchNone {
		p.haltPC = false
		if r.Zero {
			p.pcSrc = true
			p.pcTarget = r.BranchTarget
			p.stats.BranchesTaken++
		}
		r.Clear()
		return nil
	}

	out := MEMWBRegister{
		Valid:     true,
		ALUResult: r.ALUResult,
		Dest:      r.Dest,
		HasDest:   r.HasDest,
		RegWrite:  r.RegWrite,
		MemToReg:  r.MemToReg,
	}

	if r.MemRead || r.MemWrite {
		word, err := p.memory.Locate(int64(r.ALUResult), len(p.program))
		if err != nil {
			return err
		}
		if r.MemRead {
			out.MemData = p.memory.LoadWord(word)
		}
		if r.MemWrite {
			value := p.regFile.Read(r.Dest)
			p.memory.StoreWord(word, value)
			p.memLog = append(p.memLog, emu.MemWrite{Addr: word, Value: value})
			p.stats.MemWrites++
		}
	}

	p.memwb = out
	r.Clear()
	return nil
}

// execute runs the ALU over the ID/EX latch. The second operand comes
// from the register read or the immediate, selected by ALUSrc. Branch
// comparisons compute the zero flag and the absolute target from the
// offset decode folded in.
func (p *Pipeline) execute() {
	if !p.idex.Valid {
		return
	}
	r := &p.idex

	out := EXMEMRegister{
		Valid:    true,
		Op:       r.Op,
		Dest:     r.Dest,
		HasDest:  r.HasDest,
		RegWrite: r.RegWrite,
		MemRead:  r.MemRead,
		MemWrite: r.MemWrite,
		MemToReg: r.MemToReg,
		Branch:   r.Branch,
	}

	in1 := r.Data1
	in2 := r.Data2
	if r.ALUSrc {
		in2 = r.Imm
	}

	switch r.Op {
	case insts.OpAdd, insts.OpAddi, insts.OpLw, insts.OpSw:
		out.ALUResult = in1 + in2
	case insts.OpSub:
		out.ALUResult = in1 - in2
	case insts.OpMul:
		out.ALUResult = in1 * in2
	case insts.OpSlt:
		if in1 < in2 {
			out.ALUResult = 1
		}
	case insts.OpBeq:
		out.BranchTarget = r.PC + 1 + int(r.Imm)
		out.Zero = in1 == in2
	case insts.OpBne:
		out.BranchTarget = r.PC + 1 + int(r.Imm)
		out.Zero = in1 != in2
	}

	p.exmem = out
	r.Clear()
}

// decode pops the IF/ID latch, checks the write-pending vector for RAW
// hazards, reads the register file, and fills the ID/EX latch with the
// control set for the opcode. A hazard leaves IF/ID untouched and the
// bubble EX already consumed stands. Jumps never travel further down
// the pipe: they redirect fetch in the same cycle.
func (p *Pipeline) decode() *insts.Error {
	if !p.ifid.Valid {
		return nil
	}
	idx := p.ifid.PC
	inst := &p.program[idx]

	if inst.Err != nil {
		return inst.Err
	}

	if inst.Op == insts.OpJ {
		p.jumpPending = true
		p.jumpTarget = inst.Target
		p.stats.Instructions++
		p.stats.Jumps++
		p.ifid.Clear()
		return nil
	}

	if p.hazardUnit.AnyPending(inst.SourceRegisters()) {
		p.stalled = true
		p.stats.Stalls++
		return nil
	}

	out := IDEXRegister{Valid: true, Op: inst.Op, PC: idx}
	switch inst.Op {
	case insts.OpAdd, insts.OpSub, insts.OpMul, insts.OpSlt:
		out.Data1 = p.regFile.Read(inst.Rs)
		out.Data2 = p.regFile.Read(inst.Rt)
		out.Dest = inst.Rd
		out.HasDest = true
		out.RegWrite = true
	case insts.OpAddi:
		out.Data1 = p.regFile.Read(inst.Rs)
		out.Imm = inst.Imm
		out.Dest = inst.Rt
		out.HasDest = true
		out.RegWrite = true
		out.ALUSrc = true
	case insts.OpLw:
		out.Data1 = p.regFile.Read(inst.Rs)
		out.Imm = inst.Imm
		out.Dest = inst.Rt
		out.HasDest = true
		out.RegWrite = true
		out.MemRead = true
		out.MemToReg = true
		out.ALUSrc = true
	case insts.OpSw:
		// The store claims a hazard slot for rt even though it writes no
		// register; readers of rt wait until the store retires.
		out.Data1 = p.regFile.Read(inst.Rs)
		out.Imm = inst.Imm
		out.Dest = inst.Rt
		out.HasDest = true
		out.MemWrite = true
		out.ALUSrc = true
	case insts.OpBeq, insts.OpBne:
		out.Data1 = p.regFile.Read(inst.Rs)
		out.Data2 = p.regFile.Read(inst.Rt)
		out.Imm = int32(inst.Target - (idx + 1))
		if inst.Op == insts.OpBeq {
			out.Branch = BranchEQ
		} else {
			out.Branch = BranchNE
		}
		p.haltPC = true
		p.stats.Branches++
	}

	if out.HasDest {
		p.hazardUnit.SetPending(out.Dest)
	}

	p.stats.Instructions++
	p.idex = out
	p.ifid.Clear()
	return nil
}

// fetch advances the program counter and pushes the next instruction
// index into IF/ID. A taken branch (pcSrc) or a jump redirects the PC;
// a stall or an in-flight branch freezes fetch entirely.
func (p *Pipeline) fetch() {
	switch {
	case p.pcSrc:
		p.pcCurr = p.pcTarget
		p.pcSrc = false
	case p.jumpPending:
		p.pcCurr = p.jumpTarget
		p.jumpPending = false
	case !p.haltPC && !p.stalled:
		p.pcCurr = p.pcNext
	}

	if p.haltPC || p.stalled || p.pcCurr >= len(p.program) {
		return
	}
	p.ifid = IFIDRegister{Valid: true, PC: p.pcCurr}
	p.pcNext = p.pcCurr + 1
	p.counts[p.pcCurr]++
}

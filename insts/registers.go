package insts

import "strconv"

// registerMap maps register names (numeric and ABI aliases) to canonical
// indices 0..31.
var registerMap = buildRegisterMap()

func buildRegisterMap() map[string]uint8 {
	m := make(map[string]uint8, 64)
	for i := 0; i < 32; i++ {
		m["$"+strconv.Itoa(i)] = uint8(i)
	}
	m["$zero"] = 0
	m["$at"] = 1
	m["$v0"] = 2
	m["$v1"] = 3
	for i := 0; i < 4; i++ {
		m["$a"+strconv.Itoa(i)] = uint8(i + 4)
	}
	for i := 0; i < 8; i++ {
		m["$t"+strconv.Itoa(i)] = uint8(i + 8)
		m["$s"+strconv.Itoa(i)] = uint8(i + 16)
	}
	m["$t8"] = 24
	m["$t9"] = 25
	m["$k0"] = 26
	m["$k1"] = 27
	m["$gp"] = 28
	m["$sp"] = 29
	m["$s8"] = 30
	m["$ra"] = 31
	return m
}

// RegisterIndex resolves a register name to its canonical index.
func RegisterIndex(name string) (uint8, bool) {
	idx, ok := registerMap[name]
	return idx, ok
}

// IsOpcode reports whether the token is a recognized opcode mnemonic.
// Label names must not shadow mnemonics.
func IsOpcode(token string) bool {
	_, ok := opcodeMap[token]
	return ok
}

var opcodeMap = map[string]Op{
	"add":  OpAdd,
	"sub":  OpSub,
	"mul":  OpMul,
	"slt":  OpSlt,
	"addi": OpAddi,
	"lw":   OpLw,
	"sw":   OpSw,
	"beq":  OpBeq,
	"bne":  OpBne,
	"j":    OpJ,
}

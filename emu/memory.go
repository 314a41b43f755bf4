package emu

import (
	"strconv"

	"github.com/archsim/mipsim/insts"
)

// MemoryBytes is the byte size of data memory.
const MemoryBytes = 1 << 20

// NumWords is the number of 32-bit words in data memory.
const NumWords = MemoryBytes >> 2

// Memory is the word-addressed data memory, initially zero.
type Memory struct {
	words [NumWords]int32
}

// NewMemory creates a zeroed data memory.
func NewMemory() *Memory {
	return &Memory{}
}

// LoadWord returns the word at the given word index.
func (m *Memory) LoadWord(index int) int32 {
	return m.words[index]
}

// StoreWord sets the word at the given word index.
func (m *Memory) StoreWord(index int, value int32) {
	m.words[index] = value
}

// Locate validates a byte address against the access rules and converts
// it to a word index. The address must be word-aligned, must not fall in
// the region reserved for the program's own instructions, and must lie
// below the memory limit.
func (m *Memory) Locate(byteAddr int64, reservedInstructions int) (int, *insts.Error) {
	if byteAddr%4 != 0 || byteAddr < int64(4*reservedInstructions) || byteAddr >= MemoryBytes {
		return 0, insts.NewError(insts.InvalidAddress, strconv.FormatInt(byteAddr, 10))
	}
	return int(byteAddr / 4), nil
}

// Word is a non-zero data word reported at end of run.
type Word struct {
	// Index is the word index; the byte range is [4*Index, 4*Index+3].
	Index int
	// Value is the stored word.
	Value int32
}

// NonZero returns all non-zero data words in address order.
func (m *Memory) NonZero() []Word {
	var out []Word
	for i, v := range m.words {
		if v != 0 {
			out = append(out, Word{Index: i, Value: v})
		}
	}
	return out
}

// MemWrite is one entry of the modified-memory log: a completed store,
// identified by word address and the value written.
type MemWrite struct {
	Addr  int
	Value int32
}

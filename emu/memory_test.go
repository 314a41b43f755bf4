package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/mipsim/emu"
	"github.com/archsim/mipsim/insts"
)

var _ = Describe("RegFile", func() {
	var regFile *emu.RegFile

	BeforeEach(func() {
		regFile = &emu.RegFile{}
	})

	It("should read back written values", func() {
		regFile.Write(8, -42)
		Expect(regFile.Read(8)).To(Equal(int32(-42)))
	})

	It("should discard writes to register 0", func() {
		regFile.Write(0, 99)
		Expect(regFile.Read(0)).To(Equal(int32(0)))
	})

	It("should snapshot all registers in index order", func() {
		regFile.Write(1, 10)
		regFile.Write(31, 20)
		snap := regFile.Snapshot()
		Expect(snap[1]).To(Equal(int32(10)))
		Expect(snap[31]).To(Equal(int32(20)))
	})
})

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemory()
	})

	It("should start zeroed", func() {
		Expect(memory.LoadWord(0)).To(Equal(int32(0)))
		Expect(memory.NonZero()).To(BeEmpty())
	})

	It("should store and load words", func() {
		memory.StoreWord(16, 64)
		Expect(memory.LoadWord(16)).To(Equal(int32(64)))
	})

	It("should list non-zero words in address order", func() {
		memory.StoreWord(100, 1)
		memory.StoreWord(20, 2)
		Expect(memory.NonZero()).To(Equal([]emu.Word{
			{Index: 20, Value: 2},
			{Index: 100, Value: 1},
		}))
	})

	Describe("Locate", func() {
		It("should convert a valid byte address to a word index", func() {
			word, err := memory.Locate(64, 4)
			Expect(err).To(BeNil())
			Expect(word).To(Equal(16))
		})

		It("should reject an unaligned address", func() {
			_, err := memory.Locate(63, 0)
			Expect(err).NotTo(BeNil())
			Expect(err.Code).To(Equal(insts.InvalidAddress))
		})

		It("should reject an address inside the instruction region", func() {
			_, err := memory.Locate(12, 4)
			Expect(err).NotTo(BeNil())
			Expect(err.Code).To(Equal(insts.InvalidAddress))
		})

		It("should reject an address beyond the memory limit", func() {
			_, err := memory.Locate(emu.MemoryBytes, 0)
			Expect(err).NotTo(BeNil())
			Expect(err.Code).To(Equal(insts.InvalidAddress))
		})

		It("should reject a negative address", func() {
			_, err := memory.Locate(-4, 0)
			Expect(err).NotTo(BeNil())
			Expect(err.Code).To(Equal(insts.InvalidAddress))
		})

		It("should accept the first word past the instruction region", func() {
			word, err := memory.Locate(16, 4)
			Expect(err).To(BeNil())
			Expect(word).To(Equal(4))
		})
	})
})

package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/mipsim/insts"
)

var _ = Describe("Decoder", func() {
	var (
		decoder *insts.Decoder
		labels  map[string]int
	)

	BeforeEach(func() {
		decoder = insts.NewDecoder()
		labels = map[string]int{"loop": 3, "dup": -1}
	})

	Describe("R-type arithmetic", func() {
		It("should decode add $t2, $t0, $t1", func() {
			inst := decoder.Decode([]string{"add", "$t2", "$t0", "$t1"}, labels)

			Expect(inst.Err).To(BeNil())
			Expect(inst.Op).To(Equal(insts.OpAdd))
			Expect(inst.Rd).To(Equal(uint8(10)))
			Expect(inst.Rs).To(Equal(uint8(8)))
			Expect(inst.Rt).To(Equal(uint8(9)))
		})

		It("should accept numeric register names", func() {
			inst := decoder.Decode([]string{"sub", "$4", "$5", "$6"}, labels)

			Expect(inst.Err).To(BeNil())
			Expect(inst.Op).To(Equal(insts.OpSub))
			Expect(inst.Rd).To(Equal(uint8(4)))
			Expect(inst.Rs).To(Equal(uint8(5)))
			Expect(inst.Rt).To(Equal(uint8(6)))
		})

		It("should reject an unknown register", func() {
			inst := decoder.Decode([]string{"mul", "$t0", "$bogus", "$t1"}, labels)

			Expect(inst.Err).NotTo(BeNil())
			Expect(inst.Err.Code).To(Equal(insts.InvalidRegister))
		})
	})

	Describe("addi", func() {
		It("should decode a negative immediate", func() {
			inst := decoder.Decode([]string{"addi", "$sp", "$sp", "-8"}, labels)

			Expect(inst.Err).To(BeNil())
			Expect(inst.Op).To(Equal(insts.OpAddi))
			Expect(inst.Rt).To(Equal(uint8(29)))
			Expect(inst.Rs).To(Equal(uint8(29)))
			Expect(inst.Imm).To(Equal(int32(-8)))
		})

		It("should reject a malformed immediate", func() {
			inst := decoder.Decode([]string{"addi", "$t0", "$zero", "5x"}, labels)

			Expect(inst.Err).NotTo(BeNil())
			Expect(inst.Err.Code).To(Equal(insts.SyntaxError))
		})
	})

	Describe("memory operands", func() {
		It("should decode lw with offset(base)", func() {
			inst := decoder.Decode([]string{"lw", "$t1", "8($t0)", ""}, labels)

			Expect(inst.Err).To(BeNil())
			Expect(inst.Op).To(Equal(insts.OpLw))
			Expect(inst.Rt).To(Equal(uint8(9)))
			Expect(inst.Rs).To(Equal(uint8(8)))
			Expect(inst.Imm).To(Equal(int32(8)))
		})

		It("should default a missing offset to zero", func() {
			inst := decoder.Decode([]string{"sw", "$t1", "($t0)", ""}, labels)

			Expect(inst.Err).To(BeNil())
			Expect(inst.Imm).To(Equal(int32(0)))
			Expect(inst.Rs).To(Equal(uint8(8)))
		})

		It("should decode an absolute address as base $zero", func() {
			inst := decoder.Decode([]string{"lw", "$t1", "1024", ""}, labels)

			Expect(inst.Err).To(BeNil())
			Expect(inst.Rs).To(Equal(uint8(0)))
			Expect(inst.Imm).To(Equal(int32(1024)))
		})

		It("should fold a bad base register into the address error class", func() {
			inst := decoder.Decode([]string{"lw", "$t1", "0($nope)", ""}, labels)

			Expect(inst.Err).NotTo(BeNil())
			Expect(inst.Err.Code).To(Equal(insts.InvalidAddress))
		})

		It("should reject a malformed offset", func() {
			inst := decoder.Decode([]string{"lw", "$t1", "x($t0)", ""}, labels)

			Expect(inst.Err).NotTo(BeNil())
			Expect(inst.Err.Code).To(Equal(insts.SyntaxError))
		})
	})

	Describe("branches", func() {
		It("should resolve the label target", func() {
			inst := decoder.Decode([]string{"beq", "$t0", "$t1", "loop"}, labels)

			Expect(inst.Err).To(BeNil())
			Expect(inst.Op).To(Equal(insts.OpBeq))
			Expect(inst.Rs).To(Equal(uint8(8)))
			Expect(inst.Rt).To(Equal(uint8(9)))
			Expect(inst.Target).To(Equal(3))
		})

		It("should poison an undefined label reference", func() {
			inst := decoder.Decode([]string{"bne", "$t0", "$t1", "nowhere"}, labels)

			Expect(inst.Err).NotTo(BeNil())
			Expect(inst.Err.Code).To(Equal(insts.InvalidLabel))
			Expect(inst.Target).To(Equal(insts.UnresolvedTarget))
		})

		It("should poison a duplicated label reference", func() {
			inst := decoder.Decode([]string{"beq", "$t0", "$t1", "dup"}, labels)

			Expect(inst.Err).NotTo(BeNil())
			Expect(inst.Err.Code).To(Equal(insts.InvalidLabel))
		})

		It("should reject a malformed label name", func() {
			inst := decoder.Decode([]string{"beq", "$t0", "$t1", "9lives"}, labels)

			Expect(inst.Err).NotTo(BeNil())
			Expect(inst.Err.Code).To(Equal(insts.SyntaxError))
		})

		It("should reject a label shadowing a mnemonic", func() {
			inst := decoder.Decode([]string{"beq", "$t0", "$t1", "add"}, labels)

			Expect(inst.Err).NotTo(BeNil())
			Expect(inst.Err.Code).To(Equal(insts.SyntaxError))
		})
	})

	Describe("jumps", func() {
		It("should resolve the target", func() {
			inst := decoder.Decode([]string{"j", "loop", "", ""}, labels)

			Expect(inst.Err).To(BeNil())
			Expect(inst.Op).To(Equal(insts.OpJ))
			Expect(inst.Target).To(Equal(3))
		})

		It("should poison an unresolved target", func() {
			inst := decoder.Decode([]string{"j", "nowhere", "", ""}, labels)

			Expect(inst.Err).NotTo(BeNil())
			Expect(inst.Err.Code).To(Equal(insts.InvalidLabel))
		})
	})

	It("should mark an unknown mnemonic as a syntax error", func() {
		inst := decoder.Decode([]string{"xor", "$t0", "$t1", "$t2"}, labels)

		Expect(inst.Op).To(Equal(insts.OpInvalid))
		Expect(inst.Err).NotTo(BeNil())
		Expect(inst.Err.Code).To(Equal(insts.SyntaxError))
	})
})

var _ = Describe("Instruction", func() {
	It("should report destinations for writers only", func() {
		add := insts.Instruction{Op: insts.OpAdd, Rd: 10}
		reg, ok := add.WritesRegister()
		Expect(ok).To(BeTrue())
		Expect(reg).To(Equal(uint8(10)))

		sw := insts.Instruction{Op: insts.OpSw, Rt: 9}
		_, ok = sw.WritesRegister()
		Expect(ok).To(BeFalse())
	})

	It("should report only the base register as a store source", func() {
		sw := insts.Instruction{Op: insts.OpSw, Rs: 8, Rt: 9}
		Expect(sw.SourceRegisters()).To(Equal([]uint8{8}))
	})

	It("should report both operands for branches", func() {
		beq := insts.Instruction{Op: insts.OpBeq, Rs: 8, Rt: 9}
		Expect(beq.SourceRegisters()).To(Equal([]uint8{8, 9}))
	})
})

var _ = Describe("RegisterIndex", func() {
	It("should map the ABI aliases to canonical indices", func() {
		for name, want := range map[string]uint8{
			"$zero": 0, "$at": 1, "$v0": 2, "$v1": 3,
			"$a0": 4, "$a3": 7, "$t0": 8, "$t7": 15,
			"$s0": 16, "$s7": 23, "$t8": 24, "$t9": 25,
			"$k0": 26, "$k1": 27, "$gp": 28, "$sp": 29,
			"$s8": 30, "$ra": 31,
		} {
			idx, ok := insts.RegisterIndex(name)
			Expect(ok).To(BeTrue(), "alias %s", name)
			Expect(idx).To(Equal(want), "alias %s", name)
		}
	})

	It("should reject names without the sigil", func() {
		_, ok := insts.RegisterIndex("t0")
		Expect(ok).To(BeFalse())
	})
})

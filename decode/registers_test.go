package decode_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32core/decode"
)

var _ = Describe("Registers", func() {
	It("round-trips every (rd, rs1, rs2) triple in 0..=31 through pack/unpack", func() {
		for rd := uint8(0); rd < 32; rd++ {
			for rs1 := uint8(0); rs1 < 32; rs1++ {
				for rs2 := uint8(0); rs2 < 32; rs2++ {
					regs := decode.PackRegisters(rd, rs1, rs2)
					Expect(regs.Rd()).To(Equal(rd))
					Expect(regs.Rs1()).To(Equal(rs1))
					Expect(regs.Rs2()).To(Equal(rs2))
				}
			}
		}
	})
})

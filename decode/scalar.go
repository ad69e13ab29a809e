package decode

import "fmt"

// Instruction is one decoded RV32I instruction, as produced by the
// scalar DecodeOne API.
type Instruction struct {
	Loc  uint32
	Op   Op
	Regs Registers
	Imm  int32
}

// RejectError reports why DecodeOne could not decode a word. It wraps
// the same RejectReason the batch path emits in a Rejection, so both
// APIs agree on why a given word is illegal.
type RejectError struct {
	Word   uint32
	Opcode uint32
	Reason RejectReason
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("decode: word 0x%08X opcode 0x%02X rejected: %s",
		e.Word, e.Opcode, e.Reason)
}

// DecodeOne decodes a single instruction word at loc, without going
// through a Stage1/Batch pair. It runs the same field extraction and
// classification the batch path runs on one lane, and exists for
// callers that need to decode a single word, e.g. when single-stepping
// or symbolizing a fault address.
func DecodeOne(loc uint32, word uint32) (Instruction, error) {
	l := extractLane(word)

	c := classify(l)
	if !c.accepted {
		return Instruction{}, &RejectError{
			Word:   word,
			Opcode: l.opcode,
			Reason: c.reason,
		}
	}

	return Instruction{
		Loc:  loc,
		Op:   c.op,
		Regs: c.regs,
		Imm:  c.imm,
	}, nil
}

// extractLane runs Stage1's field and immediate extraction on a single
// word, the scalar equivalent of Stage1.Decode over a batch of one.
func extractLane(w uint32) lane {
	ws := int32(w)

	immI := ws >> 20

	immS := ((ws >> 20) &^ 0x1f) | ((ws >> 7) & 0x1f)

	b12 := ws >> 19
	b11 := (ws >> 7) & 0x1
	b10_5 := (ws >> 25) & 0x3f
	b4_1 := (ws >> 8) & 0xf
	immB := (b12 &^ 0xfff) | (b11 << 11) | (b10_5 << 5) | (b4_1 << 1)

	immU := int32(w & 0xFFFF_F000)

	j20 := ws >> 11
	j19_12 := ws & 0xff000
	j11 := (ws >> 9) & 0x800
	j10_1 := (ws >> 20) & 0x7fe
	immJ := (j20 &^ 0x1f_ffff) | j19_12 | j11 | j10_1

	return lane{
		word:   w,
		opcode: w & 0x7f,
		rd:     (w >> 7) & 0x1f,
		funct3: (w >> 12) & 0x07,
		rs1:    (w >> 15) & 0x1f,
		rs2:    (w >> 20) & 0x1f,
		funct7: (w >> 25) & 0x7f,
		immI:   immI,
		immS:   immS,
		immB:   immB,
		immU:   immU,
		immJ:   immJ,
	}
}

package decode

// lane bundles one Stage1 lane's fields so classify can be shared
// between the batch validator and the scalar DecodeOne API.
type lane struct {
	word   uint32
	opcode uint32
	rd     uint32
	funct3 uint32
	rs1    uint32
	rs2    uint32
	funct7 uint32
	immI   int32
	immS   int32
	immB   int32
	immU   int32
	immJ   int32
}

// classification is the result of classifying one lane: either an
// accepted instruction (op, regs, imm) or a rejection reason.
type classification struct {
	accepted bool
	op       Op
	regs     Registers
	imm      int32
	reason   RejectReason
}

func accept(op Op, regs Registers, imm int32) classification {
	return classification{accepted: true, op: op, regs: regs, imm: imm}
}

func reject(reason RejectReason) classification {
	return classification{accepted: false, reason: reason}
}

const (
	opcodeOp     = 0b0110011
	opcodeOpImm  = 0b0010011
	opcodeLoad   = 0b0000011
	opcodeStore  = 0b0100011
	opcodeBranch = 0b1100011
	opcodeJalr   = 0b1100111
	opcodeJal    = 0b1101111
	opcodeLui    = 0b0110111
	opcodeAuipc  = 0b0010111
	opcodeSystem = 0b1110011
)

// classify applies the opcode/funct3/funct7 decision tree from the
// spec's §4.3, including the x0-write elision rule, and returns the
// single chosen immediate and packed registers for an accepted lane.
func classify(l lane) classification {
	switch l.opcode {
	case opcodeOp:
		return classifyOp(l)
	case opcodeOpImm:
		return classifyOpImm(l)
	case opcodeLoad:
		return classifyLoad(l)
	case opcodeStore:
		return classifyStore(l)
	case opcodeBranch:
		return classifyBranch(l)
	case opcodeJalr:
		return classifyJalr(l)
	case opcodeJal:
		return classifyJal(l)
	case opcodeLui:
		return classifyLui(l)
	case opcodeAuipc:
		return classifyAuipc(l)
	case opcodeSystem:
		return classifySystem(l)
	default:
		return reject(ReasonUnknownOpcode)
	}
}

var rTypeOps = map[[2]uint32]Op{
	{0, 0x00}: OpAdd,
	{0, 0x20}: OpSub,
	{1, 0x00}: OpSll,
	{2, 0x00}: OpSlt,
	{3, 0x00}: OpSltu,
	{4, 0x00}: OpXor,
	{5, 0x00}: OpSrl,
	{5, 0x20}: OpSra,
	{6, 0x00}: OpOr,
	{7, 0x00}: OpAnd,
}

func classifyOp(l lane) classification {
	op, ok := rTypeOps[[2]uint32{l.funct3, l.funct7}]
	if !ok {
		return reject(ReasonUnknownFunct7)
	}
	if l.rd == 0 {
		return reject(ReasonWritesToX0)
	}
	regs := PackRegisters(uint8(l.rd), uint8(l.rs1), uint8(l.rs2))
	return accept(op, regs, 0)
}

func classifyOpImm(l lane) classification {
	var op Op
	switch l.funct3 {
	case 0x0:
		op = OpAddi
	case 0x1:
		shamtHigh := uint32(l.immI) >> 5 & 0x7f
		if shamtHigh != 0x00 {
			return reject(ReasonUnknownShamtHigh)
		}
		op = OpSlli
	case 0x2:
		op = OpSlti
	case 0x3:
		op = OpSltiu
	case 0x4:
		op = OpXori
	case 0x5:
		shamtHigh := uint32(l.immI) >> 5 & 0x7f
		switch shamtHigh {
		case 0x00:
			op = OpSrli
		case 0x20:
			op = OpSrai
		default:
			return reject(ReasonUnknownShamtHigh)
		}
	case 0x6:
		op = OpOri
	case 0x7:
		op = OpAndi
	default:
		return reject(ReasonUnknownFunct3)
	}
	if l.rd == 0 {
		return reject(ReasonWritesToX0)
	}
	regs := PackRegisters(uint8(l.rd), uint8(l.rs1), 0)
	return accept(op, regs, l.immI)
}

func classifyLoad(l lane) classification {
	var op Op
	switch l.funct3 {
	case 0x0:
		op = OpLb
	case 0x1:
		op = OpLh
	case 0x2:
		op = OpLw
	case 0x4:
		op = OpLbu
	case 0x5:
		op = OpLhu
	default:
		return reject(ReasonUnknownFunct3)
	}
	if l.rd == 0 {
		return reject(ReasonWritesToX0)
	}
	regs := PackRegisters(uint8(l.rd), uint8(l.rs1), 0)
	return accept(op, regs, l.immI)
}

func classifyStore(l lane) classification {
	var op Op
	switch l.funct3 {
	case 0x0:
		op = OpSb
	case 0x1:
		op = OpSh
	case 0x2:
		op = OpSw
	default:
		return reject(ReasonUnknownFunct3)
	}
	regs := PackRegisters(0, uint8(l.rs1), uint8(l.rs2))
	return accept(op, regs, l.immS)
}

func classifyBranch(l lane) classification {
	var op Op
	switch l.funct3 {
	case 0x0:
		op = OpBeq
	case 0x1:
		op = OpBne
	case 0x4:
		op = OpBlt
	case 0x5:
		op = OpBge
	case 0x6:
		op = OpBltu
	case 0x7:
		op = OpBgeu
	default:
		return reject(ReasonUnknownFunct3)
	}
	regs := PackRegisters(0, uint8(l.rs1), uint8(l.rs2))
	return accept(op, regs, l.immB)
}

func classifyJalr(l lane) classification {
	if l.funct3 != 0 {
		return reject(ReasonUnknownFunct3)
	}
	if l.rd == 0 {
		return reject(ReasonWritesToX0)
	}
	regs := PackRegisters(uint8(l.rd), uint8(l.rs1), 0)
	return accept(OpJalr, regs, l.immI)
}

func classifyJal(l lane) classification {
	if l.rd == 0 {
		return reject(ReasonWritesToX0)
	}
	regs := PackRegisters(uint8(l.rd), 0, 0)
	return accept(OpJal, regs, l.immJ)
}

func classifyLui(l lane) classification {
	if l.rd == 0 {
		return reject(ReasonWritesToX0)
	}
	regs := PackRegisters(uint8(l.rd), 0, 0)
	return accept(OpLui, regs, l.immU)
}

func classifyAuipc(l lane) classification {
	if l.rd == 0 {
		return reject(ReasonWritesToX0)
	}
	regs := PackRegisters(uint8(l.rd), 0, 0)
	return accept(OpAuipc, regs, l.immU)
}

func classifySystem(l lane) classification {
	if l.funct3 != 0 {
		return reject(ReasonUnknownFunct3)
	}
	switch l.immI {
	case 0:
		return accept(OpEcall, 0, l.immI)
	case 1:
		return accept(OpEbreak, 0, l.immI)
	default:
		return reject(ReasonUnknownImmediate)
	}
}

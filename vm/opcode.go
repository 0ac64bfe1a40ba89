package vm

// Opcode is an instruction operation.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_MOV     = Opcode(0)  // mov
	OP_ADD     = Opcode(1)  // add
	OP_SUB     = Opcode(2)  // sub
	OP_CMP     = Opcode(3)  // cmp
	OP_JMP     = Opcode(4)  // jmp
	OP_JE      = Opcode(5)  // je
	OP_JNE     = Opcode(6)  // jne
	OP_JL      = Opcode(7)  // jl
	OP_JG      = Opcode(8)  // jg
	OP_CALL    = Opcode(9)  // call
	OP_RET     = Opcode(10) // ret
	OP_LEAVE   = Opcode(11) // leave
	OP_SYSCALL = Opcode(12) // syscall
)

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = map[string]Opcode{
	"mov":     OP_MOV,
	"add":     OP_ADD,
	"sub":     OP_SUB,
	"cmp":     OP_CMP,
	"jmp":     OP_JMP,
	"je":      OP_JE,
	"jne":     OP_JNE,
	"jl":      OP_JL,
	"jg":      OP_JG,
	"call":    OP_CALL,
	"ret":     OP_RET,
	"leave":   OP_LEAVE,
	"syscall": OP_SYSCALL,
}

// Transfers reports whether the opcode targets a label.
func (op Opcode) Transfers() bool {
	switch op {
	case OP_JMP, OP_JE, OP_JNE, OP_JL, OP_JG, OP_CALL:
		return true
	}
	return false
}

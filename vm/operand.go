package vm

import (
	"fmt"
)

// OperandKind is the shape of an instruction operand.
type OperandKind int

const (
	OPERAND_IMM  = OperandKind(0)
	OPERAND_REG  = OperandKind(1)
	OPERAND_SLOT = OperandKind(2)
)

// Operand is a single instruction argument. A slot operand nests the
// operand computing its index, to any depth.
type Operand struct {
	Kind  OperandKind
	Value Value    // Immediate payload.
	Name  string   // Register name, or label in transfer position.
	Index *Operand // Slot index.
}

// Imm returns an immediate operand.
func Imm(value Value) Operand {
	return Operand{Kind: OPERAND_IMM, Value: value}
}

// Reg returns a register operand.
func Reg(name string) Operand {
	return Operand{Kind: OPERAND_REG, Name: name}
}

// Slot returns a memory slot operand with a nested index operand.
func Slot(index Operand) Operand {
	return Operand{Kind: OPERAND_SLOT, Index: &index}
}

// Writable reports whether the operand can be a destination.
func (op Operand) Writable() bool {
	return op.Kind != OPERAND_IMM
}

// String returns the assembly form of the operand.
func (op Operand) String() string {
	switch op.Kind {
	case OPERAND_REG:
		return op.Name
	case OPERAND_SLOT:
		return fmt.Sprintf("sp[%v]", op.Index)
	default:
		return op.Value.String()
	}
}

// Copyright 2025, Tomyk9991 <https://github.com/Tomyk9991>

package vm

import (
	"errors"
	"fmt"
	"iter"

	"github.com/Tomyk9991/asm-interpreter/internal"
)

// State is the complete machine state threaded through execution: the
// open register file, the slot memory, and the call stack. Registers
// form an open set; any name is valid and unwritten names read as the
// integer 0.
type State struct {
	Registers map[string]Value
	Memory    Memory
	Frames    CallStack
}

// NewState returns an empty machine state.
func NewState() *State {
	return &State{
		Registers: map[string]Value{},
	}
}

// Register reads a register.
func (st *State) Register(name string) Value {
	return st.Registers[name]
}

// SetRegister writes a register, creating it on first write.
func (st *State) SetRegister(name string, value Value) {
	if st.Registers == nil {
		st.Registers = map[string]Value{}
	}
	st.Registers[name] = value
}

// Eval resolves an operand to its value. Slot indexes are evaluated
// recursively and must come out as non-negative integers.
func (st *State) Eval(op Operand) (value Value, err error) {
	switch op.Kind {
	case OPERAND_IMM:
		value = op.Value
	case OPERAND_REG:
		value = st.Register(op.Name)
	case OPERAND_SLOT:
		var index int64
		index, err = st.slotIndex(op)
		if err != nil {
			return
		}
		value, err = st.Memory.Load(index)
	}

	return
}

// Store writes a value through a register or slot operand.
func (st *State) Store(op Operand, value Value) (err error) {
	switch op.Kind {
	case OPERAND_REG:
		st.SetRegister(op.Name, value)
	case OPERAND_SLOT:
		var index int64
		index, err = st.slotIndex(op)
		if err != nil {
			return
		}
		err = st.Memory.Store(index, value)
	default:
		err = ErrTargetInvalid
	}

	return
}

// slotIndex evaluates the nested index operand of a slot.
func (st *State) slotIndex(op Operand) (index int64, err error) {
	val, err := st.Eval(*op.Index)
	if err != nil {
		return
	}
	if val.Kind != KIND_INT {
		err = errors.Join(ErrTypeMismatch, ErrValueNotInt(val))
		return
	}

	index = val.Int
	return
}

// Values iterates the visible state: registers in name order, then
// every written slot as ("sp[i]", value).
func (st *State) Values() iter.Seq2[string, Value] {
	return internal.IterSeq2Concat(
		internal.IterSeq2SortedMap(st.Registers),
		st.slotValues(),
	)
}

func (st *State) slotValues() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for n, value := range st.Memory.Slots {
			if !yield(fmt.Sprintf("sp[%d]", n), value) {
				return
			}
		}
	}
}

// String returns the current machine state as a string. Runs of
// zero-valued slots are collapsed to a single line.
func (st *State) String() (text string) {
	for name, value := range internal.IterSeq2SortedMap(st.Registers) {
		text += fmt.Sprintf("%10s: %v\n", name, value)
	}

	slots := st.Memory.Slots
	for n := 0; n < len(slots); {
		run := n
		for run < len(slots) && slots[run] == (Value{}) {
			run++
		}
		if run-n > 1 {
			text += fmt.Sprintf("%10s: %v\n", fmt.Sprintf("sp[%d..%d]", n, run-1), Value{})
			n = run
			continue
		}
		text += fmt.Sprintf("%10s: %v\n", fmt.Sprintf("sp[%d]", n), slots[n])
		n++
	}

	return
}

// Reset clears the registers, memory, and call stack.
func (st *State) Reset() {
	clear(st.Registers)
	st.Memory.Reset()
	st.Frames.Reset()
}

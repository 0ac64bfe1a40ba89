// Copyright 2025, Tomyk9991 <https://github.com/Tomyk9991>

package vm

import (
	"errors"
	"log"
)

// Machine executes an assembled program over a State. Execution is
// strictly sequential; the caller owns the machine for its lifetime.
type Machine struct {
	Verbose bool     // If set, verbosely logs each step.
	Program *Program // Program under execution.
	State   *State   // Machine state.
	Sys     Syscalls // Host call surface.

	PC int // Index of the next instruction.

	exit    Value
	hasExit bool
	halted  bool
}

// NewMachine creates a machine for a program, with fresh state and
// host calls writing to stdout.
func NewMachine(prog *Program) (m *Machine) {
	m = &Machine{
		Program: prog,
		State:   NewState(),
	}

	return
}

// Exit returns the exit value, if the program produced one. The ret
// value of the top-level block is the exit value; leave and falling
// off the end of the tape terminate without one.
func (m *Machine) Exit() (value Value, ok bool) {
	return m.exit, m.hasExit
}

// Done reports whether execution has terminated.
func (m *Machine) Done() bool {
	return m.halted
}

// Reset rewinds the machine to a fresh state.
func (m *Machine) Reset() {
	m.State.Reset()
	m.PC = 0
	m.exit = Value{}
	m.hasExit = false
	m.halted = false
}

// Run steps the machine until termination or a runtime failure.
func (m *Machine) Run() (err error) {
	for !m.halted {
		_, err = m.Step()
		if err != nil {
			return
		}
	}

	return
}

// Step executes a single instruction. Fetching past the end of the
// tape terminates execution without an exit value.
func (m *Machine) Step() (done bool, err error) {
	inst, ok := m.Program.At(m.PC)
	if !ok {
		m.halted = true
		done = true
		return
	}

	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: inst.LineNo, Err: err}
		}
	}()

	if m.Verbose {
		log.Printf("%04d: %v", m.PC, inst)
	}

	next := m.PC + 1

	switch inst.Op {
	case OP_MOV:
		var value Value
		value, err = m.State.Eval(inst.Operands[1])
		if err != nil {
			return
		}
		err = m.State.Store(inst.Operands[0], value)
		if err != nil {
			return
		}
	case OP_ADD, OP_SUB, OP_CMP:
		var a, b Value
		a, err = m.State.Eval(inst.Operands[1])
		if err != nil {
			return
		}
		b, err = m.State.Eval(inst.Operands[2])
		if err != nil {
			return
		}

		var value Value
		switch inst.Op {
		case OP_ADD:
			value, err = a.Add(b)
		case OP_SUB:
			value, err = a.Sub(b)
		case OP_CMP:
			value, err = a.Compare(b)
		}
		if err != nil {
			return
		}

		err = m.State.Store(inst.Operands[0], value)
		if err != nil {
			return
		}
	case OP_JMP:
		m.State.Frames.Push(Frame{ReturnPC: m.PC + 1})
		next = m.target(inst.Operands[0])
	case OP_JE, OP_JNE, OP_JL, OP_JG:
		var taken bool
		taken, err = m.conditional(inst.Op, inst.Operands[0])
		if err != nil {
			return
		}
		if taken {
			m.State.Frames.Push(Frame{ReturnPC: m.PC + 1})
			next = m.target(inst.Operands[1])
		}
	case OP_CALL:
		frame := Frame{ReturnPC: m.PC + 1}
		if len(inst.Operands) == 2 {
			frame.Dest = &inst.Operands[0]
		}
		m.State.Frames.Push(frame)
		next = m.target(inst.Operands[len(inst.Operands)-1])
	case OP_RET:
		var value Value
		value, err = m.State.Eval(inst.Operands[0])
		if err != nil {
			return
		}

		frame, live := m.State.Frames.Pop()
		if !live {
			// Top-level return: the value becomes the exit value.
			m.exit = value
			m.hasExit = true
			m.halted = true
			done = true
			return
		}
		if frame.Dest != nil {
			err = m.State.Store(*frame.Dest, value)
			if err != nil {
				return
			}
		}
		next = frame.ReturnPC
	case OP_LEAVE:
		frame, live := m.State.Frames.Pop()
		if !live {
			// Top-level leave: terminate without an exit value.
			m.halted = true
			done = true
			return
		}
		next = frame.ReturnPC
	case OP_SYSCALL:
		err = m.Sys.Dispatch(inst.Operands[0].Name, m.State)
		if err != nil {
			return
		}
	}

	m.PC = next
	return
}

// target resolves a transfer operand through the label table. The
// assembler has already verified the label exists.
func (m *Machine) target(op Operand) int {
	return m.Program.Labels[op.Name]
}

// conditional evaluates a jump condition, which must be an integer.
func (m *Machine) conditional(op Opcode, cond Operand) (taken bool, err error) {
	value, err := m.State.Eval(cond)
	if err != nil {
		return
	}
	if value.Kind != KIND_INT {
		err = errors.Join(ErrTypeMismatch, ErrValueNotInt(value))
		return
	}

	switch op {
	case OP_JE:
		taken = value.Int == 0
	case OP_JNE:
		taken = value.Int != 0
	case OP_JL:
		taken = value.Int == -1
	case OP_JG:
		taken = value.Int == 1
	}

	return
}

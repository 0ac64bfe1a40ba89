package vm

import (
	"iter"
	"slices"
	"strings"
)

// Instruction is a single decoded operation with its source location.
type Instruction struct {
	Op       Opcode
	Operands []Operand
	LineNo   int
}

// String returns the assembly form of the instruction.
func (inst Instruction) String() string {
	parts := []string{inst.Op.String()}
	for _, op := range inst.Operands {
		parts = append(parts, op.String())
	}
	return strings.Join(parts, " ")
}

// Target returns the label this instruction transfers to, if any.
func (inst Instruction) Target() (label string, ok bool) {
	if !inst.Op.Transfers() {
		return
	}
	return inst.Operands[len(inst.Operands)-1].Name, true
}

// Program is an assembled program: the instruction tape and the label
// table. Labels are not instructions; a label maps to the index of the
// instruction assembled after it, and a label at the end of the tape
// maps to len(Insts).
type Program struct {
	Insts  []Instruction
	Labels map[string]int
}

// At returns the instruction at index pc.
func (prog *Program) At(pc int) (inst Instruction, ok bool) {
	if pc < 0 || pc >= len(prog.Insts) {
		return
	}
	return prog.Insts[pc], true
}

// Instructions iterates (index, instruction) over the tape.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(pc int, inst Instruction) bool) {
		for n, inst := range prog.Insts {
			if !yield(n, inst) {
				return
			}
		}
	}
}

// LabelsAt returns the labels attached to instruction index pc, sorted.
func (prog *Program) LabelsAt(pc int) (labels []string) {
	for label, n := range prog.Labels {
		if n == pc {
			labels = append(labels, label)
		}
	}
	slices.Sort(labels)
	return
}

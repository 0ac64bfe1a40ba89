// Copyright 2025, Tomyk9991 <https://github.com/Tomyk9991>

package vm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a two pass assembler for the machine's instruction set.
// The first pass records labels against instruction indexes, the second
// resolves instructions, so forward label references need no fixups.
type Assembler struct {
	Verbose bool          // If set, verbosely logs the assembler actions.
	Insts   []Instruction // List of assembled instructions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to instruction indexes.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// splitLine strips the comment and splits a source line into words.
// Double-quoted text forms a single word, quotes kept, and may contain
// spaces and ';'.
func splitLine(line string) (words []string, err error) {
	var quoted bool
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for _, r := range line {
		switch {
		case quoted:
			word.WriteRune(r)
			if r == '"' {
				quoted = false
				flush()
			}
		case r == '"':
			flush()
			word.WriteRune(r)
			quoted = true
		case r == ';':
			flush()
			return
		case r == ' ' || r == '\t':
			flush()
		default:
			word.WriteRune(r)
		}
	}

	if quoted {
		err = ErrQuoteUnclosed
		return
	}
	flush()

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, verr := strconv.ParseInt(str, 0, 64)
		if verr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = st_int64
	return
}

// expand replaces $( ... ) expressions with their evaluated integer
// results. Quoted text and comment text are never expanded.
func (asm *Assembler) expand(line string) (out string, err error) {
	if !strings.Contains(line, "$(") {
		out = line
		return
	}

	var quoted bool
	var sb strings.Builder
	for i := 0; i < len(line); {
		c := line[i]
		switch {
		case quoted:
			sb.WriteByte(c)
			if c == '"' {
				quoted = false
			}
			i++
		case c == '"':
			sb.WriteByte(c)
			quoted = true
			i++
		case c == ';':
			// The comment runs to the end of the line.
			sb.WriteString(line[i:])
			i = len(line)
		case c == '$' && i+1 < len(line) && line[i+1] == '(':
			depth := 0
			j := i + 1
			for ; j < len(line); j++ {
				if line[j] == '(' {
					depth++
				}
				if line[j] == ')' {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			if depth != 0 {
				err = ErrParseExpression(line[i+2:])
				return
			}
			var value int64
			value, err = asm.parenEval(line[i+2 : j])
			if err != nil {
				return
			}
			sb.WriteString(strconv.FormatInt(value, 10))
			i = j + 1
		default:
			sb.WriteByte(c)
			i++
		}
	}

	out = sb.String()
	return
}

// stripLabels removes label prefixes from a line's words, recording
// them against the instruction index on the first pass.
func (asm *Assembler) stripLabels(words []string, index int, record bool) (rest []string, err error) {
	rest = words
	for len(rest) > 0 && strings.HasSuffix(rest[0], ":") {
		if record {
			label := rest[0][:len(rest[0])-1]
			if len(label) == 0 {
				err = ErrLabelEmpty
				return
			}
			_, ok := asm.Label[label]
			if ok {
				err = ErrLabelDuplicate
				return
			}
			asm.Label[label] = index
		}
		rest = rest[1:]
	}
	return
}

// isNumber reports whether a word starts like an integer literal.
func isNumber(word string) bool {
	if len(word) == 0 {
		return false
	}
	c := word[0]
	if (c == '-' || c == '+') && len(word) > 1 {
		c = word[1]
	}
	return c >= '0' && c <= '9'
}

// parseOperand parses a single operand word.
func (asm *Assembler) parseOperand(word string) (op Operand, err error) {
	switch {
	case strings.HasPrefix(word, "\""):
		if len(word) < 2 || !strings.HasSuffix(word, "\"") {
			err = ErrQuoteUnclosed
			return
		}
		op = Imm(TextValue(word[1 : len(word)-1]))
	case word == "sp":
		// Bare sp is shorthand for sp[0].
		op = Slot(Imm(IntValue(0)))
	case strings.HasPrefix(word, "sp["):
		if !strings.HasSuffix(word, "]") {
			err = ErrSlotSyntax
			return
		}
		inner := word[3 : len(word)-1]
		if len(inner) == 0 {
			err = ErrSlotSyntax
			return
		}
		var index Operand
		index, err = asm.parseOperand(inner)
		if err != nil {
			return
		}
		op = Slot(index)
	case isNumber(word):
		var v64 int64
		v64, err = strconv.ParseInt(word, 0, 64)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		op = Imm(IntValue(v64))
	default:
		op = Reg(word)
	}

	return
}

// linkLabel checks that a transfer operand names a known label.
func (asm *Assembler) linkLabel(op Operand) (err error) {
	if op.Kind != OPERAND_REG {
		err = ErrNameExpected
		return
	}
	_, ok := asm.Label[op.Name]
	if !ok {
		err = ErrLabelMissing(op.Name)
	}
	return
}

// parseWords assembles the words of one line into an instruction.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	op, ok := opcodeMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	var operands []Operand
	for _, word := range words[1:] {
		var operand Operand
		operand, err = asm.parseOperand(word)
		if err != nil {
			return
		}
		operands = append(operands, operand)
	}

	need := func(lo, hi int) error {
		if len(operands) < lo {
			return ErrOperandMissing
		}
		if len(operands) > hi {
			return ErrOperandExtra
		}
		return nil
	}

	switch op {
	case OP_MOV:
		err = need(2, 2)
		if err != nil {
			return
		}
		if !operands[0].Writable() {
			err = ErrTargetInvalid
			return
		}
	case OP_ADD, OP_SUB, OP_CMP:
		err = need(3, 3)
		if err != nil {
			return
		}
		if !operands[0].Writable() {
			err = ErrTargetInvalid
			return
		}
	case OP_JMP:
		err = need(1, 1)
		if err != nil {
			return
		}
		err = asm.linkLabel(operands[0])
		if err != nil {
			return
		}
	case OP_JE, OP_JNE, OP_JL, OP_JG:
		err = need(2, 2)
		if err != nil {
			return
		}
		err = asm.linkLabel(operands[1])
		if err != nil {
			return
		}
	case OP_CALL:
		err = need(1, 2)
		if err != nil {
			return
		}
		if len(operands) == 2 && !operands[0].Writable() {
			err = ErrTargetInvalid
			return
		}
		err = asm.linkLabel(operands[len(operands)-1])
		if err != nil {
			return
		}
	case OP_RET:
		err = need(1, 1)
		if err != nil {
			return
		}
	case OP_LEAVE:
		err = need(0, 0)
		if err != nil {
			return
		}
	case OP_SYSCALL:
		err = need(1, 1)
		if err != nil {
			return
		}
		if operands[0].Kind != OPERAND_REG {
			err = ErrNameExpected
			return
		}
	}

	asm.Insts = append(asm.Insts, Instruction{Op: op, Operands: operands, LineNo: lineno})
	return
}

// checkBlocks verifies that every block entered by a transfer leaves it
// properly: a block called with a destination needs a ret before the
// next label, a block entered by a void call or a jump needs a ret or a
// leave. Blocks running to the end of the tape are exempt, since
// falling off the end terminates the program.
func (asm *Assembler) checkBlocks() (lineno int, err error) {
	bounds := slices.Sorted(maps.Values(asm.Label))

	blockEnd := func(start int) int {
		for _, bound := range bounds {
			if bound > start {
				return bound
			}
		}
		return len(asm.Insts)
	}

	for _, inst := range asm.Insts {
		label, ok := inst.Target()
		if !ok {
			continue
		}
		valued := inst.Op == OP_CALL && len(inst.Operands) == 2

		start := asm.Label[label]
		end := blockEnd(start)
		if end == len(asm.Insts) {
			continue
		}

		var hasRet, hasLeave bool
		for _, member := range asm.Insts[start:end] {
			switch member.Op {
			case OP_RET:
				hasRet = true
			case OP_LEAVE:
				hasLeave = true
			}
		}

		if valued && !hasRet {
			lineno = inst.LineNo
			err = ErrReturnMissing(label)
			return
		}
		if !valued && !hasRet && !hasLeave {
			lineno = inst.LineNo
			err = ErrLeaveMissing(label)
			return
		}
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.Insts = asm.Insts[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	// First pass: record labels against instruction indexes.
	count := 0
	for n, text := range lines {
		lineno = n + 1
		line = strings.TrimSpace(text)

		var words []string
		words, err = splitLine(line)
		if err != nil {
			return
		}
		if len(words) == 0 {
			continue
		}
		if strings.HasPrefix(words[0], ".") {
			// Directives are handled on the second pass.
			continue
		}

		words, err = asm.stripLabels(words, count, true)
		if err != nil {
			return
		}
		if len(words) > 0 {
			count++
		}
	}

	// Second pass: directives, expansions, and instructions.
	for n, text := range lines {
		lineno = n + 1
		line = strings.TrimSpace(text)

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		// Set line number.
		asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

		// Do $() evaluations
		var expanded string
		expanded, err = asm.expand(line)
		if err != nil {
			return
		}

		var words []string
		words, err = splitLine(expanded)
		if err != nil {
			return
		}
		if len(words) == 0 {
			continue
		}

		// .equ CONST VALUE
		if words[0] == ".equ" {
			if len(words) != 3 {
				err = ErrEquateSyntax
				return
			}
			_, ok := asm.Equate[words[1]]
			if ok {
				err = ErrEquateDuplicate
				return
			}
			asm.Equate[words[1]] = words[2]
			continue
		}
		if strings.HasPrefix(words[0], ".") {
			err = ErrDirectiveInvalid
			return
		}

		words, err = asm.stripLabels(words, len(asm.Insts), false)
		if err != nil {
			return
		}

		// Check for equates
		for i, word := range words {
			equate, ok := asm.Equate[word]
			if ok {
				words[i] = equate
			}
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	var blockLine int
	blockLine, err = asm.checkBlocks()
	if err != nil {
		lineno = blockLine
		line = ""
		if lineno >= 1 && lineno <= len(lines) {
			line = strings.TrimSpace(lines[lineno-1])
		}
		return
	}

	prog = &Program{
		Insts:  slices.Clone(asm.Insts),
		Labels: maps.Clone(asm.Label),
	}

	return
}

package vm

import (
	"errors"

	"github.com/Tomyk9991/asm-interpreter/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrTypeMismatch   = errors.New(f("type mismatch"))
	ErrAddressInvalid = errors.New(f("address invalid"))

	// Assembler errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrDirectiveInvalid = errors.New(f("directive invalid"))
	ErrLabelDuplicate   = errors.New(f("label duplicated"))
	ErrLabelEmpty       = errors.New(f("label empty"))
	ErrOpcodeInvalid    = errors.New(f("opcode invalid"))
	ErrOperandMissing   = errors.New(f("operand missing"))
	ErrOperandExtra     = errors.New(f("excessive operands"))
	ErrTargetInvalid    = errors.New(f("target not writable"))
	ErrNameExpected     = errors.New(f("name expected"))
	ErrQuoteUnclosed    = errors.New(f("quote unclosed"))
	ErrSlotSyntax       = errors.New(f("slot syntax"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrReturnMissing string

func (er ErrReturnMissing) Error() string {
	return f("block %v missing ret", string(er))
}

type ErrLeaveMissing string

func (el ErrLeaveMissing) Error() string {
	return f("block %v missing ret or leave", string(el))
}

type ErrSyscallUnknown string

func (es ErrSyscallUnknown) Error() string {
	return f("syscall %v unknown", string(es))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrValueNotInt Value

func (err ErrValueNotInt) Error() string {
	return f("%v is not an integer", Value(err))
}

type ErrValueNotText Value

func (err ErrValueNotText) Error() string {
	return f("%v is not text", Value(err))
}

type ErrSlotIndex int64

func (err ErrSlotIndex) Error() string {
	return f("slot index %v", int64(err))
}

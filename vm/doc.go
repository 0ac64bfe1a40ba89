// Package vm implements the assembler and machine for a small
// assembler-like language.
//
// Programs are flat instruction tapes with symbolic labels. The assembler
// parses source text in two passes, so forward label references resolve
// without fixups. The machine executes the tape over an open register file,
// a growable slot memory, and a call stack, and services host calls such
// as printf.
package vm

package vm

import (
	"bytes"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Machine", func() {
	var (
		asm *Assembler
		out *bytes.Buffer
	)

	BeforeEach(func() {
		asm = &Assembler{}
		out = &bytes.Buffer{}
	})

	run := func(program ...string) *Machine {
		prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
		Expect(err).ToNot(HaveOccurred())

		m := NewMachine(prog)
		m.Sys.Output = out
		Expect(m.Run()).To(Succeed())
		return m
	}

	Context("when running a sum", func() {
		It("should return the sum as the exit value", func() {
			m := run(
				"mov rax 5",
				"mov rbx 5",
				"add rcx rax rbx",
				"ret rcx",
			)

			value, ok := m.Exit()
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal(IntValue(10)))
		})
	})

	Context("when printing", func() {
		It("should substitute the first placeholder", func() {
			run(
				`mov rax "X={}"`,
				"mov rbx 7",
				"syscall printf",
				"leave",
			)

			Expect(out.String()).To(Equal("X=7\n"))
		})
	})

	Context("when counting down", func() {
		It("should accumulate across the loop", func() {
			m := run(
				"mov count 3",
				"mov total 0",
				"LOOP:",
				"add total total count",
				"sub count count 1",
				"cmp flag count 0",
				"jg flag LOOP",
				"ret total",
			)

			value, ok := m.Exit()
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal(IntValue(6)))
		})
	})

	Context("when calling a block", func() {
		It("should store the returned value at the destination", func() {
			m := run(
				"mov rax 3",
				"call rbx DOUBLE",
				"leave",
				"DOUBLE:",
				"add tmp rax rax",
				"ret tmp",
			)

			Expect(m.State.Register("rbx")).To(Equal(IntValue(6)))
			Expect(m.State.Frames.Empty()).To(BeTrue())
		})
	})

	Context("when interpreting a complete source", func() {
		It("should run equates, calls, and prints together", func() {
			m := run(
				".equ BASE 40",
				"mov rax BASE",
				"call rcx BUMP",
				`mov rax "answer: {}"`,
				"mov rbx rcx",
				"syscall printf",
				"ret rcx",
				"BUMP:",
				"add out rax $(BASE // 20)",
				"ret out",
			)

			Expect(out.String()).To(Equal("answer: 42\n"))

			value, ok := m.Exit()
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal(IntValue(42)))
		})
	})

	Context("when the source is malformed", func() {
		It("should reject an unknown opcode with its line", func() {
			_, err := asm.Parse(strings.NewReader("mov rax 1\nbogus rbx\n"))
			Expect(err).To(MatchError(ErrOpcodeInvalid))

			var se *ErrSyntax
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.LineNo).To(Equal(2))
			Expect(se.Line).To(Equal("bogus rbx"))
		})
	})

	Context("when a program misbehaves", func() {
		It("should report the offending line", func() {
			prog, err := asm.Parse(strings.NewReader("mov rax \"a\"\nadd rbx rax 1\nleave"))
			Expect(err).ToNot(HaveOccurred())

			m := NewMachine(prog)
			m.Sys.Output = out

			err = m.Run()
			Expect(err).To(MatchError(ErrTypeMismatch))

			var re *ErrRuntime
			Expect(errors.As(err, &re)).To(BeTrue())
			Expect(re.LineNo).To(Equal(2))
		})
	})
})

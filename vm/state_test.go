package vm

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateRegisters(t *testing.T) {
	assert := assert.New(t)

	st := NewState()

	// Any name reads as 0 before the first write.
	assert.Equal(IntValue(0), st.Register("rax"))
	assert.Equal(IntValue(0), st.Register("anything"))

	st.SetRegister("rax", IntValue(42))
	assert.Equal(IntValue(42), st.Register("rax"))
}

func TestStateEval(t *testing.T) {
	assert := assert.New(t)

	st := NewState()
	st.SetRegister("rbx", IntValue(2))
	assert.NoError(st.Memory.Store(2, TextValue("deep")))

	v, err := st.Eval(Imm(IntValue(7)))
	assert.NoError(err)
	assert.Equal(IntValue(7), v)

	v, err = st.Eval(Reg("rbx"))
	assert.NoError(err)
	assert.Equal(IntValue(2), v)

	// sp[rbx] resolves the index through the register.
	v, err = st.Eval(Slot(Reg("rbx")))
	assert.NoError(err)
	assert.Equal(TextValue("deep"), v)

	// sp[sp[rbx]] only works when the inner slot holds an integer.
	_, err = st.Eval(Slot(Slot(Reg("rbx"))))
	assert.ErrorIs(err, ErrTypeMismatch)
}

func TestStateStore(t *testing.T) {
	assert := assert.New(t)

	st := NewState()

	assert.NoError(st.Store(Reg("rcx"), IntValue(1)))
	assert.Equal(IntValue(1), st.Register("rcx"))

	assert.NoError(st.Store(Slot(Imm(IntValue(3))), IntValue(9)))
	assert.Equal(4, st.Memory.Len())

	err := st.Store(Imm(IntValue(5)), IntValue(0))
	assert.ErrorIs(err, ErrTargetInvalid)
}

func TestStateStoreTextIndex(t *testing.T) {
	assert := assert.New(t)

	st := NewState()
	st.SetRegister("rax", TextValue("nope"))

	err := st.Store(Slot(Reg("rax")), IntValue(1))
	assert.ErrorIs(err, ErrTypeMismatch)
}

func TestStateValues(t *testing.T) {
	assert := assert.New(t)

	st := NewState()
	st.SetRegister("rbx", IntValue(2))
	st.SetRegister("rax", IntValue(1))
	assert.NoError(st.Memory.Store(1, TextValue("x")))

	values := maps.Collect(st.Values())
	assert.Equal(map[string]Value{
		"rax":   IntValue(1),
		"rbx":   IntValue(2),
		"sp[0]": IntValue(0),
		"sp[1]": TextValue("x"),
	}, values)
}

func TestStateString(t *testing.T) {
	assert := assert.New(t)

	st := NewState()
	st.SetRegister("rbx", TextValue("hi"))
	st.SetRegister("rax", IntValue(5))
	assert.NoError(st.Memory.Store(3, IntValue(9)))

	expected := "       rax: 5\n" +
		"       rbx: \"hi\"\n" +
		"  sp[0..2]: 0\n" +
		"     sp[3]: 9\n"
	assert.Equal(expected, st.String())
}

func TestStateReset(t *testing.T) {
	assert := assert.New(t)

	st := NewState()
	st.SetRegister("rax", IntValue(1))
	assert.NoError(st.Memory.Store(0, IntValue(2)))
	st.Frames.Push(Frame{ReturnPC: 4})

	st.Reset()

	assert.Equal(IntValue(0), st.Register("rax"))
	assert.Equal(0, st.Memory.Len())
	assert.True(st.Frames.Empty())
}

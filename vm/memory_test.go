package vm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryLoadDefault(t *testing.T) {
	assert := assert.New(t)

	var mem Memory

	// Reads past the current extent return zero without growing.
	v, err := mem.Load(100)
	assert.NoError(err)
	assert.Equal(IntValue(0), v)
	assert.Equal(0, mem.Len())
}

func TestMemoryStoreGrows(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	assert.NoError(mem.Store(3, IntValue(9)))
	assert.Equal(4, mem.Len())

	v, err := mem.Load(3)
	assert.NoError(err)
	assert.Equal(IntValue(9), v)

	// The intermediate slots hold the zero value.
	v, err = mem.Load(1)
	assert.NoError(err)
	assert.Equal(IntValue(0), v)
}

func TestMemoryOverwrite(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	assert.NoError(mem.Store(0, IntValue(1)))
	assert.NoError(mem.Store(0, TextValue("x")))
	assert.Equal(1, mem.Len())

	v, err := mem.Load(0)
	assert.NoError(err)
	assert.Equal(TextValue("x"), v)
}

func TestMemoryInvalidAddress(t *testing.T) {
	assert := assert.New(t)

	var mem Memory

	_, err := mem.Load(-1)
	assert.ErrorIs(err, ErrAddressInvalid)

	err = mem.Store(-5, IntValue(0))
	assert.ErrorIs(err, ErrAddressInvalid)

	var index ErrSlotIndex
	assert.True(errors.As(err, &index))
	assert.Equal(int64(-5), int64(index))

	err = mem.Store(MEMORY_LIMIT, IntValue(0))
	assert.ErrorIs(err, ErrAddressInvalid)

	_, err = mem.Load(MEMORY_LIMIT)
	assert.ErrorIs(err, ErrAddressInvalid)
}

func TestMemoryReset(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	assert.NoError(mem.Store(2, IntValue(5)))
	mem.Reset()

	assert.Equal(0, mem.Len())

	v, err := mem.Load(2)
	assert.NoError(err)
	assert.Equal(IntValue(0), v)
}

package vm

import (
	"errors"
)

const (
	MEMORY_LIMIT = 1 << 16 // Maximum slot count
)

// Memory is the machine's slot storage. It grows on demand up to
// MEMORY_LIMIT slots; slots that were never written read as the
// integer 0.
type Memory struct {
	Slots []Value
}

// Load reads the slot at index. Reads past the written extent return
// the zero value without growing the storage.
func (mem *Memory) Load(index int64) (value Value, err error) {
	if index < 0 || index >= MEMORY_LIMIT {
		err = errors.Join(ErrAddressInvalid, ErrSlotIndex(index))
		return
	}
	if index >= int64(len(mem.Slots)) {
		return
	}

	value = mem.Slots[index]
	return
}

// Store writes the slot at index, growing the storage with zero values
// as needed.
func (mem *Memory) Store(index int64, value Value) (err error) {
	if index < 0 || index >= MEMORY_LIMIT {
		err = errors.Join(ErrAddressInvalid, ErrSlotIndex(index))
		return
	}
	for int64(len(mem.Slots)) <= index {
		mem.Slots = append(mem.Slots, Value{})
	}

	mem.Slots[index] = value
	return
}

// Len returns the written extent of the storage.
func (mem *Memory) Len() int {
	return len(mem.Slots)
}

func (mem *Memory) Reset() {
	if len(mem.Slots) > 0 {
		mem.Slots = mem.Slots[:0]
	}
}

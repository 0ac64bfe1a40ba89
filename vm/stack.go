package vm

// Frame is one call stack entry. Dest, when set, is where the matching
// ret stores its value in the caller's context.
type Frame struct {
	ReturnPC int      // Instruction index to resume at.
	Dest     *Operand // Destination for the returned value, if any.
}

// CallStack tracks pending returns. Calls and taken jumps push, ret
// and leave pop. Popping the empty stack is how the top-level block
// terminates the program, so there is no depth limit and no underflow
// error.
type CallStack struct {
	Frames []Frame
}

func (cs *CallStack) Push(frame Frame) {
	cs.Frames = append(cs.Frames, frame)
}

func (cs *CallStack) Pop() (frame Frame, ok bool) {
	frame, ok = cs.Peek()
	if ok {
		cs.Frames = cs.Frames[:len(cs.Frames)-1]
	}
	return
}

func (cs *CallStack) Peek() (frame Frame, ok bool) {
	if cs.Empty() {
		return
	}

	return cs.Frames[len(cs.Frames)-1], true
}

func (cs *CallStack) Empty() bool {
	return len(cs.Frames) == 0
}

func (cs *CallStack) Depth() int {
	return len(cs.Frames)
}

func (cs *CallStack) Reset() {
	if len(cs.Frames) > 0 {
		cs.Frames = cs.Frames[:0]
	}
}

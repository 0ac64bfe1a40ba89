package vm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Register conventions for the printf host call.
const (
	PRINTF_FORMAT_REG  = "rax" // Template text.
	PRINTF_VALUE_REG   = "rbx" // Substituted value.
	PRINTF_PLACEHOLDER = "{}"
)

// Syscalls is the host call surface reached by the syscall
// instruction. Names are ordinary identifiers until dispatched, so an
// unknown name is a runtime failure, not a load failure.
type Syscalls struct {
	Output io.Writer // Destination for printf. Defaults to stdout.
}

// Dispatch runs the named host call against the machine state.
func (sys *Syscalls) Dispatch(name string, st *State) (err error) {
	switch name {
	case "printf":
		err = sys.printf(st)
	default:
		err = ErrSyscallUnknown(name)
	}

	return
}

// printf writes the template from the format register, with the first
// placeholder replaced by the value register's raw rendering, and a
// trailing newline. Extra placeholders stay literal; a template
// without one prints as-is.
func (sys *Syscalls) printf(st *State) (err error) {
	format := st.Register(PRINTF_FORMAT_REG)
	if format.Kind != KIND_TEXT {
		err = errors.Join(ErrTypeMismatch, ErrValueNotText(format))
		return
	}

	value := st.Register(PRINTF_VALUE_REG)
	text := strings.Replace(format.Text, PRINTF_PLACEHOLDER, value.Render(), 1)

	out := sys.Output
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintln(out, text)
	return
}

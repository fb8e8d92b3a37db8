package vm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Known failure kinds. Errors returned by a Machine resolve to one of
// these through errors.Is or errors.Cause.
var (
	ErrInvalidOpcode  = errors.New("invalid opcode")
	ErrInvalidMode    = errors.New("invalid address mode")
	ErrInvalidAddress = errors.New("invalid address")
	ErrInputExhausted = errors.New("input exhausted")
	ErrHalted         = errors.New("machine halted")
	ErrStepLimit      = errors.New("step limit reached")
)

// Error defines a runtime error raised by a specific instruction.
type Error struct {
	IP     int   // Address of the failing instruction.
	Opcode int   // Opcode of the failing instruction.
	Err    error // One of the ErrXXX values.
	Msg    string
}

// NewError creates a new, formatted error message for the instruction at ip.
func NewError(ip, opcode int, err error, f string, argv ...interface{}) *Error {
	return &Error{
		IP:     ip,
		Opcode: opcode,
		Err:    err,
		Msg:    fmt.Sprintf(f, argv...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04d: %s", e.IP, e.Msg)
}

// Cause returns the failure kind.
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the failure kind.
func (e *Error) Unwrap() error { return e.Err }

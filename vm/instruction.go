package vm

import (
	"fmt"
	"strings"

	"github.com/hexaflex/intcode/arch"
	"github.com/pkg/errors"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP     int        // Instruction address.
	Opcode int        // Instruction opcode.
	Argc   int        // Number of operands in use.
	Args   [3]Operand // Operand A, B and C.
}

// Decode decodes the instruction at address ip from the given memory bank.
// rb is the current relative base. Operands are validated against the
// instruction set and memory limit in c.
func (i *Instruction) Decode(m Memory, ip int, rb int64, c *Config) error {
	i.IP = ip

	opcode, modes := arch.Split(m.At(ip))
	i.Opcode = opcode

	i.Argc = arch.Argc(opcode)
	if i.Argc < 0 || !c.Features.Supports(opcode) {
		i.Argc = 0
		return NewError(ip, opcode, ErrInvalidOpcode, "invalid opcode %d", m.At(ip))
	}

	target := arch.Target(opcode)
	for j := 0; j < i.Argc; j++ {
		op := &i.Args[j]
		op.Mode = modes[j]

		if !c.Features.SupportsMode(op.Mode) || (j == target && op.Mode == arch.Immediate) {
			return NewError(ip, opcode, ErrInvalidMode, "invalid address mode %d for operand %d", int(op.Mode), j)
		}

		if err := op.Decode(m, ip+1+j, rb, c.memoryLimit()); err != nil {
			return NewError(ip, opcode, ErrInvalidAddress, "operand %d: %v", j, err)
		}
	}

	return nil
}

// Width returns the number of cells occupied by the instruction.
func (i *Instruction) Width() int {
	return arch.Width(i.Opcode)
}

// String returns a human-readable form of the instruction.
func (i *Instruction) String() string {
	name, ok := arch.Name(i.Opcode)
	if !ok {
		name = fmt.Sprintf("%02d", i.Opcode)
	}

	var sb strings.Builder
	for j := 0; j < i.Argc; j++ {
		if j > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(i.Args[j].String())
	}

	return strings.TrimRight(fmt.Sprintf("%04d %5s %s", i.IP, name, sb.String()), " ")
}

// Operand defines decoded instruction operand data.
type Operand struct {
	Raw     int64            // Operand as stored in the program.
	Address int              // Resolved address. For immediate operands, the address of the operand itself.
	Value   int64            // Dereferenced value behind the address, if applicable. Otherwise same as Raw.
	Mode    arch.AddressMode // Address mode.
}

// Decode reads the operand stored at addr and resolves it according to its mode.
// Resolved addresses must lie in [0, limit).
func (op *Operand) Decode(m Memory, addr int, rb int64, limit int) error {
	op.Raw = m.At(addr)

	switch op.Mode {
	case arch.Immediate:
		op.Address = addr
		op.Value = op.Raw
		return nil

	case arch.Relative:
		return op.resolve(m, op.Raw+rb, limit)

	default:
		return op.resolve(m, op.Raw, limit)
	}
}

func (op *Operand) resolve(m Memory, addr int64, limit int) error {
	if addr < 0 || addr >= int64(limit) {
		return errors.Errorf("address %d out of range", addr)
	}
	op.Address = int(addr)
	op.Value = m.At(op.Address)
	return nil
}

func (op *Operand) String() string {
	switch op.Mode {
	case arch.Immediate:
		return fmt.Sprintf("$%d", op.Raw)
	case arch.Relative:
		return fmt.Sprintf("[rb%+d]", op.Raw)
	default:
		return fmt.Sprintf("[%d]", op.Raw)
	}
}

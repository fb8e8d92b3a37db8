// Package vm implements the intcode machine.
package vm

import (
	"io"

	"github.com/hexaflex/intcode/arch"
)

// Machine implements the runtime.
//
// A machine owns its memory, registers, input queue and output log.
// It is not safe for concurrent use; distinct machines share nothing.
type Machine struct {
	config Config      // Machine configuration.
	memory Memory      // System memory.
	instr  Instruction // Decoded instruction data.
	input  []int64     // Pending input values.
	output []int64     // Everything emitted so far.
	ip     int         // Instruction pointer.
	rb     int64       // Relative base register.
	steps  uint64      // Number of instructions executed.
	state  State       // Execution state.
}

// New creates a new machine for the given program and initial input.
// Both slices are copied.
func New(program, input []int64, c Config) *Machine {
	if c.Trace == nil {
		c.Trace = func(*Instruction) { /* nop */ }
	}

	return &Machine{
		config: c,
		memory: newMemory(program, c.Headroom),
		input:  append([]int64(nil), input...),
	}
}

// AddInput appends the given values to the input queue.
func (c *Machine) AddInput(values ...int64) {
	c.input = append(c.input, values...)
}

// Pending returns the number of unread input values.
func (c *Machine) Pending() int {
	return len(c.input)
}

// Output returns a copy of every value emitted so far, oldest first.
func (c *Machine) Output() []int64 {
	return append([]int64(nil), c.output...)
}

// LastOutput returns the most recently emitted value.
// Returns false if nothing was emitted yet.
func (c *Machine) LastOutput() (int64, bool) {
	if len(c.output) == 0 {
		return 0, false
	}
	return c.output[len(c.output)-1], true
}

// Memory returns the machine's memory bank.
// It must be treated as read-only.
func (c *Machine) Memory() Memory {
	return c.memory
}

// State returns the current execution state.
func (c *Machine) State() State { return c.state }

// Halted returns true once the machine executed a HALT instruction.
func (c *Machine) Halted() bool { return c.state == Halted }

// PC returns the address of the next instruction.
func (c *Machine) PC() int { return c.ip }

// RelativeBase returns the current value of the relative base register.
func (c *Machine) RelativeBase() int64 { return c.rb }

// Steps returns the number of instructions executed so far.
func (c *Machine) Steps() uint64 { return c.steps }

// Execute runs the program until it halts, fails, or, when configured to
// suspend on output, until it emitted a single value.
//
// A failed instruction leaves the machine as it was before that
// instruction. Execute can be called again after ErrInputExhausted once
// more input has been added.
func (c *Machine) Execute() error {
	for {
		err := c.Step()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if c.state == Suspended {
			return nil
		}
	}
}

// Step performs a single execution step.
// Returns io.EOF if the step executed a HALT instruction.
func (c *Machine) Step() error {
	switch c.state {
	case Halted:
		return NewError(c.ip, arch.HALT, ErrHalted, "machine halted")
	case Suspended:
		c.state = Running
	}

	if c.config.MaxSteps > 0 && c.steps >= c.config.MaxSteps {
		opcode, _ := arch.Split(c.memory.At(c.ip))
		return NewError(c.ip, opcode, ErrStepLimit, "step limit of %d reached", c.config.MaxSteps)
	}

	instr := &c.instr
	args := instr.Args[:]

	if err := instr.Decode(c.memory, c.ip, c.rb, &c.config); err != nil {
		return err
	}

	if instr.Opcode == arch.IN && len(c.input) == 0 {
		return NewError(c.ip, instr.Opcode, ErrInputExhausted, "input exhausted")
	}

	c.config.Trace(instr)

	next := c.ip + instr.Width()

	switch instr.Opcode {
	case arch.ADD:
		c.memory.Set(args[2].Address, args[0].Value+args[1].Value)
	case arch.MUL:
		c.memory.Set(args[2].Address, args[0].Value*args[1].Value)

	case arch.IN:
		c.memory.Set(args[0].Address, c.input[0])
		c.input = c.input[1:]
	case arch.OUT:
		c.output = append(c.output, args[0].Value)
		if c.config.SuspendOnOutput {
			c.state = Suspended
		}

	case arch.JNZ:
		if args[0].Value != 0 {
			ip, err := c.jumpTarget(args[1].Value)
			if err != nil {
				return err
			}
			next = ip
		}
	case arch.JEZ:
		if args[0].Value == 0 {
			ip, err := c.jumpTarget(args[1].Value)
			if err != nil {
				return err
			}
			next = ip
		}

	case arch.CLT:
		c.memory.Set(args[2].Address, boolToInt(args[0].Value < args[1].Value))
	case arch.CEQ:
		c.memory.Set(args[2].Address, boolToInt(args[0].Value == args[1].Value))

	case arch.ARB:
		c.rb += args[0].Value

	case arch.HALT:
		c.steps++
		c.state = Halted
		return io.EOF
	}

	c.steps++
	c.ip = next
	return nil
}

// jumpTarget validates the given branch destination.
func (c *Machine) jumpTarget(addr int64) (int, error) {
	if addr < 0 || addr >= int64(c.config.memoryLimit()) {
		return 0, NewError(c.ip, c.instr.Opcode, ErrInvalidAddress, "jump target %d out of range", addr)
	}
	return int(addr), nil
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

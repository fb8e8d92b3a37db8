package main

import (
	"fmt"
	"time"

	"github.com/hexaflex/intcode/vm"
)

// Controller controls the execution of a machine.
type Controller struct {
	machine *vm.Machine
	elapsed time.Duration
}

// NewController creates a new controller for a machine running the given program.
func NewController(program, input []int64, c vm.Config) *Controller {
	return &Controller{
		machine: vm.New(program, input, c),
	}
}

// Machine returns the controlled machine.
func (c *Controller) Machine() *vm.Machine {
	return c.machine
}

// Execute runs the machine until it halts, suspends or fails.
func (c *Controller) Execute() error {
	start := time.Now()
	err := c.machine.Execute()
	c.elapsed += time.Since(start)
	return err
}

// Elapsed returns the total time spent executing.
func (c *Controller) Elapsed() time.Duration {
	return c.elapsed
}

// Frequency returns the average number of instructions executed per second.
func (c *Controller) Frequency() float64 {
	if c.elapsed <= 0 {
		return 0
	}
	return float64(c.machine.Steps()) / c.elapsed.Seconds()
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}

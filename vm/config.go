package vm

import "github.com/hexaflex/intcode/arch"

// TraceFunc represents a callback handler for debug trace output.
// It is called once for every instruction, right before it executes.
// Instructions which fail to decode and IN instructions waiting for
// input are not traced.
type TraceFunc func(*Instruction)

// Config defines machine configuration.
//
// The zero value describes a basic machine without headroom. Use
// DefaultConfig for the full instruction set.
type Config struct {
	Features        arch.Feature // Supported instruction set.
	SuspendOnOutput bool         // Return from Execute after every OUT instruction?
	Headroom        int          // Number of zeroed cells appended to the program.
	MemoryLimit     int          // Highest addressable cell + 1. Zero means DefaultMemoryLimit.
	MaxSteps        uint64       // Instruction budget. Zero means unlimited.
	Trace           TraceFunc    // Optional handler for debug trace output.
}

// DefaultConfig returns a configuration for the extended instruction set
// which runs to completion.
func DefaultConfig() Config {
	return Config{
		Features:    arch.Extended,
		Headroom:    DefaultHeadroom,
		MemoryLimit: DefaultMemoryLimit,
	}
}

func (c *Config) memoryLimit() int {
	if c.MemoryLimit <= 0 {
		return DefaultMemoryLimit
	}
	return c.MemoryLimit
}

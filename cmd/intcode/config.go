package main

import (
	"bytes"
	"io"
	"os"

	"github.com/hexaflex/intcode/arch"
	"github.com/hexaflex/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config defines program configuration.
//
// Values are taken from the defaults, then from an optional YAML file,
// then from explicitly set command line flags.
type Config struct {
	Features    string `yaml:"features"`     // Instruction set revision.
	Headroom    int    `yaml:"headroom"`     // Zeroed cells appended to a loaded program.
	MemoryLimit int    `yaml:"memory_limit"` // Highest addressable cell + 1.
	MaxSteps    uint64 `yaml:"max_steps"`    // Instruction budget per machine. Zero means unlimited.
	Trace       bool   `yaml:"trace"`        // Print instruction trace data?
	Verbose     bool   `yaml:"verbose"`      // Log progress information?
}

// defaultConfig returns the default program configuration.
func defaultConfig() *Config {
	return &Config{
		Features:    arch.FeatureName(arch.Extended),
		Headroom:    vm.DefaultHeadroom,
		MemoryLimit: vm.DefaultMemoryLimit,
	}
}

// Load reads configuration values from the given YAML file.
// Keys missing from the file keep their current value.
func (c *Config) Load(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "config")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrapf(err, "config: %s", file)
	}
	return nil
}

// merge copies values from file into c, unless the corresponding flag
// was set explicitly on the command line.
func (c *Config) merge(file *Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if !flags.Changed("features") {
		c.Features = file.Features
	}
	if !flags.Changed("headroom") {
		c.Headroom = file.Headroom
	}
	if !flags.Changed("memory-limit") {
		c.MemoryLimit = file.MemoryLimit
	}
	if !flags.Changed("max-steps") {
		c.MaxSteps = file.MaxSteps
	}
	if !flags.Changed("trace") {
		c.Trace = file.Trace
	}
	if !flags.Changed("verbose") {
		c.Verbose = file.Verbose
	}
}

// Machine returns the machine configuration described by c.
func (c *Config) Machine(trace vm.TraceFunc) (vm.Config, error) {
	features, ok := arch.Features(c.Features)
	if !ok {
		return vm.Config{}, errors.Errorf("unknown instruction set %q", c.Features)
	}

	if c.Headroom < 0 {
		return vm.Config{}, errors.Errorf("invalid headroom %d", c.Headroom)
	}

	if c.MemoryLimit <= 0 {
		return vm.Config{}, errors.Errorf("invalid memory limit %d", c.MemoryLimit)
	}

	mc := vm.Config{
		Features:    features,
		Headroom:    c.Headroom,
		MemoryLimit: c.MemoryLimit,
		MaxSteps:    c.MaxSteps,
	}

	if c.Trace {
		mc.Trace = trace
	}

	return mc, nil
}

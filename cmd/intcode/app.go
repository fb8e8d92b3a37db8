package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/hexaflex/intcode/amp"
	"github.com/hexaflex/intcode/arch"
	"github.com/hexaflex/intcode/program"
	"github.com/hexaflex/intcode/search"
	"github.com/hexaflex/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// App defines application context.
type App struct {
	config     *Config   // Application configuration.
	configFile string    // Optional YAML file holding configuration overrides.
	out        io.Writer // Destination for program results.
	traceOut   io.Writer // Destination for instruction trace data.
}

// NewApp creates a new application instance writing results to out
// and trace data to traceOut.
func NewApp(out, traceOut io.Writer) *App {
	return &App{
		config:   defaultConfig(),
		out:      out,
		traceOut: traceOut,
	}
}

// loadConfig applies the configuration file, if one was given.
func (a *App) loadConfig(cmd *cobra.Command) error {
	if a.configFile == "" {
		return nil
	}

	file := defaultConfig()
	if err := file.Load(a.configFile); err != nil {
		return err
	}

	a.config.merge(file, cmd)
	return nil
}

// machineConfig returns the machine configuration for the current settings.
func (a *App) machineConfig() (vm.Config, error) {
	return a.config.Machine(a.printTrace)
}

// logf logs progress information if verbose output is enabled.
func (a *App) logf(f string, argv ...interface{}) {
	if a.config.Verbose {
		log.Printf(f, argv...)
	}
}

// loadProgram loads the program stored in the given file.
func (a *App) loadProgram(file string) ([]int64, error) {
	a.logf("loading %s", file)

	p, err := program.Load(file)
	if err != nil {
		return nil, err
	}

	a.logf("loaded %d values", len(p))
	return p, nil
}

// runOptions defines settings for the run command.
type runOptions struct {
	Input   string   // Comma-separated initial input.
	Suspend bool     // Print output values as they are produced.
	Patches []string // addr=value pairs applied before execution.
	Show    []int    // Addresses to print after execution.
}

// run executes a single program.
func (a *App) run(file string, opt *runOptions) error {
	p, err := a.loadProgram(file)
	if err != nil {
		return err
	}

	if err := applyPatches(p, opt.Patches); err != nil {
		return err
	}

	input, err := parseList(opt.Input)
	if err != nil {
		return errors.Wrapf(err, "input")
	}

	mc, err := a.machineConfig()
	if err != nil {
		return err
	}
	mc.SuspendOnOutput = opt.Suspend

	ctl := NewController(p, input, mc)
	m := ctl.Machine()

	for {
		if err := ctl.Execute(); err != nil {
			return err
		}

		if m.Halted() {
			break
		}

		v, _ := m.LastOutput()
		fmt.Fprintln(a.out, v)
	}

	if !opt.Suspend {
		if out := m.Output(); len(out) > 0 {
			fmt.Fprintln(a.out, program.Format(out))
		}
	}

	for _, addr := range opt.Show {
		fmt.Fprintf(a.out, "%d: %d\n", addr, m.Memory().At(addr))
	}

	a.logf("executed %d instructions in %v (%s)",
		m.Steps(), ctl.Elapsed(), prettyFrequency(ctl.Frequency()))
	return nil
}

// amplifyOptions defines settings for the amplify command.
type amplifyOptions struct {
	Phases   string // Comma-separated phase settings.
	Feedback bool   // Connect the last amplifier back to the first?
	Fixed    bool   // Use the phases in the given order instead of searching.
}

// amplify runs an amplifier circuit.
func (a *App) amplify(ctx context.Context, file string, opt *amplifyOptions) error {
	p, err := a.loadProgram(file)
	if err != nil {
		return err
	}

	if opt.Phases == "" {
		opt.Phases = "0,1,2,3,4"
		if opt.Feedback {
			opt.Phases = "5,6,7,8,9"
		}
	}

	phases, err := parseList(opt.Phases)
	if err != nil {
		return errors.Wrapf(err, "phases")
	}

	mc, err := a.machineConfig()
	if err != nil {
		return err
	}

	c := &amp.Circuit{Program: p, Config: mc}

	var signal int64
	switch {
	case opt.Fixed && opt.Feedback:
		signal, err = c.Feedback(phases, 0)
	case opt.Fixed:
		signal, err = c.Chain(phases, 0)
	default:
		a.logf("trying %d phase orderings", len(amp.Permutations(phases)))
		signal, phases, err = c.MaxSignal(ctx, phases, opt.Feedback)
	}

	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "signal: %d\n", signal)
	fmt.Fprintf(a.out, "phases: %s\n", program.Format(phases))
	return nil
}

// searchOptions defines settings for the search command.
type searchOptions struct {
	Target int64 // Value expected at address 0.
	Max    int64 // Highest noun and verb to try.
}

// search finds the noun and verb producing the target value.
func (a *App) search(ctx context.Context, file string, opt *searchOptions) error {
	p, err := a.loadProgram(file)
	if err != nil {
		return err
	}

	mc, err := a.machineConfig()
	if err != nil {
		return err
	}

	r, err := search.Find(ctx, p, opt.Target, search.Options{Max: opt.Max, Config: mc})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "noun: %d\nverb: %d\nanswer: %d\n", r.Noun, r.Verb, r.Answer())
	return nil
}

// disasm writes a program listing.
func (a *App) disasm(file string) error {
	p, err := a.loadProgram(file)
	if err != nil {
		return err
	}

	features, ok := arch.Features(a.config.Features)
	if !ok {
		return errors.Errorf("unknown instruction set %q", a.config.Features)
	}

	return vm.Disassemble(a.out, p, features)
}

// printTrace prints instruction trace data.
func (a *App) printTrace(i *vm.Instruction) {
	var sb strings.Builder
	sb.Grow(120)
	sb.WriteString(i.String())

	pad(&sb, 40)

	for j := 0; j < i.Argc; j++ {
		argv := i.Args[j]
		if argv.Mode == arch.Immediate {
			continue
		}
		fmt.Fprintf(&sb, " %04d=%d", argv.Address, argv.Value)
	}

	fmt.Fprintln(a.traceOut, sb.String())
}

// applyPatches applies addr=value pairs to the given program.
func applyPatches(p []int64, patches []string) error {
	for _, patch := range patches {
		kv := strings.SplitN(patch, "=", 2)
		if len(kv) != 2 {
			return errors.Errorf("invalid patch %q; expected addr=value", patch)
		}

		addr, err := strconv.Atoi(strings.TrimSpace(kv[0]))
		if err != nil || addr < 0 || addr >= len(p) {
			return errors.Errorf("invalid patch address %q", kv[0])
		}

		value, err := strconv.ParseInt(strings.TrimSpace(kv[1]), 10, 64)
		if err != nil {
			return errors.Errorf("invalid patch value %q", kv[1])
		}

		p[addr] = value
	}
	return nil
}

// parseList parses a comma-separated list of integers.
// Returns nil for an empty string.
func parseList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return program.ParseString(s)
}

// pad padds sb with spaces until it reaches the given size.
var pad = func() func(*strings.Builder, int) {
	set := strings.Repeat(" ", 80)
	return func(sb *strings.Builder, size int) {
		if sb.Len() >= size {
			return
		}
		if size > len(set) {
			size = len(set)
		}
		if size < sb.Len() {
			size = sb.Len()
		}
		sb.WriteString(set[:size-sb.Len()])
	}
}()

// Package amp implements amplifier circuits: series of intcode machines
// running the same program, where each machine's output becomes the
// next machine's input.
package amp

import (
	"context"
	"runtime"

	"github.com/hexaflex/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Known circuit failures.
var (
	ErrNoAmplifiers = errors.New("circuit has no amplifiers")
	ErrNoOutput     = errors.New("amplifier produced no output")
)

// Circuit defines a series of amplifiers sharing one program.
type Circuit struct {
	Program []int64   // Program loaded into every amplifier.
	Config  vm.Config // Machine configuration. SuspendOnOutput is managed by the circuit.
}

// New creates a new circuit for the given program using the default
// machine configuration.
func New(program []int64) *Circuit {
	return &Circuit{
		Program: program,
		Config:  vm.DefaultConfig(),
	}
}

// Chain runs one amplifier per phase setting, in order. Each amplifier
// receives its phase setting followed by the previous amplifier's last
// output and runs to completion. The first amplifier receives signal.
// Returns the last amplifier's final output.
func (c *Circuit) Chain(phases []int64, signal int64) (int64, error) {
	if len(phases) == 0 {
		return 0, ErrNoAmplifiers
	}

	config := c.Config
	config.SuspendOnOutput = false

	for i, phase := range phases {
		m := vm.New(c.Program, []int64{phase, signal}, config)
		if err := m.Execute(); err != nil {
			return 0, errors.Wrapf(err, "amplifier %d", i)
		}

		v, ok := m.LastOutput()
		if !ok {
			return 0, errors.Wrapf(ErrNoOutput, "amplifier %d", i)
		}
		signal = v
	}

	return signal, nil
}

// Feedback runs one amplifier per phase setting in a loop: the last
// amplifier's output is fed back into the first one. Amplifiers are
// resumed in round-robin order, one output value at a time, until the
// last amplifier halts. Returns the last amplifier's final output.
func (c *Circuit) Feedback(phases []int64, signal int64) (int64, error) {
	if len(phases) == 0 {
		return 0, ErrNoAmplifiers
	}

	config := c.Config
	config.SuspendOnOutput = true

	machines := make([]*vm.Machine, len(phases))
	for i, phase := range phases {
		machines[i] = vm.New(c.Program, []int64{phase}, config)
	}

	last := machines[len(machines)-1]
	for !last.Halted() {
		for i, m := range machines {
			m.AddInput(signal)
			if err := m.Execute(); err != nil {
				return 0, errors.Wrapf(err, "amplifier %d", i)
			}

			v, ok := m.LastOutput()
			if !ok {
				return 0, errors.Wrapf(ErrNoOutput, "amplifier %d", i)
			}
			signal = v
		}
	}

	return signal, nil
}

// MaxSignal tries every ordering of the given phase settings and returns
// the highest final signal along with the ordering which produced it.
// Orderings are evaluated concurrently unless a trace handler is set.
// Ties resolve to the ordering which comes first in Permutations order.
// The initial signal is 0.
func (c *Circuit) MaxSignal(ctx context.Context, phases []int64, feedback bool) (int64, []int64, error) {
	perms := Permutations(phases)
	results := make([]int64, len(perms))

	run := c.Chain
	if feedback {
		run = c.Feedback
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(c.Config))

	for i := range perms {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			v, err := run(perms[i], 0)
			if err != nil {
				return errors.Wrapf(err, "phases %v", perms[i])
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, nil, err
	}

	best := 0
	for i := range results {
		if results[i] > results[best] {
			best = i
		}
	}

	return results[best], perms[best], nil
}

// Permutations returns every ordering of values. Orderings are generated
// in lexicographic order of the positions in values.
func Permutations(values []int64) [][]int64 {
	var out [][]int64

	used := make([]bool, len(values))
	cur := make([]int64, 0, len(values))

	var walk func()
	walk = func() {
		if len(cur) == len(values) {
			out = append(out, append([]int64(nil), cur...))
			return
		}

		for i, v := range values {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, v)
			walk()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}

	walk()
	return out
}

// workers returns the number of orderings evaluated at once. With a trace
// handler installed, orderings run one after the other so that trace
// output of different circuits does not interleave.
func workers(c vm.Config) int {
	if c.Trace != nil {
		return 1
	}
	return runtime.NumCPU()
}

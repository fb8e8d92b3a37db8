// Package search finds the noun and verb which make a program leave a
// target value at address 0. The noun is stored at address 1 and the
// verb at address 2 before the program runs.
package search

import (
	"context"
	"runtime"

	"github.com/hexaflex/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultMax is the highest noun and verb value tried by default.
const DefaultMax = 99

// ErrNotFound is returned when no noun/verb pair produces the target value.
var ErrNotFound = errors.New("no noun/verb pair produces the target value")

// Result defines a matching noun/verb pair.
type Result struct {
	Noun int64
	Verb int64
}

// Answer returns the combined form of the pair: 100 * noun + verb.
func (r Result) Answer() int64 {
	return 100*r.Noun + r.Verb
}

// Options defines search configuration.
type Options struct {
	Max    int64     // Highest noun and verb value to try. Zero means DefaultMax.
	Config vm.Config // Machine configuration.
}

// DefaultOptions returns the default search configuration.
func DefaultOptions() Options {
	return Options{
		Max:    DefaultMax,
		Config: vm.DefaultConfig(),
	}
}

// Run runs program with the given noun and verb and returns the value
// left at address 0. The program itself is not modified.
func Run(program []int64, noun, verb int64, c vm.Config) (int64, error) {
	if len(program) < 3 {
		return 0, errors.Errorf("search: program too short (%d values)", len(program))
	}

	patched := append([]int64(nil), program...)
	patched[1] = noun
	patched[2] = verb

	m := vm.New(patched, nil, c)
	if err := m.Execute(); err != nil {
		return 0, errors.Wrapf(err, "noun %d, verb %d", noun, verb)
	}

	return m.Memory().At(0), nil
}

// Find returns the pair with the lowest noun, then the lowest verb, for
// which Run yields target. Nouns are searched concurrently unless a
// trace handler is set.
func Find(ctx context.Context, program []int64, target int64, opt Options) (Result, error) {
	limit := opt.Max
	if limit <= 0 {
		limit = DefaultMax
	}

	verbs := make([]int64, limit+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(opt.Config))

	for noun := int64(0); noun <= limit; noun++ {
		verbs[noun] = -1

		g.Go(func() error {
			for verb := int64(0); verb <= limit; verb++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				v, err := Run(program, noun, verb, opt.Config)
				if err != nil {
					return err
				}

				if v == target {
					verbs[noun] = verb
					return nil
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	for noun, verb := range verbs {
		if verb >= 0 {
			return Result{Noun: int64(noun), Verb: verb}, nil
		}
	}

	return Result{}, ErrNotFound
}

// workers returns the number of nouns searched at once. With a trace
// handler installed, runs happen one after the other so that trace
// output of different runs does not interleave.
func workers(c vm.Config) int {
	if c.Trace != nil {
		return 1
	}
	return runtime.NumCPU()
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hexaflex/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quine = "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"

func TestRun(t *testing.T) {
	out, _, err := execute(t, "run", writeFile(t, "quine.txt", quine))
	require.NoError(t, err)
	assert.Equal(t, quine+"\n", out)

	const compare = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

	out, _, err = execute(t, "run", "--input", "8", writeFile(t, "compare.txt", compare))
	require.NoError(t, err)
	assert.Equal(t, "1000\n", out)
}

func TestRunSuspend(t *testing.T) {
	out, _, err := execute(t, "run", "--suspend", writeFile(t, "out.txt", "104,1,104,2,99"))
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
}

func TestRunPatch(t *testing.T) {
	file := writeFile(t, "gravity.txt", "1,0,0,3,2,3,11,0,99,30,40,50")

	out, _, err := execute(t, "run", "--features", "basic", "--patch", "1=9", "--patch", "2=10", "--show", "0,3", file)
	require.NoError(t, err)
	assert.Equal(t, "0: 3500\n3: 70\n", out)

	_, _, err = execute(t, "run", "--patch", "12=1", file)
	require.EqualError(t, err, `invalid patch address "12"`)

	_, _, err = execute(t, "run", "--patch", "1", file)
	require.EqualError(t, err, `invalid patch "1"; expected addr=value`)
}

func TestRunErrors(t *testing.T) {
	_, _, err := execute(t, "run", writeFile(t, "bad.txt", "98"))
	require.EqualError(t, err, "0000: invalid opcode 98")

	_, _, err = execute(t, "run", writeFile(t, "in.txt", "3,0,99"))
	require.True(t, errors.Is(err, vm.ErrInputExhausted), "unexpected error: %v", err)

	_, _, err = execute(t, "run", "--max-steps", "10", writeFile(t, "loop.txt", "1105,1,0"))
	require.True(t, errors.Is(err, vm.ErrStepLimit), "unexpected error: %v", err)

	_, _, err = execute(t, "run", "--features", "turbo", writeFile(t, "halt.txt", "99"))
	require.EqualError(t, err, `unknown instruction set "turbo"`)

	_, _, err = execute(t, "run", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestAmplify(t *testing.T) {
	chain := writeFile(t, "chain.txt", "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	feedback := writeFile(t, "feedback.txt", "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5")

	out, _, err := execute(t, "amplify", chain)
	require.NoError(t, err)
	assert.Equal(t, "signal: 43210\nphases: 4,3,2,1,0\n", out)

	out, _, err = execute(t, "amplify", "--fixed", "--phases", "4,3,2,1,0", chain)
	require.NoError(t, err)
	assert.Equal(t, "signal: 43210\nphases: 4,3,2,1,0\n", out)

	out, _, err = execute(t, "amplify", "--feedback", feedback)
	require.NoError(t, err)
	assert.Equal(t, "signal: 139629729\nphases: 9,8,7,6,5\n", out)

	out, _, err = execute(t, "amplify", "--feedback", "--fixed", "--phases", "9,8,7,6,5", feedback)
	require.NoError(t, err)
	assert.Equal(t, "signal: 139629729\nphases: 9,8,7,6,5\n", out)
}

func TestSearch(t *testing.T) {
	file := writeFile(t, "sum.txt", "1101,0,0,0,99")

	out, _, err := execute(t, "search", "--target", "150", file)
	require.NoError(t, err)
	assert.Equal(t, "noun: 51\nverb: 99\nanswer: 5199\n", out)

	_, _, err = execute(t, "search", file)
	require.Error(t, err)
}

func TestDisasm(t *testing.T) {
	out, _, err := execute(t, "disasm", writeFile(t, "mul.txt", "1002,4,3,4,33"))
	require.NoError(t, err)
	assert.Equal(t, "0000   MUL [4], $3, [4]\n0004  DATA 33\n", out)
}

func TestTrace(t *testing.T) {
	out, trace, err := execute(t, "run", "--trace", writeFile(t, "add.txt", "1101,1,1,0,99"))
	require.NoError(t, err)
	assert.Equal(t, "", out)

	lines := strings.Split(strings.TrimSpace(trace), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "0000   ADD $1, $1, [0]"), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], " 0000=1101"), lines[0])
	assert.Equal(t, "0004  HALT", strings.TrimSpace(lines[1]))
}

func TestConfigFile(t *testing.T) {
	file := writeFile(t, "out.txt", "104,1,99")
	config := writeFile(t, "config.yaml", "features: basic\nmax_steps: 100\n")

	_, _, err := execute(t, "--config", config, "run", file)
	require.EqualError(t, err, "0000: invalid opcode 104")

	out, _, err := execute(t, "--config", config, "--features", "extended", "run", file)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	empty := writeFile(t, "empty.yaml", "")
	out, _, err = execute(t, "--config", empty, "run", file)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	bad := writeFile(t, "bad.yaml", "feature: basic\n")
	_, _, err = execute(t, "--config", bad, "run", file)
	require.Error(t, err)
}

func TestConfigMachine(t *testing.T) {
	c := defaultConfig()
	mc, err := c.Machine(nil)
	require.NoError(t, err)
	require.Equal(t, vm.DefaultConfig().Features, mc.Features)
	require.Equal(t, vm.DefaultHeadroom, mc.Headroom)

	c.Headroom = -1
	_, err = c.Machine(nil)
	require.Error(t, err)

	c = defaultConfig()
	c.MemoryLimit = 0
	_, err = c.Machine(nil)
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, AppVendor+" "+AppName+" "), out)
}

func TestPrettyFrequency(t *testing.T) {
	assert.Equal(t, "12.00 Hz", prettyFrequency(12))
	assert.Equal(t, "1.50 KHz", prettyFrequency(1500))
	assert.Equal(t, "2.25 MHz", prettyFrequency(2.25e6))
	assert.Equal(t, "1.00 GHz", prettyFrequency(1e9))
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, trace bytes.Buffer
	cmd := NewApp(&out, &trace).Command()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), trace.String(), err
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(data), 0644))
	return file
}

package program

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quine = "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"

func TestParse(t *testing.T) {
	for _, v := range []struct {
		src  string
		want []int64
	}{
		{"99", []int64{99}},
		{"1,0,0,0,99\n", []int64{1, 0, 0, 0, 99}},
		{"  3, -4 ,\t5 \r\n", []int64{3, -4, 5}},
		{"104,1125899906842624,99", []int64{104, 1125899906842624, 99}},
		{"-9223372036854775808,9223372036854775807", []int64{-9223372036854775808, 9223372036854775807}},
	} {
		have, err := ParseString(v.src)
		require.NoError(t, err, "%q", v.src)
		assert.Equal(t, v.want, have, "%q", v.src)
	}
}

func TestParseErrors(t *testing.T) {
	for _, v := range []struct {
		src string
		msg string
	}{
		{"", "program: empty input"},
		{" \n", "program: empty input"},
		{"1,,2", `program: invalid value "" at index 1`},
		{"1,2,x", `program: invalid value "x" at index 2`},
		{"1 2", `program: invalid value "1 2" at index 0`},
		{"9223372036854775808", `program: invalid value "9223372036854775808" at index 0`},
	} {
		_, err := ParseString(v.src)
		require.Error(t, err, "%q", v.src)
		assert.Equal(t, v.msg, err.Error())
	}
}

func TestFormatRoundTrip(t *testing.T) {
	program, err := Parse(strings.NewReader(quine + "\n"))
	require.NoError(t, err)
	require.Equal(t, quine, Format(program))
	require.Equal(t, "", Format(nil))
}

func TestSaveRead(t *testing.T) {
	program := []int64{3, 26, 1001, 26, -4, 26, 99}

	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, Save(&buf, program, compress))

		if compress {
			require.True(t, bytes.HasPrefix(buf.Bytes(), gzipMagic))
		} else {
			require.Equal(t, "3,26,1001,26,-4,26,99\n", buf.String())
		}

		have, err := Read(&buf)
		require.NoError(t, err)
		require.Equal(t, program, have)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(plain, []byte(quine+"\n"), 0644))

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(quine))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	packed := filepath.Join(dir, "input.txt.gz")
	require.NoError(t, os.WriteFile(packed, buf.Bytes(), 0644))

	for _, file := range []string{plain, packed} {
		program, err := Load(file)
		require.NoError(t, err, file)
		require.Equal(t, quine, Format(program))
	}

	_, err = Load(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("1,x"), 0644))
	_, err = Load(bad)
	require.EqualError(t, err, bad+`: program: invalid value "x" at index 1`)
}

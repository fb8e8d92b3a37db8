// Package program defines the textual intcode program format: a single
// line of comma-separated signed integers.
package program

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse reads a program from r.
func Parse(r io.Reader) ([]int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "program")
	}
	return ParseString(string(data))
}

// ParseString parses the given program text. Surrounding whitespace is
// ignored, both for the text as a whole and for each individual value.
func ParseString(src string) ([]int64, error) {
	src = strings.TrimSpace(src)
	if len(src) == 0 {
		return nil, errors.New("program: empty input")
	}

	fields := strings.Split(src, ",")
	out := make([]int64, len(fields))

	for i, f := range fields {
		f = strings.TrimSpace(f)
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Errorf("program: invalid value %q at index %d", f, i)
		}
		out[i] = v
	}

	return out, nil
}

// Format returns the textual form of the given program.
// It is the inverse of ParseString.
func Format(program []int64) string {
	var sb strings.Builder
	for i, v := range program {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}

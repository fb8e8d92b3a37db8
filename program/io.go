package program

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"

	"github.com/pkg/errors"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Load reads the program stored in the given file.
// Gzip compressed files are decompressed transparently.
func Load(file string) ([]int64, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	program, err := Read(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", file)
	}
	return program, nil
}

// Read reads a program from r, which may be gzip compressed.
func Read(r io.Reader) ([]int64, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "program")
	}

	if !bytes.Equal(magic, gzipMagic) {
		return Parse(br)
	}

	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, errors.Wrapf(err, "program: invalid gzip stream")
	}

	defer gz.Close()
	return Parse(gz)
}

// Save writes the textual form of program to w, followed by a newline.
// The output is gzip compressed if compress is set.
func Save(w io.Writer, program []int64, compress bool) (err error) {
	if compress {
		gz := gzip.NewWriter(w)
		defer func() {
			if cerr := gz.Close(); err == nil {
				err = cerr
			}
		}()
		w = gz
	}

	_, err = io.WriteString(w, Format(program)+"\n")
	return errors.Wrapf(err, "program")
}

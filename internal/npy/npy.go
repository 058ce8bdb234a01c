// Package npy reads and writes 2D float32 arrays in the NumPy .npy
// format (version 1.0), so generated images load directly with
// numpy.load. Only C-order little-endian float32 is supported, which
// is the only layout the generator produces.
package npy

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
)

var magic = []byte("\x93NUMPY")

// headerRe extracts descr, fortran_order and shape from a v1.0 header
// dict. NumPy writes the keys in this exact order.
var headerRe = regexp.MustCompile(`'descr':\s*'([^']+)',\s*'fortran_order':\s*(True|False),\s*'shape':\s*\((\d+),\s*(\d+)\)`)

// Write serializes a rows x cols float32 array in .npy v1.0 format.
func Write(w io.Writer, rows, cols int, data []float32) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("invalid shape (%d, %d)", rows, cols)
	}
	if len(data) != rows*cols {
		return fmt.Errorf("data length %d does not match shape (%d, %d)", len(data), rows, cols)
	}

	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d), }", rows, cols)
	// Pad so that magic + version + length field + header is a
	// multiple of 64 bytes, with a trailing newline.
	total := len(magic) + 2 + 2 + len(header) + 1
	pad := (64 - total%64) % 64
	for i := 0; i < pad; i++ {
		header += " "
	}
	header += "\n"

	if _, err := w.Write(magic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	_, err := w.Write(buf)
	return err
}

// Read parses a .npy v1.0 stream written by Write and returns the
// array shape and data.
func Read(r io.Reader) (rows, cols int, data []float32, err error) {
	head := make([]byte, 8)
	if _, err = io.ReadFull(r, head); err != nil {
		return 0, 0, nil, fmt.Errorf("read preamble: %w", err)
	}
	if string(head[:6]) != string(magic) {
		return 0, 0, nil, fmt.Errorf("not a .npy file")
	}
	if head[6] != 1 {
		return 0, 0, nil, fmt.Errorf("unsupported .npy version %d.%d", head[6], head[7])
	}

	lenField := make([]byte, 2)
	if _, err = io.ReadFull(r, lenField); err != nil {
		return 0, 0, nil, fmt.Errorf("read header length: %w", err)
	}
	headerLen := binary.LittleEndian.Uint16(lenField)

	header := make([]byte, headerLen)
	if _, err = io.ReadFull(r, header); err != nil {
		return 0, 0, nil, fmt.Errorf("read header: %w", err)
	}

	m := headerRe.FindSubmatch(header)
	if m == nil {
		return 0, 0, nil, fmt.Errorf("unsupported .npy header: %s", header)
	}
	if string(m[1]) != "<f4" {
		return 0, 0, nil, fmt.Errorf("unsupported dtype %q, want '<f4'", m[1])
	}
	if string(m[2]) != "False" {
		return 0, 0, nil, fmt.Errorf("fortran-order arrays are not supported")
	}
	rows, _ = strconv.Atoi(string(m[3]))
	cols, _ = strconv.Atoi(string(m[4]))
	if rows <= 0 || cols <= 0 {
		return 0, 0, nil, fmt.Errorf("invalid shape (%d, %d)", rows, cols)
	}

	buf := make([]byte, 4*rows*cols)
	if _, err = io.ReadFull(r, buf); err != nil {
		return 0, 0, nil, fmt.Errorf("read pixel data: %w", err)
	}
	data = make([]float32, rows*cols)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return rows, cols, data, nil
}

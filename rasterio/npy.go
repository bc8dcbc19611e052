// SPDX-License-Identifier: MIT

package rasterio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/difftrace/field"
	"github.com/klauspost/compress/zstd"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

const (
	// ExtNpy is the suffix of plain NumPy array files.
	ExtNpy = ".npy"
	// ExtNpyZst is the suffix of zstd-compressed NumPy array files.
	ExtNpyZst = ".npy.zst"
)

// trimExt returns the stem of name and whether name carries a field suffix.
func trimExt(name string) (stem string, compressed, ok bool) {
	switch {
	case strings.HasSuffix(name, ExtNpyZst):
		return strings.TrimSuffix(name, ExtNpyZst), true, true
	case strings.HasSuffix(name, ExtNpy):
		return strings.TrimSuffix(name, ExtNpy), false, true
	}

	return name, false, false
}

// DecodeField reads one 2D .npy array from r and widens it to float64.
// Boolean, signed, unsigned and floating dtypes of any byte order are
// accepted; Fortran-ordered arrays are transposed into row-major order.
func DecodeField(r io.Reader) (*field.Field, error) {
	rr, err := npyio.NewReader(r)
	if err != nil {
		return nil, err
	}
	descr := rr.Header.Descr
	if len(descr.Shape) != 2 || descr.Shape[0] == 0 || descr.Shape[1] == 0 {
		return nil, fmt.Errorf("shape %v: %w", descr.Shape, ErrNotMatrix)
	}
	rows, cols := descr.Shape[0], descr.Shape[1]

	data, err := readFloats(rr, descr.Type)
	if err != nil {
		return nil, err
	}
	if descr.Fortran {
		data = transpose(data, cols, rows)
	}

	return field.FromData(rows, cols, data)
}

// readFloats decodes the payload of rr according to dtype ("<f4", "|u1",
// ">i8", ...).
func readFloats(rr *npyio.Reader, dtype string) ([]float64, error) {
	if len(dtype) < 2 {
		return nil, fmt.Errorf("dtype %q: %w", dtype, ErrDType)
	}
	switch dtype[1:] {
	case "b1":
		var raw []bool
		if err := rr.Read(&raw); err != nil {
			return nil, err
		}
		out := make([]float64, len(raw))
		for i, v := range raw {
			if v {
				out[i] = 1
			}
		}
		return out, nil
	case "u1":
		return widen[uint8](rr)
	case "i1":
		return widen[int8](rr)
	case "u2":
		return widen[uint16](rr)
	case "i2":
		return widen[int16](rr)
	case "u4":
		return widen[uint32](rr)
	case "i4":
		return widen[int32](rr)
	case "u8":
		return widen[uint64](rr)
	case "i8":
		return widen[int64](rr)
	case "f4":
		return widen[float32](rr)
	case "f8":
		var raw []float64
		if err := rr.Read(&raw); err != nil {
			return nil, err
		}
		return raw, nil
	}

	return nil, fmt.Errorf("dtype %q: %w", dtype, ErrDType)
}

// number lists the element types readFloats widens.
type number interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~uint64 | ~int64 | ~float32
}

// widen reads the payload as []T and converts it to float64.
func widen[T number](rr *npyio.Reader) ([]float64, error) {
	var raw []T
	if err := rr.Read(&raw); err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = float64(v)
	}

	return out, nil
}

// transpose turns a row-major rows×cols buffer into its cols×rows transpose.
func transpose(data []float64, rows, cols int) []float64 {
	out := make([]float64, len(data))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j*rows+i] = data[i*cols+j]
		}
	}

	return out
}

// EncodeField writes f to w as a float64 .npy array.
func EncodeField(w io.Writer, f *field.Field) error {
	if f == nil {
		return field.ErrNilField
	}
	data := make([]float64, len(f.Data()))
	copy(data, f.Data())

	return npyio.Write(w, mat.NewDense(f.Rows(), f.Cols(), data))
}

// ReadField loads the field stored at path (.npy or .npy.zst).
func ReadField(path string) (*field.Field, error) {
	_, compressed, ok := trimExt(path)
	if !ok {
		return nil, fmt.Errorf("read %q: %w", path, ErrUnknownExtension)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var r io.Reader = bufio.NewReader(fh)
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}
	f, err := DecodeField(r)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	return f, nil
}

// WriteField stores f at path, compressing when path ends in .npy.zst.
func WriteField(path string, f *field.Field) (err error) {
	_, compressed, ok := trimExt(path)
	if !ok {
		return fmt.Errorf("write %q: %w", path, ErrUnknownExtension)
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(fh)
	var w io.Writer = bw
	var enc *zstd.Encoder
	if compressed {
		if enc, err = zstd.NewWriter(bw); err != nil {
			return fmt.Errorf("write %q: %w", path, err)
		}
		w = enc
	}
	if err = EncodeField(w, f); err != nil {
		if enc != nil {
			_ = enc.Close()
		}
		return fmt.Errorf("write %q: %w", path, err)
	}
	if enc != nil {
		if err = enc.Close(); err != nil {
			return fmt.Errorf("write %q: %w", path, err)
		}
	}

	return bw.Flush()
}

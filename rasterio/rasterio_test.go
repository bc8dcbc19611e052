// SPDX-License-Identifier: MIT

package rasterio_test

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/difftrace/field"
	"github.com/katalvlaran/difftrace/rasterio"
	"github.com/katalvlaran/difftrace/threshold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustField(t *testing.T, rows [][]float64) *field.Field {
	t.Helper()
	f, err := field.FromRows(rows)
	require.NoError(t, err)
	return f
}

func TestReadWriteField(t *testing.T) {
	dir := t.TempDir()
	f := mustField(t, [][]float64{{0, 0.25, 1}, {2.5, -1, 7}})

	for _, name := range []string{"plain.npy", "packed.npy.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, rasterio.WriteField(path, f))
			got, err := rasterio.ReadField(path)
			require.NoError(t, err)
			assert.Equal(t, f.Shape(), got.Shape())
			assert.Equal(t, f.Data(), got.Data())
		})
	}
}

// npyBytes builds a version 1.0 .npy file holding payload with the given
// dtype and shape (rows, cols).
func npyBytes(t *testing.T, dtype string, fortran bool, rows, cols int, payload any) []byte {
	t.Helper()
	order := "False"
	if fortran {
		order = "True"
	}
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': (%d, %d), }", dtype, order, rows, cols)
	// magic (6) + version (2) + length (2) + dict + padding + '\n' is a multiple of 64.
	pad := 64 - (10+len(dict)+1)%64
	header := dict + strings.Repeat(" ", pad%64) + "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(len(header))))
	buf.WriteString(header)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, payload))
	return buf.Bytes()
}

// TestDecodeField_DTypes widens every common NumPy element type.
func TestDecodeField_DTypes(t *testing.T) {
	want := []float64{0, 1, 1, 0, 2, 3}
	tests := []struct {
		dtype   string
		payload any
		want    []float64
	}{
		{"<f8", []float64{0, 1, 1, 0, 2, 3}, want},
		{"<f4", []float32{0, 1, 1, 0, 2, 3}, want},
		{"|u1", []uint8{0, 1, 1, 0, 2, 3}, want},
		{"|i1", []int8{0, -1, 1, 0, 2, 3}, []float64{0, -1, 1, 0, 2, 3}},
		{"<u2", []uint16{0, 1, 1, 0, 2, 3}, want},
		{"<i2", []int16{0, 1, 1, 0, 2, 3}, want},
		{"<i4", []int32{0, 1, 1, 0, 2, 3}, want},
		{"<u4", []uint32{0, 1, 1, 0, 2, 3}, want},
		{"<i8", []int64{0, 1, 1, 0, -2, 3}, []float64{0, 1, 1, 0, -2, 3}},
		{"<u8", []uint64{0, 1, 1, 0, 2, 3}, want},
		{"|b1", []bool{false, true, true, false, true, true}, []float64{0, 1, 1, 0, 1, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.dtype, func(t *testing.T) {
			raw := npyBytes(t, tc.dtype, false, 2, 3, tc.payload)
			f, err := rasterio.DecodeField(bytes.NewReader(raw))
			require.NoError(t, err)
			assert.Equal(t, field.Shape{Rows: 2, Cols: 3}, f.Shape())
			assert.Equal(t, tc.want, f.Data())
		})
	}
}

// TestDecodeField_Fortran reads a column-major array into row-major order.
func TestDecodeField_Fortran(t *testing.T) {
	// [[1, 2, 3], [4, 5, 6]] stored column by column.
	raw := npyBytes(t, "|u1", true, 2, 3, []uint8{1, 4, 2, 5, 3, 6})
	f, err := rasterio.DecodeField(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, f.ToRows())
}

// TestReadField_BoolMask loads a boolean step-0 mask from disk.
func TestReadField_BoolMask(t *testing.T) {
	path := filepath.Join(t.TempDir(), "00.npy")
	require.NoError(t, os.WriteFile(path, npyBytes(t, "|b1", false, 2, 2, []bool{true, false, false, true}), 0o644))
	f, err := rasterio.ReadField(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 1}, f.Data())
}

func TestDecodeField_Unsupported(t *testing.T) {
	raw := npyBytes(t, "<c16", false, 1, 1, []float64{0, 0})
	_, err := rasterio.DecodeField(bytes.NewReader(raw))
	require.ErrorIs(t, err, rasterio.ErrDType)
}

func TestReadField_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := rasterio.ReadField(filepath.Join(dir, "x.txt"))
	require.ErrorIs(t, err, rasterio.ErrUnknownExtension)

	_, err = rasterio.ReadField(filepath.Join(dir, "missing.npy"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.npy")
	require.NoError(t, os.WriteFile(bad, []byte("not an array"), 0o644))
	_, err = rasterio.ReadField(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.npy")
}

// writeStack stores one constant field per step.
func writeStack(t *testing.T, dir string, names map[string]float64) {
	t.Helper()
	for name, v := range names {
		f, err := field.Filled(2, 2, v)
		require.NoError(t, err)
		require.NoError(t, rasterio.WriteField(filepath.Join(dir, name), f))
	}
}

func TestOpenStack(t *testing.T) {
	dir := t.TempDir()
	writeStack(t, dir, map[string]float64{"02.npy": 9, "00.npy.zst": 1, "10.npy": 0, "01.npy": 6})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.yaml"), []byte("x: 1\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.npy"), 0o755))

	s, err := rasterio.OpenStack(dir)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 10}, s.Steps())
	assert.Equal(t, 4, s.Len())

	first, err := s.First()
	require.NoError(t, err)
	assert.Equal(t, 1.0, first.Max())

	// The stack feeds the threshold scan directly.
	var src threshold.Source = s
	rank, err := threshold.Scan(src, field.Shape{Rows: 2, Cols: 2}, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2, 2}, rank.Data())
}

func TestOpenStack_Errors(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		_, err := rasterio.OpenStack(filepath.Join(t.TempDir(), "nope"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("bad name", func(t *testing.T) {
		dir := t.TempDir()
		writeStack(t, dir, map[string]float64{"00.npy": 1, "final.npy": 2})
		_, err := rasterio.OpenStack(dir)
		require.ErrorIs(t, err, rasterio.ErrBadStepName)
		assert.Contains(t, err.Error(), "final.npy")
	})
	t.Run("duplicate", func(t *testing.T) {
		dir := t.TempDir()
		writeStack(t, dir, map[string]float64{"3.npy": 1, "03.npy.zst": 2})
		_, err := rasterio.OpenStack(dir)
		require.ErrorIs(t, err, rasterio.ErrDuplicateStep)
	})
	t.Run("empty", func(t *testing.T) {
		s, err := rasterio.OpenStack(t.TempDir())
		require.NoError(t, err)
		assert.Zero(t, s.Len())
		_, err = s.First()
		require.Error(t, err)
	})
}

func TestStepName(t *testing.T) {
	assert.Equal(t, "07.npy", rasterio.StepName(7, false))
	assert.Equal(t, "12.npy.zst", rasterio.StepName(12, true))
}

func TestLoadMask(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(1, 0, color.Gray{Y: 128}) // on the level: outside
	img.SetGray(2, 1, color.Gray{Y: 129})

	path := filepath.Join(t.TempDir(), "mask.png")
	fh, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(fh, img))
	require.NoError(t, fh.Close())

	m, err := rasterio.LoadMask(path, rasterio.PNG{})
	require.NoError(t, err)
	assert.Equal(t, field.Shape{Rows: 2, Cols: 3}, m.Shape())
	assert.Equal(t, []bool{true, false, false, false, false, true}, m.Bits())
	assert.Equal(t, 2, m.Count())
}

func TestGray(t *testing.T) {
	f := mustField(t, [][]float64{{-1, 0, 0.5}, {1, 2, 1}})
	img := rasterio.Gray(f, 0, 1)
	assert.Equal(t, []uint8{0, 0, 128, 255, 255, 255}, img.Pix)

	flat := rasterio.Gray(f, 1, 1)
	assert.Equal(t, make([]uint8, 6), flat.Pix)
}

func TestWriteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A_00.png")
	f := mustField(t, [][]float64{{0, 1}, {1, 0}})
	require.NoError(t, rasterio.WriteSnapshot(path, f))

	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()
	img, err := rasterio.PNG{}.Decode(fh)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
}

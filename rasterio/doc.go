// SPDX-License-Identifier: MIT

// Package rasterio moves fields and masks between disk and memory.
//
// What:
//
//   - Fields are NumPy .npy files holding a 2D numeric or boolean array
//     (widened to float64 on read, written as float64), optionally
//     zstd-compressed (.npy.zst). ReadField and WriteField pick the codec
//     from the file suffix.
//   - A stack is a directory of such files named by their integer step
//     ("00.npy", "01.npy.zst", ...). OpenStack lists and sorts them;
//     *Stack satisfies threshold.Source and decodes lazily, one field at a
//     time.
//   - Masks are raster images (PNG, JPEG, GIF, TIFF, BMP, WebP). A cell is
//     inside the region when its luminance exceeds MaskLevel.
//   - Snapshots are grayscale PNG renderings of fields.
//
// Errors:
//
//   - ErrBadStepName      - a stack file stem is not an integer.
//   - ErrDuplicateStep    - two stack files parse to the same step.
//   - ErrNotMatrix        - a .npy file does not hold a 2D array.
//   - ErrDType            - a .npy element type is neither numeric nor bool.
//   - ErrUnknownExtension - a path has neither .npy nor .npy.zst suffix.
package rasterio

// SPDX-License-Identifier: MIT

package rasterio

import "errors"

var (
	// ErrBadStepName indicates a stack file whose stem is not an integer.
	ErrBadStepName = errors.New("rasterio: file name is not an integer step")

	// ErrDuplicateStep indicates two stack files with the same step.
	ErrDuplicateStep = errors.New("rasterio: duplicate step")

	// ErrNotMatrix indicates an array file that is not a 2D array.
	ErrNotMatrix = errors.New("rasterio: array is not two-dimensional")

	// ErrDType indicates an array element type that is not numeric or boolean.
	ErrDType = errors.New("rasterio: unsupported array dtype")

	// ErrUnknownExtension indicates a path with an unsupported suffix.
	ErrUnknownExtension = errors.New("rasterio: unsupported file extension")
)

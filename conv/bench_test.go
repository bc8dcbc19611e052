// SPDX-License-Identifier: MIT

package conv_test

import (
	"testing"

	"github.com/katalvlaran/difftrace/conv"
	"github.com/katalvlaran/difftrace/field"
	"github.com/katalvlaran/difftrace/kernel"
)

// benchmarkDirect convolves an n×n field with a Gaussian of diameter kd.
func benchmarkDirect(b *testing.B, n, kd, workers int) {
	src, _ := field.Filled(n, n, 1)
	dst, _ := field.New(n, n)
	k, err := kernel.Gaussian2D(kd, float64(kd))
	if err != nil {
		b.Fatalf("Gaussian2D failed: %v", err)
	}
	c := conv.Direct{Workers: workers}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Convolve(dst, src, k); err != nil {
			b.Fatalf("Convolve failed: %v", err)
		}
	}
}

func BenchmarkDirect_64_K9_Serial(b *testing.B)   { benchmarkDirect(b, 64, 9, 1) }
func BenchmarkDirect_64_K9_Parallel(b *testing.B) { benchmarkDirect(b, 64, 9, 0) }
func BenchmarkDirect_301_K60(b *testing.B)        { benchmarkDirect(b, 301, 60, 0) }

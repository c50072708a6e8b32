package schur_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/schur"
)

// benchmarkSorted runs one backend on an n-state operator with a
// geometrically decaying spectrum, resetting the timer after setup.
func benchmarkSorted(b *testing.B, n, m int, method schur.Method) {
	d := make([]float64, n)
	for i := range d {
		d[i] = math.Pow(0.9, float64(i))
	}
	diag := mat.NewDense(n, n, nil)
	for i, v := range d {
		diag.Set(i, i, v)
	}
	p := conjugated(diag)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := schur.Sorted(p, m, method); err != nil {
			b.Fatalf("Sorted failed: %v", err)
		}
	}
}

// BenchmarkSorted_DenseDirectSmall benchmarks the swap-based reorder on a 20-state operator.
func BenchmarkSorted_DenseDirectSmall(b *testing.B) {
	benchmarkSorted(b, 20, 3, schur.DenseDirect)
}

// BenchmarkSorted_DenseDirectMedium benchmarks the swap-based reorder on an 80-state operator.
func BenchmarkSorted_DenseDirectMedium(b *testing.B) {
	benchmarkSorted(b, 80, 3, schur.DenseDirect)
}

// BenchmarkSorted_DenseSortedSmall benchmarks the cutoff-based reorder on a 20-state operator.
func BenchmarkSorted_DenseSortedSmall(b *testing.B) {
	benchmarkSorted(b, 20, 3, schur.DenseSorted)
}

// BenchmarkSorted_DenseSortedMedium benchmarks the cutoff-based reorder on an 80-state operator.
func BenchmarkSorted_DenseSortedMedium(b *testing.B) {
	benchmarkSorted(b, 80, 3, schur.DenseSorted)
}

// BenchmarkSorted_IterativeMedium benchmarks the Krylov–Schur backend on an 80-state operator.
func BenchmarkSorted_IterativeMedium(b *testing.B) {
	benchmarkSorted(b, 80, 3, schur.Iterative)
}

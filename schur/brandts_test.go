package schur_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/eigen"
	"github.com/katalvlaran/spectral/schur"
)

func TestSortedDirectRoundTrip(t *testing.T) {
	t.Parallel()

	p := conjugated(diagOf(1.0, 0.8, 0.6, 0.4, 0.2))

	res, err := schur.Sorted(p, 2, schur.DenseDirect)
	require.NoError(t, err)
	requireRoundTrip(t, p, res.R, res.Q, 1e-8)

	// All blocks are 1×1, so the swaps place the dominant eigenvalues on
	// the leading diagonal in descending order.
	require.InDelta(t, 1.0, res.R.At(0, 0), 1e-8)
	require.InDelta(t, 0.8, res.R.At(1, 1), 1e-8)
	require.InDelta(t, 1.0, real(res.Values[0]), 1e-8)
	require.InDelta(t, 0.8, real(res.Values[1]), 1e-8)
	require.InDelta(t, 0.7, res.Cutoff, 1e-8)
}

func TestSortedDirectConjugatePairSwap(t *testing.T) {
	t.Parallel()

	// Spectrum {1.0, 0.7 ± 0.2i, 0.3, 0.1}: the 2×2 pair block must
	// travel as a unit during the swaps.
	b := mat.NewDense(5, 5, nil)
	b.Set(0, 0, 0.3)
	b.Set(1, 1, 0.7)
	b.Set(1, 2, 0.2)
	b.Set(2, 1, -0.2)
	b.Set(2, 2, 0.7)
	b.Set(3, 3, 1.0)
	b.Set(4, 4, 0.1)
	p := conjugated(b)

	res, err := schur.Sorted(p, 3, schur.DenseDirect)
	require.NoError(t, err)
	requireRoundTrip(t, p, res.R, res.Q, 1e-8)

	lead := leadingValues(t, res.R, 3, eigen.ByLargestMagnitude)
	require.InDelta(t, 1.0, real(lead[0]), 1e-8)
	require.InDelta(t, 0.7, real(lead[1]), 1e-8)
	require.InDelta(t, 0.2, imag(lead[1]), 1e-8)

	// Values mirror the reordered diagonal blocks.
	require.InDelta(t, 1.0, real(res.Values[0]), 1e-8)
	require.InDelta(t, 0.7, real(res.Values[1]), 1e-8)
	require.InDelta(t, 0.2, imag(res.Values[1]), 1e-8)
	require.InDelta(t, 0.7, real(res.Values[2]), 1e-8)
	require.InDelta(t, -0.2, imag(res.Values[2]), 1e-8)
}

func TestSortedDirectLargestRealPart(t *testing.T) {
	t.Parallel()

	// -0.95 wins on magnitude but 0.9 wins on real part.
	p := conjugated(diagOf(0.9, -0.95, 0.3, 0.1))

	res, err := schur.Sorted(p, 1, schur.DenseDirect,
		schur.WithCriterion(eigen.ByLargestRealPart))
	require.NoError(t, err)
	require.InDelta(t, 0.9, res.R.At(0, 0), 1e-8)

	res, err = schur.Sorted(p, 1, schur.DenseDirect)
	require.NoError(t, err)
	require.InDelta(t, -0.95, res.R.At(0, 0), 1e-8)
}

func TestSortedDirectAgreesWithSorted(t *testing.T) {
	t.Parallel()

	p := conjugated(diagOf(1.0, 0.6, 0.45, 0.25, 0.1))

	direct, err := schur.Sorted(p, 3, schur.DenseDirect)
	require.NoError(t, err)
	cutoffed, err := schur.Sorted(p, 3, schur.DenseSorted)
	require.NoError(t, err)

	require.InDelta(t, cutoffed.Cutoff, direct.Cutoff, 1e-12)

	// The backends may order the leading blocks differently; the leading
	// eigenvalue sets must agree.
	a := append([]complex128(nil), direct.Values[:3]...)
	b := append([]complex128(nil), cutoffed.Values[:3]...)
	eigen.SortByCriterion(a, eigen.ByLargestMagnitude)
	eigen.SortByCriterion(b, eigen.ByLargestMagnitude)
	for i := 0; i < 3; i++ {
		require.InDelta(t, real(b[i]), real(a[i]), 1e-8)
	}
}

func TestSortedDirectAccuracyWarning(t *testing.T) {
	t.Parallel()

	// An upper-triangular operand with the dominant eigenvalues at the
	// bottom forces actual swaps; a deliberately wrong Sylvester solution
	// then makes the rotations inexact and the residual diagnostic must
	// notice.
	p := mat.NewDense(4, 4, []float64{
		0.2, 0.5, 0.3, 0.1,
		0.0, 0.4, 0.2, 0.1,
		0.0, 0.0, 1.0, 0.3,
		0.0, 0.0, 0.0, 0.7,
	})

	res, err := schur.Sorted(p, 2, schur.DenseDirect,
		schur.WithSylvesterSolver(perturbedSylvester{eigen.NewLAPACK()}))
	require.NoError(t, err)
	require.True(t, res.Report.Has(schur.WarnReorderAccuracy))

	// The exact solver leaves only rounding-level residuals, far below a
	// generous threshold.
	res, err = schur.Sorted(p, 2, schur.DenseDirect,
		schur.WithAccuracyThreshold(1e3))
	require.NoError(t, err)
	require.False(t, res.Report.Has(schur.WarnReorderAccuracy))
}

// perturbedSylvester adds a fixed offset to every solution entry.
type perturbedSylvester struct {
	real eigen.SylvesterSolver
}

func (s perturbedSylvester) SolveSylvester(a, b, c *mat.Dense) (*mat.Dense, float64, error) {
	x, scale, err := s.real.SolveSylvester(a, b, c)
	if err != nil {
		return nil, 0, err
	}
	rows, cols := x.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x.Set(i, j, x.At(i, j)+1e-6)
		}
	}

	return x, scale, nil
}

package eigen_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/eigen"
)

func TestDenseEigenvaluesDiagonal(t *testing.T) {
	t.Parallel()

	p := mat.NewDense(3, 3, []float64{
		1.0, 0, 0,
		0, 0.5, 0,
		0, 0, 0.2,
	})

	vals, err := eigen.NewDense().Eigenvalues(p)
	require.NoError(t, err)
	require.Len(t, vals, 3)

	eigen.SortByCriterion(vals, eigen.ByLargestMagnitude)
	require.InDelta(t, 1.0, real(vals[0]), 1e-12)
	require.InDelta(t, 0.5, real(vals[1]), 1e-12)
	require.InDelta(t, 0.2, real(vals[2]), 1e-12)
	for _, v := range vals {
		require.InDelta(t, 0, imag(v), 1e-12)
	}
}

func TestDenseEigenvaluesConjugatePair(t *testing.T) {
	t.Parallel()

	// 2×2 rotation-scaled block has eigenvalues 0.6 ± 0.1i.
	p := mat.NewDense(2, 2, []float64{
		0.6, 0.1,
		-0.1, 0.6,
	})

	vals, err := eigen.NewDense().Eigenvalues(p)
	require.NoError(t, err)
	require.Len(t, vals, 2)

	eigen.SortByCriterion(vals, eigen.ByLargestMagnitude)
	require.InDelta(t, 0.6, real(vals[0]), 1e-12)
	require.InDelta(t, 0.1, imag(vals[0]), 1e-12)
	require.InDelta(t, 0.6, real(vals[1]), 1e-12)
	require.InDelta(t, -0.1, imag(vals[1]), 1e-12)
}

func TestDenseEigenvaluesBadInput(t *testing.T) {
	t.Parallel()

	_, err := eigen.NewDense().Eigenvalues(nil)
	require.ErrorIs(t, err, eigen.ErrBadInput)

	_, err = eigen.NewDense().Eigenvalues(mat.NewDense(2, 3, nil))
	require.ErrorIs(t, err, eigen.ErrBadInput)
}

package schur

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/eigen"
)

// TopEigenvalues sorts the m+1 dominant eigenvalues of p up and checks
// that clustering into m clusters would not split a complex-conjugate
// pair.
//
// When m+1 is small relative to n (m+1 < n-1) only the top m+1
// eigenvalues are extracted with the partial eigensolver; otherwise the
// full spectrum is computed densely and sorted. Both paths produce the
// same logical ordering: descending by the criterion score, conjugate
// pairs adjacent with the positive-imaginary member first.
//
// Contracts:
//   - p non-nil square n×n, 1 ≤ m ≤ n-1.
//   - by ∈ {eigen.ByLargestMagnitude, eigen.ByLargestRealPart}.
//
// Errors:
//   - ErrNilMatrix / ErrNonSquare / ErrBadClusterCount on bad inputs.
//   - eigen.ErrBadCriterion on an undefined criterion.
//   - ErrNaNEigenvalue when any computed eigenvalue is NaN.
//   - ErrSplitConjugatePair when the m-th and (m+1)-th dominant
//     eigenvalues score equally within tolerance; conjugate pairs must
//     stay together inside one real Schur block, so the caller must
//     request one cluster more or less.
//
// Pure: p is never mutated and no state is retained.
//
// Complexity: O(n³) dense path; partial path is the iterative solver's
// cost, typically far below O(n³) for m+1 ≪ n.
func TopEigenvalues(p mat.Matrix, m int, by eigen.Criterion, opts ...Option) ([]complex128, error) {
	return topEigenvalues(p, m, by, gatherOptions(opts...))
}

func topEigenvalues(p mat.Matrix, m int, by eigen.Criterion, o *Options) ([]complex128, error) {
	n, err := validateProblem(p, m)
	if err != nil {
		return nil, err
	}
	if !by.Valid() {
		return nil, eigen.ErrBadCriterion
	}

	// Stage 1: top m+1 eigenvalues, partial or dense by matrix size.
	k := m + 1
	var top []complex128
	if k < n-1 {
		top, err = o.partial.PartialEigenvalues(p, k, by)
		if err != nil {
			return nil, err
		}
	} else {
		var all []complex128
		all, err = o.dense.Eigenvalues(p)
		if err != nil {
			return nil, err
		}
		if hasNaN(all) {
			// NaN would poison the sort; reject before ordering.
			return nil, ErrNaNEigenvalue
		}
		eigen.SortByCriterion(all, by)
		top = all[:k]
	}
	if hasNaN(top) {
		return nil, ErrNaNEigenvalue
	}

	// Stage 2: the boundary eigenvalues must be separated under the
	// criterion, otherwise the cutoff midpoint is degenerate and a
	// conjugate pair would be torn apart.
	in, out := by.Score(top[m-1]), by.Score(top[m])
	if math.Abs(in-out) <= o.pairATol+o.pairRTol*math.Abs(out) {
		return nil, ErrSplitConjugatePair
	}

	return top, nil
}

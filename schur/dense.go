package schur

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/eigen"
)

// SortedDense performs a full real Schur decomposition of p while
// sorting up the m dominant eigenvalues (and associated Schur vectors):
// the selector establishes the boundary eigenvalues, their score
// midpoint becomes the cutoff, and every diagonal block scoring above
// the cutoff is moved to the leading positions, conjugate 2×2 blocks
// intact.
//
// Contracts: as TopEigenvalues; additionally the achieved leading
// dimension must equal m exactly.
//
// Errors: everything TopEigenvalues returns, plus eigen.ErrSchurFailed,
// eigen.ErrIllConditioned from the factorization layer and
// ErrReorderMismatch when the cutoff predicate did not isolate exactly
// m eigenvalues (numerically close spectrum near the cutoff).
//
// The result satisfies Q·R·Qᵀ = P and QᵀQ = I within floating-point
// tolerance; the leading m×m block of R carries the selector's top-m
// eigenvalues.
//
// Complexity: O(n³) time, O(n²) space.
func SortedDense(p mat.Matrix, m int, by eigen.Criterion, opts ...Option) (Result, error) {
	return sortedDense(p, m, by, gatherOptions(opts...))
}

func sortedDense(p mat.Matrix, m int, by eigen.Criterion, o *Options) (Result, error) {
	// Stage 1: boundary eigenvalues and cutoff.
	top, err := topEigenvalues(p, m, by, o)
	if err != nil {
		return Result{}, err
	}
	cutoff := (by.Score(top[m-1]) + by.Score(top[m])) / 2

	// Stage 2: unsorted real Schur form.
	f, err := o.factorizer.Factor(p)
	if err != nil {
		return Result{}, err
	}

	// Stage 3: reorder every block scoring above the cutoff to the top.
	got, err := o.factorizer.Reorder(f, selectAboveCutoff(f.Values, cutoff, by))
	if err != nil {
		return Result{}, err
	}
	if got != m {
		return Result{}, fmt.Errorf("%w: %d dominant eigenvalues requested, %d sorted up", ErrReorderMismatch, m, got)
	}

	return Result{
		R:      f.T,
		Q:      f.Q,
		Values: f.Values,
		Top:    top,
		Cutoff: cutoff,
	}, nil
}

// selectAboveCutoff flags eigenvalues whose criterion score exceeds
// cutoff, whole diagonal blocks at a time. Conjugate pairs share a
// score, so a pair is always flagged or skipped as a unit — the mask is
// valid input for a block reordering.
func selectAboveCutoff(values []complex128, cutoff float64, by eigen.Criterion) []bool {
	selected := make([]bool, len(values))
	for i := 0; i < len(values); {
		size := 1
		if imag(values[i]) != 0 && i+1 < len(values) {
			size = 2
		}
		pass := by.Score(values[i]) > cutoff
		for r := i; r < i+size; r++ {
			selected[r] = pass
		}
		i += size
	}

	return selected
}

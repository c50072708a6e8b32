package schur

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/eigen"
)

// SortedKrylov calculates an orthonormal basis of the subspace
// associated with the m dominant eigenvalues of p using the configured
// Krylov-type eigensolver, and validates the result on behalf of the
// downstream clustering step:
//
//   - the basis must be strictly real — a complex basis is a hard
//     failure (ErrComplexBasis), never a degradation, because PCCA-type
//     consumers only work with real vectors;
//   - a basis wider than m is truncated to m columns with
//     WarnSubspaceOversize (the excess is cut off; sanity of the cut is
//     not guaranteed, hence the advisory);
//   - fewer than m converged eigenpairs is WarnShortConvergence; the
//     result keeps only the converged columns and the call still
//     succeeds.
//
// Per-eigenpair residual error estimates are carried in the result for
// observability; they never gate success.
//
// Contracts: p non-nil square, 1 ≤ m ≤ n-1, by a defined criterion.
//
// Errors: ErrNilMatrix / ErrNonSquare / ErrBadClusterCount /
// eigen.ErrBadCriterion on bad inputs; ErrComplexBasis as above; plus
// whatever the injected solver's Solve returns.
//
// Complexity: the solver's; validation and truncation are O(n·m).
func SortedKrylov(p mat.Matrix, m int, by eigen.Criterion, opts ...Option) (Basis, error) {
	return sortedKrylov(p, m, by, gatherOptions(opts...))
}

func sortedKrylov(p mat.Matrix, m int, by eigen.Criterion, o *Options) (Basis, error) {
	if _, err := validateProblem(p, m); err != nil {
		return Basis{}, err
	}
	if !by.Valid() {
		return Basis{}, eigen.ErrBadCriterion
	}

	// Stage 1: run the iteration.
	solver := o.krylov()
	if err := solver.Solve(p, m, by); err != nil {
		return Basis{}, err
	}
	x := solver.InvariantSubspace()
	if x == nil {
		return Basis{}, eigen.ErrNotConverged
	}

	// Stage 2: the basis must be real. Silent realification could mask a
	// genuinely wrong subspace, so reject instead of converting.
	rows, cols := x.Dims()
	q := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			z := x.At(i, j)
			if math.Abs(imag(z)) > o.realTol {
				return Basis{}, fmt.Errorf("%w: |imag| = %.3g at (%d,%d)", ErrComplexBasis, math.Abs(imag(z)), i, j)
			}
			q.Set(i, j, real(z))
		}
	}

	var b Basis

	// Stage 3: cut off an oversized subspace.
	width := cols
	if width > m {
		b.Report.add(o.log, WarnSubspaceOversize,
			fmt.Sprintf("schur: invariant subspace has %d columns, %d clusters requested; the excess is cut off", cols, m))
		width = m
	}

	// Stage 4: keep only the converged part, warn when it is short.
	nconv := solver.ConvergedCount()
	if nconv != m {
		b.Report.add(o.log, WarnShortConvergence,
			fmt.Sprintf("schur: %d eigenpairs converged, but %d clusters were requested", nconv, m))
	}
	if nconv < width {
		width = nconv
	}
	if width > 0 {
		b.Q = mat.DenseCopyOf(q.Slice(0, rows, 0, width))
	}

	// Stage 5: eigenvalue estimates and residual errors, diagnostics only.
	if nconv > 0 {
		b.Values = make([]complex128, nconv)
		b.Residuals = make([]float64, nconv)
		for i := 0; i < nconv; i++ {
			b.Values[i] = solver.Eigenvalue(i)
			b.Residuals[i] = solver.ResidualError(i)
		}
	}

	return b, nil
}

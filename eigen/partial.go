package eigen

import "gonum.org/v1/gonum/mat"

// Partial adapts KrylovSchur to the top-k eigenvalue query used by the
// dominant-eigenvalue selector. Each call runs a fresh solver, so a
// Partial value is safe for concurrent use.
type Partial struct {
	opts []KrylovOption
}

// NewPartial returns a partial eigensolver; opts tune the underlying
// Krylov–Schur iteration.
func NewPartial(opts ...KrylovOption) Partial {
	return Partial{opts: opts}
}

// PartialEigenvalues returns the k eigenvalues of p ranking highest under
// by, sorted descending by the criterion score (ties by descending real,
// then imaginary part, keeping conjugate pairs adjacent).
//
// Errors: ErrBadInput, ErrBadEigenCount (k outside [1, n)),
// ErrBadCriterion, ErrNotConverged when fewer than k eigenpairs met the
// tolerance within the restart budget.
func (pp Partial) PartialEigenvalues(p mat.Matrix, k int, by Criterion) ([]complex128, error) {
	n, err := squareDims(p)
	if err != nil {
		return nil, err
	}
	if k < 1 || k >= n {
		return nil, ErrBadEigenCount
	}

	ks := NewKrylovSchur(pp.opts...)
	if err = ks.Solve(p, k, by); err != nil {
		return nil, err
	}
	if ks.ConvergedCount() < k {
		return nil, ErrNotConverged
	}

	// The subspace may carry one extra column when a conjugate pair
	// straddles position k; sort the whole converged set, then truncate.
	_, width := ks.InvariantSubspace().Dims()
	vals := make([]complex128, width)
	for i := range vals {
		vals[i] = ks.Eigenvalue(i)
	}
	SortByCriterion(vals, by)

	return vals[:k], nil
}

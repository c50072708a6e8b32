package eigen

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Criterion specifies which portion of the spectrum is sought.
// The subspace returned by a solver is associated with this part of the
// spectrum.
type Criterion int

const (
	// ByLargestMagnitude sorts eigenvalues by |λ| descending.
	ByLargestMagnitude Criterion = iota

	// ByLargestRealPart sorts eigenvalues by Re(λ) descending.
	ByLargestRealPart
)

// String returns a human-readable criterion name.
func (c Criterion) String() string {
	switch c {
	case ByLargestMagnitude:
		return "LargestMagnitude"
	case ByLargestRealPart:
		return "LargestRealPart"
	default:
		return "Criterion(?)"
	}
}

// Valid reports whether c is one of the defined criteria.
func (c Criterion) Valid() bool {
	return c == ByLargestMagnitude || c == ByLargestRealPart
}

// Score returns the scalar a Criterion orders eigenvalues by:
// |z| for ByLargestMagnitude, Re(z) for ByLargestRealPart.
// Conjugate pairs always share a score, so score-based selection can
// never tear a 2×2 block apart.
func (c Criterion) Score(z complex128) float64 {
	if c == ByLargestRealPart {
		return real(z)
	}

	return cmplx.Abs(z)
}

var (
	// ErrBadInput is returned when a matrix argument is nil, empty or
	// not square.
	ErrBadInput = errors.New("eigen: matrix must be non-nil, square and non-empty")

	// ErrBadCriterion is returned for a criterion outside the defined enum.
	ErrBadCriterion = errors.New("eigen: unknown selection criterion")

	// ErrBadEigenCount is returned when a requested eigenpair count k does
	// not satisfy 1 ≤ k < n.
	ErrBadEigenCount = errors.New("eigen: requested eigenpair count out of range")

	// ErrEigenFailed is returned when the dense eigenvalue iteration does
	// not converge.
	ErrEigenFailed = errors.New("eigen: eigenvalue decomposition did not converge")

	// ErrSchurFailed is returned when the real Schur factorization does
	// not converge.
	ErrSchurFailed = errors.New("eigen: real Schur factorization did not converge")

	// ErrIllConditioned is returned when eigenvalues are too close for a
	// reordering to be performed safely.
	ErrIllConditioned = errors.New("eigen: eigenvalues too close to reorder")

	// ErrNotConverged is returned when the iterative solver converged
	// fewer eigenpairs than the caller requested.
	ErrNotConverged = errors.New("eigen: iterative solver converged fewer eigenpairs than requested")
)

// Factorization is a real Schur factorization P = Q·T·Qᵀ.
//
// T is upper quasi-triangular (1×1 and 2×2 diagonal blocks), Q is
// orthogonal. Values[i] is the eigenvalue of the diagonal block covering
// row i; conjugate pairs occupy adjacent entries, positive imaginary part
// first. Reorder permutes T, Q and Values consistently.
type Factorization struct {
	T      *mat.Dense
	Q      *mat.Dense
	Values []complex128
}

// DenseEigensolver computes the full eigenvalue spectrum of a real
// square matrix.
type DenseEigensolver interface {
	// Eigenvalues returns all n eigenvalues of p in no particular order.
	Eigenvalues(p mat.Matrix) ([]complex128, error)
}

// PartialEigensolver computes only the k eigenvalues that rank highest
// under a Criterion, for efficiency on large matrices.
type PartialEigensolver interface {
	// PartialEigenvalues returns the top k eigenvalues of p sorted
	// descending by the criterion score.
	PartialEigenvalues(p mat.Matrix, k int, by Criterion) ([]complex128, error)
}

// Factorizer produces and reorders real Schur factorizations.
type Factorizer interface {
	// Factor computes the real Schur form of p with Schur vectors.
	Factor(p mat.Matrix) (*Factorization, error)

	// Reorder moves the diagonal blocks flagged in selected to the
	// leading positions of f, updating T, Q and Values in place, and
	// returns the dimension of the resulting leading invariant subspace.
	// Both members of a conjugate pair must carry the same flag.
	Reorder(f *Factorization, selected []bool) (int, error)
}

// SylvesterSolver solves the quasi-triangular Sylvester equation
//
//	A·X − X·B = scale·C
//
// where A and B are in real Schur canonical form. scale ≤ 1 is chosen by
// the solver to avoid overflow. When the spectra of A and B nearly
// intersect the solution is perturbed rather than rejected; the caller's
// accuracy diagnostics are expected to expose the damage.
type SylvesterSolver interface {
	SolveSylvester(a, b, c *mat.Dense) (x *mat.Dense, scale float64, err error)
}

// KrylovSolver is an iterative eigensolver configured per call with an
// operator, a requested eigenpair count and a selection criterion.
// Accessors are valid only after a successful Solve.
type KrylovSolver interface {
	// Solve runs the iteration for the nev eigenpairs ranking highest
	// under by.
	Solve(p mat.Matrix, nev int, by Criterion) error

	// InvariantSubspace returns an orthonormal basis of the computed
	// invariant subspace as column vectors. The container is complex
	// because third-party solvers may legitimately produce complex
	// vectors; consumers decide whether that is acceptable. Returns nil
	// before a successful Solve.
	InvariantSubspace() *mat.CDense

	// ConvergedCount returns the number of eigenpairs that satisfied the
	// convergence tolerance.
	ConvergedCount() int

	// Eigenvalue returns the i-th computed eigenvalue in subspace order.
	Eigenvalue(i int) complex128

	// ResidualError returns the residual-based error estimate of the
	// i-th eigenpair.
	ResidualError(i int) float64
}

// squareDims validates that p is a non-nil, non-empty square matrix and
// returns its order.
func squareDims(p mat.Matrix) (int, error) {
	if p == nil {
		return 0, ErrBadInput
	}
	r, c := p.Dims()
	if r != c || r == 0 {
		return 0, ErrBadInput
	}

	return r, nil
}

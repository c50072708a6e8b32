package schur

import (
	"errors"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/mat"
)

// Method selects the reordering backend used by Sorted.
type Method int

const (
	// DenseDirect reorders a full real Schur form by explicit adjacent
	// block swaps (Brandts' method), with a per-swap accuracy diagnostic.
	DenseDirect Method = iota

	// DenseSorted reorders a full real Schur form with a cutoff
	// predicate derived from the boundary eigenvalues.
	DenseSorted

	// Iterative extracts an invariant-subspace basis with a Krylov–Schur
	// eigensolver; no Schur matrix R is produced in this mode.
	Iterative
)

// String returns a human-readable method name.
func (m Method) String() string {
	switch m {
	case DenseDirect:
		return "DenseDirect"
	case DenseSorted:
		return "DenseSorted"
	case Iterative:
		return "Iterative"
	default:
		return "Method(?)"
	}
}

var (
	// ErrNilMatrix is returned when the transition matrix is nil.
	ErrNilMatrix = errors.New("schur: transition matrix is nil")

	// ErrNonSquare is returned when the transition matrix is not square
	// or is empty.
	ErrNonSquare = errors.New("schur: transition matrix is not square")

	// ErrBadClusterCount is returned when the cluster count m does not
	// satisfy 1 ≤ m ≤ n-1.
	ErrBadClusterCount = errors.New("schur: cluster count out of range")

	// ErrNaNEigenvalue is returned when a solver produced NaN
	// eigenvalues; the problem is numerically broken and retrying with
	// identical inputs would reproduce the failure.
	ErrNaNEigenvalue = errors.New("schur: computed eigenvalues contain NaN")

	// ErrSplitConjugatePair is returned when the boundary eigenvalues
	// score equally within tolerance, meaning m clusters would bisect a
	// complex-conjugate pair. Request one cluster more or less.
	ErrSplitConjugatePair = errors.New("schur: clustering would split a conjugate eigenvalue pair")

	// ErrReorderMismatch is returned when the dense reorder did not
	// isolate exactly m dominant eigenvalues; the spectrum is
	// ill-conditioned near the cutoff.
	ErrReorderMismatch = errors.New("schur: reorder did not isolate the requested dominant eigenvalues")

	// ErrComplexBasis is returned when the iterative backend produced a
	// basis with non-negligible imaginary parts. Downstream clustering
	// requires strictly real vectors, so this is terminal, never a
	// warning.
	ErrComplexBasis = errors.New("schur: iterative solver returned a complex basis")

	// ErrUnknownMethod is returned for a Method outside the defined enum.
	ErrUnknownMethod = errors.New("schur: unknown reordering method")
)

// WarningCode identifies a non-fatal advisory.
type WarningCode int

const (
	// WarnSubspaceOversize: the iterative solver returned a basis wider
	// than m; the excess was cut off.
	WarnSubspaceOversize WarningCode = iota

	// WarnShortConvergence: fewer eigenpairs converged than clusters
	// were requested; the result carries only the converged columns.
	WarnShortConvergence

	// WarnReorderAccuracy: a block swap left a residual above the
	// accuracy threshold; the reordered form may be inaccurate.
	WarnReorderAccuracy
)

// String returns a human-readable warning code.
func (c WarningCode) String() string {
	switch c {
	case WarnSubspaceOversize:
		return "SubspaceOversize"
	case WarnShortConvergence:
		return "ShortConvergence"
	case WarnReorderAccuracy:
		return "ReorderAccuracy"
	default:
		return "WarningCode(?)"
	}
}

// Warning is a non-fatal advisory attached to an otherwise usable result.
type Warning struct {
	Code    WarningCode
	Message string
}

// Report collects the advisories emitted during one call. Advisories
// never alter the result beyond truncation; the caller decides whether
// to retry with different parameters.
type Report struct {
	Warnings []Warning
}

// Has reports whether the report carries an advisory with the given code.
func (r Report) Has(code WarningCode) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}

	return false
}

// add records an advisory and mirrors it to the configured logger.
func (r *Report) add(log logr.Logger, code WarningCode, msg string) {
	r.Warnings = append(r.Warnings, Warning{Code: code, Message: msg})
	log.Info(msg, "warning", code.String())
}

// Result is the uniform outcome of the Sorted dispatcher and of the dense
// backends.
//
//   - R is the real quasi-triangular Schur matrix with the m dominant
//     eigenvalue blocks leading; nil for the Iterative method, which
//     produces only a basis.
//   - Q holds orthonormal columns: full Schur vectors (dense methods,
//     Q·R·Qᵀ = P) or the n×m invariant-subspace basis (Iterative).
//   - Values are the eigenvalues in diagonal-block order of R (dense
//     methods) or the iterative solver's eigenvalue estimates.
//   - Top and Cutoff record the selector's m+1 dominant eigenvalues and
//     the reorder threshold (dense methods only).
//   - Residuals carries per-eigenpair residual error estimates
//     (Iterative only); they are diagnostics and never gate success.
type Result struct {
	R         *mat.Dense
	Q         *mat.Dense
	Values    []complex128
	Top       []complex128
	Cutoff    float64
	Residuals []float64
	Report    Report
}

// Basis is the outcome of SortedKrylov: an orthonormal basis of the
// invariant subspace associated with (approximately) the top-m
// eigenvalues, the solver's eigenvalue estimates, and per-eigenpair
// residual errors. Q is nil when no eigenpair converged at all.
type Basis struct {
	Q         *mat.Dense
	Values    []complex128
	Residuals []float64
	Report    Report
}

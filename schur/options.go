// Package schur: functional configuration for the selection and
// reordering pipeline. Defaults are production-safe; With* constructors
// validate their arguments and panic on nonsensical values (programmer
// error), never on user data.
package schur

import (
	"math"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/eigen"
)

// Documented defaults (single source of truth).
const (
	// DefaultPairAbsTol and DefaultPairRelTol parameterize the boundary
	// closeness test |s_in − s_out| ≤ atol + rtol·|s_out| on criterion
	// scores, guarding against a split conjugate pair.
	DefaultPairAbsTol = 1e-8
	DefaultPairRelTol = 1e-5

	// DefaultAccuracyThreshold flags a block swap whose residual,
	// measured in units of machine epsilon times ‖R‖, exceeds it. The
	// value has no documented derivation in the literature; treat it as
	// tunable rather than universal.
	DefaultAccuracyThreshold = 1.0

	// DefaultRealTol is the largest imaginary component an
	// invariant-subspace basis entry may carry and still count as real.
	// Basis columns are orthonormal, so entries are O(1) and an absolute
	// tolerance is appropriate.
	DefaultRealTol = 1e-12
)

// Options carries the gathered configuration. Fields are unexported;
// public APIs consume ...Option.
type Options struct {
	criterion eigen.Criterion
	pairATol  float64
	pairRTol  float64
	accuracy  float64
	realTol   float64
	log       logr.Logger

	dense      eigen.DenseEigensolver
	partial    eigen.PartialEigensolver
	factorizer eigen.Factorizer
	sylvester  eigen.SylvesterSolver
	krylov     func() eigen.KrylovSolver
}

// Option mutates Options.
type Option func(*Options)

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) *Options {
	lap := eigen.NewLAPACK()
	o := &Options{
		criterion:  eigen.ByLargestMagnitude,
		pairATol:   DefaultPairAbsTol,
		pairRTol:   DefaultPairRelTol,
		accuracy:   DefaultAccuracyThreshold,
		realTol:    DefaultRealTol,
		log:        logr.Discard(),
		dense:      eigen.NewDense(),
		partial:    eigen.NewPartial(),
		factorizer: lap,
		sylvester:  lap,
		krylov:     func() eigen.KrylovSolver { return eigen.NewKrylovSchur() },
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithCriterion sets the spectrum portion the Sorted dispatcher targets
// (default ByLargestMagnitude). Panics on an undefined criterion.
func WithCriterion(by eigen.Criterion) Option {
	if !by.Valid() {
		panic("schur: undefined criterion")
	}

	return func(o *Options) { o.criterion = by }
}

// WithPairTolerance sets the absolute and relative tolerances of the
// boundary closeness test. Panics on negative or non-finite values.
func WithPairTolerance(atol, rtol float64) Option {
	if !(atol >= 0) || !(rtol >= 0) || math.IsInf(atol, 1) || math.IsInf(rtol, 1) {
		panic("schur: pair tolerances must be non-negative and finite")
	}

	return func(o *Options) { o.pairATol, o.pairRTol = atol, rtol }
}

// WithAccuracyThreshold sets the swap-accuracy threshold above which
// DenseDirect emits WarnReorderAccuracy. Panics on a non-positive or
// non-finite threshold.
func WithAccuracyThreshold(t float64) Option {
	if !(t > 0) || math.IsInf(t, 1) {
		panic("schur: accuracy threshold must be positive and finite")
	}

	return func(o *Options) { o.accuracy = t }
}

// WithRealTolerance sets the largest tolerated imaginary component of an
// iterative basis entry. Panics on a negative or non-finite tolerance.
func WithRealTolerance(tol float64) Option {
	if !(tol >= 0) || math.IsInf(tol, 1) {
		panic("schur: real tolerance must be non-negative and finite")
	}

	return func(o *Options) { o.realTol = tol }
}

// WithLogger mirrors advisories to log. The default logger discards
// everything, keeping the library silent.
func WithLogger(log logr.Logger) Option {
	return func(o *Options) { o.log = log }
}

// WithDenseSolver injects the full-spectrum eigensolver used on small
// matrices. Panics on nil.
func WithDenseSolver(s eigen.DenseEigensolver) Option {
	if s == nil {
		panic("schur: nil dense eigensolver")
	}

	return func(o *Options) { o.dense = s }
}

// WithPartialSolver injects the top-k eigensolver used on large
// matrices. Panics on nil.
func WithPartialSolver(s eigen.PartialEigensolver) Option {
	if s == nil {
		panic("schur: nil partial eigensolver")
	}

	return func(o *Options) { o.partial = s }
}

// WithFactorizer injects the Schur factorization capability. Panics on
// nil.
func WithFactorizer(f eigen.Factorizer) Option {
	if f == nil {
		panic("schur: nil factorizer")
	}

	return func(o *Options) { o.factorizer = f }
}

// WithSylvesterSolver injects the Sylvester solve capability used by
// DenseDirect block swaps. Panics on nil.
func WithSylvesterSolver(s eigen.SylvesterSolver) Option {
	if s == nil {
		panic("schur: nil Sylvester solver")
	}

	return func(o *Options) { o.sylvester = s }
}

// WithKrylovSolver injects the iterative eigensolver used by the
// Iterative backend. The same instance is handed to every call, so its
// reentrancy guarantees are the caller's concern. Panics on nil.
func WithKrylovSolver(s eigen.KrylovSolver) Option {
	if s == nil {
		panic("schur: nil Krylov solver")
	}

	return func(o *Options) { o.krylov = func() eigen.KrylovSolver { return s } }
}

// validateProblem checks the transition matrix and cluster count shared
// by every backend: p non-nil square n×n, 1 ≤ m ≤ n-1 (the selector
// needs m+1 ≤ n eigenvalues to locate the boundary).
func validateProblem(p mat.Matrix, m int) (int, error) {
	if p == nil {
		return 0, ErrNilMatrix
	}
	r, c := p.Dims()
	if r != c || r == 0 {
		return 0, ErrNonSquare
	}
	if m < 1 || m > r-1 {
		return 0, ErrBadClusterCount
	}

	return r, nil
}

// hasNaN reports whether any eigenvalue has a NaN component.
func hasNaN(values []complex128) bool {
	for _, v := range values {
		if math.IsNaN(real(v)) || math.IsNaN(imag(v)) {
			return true
		}
	}

	return false
}

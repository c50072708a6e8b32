// Package schur computes sorted partial Schur decompositions of
// row-stochastic transition matrices: given a cluster count m, it
// identifies the m dominant eigenvalues (by magnitude or real part),
// verifies that m clusters would not split a complex-conjugate pair, and
// produces an orthonormal basis of the associated invariant subspace,
// reordered to lead the Schur form. The basis feeds PCCA-type clustering,
// which is out of scope here.
//
// The package is the policy layer: eigenvalue selection, cutoff
// computation, result validation and reconciliation across three
// backends with different guarantees. The matrix arithmetic itself is
// delegated to the capability interfaces in package eigen.
//
// # Backends
//
//   - DenseDirect
//
//   - Method: full real Schur factorization, then explicit adjacent
//     block swaps (Sylvester solve + QR per swap) bubbling the dominant
//     blocks to the front.
//
//   - Diagnostic: per-swap residual accuracy; WarnReorderAccuracy above
//     the configured threshold.
//
//   - Use when the reordering accuracy must be observable.
//
//   - DenseSorted
//
//   - Method: full real Schur factorization reordered by a cutoff
//     predicate, cutoff = midpoint of the boundary eigenvalues' scores.
//
//   - Guarantee: exactly m leading dominant eigenvalues, or
//     ErrReorderMismatch.
//
//   - Iterative
//
//   - Method: Krylov–Schur iteration extracting an n×m orthonormal
//     invariant-subspace basis without a full factorization.
//
//   - Approximate by nature: oversized bases are truncated with a
//     warning, short convergence keeps the converged columns with a
//     warning, a complex basis is a hard error.
//
// # API
//
// All entry points share the shape
//
//	func Sorted(p mat.Matrix, m int, method Method, opts ...Option) (Result, error)
//	func TopEigenvalues(p mat.Matrix, m int, by eigen.Criterion, opts ...Option) ([]complex128, error)
//	func SortedDense(p mat.Matrix, m int, by eigen.Criterion, opts ...Option) (Result, error)
//	func SortedKrylov(p mat.Matrix, m int, by eigen.Criterion, opts ...Option) (Basis, error)
//
// Options configure tolerances, the advisory logger and solver
// injection; see options.go. Defaults are production-safe.
//
// # Errors
//
//	ErrNilMatrix / ErrNonSquare / ErrBadClusterCount — input validation.
//	ErrNaNEigenvalue      — NaN in computed eigenvalues; unrecoverable.
//	ErrSplitConjugatePair — m would bisect a conjugate pair; use m±1.
//	ErrReorderMismatch    — dense reorder missed the requested count.
//	ErrComplexBasis       — iterative basis not real; unrecoverable.
//	ErrUnknownMethod      — method outside the enum.
//
// Non-fatal advisories (WarnSubspaceOversize, WarnShortConvergence,
// WarnReorderAccuracy) are collected in Result.Report and mirrored to
// the logger configured with WithLogger; they never abort a call.
//
// Fatal conditions are detected immediately after the solver call that
// can produce them and propagated unchanged — no internal retries, since
// an ill-conditioned eigenproblem fails identically on identical inputs.
//
// # Concurrency
//
// All operations are synchronous and pure: inputs are never mutated, no
// state is retained between calls, and concurrent calls are safe as long
// as injected solvers honor their own reentrancy guarantees.
//
// # Integration
//
//   - Relies on github.com/katalvlaran/spectral/eigen for the solver
//     capabilities (gonum-backed by default, fakeable in tests).
package schur

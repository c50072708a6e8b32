// Package eigen provides the solver capabilities consumed by the schur
// policy layer: full dense spectra, real Schur factorization with
// selected-eigenvalue reordering, small Sylvester solves, and a
// Krylov–Schur iterative eigensolver for partial decompositions.
//
// Every capability is expressed as a narrow interface so the policy layer
// can be exercised with scripted fakes, plus one production implementation
// built on gonum's native BLAS/LAPACK:
//
//   - DenseEigensolver  — full spectrum of a real square matrix.
//     Implementation: Dense (gonum mat.Eigen).
//
//   - Factorizer        — real Schur factorization P = Q·T·Qᵀ and
//     reordering of selected eigenvalue blocks to the leading positions.
//     Implementation: LAPACK (Dgehrd + Dorghr + Dhseqr for the
//     factorization, Dtrexc block exchanges for the reordering).
//
//   - SylvesterSolver   — quasi-triangular Sylvester solve A·X − X·B = γ·C,
//     the kernel of explicit adjacent block swaps.
//     Implementation: LAPACK (dense Kronecker-form solve of the tiny
//     block-window system).
//
//   - PartialEigensolver — top-k eigenvalues under a Criterion.
//     Implementation: Partial (adapter over KrylovSchur).
//
//   - KrylovSolver      — iterative invariant-subspace extraction with
//     per-eigenpair residual estimates and a convergence count.
//     Implementation: KrylovSchur (restarted Arnoldi with sorted real
//     Schur restarts, entirely in real arithmetic).
//
// # Conventions
//
// Real Schur form follows the LAPACK convention: T is upper
// quasi-triangular with 1×1 blocks for real eigenvalues and 2×2 blocks
// for complex-conjugate pairs; paired eigenvalues occupy adjacent
// positions with the positive-imaginary member first. A conjugate pair is
// never selected or moved by halves.
//
// # Errors
//
//	ErrBadInput       — nil, empty or non-square matrix.
//	ErrBadCriterion   — criterion outside the defined enum.
//	ErrBadEigenCount  — requested eigenpair count out of range.
//	ErrEigenFailed    — dense eigenvalue iteration did not converge.
//	ErrSchurFailed    — real Schur factorization did not converge.
//	ErrIllConditioned — eigenvalues too close to reorder safely.
//	ErrNotConverged   — iterative solver fell short of the requested count.
//
// # Determinism
//
// KrylovSchur starts from the normalized all-ones vector (well aligned
// with the Perron vector of a row-stochastic operator) and draws any
// breakdown-recovery directions from a seeded generator, so repeated runs
// on the same inputs produce identical results.
package eigen

// Package spectral is your in-memory toolkit for sorted partial Schur
// decompositions of row-stochastic transition matrices — the spectral
// preprocessing step behind PCCA-type coarse-graining of Markov chains.
//
// 🚀 What is spectral?
//
//	A focused, production-grade library that, given a transition matrix P
//	and a target cluster count m:
//		• Selects the m dominant eigenvalues (largest magnitude / real part)
//		• Refuses cluster counts that would split a complex-conjugate pair
//		• Computes a real Schur form P = Q·R·Qᵀ with the m dominant
//		  eigenvalue blocks sorted to the front
//		• Or extracts an n×m orthonormal invariant-subspace basis with a
//		  Krylov–Schur iteration when a full decomposition is too costly
//
// ✨ Why choose spectral?
//
//   - Honest numerics – conjugate 2×2 blocks are never torn apart,
//     complex bases are rejected instead of silently realified
//   - Strict sentinels – every failure mode is a named error matched
//     with errors.Is; advisories are returned, never swallowed
//   - Pluggable solvers – dense, partial and Krylov eigensolvers are
//     injected capabilities, trivially faked in tests
//   - Pure Go – built on gonum's native BLAS/LAPACK, no cgo
//
// Under the hood, everything is organized under two subpackages:
//
//	eigen/ — solver capabilities: dense spectra, real Schur factorization
//	         with reordering, Sylvester solves, Krylov–Schur iteration
//	schur/ — the policy layer: dominant-eigenvalue selection, cutoff
//	         computation, three reordering backends and a dispatcher
//
// Quick sketch:
//
//	    P  ──►  TopEigenvalues ──►  cutoff ──►  Sorted(P, m, method)
//	                                             │
//	              DenseDirect / DenseSorted / Iterative
//	                                             │
//	                                      (R, Q) or basis
//
// Dive into schur/doc.go for contracts, the error taxonomy, and worked
// examples.
//
//	go get github.com/katalvlaran/spectral/schur
package spectral

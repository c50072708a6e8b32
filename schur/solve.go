// Package schur - unified dispatcher for the sorted partial Schur
// decomposition backends.
//
// Sorted is the canonical entry point: it validates the problem, always
// consults the dominant-eigenvalue selector (directly or through the
// chosen backend), routes to the requested Method, and returns the
// uniform Result contract. Per-backend branching lives here and nowhere
// else.
package schur

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sorted computes a sorted partial real Schur decomposition of the
// transition matrix p for m clusters, routing to the backend selected by
// method:
//
//   - DenseDirect — full Schur form, then explicit adjacent block swaps
//     with a per-swap accuracy diagnostic (WarnReorderAccuracy above the
//     configured threshold). Use when higher reordering accuracy control
//     is required.
//   - DenseSorted — full Schur form reordered by the cutoff predicate
//     derived from the selector's boundary eigenvalues.
//   - Iterative — Krylov–Schur invariant-subspace basis; the basis is
//     returned as Q and no R is produced (request eigenvalues via
//     Result.Values or separately).
//
// The selection criterion defaults to eigen.ByLargestMagnitude and is
// set with WithCriterion.
//
// Errors: ErrUnknownMethod for a method outside the enum; otherwise the
// chosen backend's errors (see SortedDense, SortedKrylov). No retries
// are attempted: a numerically ill-conditioned eigenproblem fails the
// same way on identical inputs, so the caller's recourse is to adjust
// m, the criterion or the method.
//
// Concurrency: no shared mutable state; concurrent calls are safe as
// long as any injected solver honors its own reentrancy guarantees.
func Sorted(p mat.Matrix, m int, method Method, opts ...Option) (Result, error) {
	o := gatherOptions(opts...)

	switch method {
	case DenseDirect:
		return sortedDirect(p, m, o.criterion, o)
	case DenseSorted:
		return sortedDense(p, m, o.criterion, o)
	case Iterative:
		b, err := sortedKrylov(p, m, o.criterion, o)
		if err != nil {
			return Result{}, err
		}

		return Result{
			Q:         b.Q,
			Values:    b.Values,
			Residuals: b.Residuals,
			Report:    b.Report,
		}, nil
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

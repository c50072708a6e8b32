// Package schur: direct reordering of a real Schur form by explicit
// adjacent block swaps, after Brandts. Each swap solves a small
// quasi-triangular Sylvester system, orthonormalizes the swapped
// invariant directions with a QR factorization, and records how much
// sub-diagonal residual the rotation left behind — the swap-accuracy
// diagnostic surfaced as WarnReorderAccuracy.
package schur

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/eigen"
)

// macheps is the double-precision machine epsilon; swap residuals are
// reported in units of macheps·‖R‖.
const macheps = 0x1p-52

// eigBlock is one diagonal block of a real Schur form: a 1×1 block for a
// real eigenvalue or a 2×2 block for a conjugate pair. val is the
// block's eigenvalue (the positive-imaginary member for a pair), which
// is all the selection logic needs since pair members share a score.
type eigBlock struct {
	start int
	size  int
	val   complex128
}

// schurBlocks decomposes the diagonal of a Schur form into blocks.
func schurBlocks(values []complex128) []eigBlock {
	var blocks []eigBlock
	for i := 0; i < len(values); {
		b := eigBlock{start: i, size: 1, val: values[i]}
		if imag(values[i]) != 0 && i+1 < len(values) {
			b.size = 2
		}
		blocks = append(blocks, b)
		i += b.size
	}

	return blocks
}

// sortedDirect implements the DenseDirect method: selector first (the
// dominance boundary must be sound regardless of backend), then a full
// unsorted Schur factorization, then explicit bubble-up swaps of the m
// dominant blocks.
func sortedDirect(p mat.Matrix, m int, by eigen.Criterion, o *Options) (Result, error) {
	top, err := topEigenvalues(p, m, by, o)
	if err != nil {
		return Result{}, err
	}
	cutoff := (by.Score(top[m-1]) + by.Score(top[m])) / 2

	f, err := o.factorizer.Factor(p)
	if err != nil {
		return Result{}, err
	}

	res := Result{Top: top, Cutoff: cutoff}
	maxAp, err := sortRealSchur(f, m, by, o)
	if err != nil {
		return Result{}, err
	}
	if maxAp > o.accuracy {
		res.Report.add(o.log, WarnReorderAccuracy,
			fmt.Sprintf("schur: reordering of the Schur matrix was inaccurate: swap residual %.3g exceeds threshold %.3g", maxAp, o.accuracy))
	}
	res.R, res.Q, res.Values = f.T, f.Q, f.Values

	return res, nil
}

// sortRealSchur moves the m highest-scored eigenvalue blocks to the
// leading positions of f by adjacent block swaps, preserving conjugate
// pairs, and returns the worst per-swap accuracy observed.
//
// Errors: ErrReorderMismatch when whole-block placement cannot hit
// exactly m leading eigenvalues (a 2×2 block straddles the boundary),
// plus anything the Sylvester solver returns.
//
// Complexity: O(m·n) swaps worst case, O(n²) work per swap.
func sortRealSchur(f *eigen.Factorization, m int, by eigen.Criterion, o *Options) (float64, error) {
	blocks := schurBlocks(f.Values)
	var maxAp float64
	placed := 0
	for bi := 0; placed < m && bi < len(blocks); bi++ {
		// Stage 1: pick the dominant block among the unplaced ones.
		best := bi
		for j := bi + 1; j < len(blocks); j++ {
			if by.Score(blocks[j].val) > by.Score(blocks[best].val) {
				best = j
			}
		}

		// Stage 2: bubble it up with adjacent swaps.
		for j := best; j > bi; j-- {
			s := blocks[j-1].start
			ap, err := swapAdjacent(f, s, blocks[j-1].size, blocks[j].size, o)
			if err != nil {
				return maxAp, err
			}
			if ap > maxAp {
				maxAp = ap
			}
			blocks[j-1], blocks[j] = blocks[j], blocks[j-1]
			blocks[j-1].start = s
			blocks[j].start = s + blocks[j-1].size
		}
		placed += blocks[bi].size
	}
	if placed != m {
		return maxAp, fmt.Errorf("%w: %d dominant eigenvalues requested, %d sorted up", ErrReorderMismatch, m, placed)
	}

	return maxAp, nil
}

// swapAdjacent exchanges the adjacent diagonal blocks of sizes p1 and p2
// starting at row s, updating T, Q and Values in place. It returns the
// swap accuracy: the Frobenius norm of the sub-diagonal residual the
// orthogonal swap left behind, in units of macheps·‖R‖ (the residual is
// then zeroed to restore exact quasi-triangularity).
func swapAdjacent(f *eigen.Factorization, s, p1, p2 int, o *Options) (float64, error) {
	e := s + p1 + p2

	// Stage 1: Sylvester solve A11·X − X·A22 = γ·A12 on the block window.
	a11 := mat.DenseCopyOf(f.T.Slice(s, s+p1, s, s+p1))
	a22 := mat.DenseCopyOf(f.T.Slice(s+p1, e, s+p1, e))
	a12 := mat.DenseCopyOf(f.T.Slice(s, s+p1, s+p1, e))
	x, scale, err := o.sylvester.SolveSylvester(a11, a22, a12)
	if err != nil {
		return 0, err
	}

	// Stage 2: the columns of [[−X],[γI]] span the invariant subspace
	// associated with A22; a full QR turns them into the orthogonal swap.
	k := mat.NewDense(p1+p2, p2, nil)
	for i := 0; i < p1; i++ {
		for j := 0; j < p2; j++ {
			k.Set(i, j, -x.At(i, j))
		}
	}
	for i := 0; i < p2; i++ {
		k.Set(p1+i, i, scale)
	}
	var qr mat.QR
	qr.Factorize(k)
	var g mat.Dense
	qr.QTo(&g)

	// Stage 3: two-sided application on the window, Schur vectors along.
	applySimilarity(f, s, e, &g)

	// Stage 4: accuracy diagnostic, then restore quasi-triangularity.
	var resid float64
	for i := s + p2; i < e; i++ {
		for j := s; j < s+p2; j++ {
			resid = math.Hypot(resid, f.T.At(i, j))
			f.T.Set(i, j, 0)
		}
	}
	ap := resid / (macheps * mat.Norm(f.T, 2))

	// Stage 5: eigenvalue bookkeeping — the blocks traded places.
	v1 := append([]complex128(nil), f.Values[s:s+p1]...)
	v2 := append([]complex128(nil), f.Values[s+p1:e]...)
	copy(f.Values[s:], v2)
	copy(f.Values[s+p2:], v1)

	return ap, nil
}

// applySimilarity replaces T by GᵀTG and Q by QG on the column/row
// window [s, e), leaving everything outside the window untouched.
func applySimilarity(f *eigen.Factorization, s, e int, g *mat.Dense) {
	n, _ := f.T.Dims()

	var cols mat.Dense
	cols.Mul(f.T.Slice(0, n, s, e), g)
	f.T.Slice(0, n, s, e).(*mat.Dense).Copy(&cols)

	var rows mat.Dense
	rows.Mul(g.T(), f.T.Slice(s, e, 0, n))
	f.T.Slice(s, e, 0, n).(*mat.Dense).Copy(&rows)

	var vecs mat.Dense
	vecs.Mul(f.Q.Slice(0, n, s, e), g)
	f.Q.Slice(0, n, s, e).(*mat.Dense).Copy(&vecs)
}

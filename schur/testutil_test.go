package schur_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/eigen"
)

// orthogonalFactor returns a deterministic n×n orthogonal matrix, the Q
// of a QR factorization of a seeded Gaussian matrix.
func orthogonalFactor(n int) *mat.Dense {
	rng := rand.New(rand.NewSource(42))
	raw := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			raw.Set(i, j, rng.NormFloat64())
		}
	}
	var qr mat.QR
	qr.Factorize(raw)
	var g mat.Dense
	qr.QTo(&g)

	return &g
}

// conjugated returns G·B·Gᵀ for a deterministic orthogonal G, hiding the
// eigenstructure of B inside a dense matrix with the same spectrum.
func conjugated(b *mat.Dense) *mat.Dense {
	n, _ := b.Dims()
	g := orthogonalFactor(n)
	var gb, p mat.Dense
	gb.Mul(g, b)
	p.Mul(&gb, g.T())

	return &p
}

// diagOf builds diag(d).
func diagOf(d ...float64) *mat.Dense {
	n := len(d)
	b := mat.NewDense(n, n, nil)
	for i, v := range d {
		b.Set(i, i, v)
	}

	return b
}

// requireRoundTrip asserts Q·R·Qᵀ ≈ P and QᵀQ ≈ I.
func requireRoundTrip(t *testing.T, p mat.Matrix, r, q *mat.Dense, tol float64) {
	t.Helper()

	var qr, qrq, diff mat.Dense
	qr.Mul(q, r)
	qrq.Mul(&qr, q.T())
	diff.Sub(&qrq, p)
	require.Less(t, mat.Norm(&diff, 2), tol, "‖QRQᵀ−P‖ too large")

	n, _ := q.Dims()
	eye := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		eye.Set(i, i, 1)
	}
	var qq, ortho mat.Dense
	qq.Mul(q.T(), q)
	ortho.Sub(&qq, eye)
	require.Less(t, mat.Norm(&ortho, 2), tol, "‖QᵀQ−I‖ too large")
}

// leadingValues returns the eigenvalues of the leading m×m block of r,
// sorted descending by the criterion score.
func leadingValues(t *testing.T, r *mat.Dense, m int, by eigen.Criterion) []complex128 {
	t.Helper()

	block := mat.DenseCopyOf(r.Slice(0, m, 0, m))
	var e mat.Eigen
	require.True(t, e.Factorize(block, mat.EigenNone))
	vals := e.Values(nil)
	eigen.SortByCriterion(vals, by)

	return vals
}

// fakeDense scripts the full-spectrum eigensolver.
type fakeDense struct {
	vals []complex128
	err  error
}

func (f fakeDense) Eigenvalues(mat.Matrix) ([]complex128, error) {
	return append([]complex128(nil), f.vals...), f.err
}

// fakeFactorizer wraps the real factorizer but scripts the reorder
// outcome.
type fakeFactorizer struct {
	real      eigen.Factorizer
	reorderM  int
	reorderAs error
}

func (f fakeFactorizer) Factor(p mat.Matrix) (*eigen.Factorization, error) {
	return f.real.Factor(p)
}

func (f fakeFactorizer) Reorder(*eigen.Factorization, []bool) (int, error) {
	return f.reorderM, f.reorderAs
}

// fakeKrylov scripts the iterative eigensolver.
type fakeKrylov struct {
	solveErr error
	basis    *mat.CDense
	nconv    int
	values   []complex128
	resids   []float64
}

func (f *fakeKrylov) Solve(mat.Matrix, int, eigen.Criterion) error { return f.solveErr }
func (f *fakeKrylov) InvariantSubspace() *mat.CDense               { return f.basis }
func (f *fakeKrylov) ConvergedCount() int                          { return f.nconv }
func (f *fakeKrylov) Eigenvalue(i int) complex128                  { return f.values[i] }
func (f *fakeKrylov) ResidualError(i int) float64                  { return f.resids[i] }

// realCBasis builds an n×k CDense with orthonormal coordinate columns
// and zero imaginary parts.
func realCBasis(n, k int) *mat.CDense {
	x := mat.NewCDense(n, k, nil)
	for j := 0; j < k; j++ {
		x.Set(j, j, 1)
	}

	return x
}

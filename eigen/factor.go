package eigen

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/lapack"
	lapackimpl "gonum.org/v1/gonum/lapack/gonum"
	"gonum.org/v1/gonum/mat"
)

// LAPACK implements Factorizer and SylvesterSolver on gonum's native
// LAPACK routines (Dgehrd, Dorghr, Dhseqr, Dtrexc). It is stateless and
// safe for concurrent use.
type LAPACK struct {
	impl lapackimpl.Implementation
}

// NewLAPACK returns a LAPACK-backed factorizer and Sylvester solver.
func NewLAPACK() LAPACK { return LAPACK{} }

// Factor computes the real Schur form P = Q·T·Qᵀ of p: Hessenberg
// reduction (Dgehrd), explicit orthogonal factor (Dorghr), then the QR
// iteration with Schur-vector accumulation (Dhseqr). Eigenvalues are
// reported in diagonal-block order, conjugate pairs adjacent with the
// positive-imaginary member first.
//
// Errors: ErrBadInput on a nil/empty/non-square matrix, ErrSchurFailed
// when the QR iteration does not converge.
//
// Complexity: O(n³) time, O(n²) space.
func (l LAPACK) Factor(p mat.Matrix) (*Factorization, error) {
	n, err := squareDims(p)
	if err != nil {
		return nil, err
	}

	// Stage 1: row-major copy of the operand; it becomes H, then T.
	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a[i*n+j] = p.At(i, j)
		}
	}
	tau := make([]float64, max(n-1, 1))
	wr := make([]float64, n)
	wi := make([]float64, n)
	vs := make([]float64, n*n)

	// Stage 2: one workspace sized for the worst of the three calls.
	query := make([]float64, 1)
	l.impl.Dgehrd(n, 0, n-1, a, n, tau, query, -1)
	lwork := int(query[0])
	l.impl.Dorghr(n, 0, n-1, vs, n, tau, query, -1)
	if w := int(query[0]); w > lwork {
		lwork = w
	}
	l.impl.Dhseqr(lapack.EigenvaluesAndSchur, lapack.SchurOrig, n, 0, n-1, a, n, wr, wi, vs, n, query, -1)
	if w := int(query[0]); w > lwork {
		lwork = w
	}
	if lwork < 3*n {
		lwork = 3 * n
	}
	work := make([]float64, lwork)

	// Stage 3: Hessenberg form; the reflectors land below the
	// subdiagonal of a and are expanded into vs.
	l.impl.Dgehrd(n, 0, n-1, a, n, tau, work, lwork)
	copy(vs, a)
	l.impl.Dorghr(n, 0, n-1, vs, n, tau, work, lwork)
	for i := 2; i < n; i++ {
		for j := 0; j < i-1; j++ {
			a[i*n+j] = 0
		}
	}

	// Stage 4: QR iteration, accumulating the Schur vectors.
	if unconverged := l.impl.Dhseqr(lapack.EigenvaluesAndSchur, lapack.SchurOrig,
		n, 0, n-1, a, n, wr, wi, vs, n, work, lwork); unconverged > 0 {
		return nil, ErrSchurFailed
	}

	values := make([]complex128, n)
	for i := range values {
		values[i] = complex(wr[i], wi[i])
	}

	return &Factorization{
		T:      mat.NewDense(n, n, a),
		Q:      mat.NewDense(n, n, vs),
		Values: values,
	}, nil
}

// Reorder moves the flagged diagonal blocks of f to the leading positions
// by repeated Dtrexc block exchanges, updating T, Q and Values in place.
// The relative order of the selected blocks is preserved and a 2×2
// conjugate block always travels whole (flagging either member selects
// the pair). It returns the dimension of the leading invariant subspace.
//
// Errors: ErrBadInput on an incomplete factorization or a mask of the
// wrong length, ErrIllConditioned when two blocks are too close to
// exchange; the factorization must be discarded in that case, since the
// reorder may have been applied partially.
//
// Complexity: O(n³) worst case.
func (l LAPACK) Reorder(f *Factorization, selected []bool) (int, error) {
	if f == nil || f.T == nil || f.Q == nil {
		return 0, ErrBadInput
	}
	n := len(f.Values)
	if n == 0 || len(selected) != n {
		return 0, ErrBadInput
	}

	t := f.T.RawMatrix()
	q := f.Q.RawMatrix()
	work := make([]float64, n)

	m := 0
	ks := 0 // next free leading position
	pair := false
	for k := 0; k < n; k++ {
		if pair {
			pair = false
			continue
		}
		double := k < n-1 && t.Data[(k+1)*t.Stride+k] != 0
		if selected[k] || (double && selected[k+1]) {
			if k > ks {
				if _, _, ok := l.impl.Dtrexc(lapack.UpdateSchur, n,
					t.Data, t.Stride, q.Data, q.Stride, k, ks, work); !ok {
					return 0, ErrIllConditioned
				}
			}
			if double {
				m += 2
				ks += 2
			} else {
				m++
				ks++
			}
		}
		if double {
			pair = true
		}
	}

	refreshValues(f)

	return m, nil
}

// refreshValues rereads the eigenvalues from the diagonal blocks of T.
// A standardized 2×2 block has equal diagonal entries and off-diagonal
// entries of opposite sign, so the pair is t[i,i] ± i·√(|t12|·|t21|).
func refreshValues(f *Factorization) {
	n := len(f.Values)
	for i := 0; i < n; i++ {
		d := f.T.At(i, i)
		if i < n-1 && f.T.At(i+1, i) != 0 {
			im := math.Sqrt(math.Abs(f.T.At(i, i+1))) * math.Sqrt(math.Abs(f.T.At(i+1, i)))
			f.Values[i] = complex(d, im)
			f.Values[i+1] = complex(d, -im)
			i++
			continue
		}
		f.Values[i] = complex(d, 0)
	}
}

// SolveSylvester solves A·X − X·B = C for the small quasi-triangular
// windows that adjacent block swaps produce (both operands are at most
// 2×2), through the dense Kronecker form (I ⊗ A − Bᵀ ⊗ I)·vec(X) =
// vec(C). The returned scale is always 1. A nearly singular system (the
// spectra of a and b nearly intersect) is still solved; the caller's
// accuracy diagnostics are responsible for flagging the damage.
//
// Errors: ErrBadInput on nil operands or incompatible shapes,
// ErrIllConditioned when the spectra intersect exactly and the system
// is singular.
func (l LAPACK) SolveSylvester(a, b, c *mat.Dense) (*mat.Dense, float64, error) {
	if a == nil || b == nil || c == nil {
		return nil, 0, ErrBadInput
	}
	p1, an := a.Dims()
	bm, p2 := b.Dims()
	cm, cn := c.Dims()
	if p1 != an || bm != p2 || cm != p1 || cn != p2 {
		return nil, 0, ErrBadInput
	}

	// Column-stacked unknown: vec(X)[j·p1+i] = X[i,j].
	nn := p1 * p2
	k := mat.NewDense(nn, nn, nil)
	rhs := mat.NewVecDense(nn, nil)
	for j := 0; j < p2; j++ {
		for i := 0; i < p1; i++ {
			r := j*p1 + i
			for s := 0; s < p1; s++ {
				k.Set(r, j*p1+s, k.At(r, j*p1+s)+a.At(i, s))
			}
			for s := 0; s < p2; s++ {
				k.Set(r, s*p1+i, k.At(r, s*p1+i)-b.At(s, j))
			}
			rhs.SetVec(r, c.At(i, j))
		}
	}

	var sol mat.VecDense
	if err := sol.SolveVec(k, rhs); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, 0, ErrIllConditioned
		}
		// Ill-conditioned but solved; the swap-accuracy diagnostic
		// downstream exposes the damage.
	}

	x := mat.NewDense(p1, p2, nil)
	for j := 0; j < p2; j++ {
		for i := 0; i < p1; i++ {
			x.Set(i, j, sol.AtVec(j*p1+i))
		}
	}

	return x, 1, nil
}

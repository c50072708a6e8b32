package eigen

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Defaults for the Krylov–Schur iteration.
const (
	// DefaultSubspaceDim is the smallest automatic working-subspace size.
	DefaultSubspaceDim = 20

	// DefaultMaxRestarts bounds the number of restart cycles.
	DefaultMaxRestarts = 100

	// DefaultTolerance is the relative residual threshold below which an
	// eigenpair counts as converged.
	DefaultTolerance = 1e-12

	// DefaultSeed seeds the breakdown-recovery direction generator.
	DefaultSeed int64 = 1
)

// macheps is the double-precision machine epsilon.
const macheps = 0x1p-52

// breakdownScale bounds the residual norm, relative to the size of the
// projected column, below which the Krylov space is declared invariant.
const breakdownScale = 1e-14

// KrylovOption configures a KrylovSchur solver.
type KrylovOption func(*KrylovSchur)

// WithSubspaceDim fixes the working-subspace dimension ncv instead of the
// automatic min(n, max(2·nev+1, DefaultSubspaceDim)).
// Panics if ncv < 3 (programmer error: no room to restart).
func WithSubspaceDim(ncv int) KrylovOption {
	if ncv < 3 {
		panic("eigen: subspace dimension must be at least 3")
	}

	return func(ks *KrylovSchur) { ks.ncv = ncv }
}

// WithMaxRestarts bounds the number of restart cycles.
// Panics if k is negative.
func WithMaxRestarts(k int) KrylovOption {
	if k < 0 {
		panic("eigen: max restarts must be non-negative")
	}

	return func(ks *KrylovSchur) { ks.maxRestarts = k }
}

// WithTolerance sets the relative residual threshold for convergence.
// Panics on a non-positive or non-finite tolerance.
func WithTolerance(tol float64) KrylovOption {
	if !(tol > 0) || math.IsInf(tol, 1) {
		panic("eigen: tolerance must be positive and finite")
	}

	return func(ks *KrylovSchur) { ks.tol = tol }
}

// WithSeed seeds the generator used for breakdown-recovery directions.
func WithSeed(seed int64) KrylovOption {
	return func(ks *KrylovSchur) { ks.seed = seed }
}

// KrylovSchur computes an orthonormal basis of the invariant subspace
// associated with the dominant eigenvalues of a real square matrix, in
// the manner of the Krylov–Schur method: expand an Arnoldi basis to the
// working dimension, compute and sort the real Schur form of the small
// projected matrix, truncate back to the wanted part plus padding, and
// repeat until the wanted eigenpairs converge.
//
// The iteration runs entirely in real arithmetic, so the basis it
// produces is always real-valued. A KrylovSchur instance is not safe for
// concurrent use; create one per goroutine.
type KrylovSchur struct {
	ncv         int
	maxRestarts int
	tol         float64
	seed        int64

	// result state, populated by Solve
	solved bool
	nconv  int
	basis  *mat.CDense
	values []complex128
	resids []float64
}

// NewKrylovSchur returns a solver with production-safe defaults.
func NewKrylovSchur(opts ...KrylovOption) *KrylovSchur {
	ks := &KrylovSchur{
		maxRestarts: DefaultMaxRestarts,
		tol:         DefaultTolerance,
		seed:        DefaultSeed,
	}
	for _, opt := range opts {
		opt(ks)
	}

	return ks
}

// Solve runs the iteration on p for the nev eigenpairs ranking highest
// under by. On success the invariant subspace, eigenvalues, residual
// estimates and convergence count become available through the accessors.
// Solve may be called repeatedly; each call discards previous state.
//
// Contracts:
//   - p non-nil square, 1 ≤ nev < n, by a defined Criterion.
//   - The subspace width is nev, or nev+1 when a conjugate pair
//     straddles position nev (the pair is kept whole).
//
// Errors: ErrBadInput, ErrBadEigenCount, ErrBadCriterion, ErrSchurFailed,
// ErrIllConditioned. Falling short of nev converged pairs within the
// restart budget is NOT an error here; it is reported via
// ConvergedCount, and the policy layer decides what to do.
//
// Complexity: O(restarts · ncv · n²) time for a dense operator,
// O(n·ncv) extra space.
func (ks *KrylovSchur) Solve(p mat.Matrix, nev int, by Criterion) error {
	n, err := squareDims(p)
	if err != nil {
		return err
	}
	if nev < 1 || nev >= n {
		return ErrBadEigenCount
	}
	if !by.Valid() {
		return ErrBadCriterion
	}
	ks.solved = false
	ks.nconv = 0
	ks.basis = nil
	ks.values = nil
	ks.resids = nil

	// Stage 1: working dimension.
	ncv := ks.ncv
	if ncv == 0 {
		ncv = 2*nev + 1
		if ncv < DefaultSubspaceDim {
			ncv = DefaultSubspaceDim
		}
	}
	if ncv > n {
		ncv = n
	}
	if ncv < nev+2 {
		ncv = nev + 2
		if ncv > n {
			ncv = n
		}
	}

	rng := rand.New(rand.NewSource(ks.seed))
	v := mat.NewDense(n, ncv+1, nil)
	h := mat.NewDense(ncv, ncv, nil)
	lap := NewLAPACK()

	// Stage 2: starting vector — normalized all-ones, well aligned with
	// the Perron vector of a row-stochastic operator.
	inv := 1 / math.Sqrt(float64(n))
	for i := 0; i < n; i++ {
		v.Set(i, 0, inv)
	}

	k := 0 // retained columns carried over from the previous cycle
	for restart := 0; ; restart++ {
		// Stage 3: Arnoldi expansion from k to ncv columns.
		betaEnd := expandArnoldi(p, v, h, k, ncv, rng)

		// Stage 4: sorted real Schur form of the projected matrix.
		hc := mat.NewDense(ncv, ncv, nil)
		hc.Copy(h)
		fac, ferr := lap.Factor(hc)
		if ferr != nil {
			return ferr
		}
		keep := nev + (ncv-nev)/2
		if keep >= ncv {
			keep = ncv - 1
		}
		selected := selectTopBlocks(fac.Values, keep, by)
		if countSelected(selected) >= ncv {
			// Block rounding ate the truncation room (a conjugate pair
			// straddles position keep); shrink by one so the coupling
			// row always fits.
			selected = selectTopBlocks(fac.Values, keep-1, by)
		}
		keep = countSelected(selected)
		if _, err = lap.Reorder(fac, selected); err != nil {
			return err
		}

		// Stage 5: residual estimates. The only residual term of the
		// expansion is betaEnd·v_res·eᵀ_{ncv-1}, so the estimate for
		// column i is betaEnd·|Z[ncv-1,i]|.
		resids := make([]float64, ncv)
		for i := 0; i < ncv; i++ {
			resids[i] = betaEnd * math.Abs(fac.Q.At(ncv-1, i))
		}
		want := blockEnd(fac.Values, nev)
		nconv := convergedPrefix(fac.Values, resids, want, ks.tol)

		if nconv >= want || betaEnd == 0 || restart >= ks.maxRestarts {
			ks.finalize(v, fac, n, ncv, want, nconv, resids)
			return nil
		}

		// Stage 6: Krylov–Schur truncation — retain the leading keep
		// Schur columns plus the residual vector, and record the
		// coupling row so the Arnoldi relation stays exact. keep can
		// drop to zero when a single conjugate pair fills the working
		// space; the restart then continues from the residual alone.
		if keep > 0 {
			var w mat.Dense
			w.Mul(v.Slice(0, n, 0, ncv), fac.Q.Slice(0, ncv, 0, keep))
			v.Slice(0, n, 0, keep).(*mat.Dense).Copy(&w)
		}
		for i := 0; i < n; i++ {
			v.Set(i, keep, v.At(i, ncv))
		}
		h.Zero()
		if keep > 0 {
			h.Slice(0, keep, 0, keep).(*mat.Dense).Copy(fac.T.Slice(0, keep, 0, keep))
		}
		for j := 0; j < keep; j++ {
			h.Set(keep, j, betaEnd*fac.Q.At(ncv-1, j))
		}
		k = keep
	}
}

// InvariantSubspace returns an orthonormal basis of the computed
// invariant subspace, or nil before a successful Solve. The data is
// always real; the complex container matches the KrylovSolver contract.
func (ks *KrylovSchur) InvariantSubspace() *mat.CDense {
	if !ks.solved {
		return nil
	}

	return ks.basis
}

// ConvergedCount returns the number of eigenpairs that met the tolerance.
func (ks *KrylovSchur) ConvergedCount() int { return ks.nconv }

// Eigenvalue returns the i-th computed eigenvalue in subspace order.
// Panics if called before a successful Solve or with i out of range.
func (ks *KrylovSchur) Eigenvalue(i int) complex128 {
	if !ks.solved || i < 0 || i >= len(ks.values) {
		panic("eigen: eigenvalue index out of range")
	}

	return ks.values[i]
}

// ResidualError returns the residual-based error estimate of the i-th
// eigenpair. Panics if called before a successful Solve or with i out of
// range.
func (ks *KrylovSchur) ResidualError(i int) float64 {
	if !ks.solved || i < 0 || i >= len(ks.resids) {
		panic("eigen: residual index out of range")
	}

	return ks.resids[i]
}

// finalize assembles the basis V·Z[:,:want] and freezes result state.
func (ks *KrylovSchur) finalize(v *mat.Dense, fac *Factorization, n, ncv, want, nconv int, resids []float64) {
	var w mat.Dense
	w.Mul(v.Slice(0, n, 0, ncv), fac.Q.Slice(0, ncv, 0, want))

	data := make([]complex128, n*want)
	for i := 0; i < n; i++ {
		for j := 0; j < want; j++ {
			data[i*want+j] = complex(w.At(i, j), 0)
		}
	}
	ks.basis = mat.NewCDense(n, want, data)
	ks.values = append([]complex128(nil), fac.Values...)
	ks.resids = resids
	ks.nconv = nconv
	ks.solved = true
}

// expandArnoldi grows the orthonormal basis in v from k to ncv columns,
// filling the corresponding columns of the projected matrix h, and
// returns the norm of the final residual vector (stored in column ncv).
// Orthogonalization is twice-applied classical Gram–Schmidt. On a happy
// breakdown (the Krylov space is invariant) the next direction is drawn
// from rng and the subdiagonal entry is set to zero.
func expandArnoldi(p mat.Matrix, v, h *mat.Dense, k, ncv int, rng *rand.Rand) float64 {
	n, _ := v.Dims()
	w := mat.NewVecDense(n, nil)
	var beta float64
	for j := k; j < ncv; j++ {
		w.MulVec(p, v.ColView(j))
		var colNorm float64
		for pass := 0; pass < 2; pass++ {
			for i := 0; i <= j; i++ {
				hij := mat.Dot(v.ColView(i), w)
				h.Set(i, j, h.At(i, j)+hij)
				w.AddScaledVec(w, -hij, v.ColView(i))
			}
		}
		for i := 0; i <= j; i++ {
			colNorm = math.Hypot(colNorm, h.At(i, j))
		}
		beta = mat.Norm(w, 2)
		if beta <= breakdownScale*math.Max(1, colNorm) {
			beta = 0
			if j+1 < ncv {
				freshDirection(v, j+1, rng)
				h.Set(j+1, j, 0)
			} else {
				zeroCol(v, ncv)
			}
			continue
		}
		for i := 0; i < n; i++ {
			v.Set(i, j+1, w.AtVec(i)/beta)
		}
		if j+1 < ncv {
			h.Set(j+1, j, beta)
		}
	}

	return beta
}

// freshDirection fills column j of v with a random unit vector
// orthogonal to columns 0..j-1.
func freshDirection(v *mat.Dense, j int, rng *rand.Rand) {
	n, _ := v.Dims()
	w := mat.NewVecDense(n, nil)
	for {
		for i := 0; i < n; i++ {
			w.SetVec(i, rng.NormFloat64())
		}
		for pass := 0; pass < 2; pass++ {
			for i := 0; i < j; i++ {
				w.AddScaledVec(w, -mat.Dot(v.ColView(i), w), v.ColView(i))
			}
		}
		norm := mat.Norm(w, 2)
		if norm > math.Sqrt(macheps) {
			for i := 0; i < n; i++ {
				v.Set(i, j, w.AtVec(i)/norm)
			}
			return
		}
	}
}

// zeroCol clears column j of v.
func zeroCol(v *mat.Dense, j int) {
	n, _ := v.Dims()
	for i := 0; i < n; i++ {
		v.Set(i, j, 0)
	}
}

// convergedPrefix counts, block by block from the front and stopping at
// the first miss, how many of the leading want eigenpairs satisfy
// resid ≤ tol·max(1, |λ|).
func convergedPrefix(values []complex128, resids []float64, want int, tol float64) int {
	count := 0
	for i := 0; i < want; {
		size := 1
		if imag(values[i]) != 0 && i+1 < len(values) {
			size = 2
		}
		ok := true
		for r := i; r < i+size && r < len(resids); r++ {
			scale := math.Max(1, ByLargestMagnitude.Score(values[r]))
			if resids[r] > tol*scale {
				ok = false
				break
			}
		}
		if !ok {
			break
		}
		count += size
		i += size
	}
	if count > want {
		count = want
	}

	return count
}

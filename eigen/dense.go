package eigen

import "gonum.org/v1/gonum/mat"

// Dense computes full spectra with gonum's dense nonsymmetric
// eigensolver. It is stateless and safe for concurrent use.
type Dense struct{}

// NewDense returns a full-spectrum dense eigensolver.
func NewDense() Dense { return Dense{} }

// Eigenvalues returns all n eigenvalues of p.
//
// Errors: ErrBadInput on a nil/empty/non-square matrix, ErrEigenFailed
// when the QR iteration does not converge.
//
// Complexity: O(n³) time, O(n²) space.
func (Dense) Eigenvalues(p mat.Matrix) ([]complex128, error) {
	if _, err := squareDims(p); err != nil {
		return nil, err
	}

	var eig mat.Eigen
	if ok := eig.Factorize(p, mat.EigenNone); !ok {
		return nil, ErrEigenFailed
	}

	return eig.Values(nil), nil
}

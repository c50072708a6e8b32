package eigen_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/eigen"
)

// ExamplePartial extracts the two dominant eigenvalues of a small
// diagonal operator without computing the full spectrum.
func ExamplePartial() {
	p := mat.NewDense(8, 8, nil)
	for i, v := range []float64{1.0, 0.8, 0.6, 0.4, 0.3, 0.2, 0.15, 0.1} {
		p.Set(i, i, v)
	}

	vals, err := eigen.NewPartial().PartialEigenvalues(p, 2, eigen.ByLargestMagnitude)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("top: %.2f %.2f\n", real(vals[0]), real(vals[1]))

	// Output:
	// top: 1.00 0.80
}

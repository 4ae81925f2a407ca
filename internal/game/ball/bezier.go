package ball

import "github.com/Faultbox/avoid-balls/pkg/math"

// Bernstein returns the k-th Bernstein basis polynomial of degree n at t.
func Bernstein(n, k int, t float32) float32 {
	coef := float32(binomial(n, k))
	return coef * pow(t, k) * pow(1-t, n-k)
}

// Bezier evaluates the curve through the control points at t.
func Bezier(points []math.Vec3, t float32) math.Vec3 {
	if len(points) == 0 {
		return math.Vec3{}
	}
	n := len(points) - 1
	var p math.Vec3
	for i, pt := range points {
		p = p.Add(pt.Scale(Bernstein(n, i, t)))
	}
	return p
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	c := 1
	for i := 1; i <= k; i++ {
		c = c * (n - k + i) / i
	}
	return c
}

func pow(x float32, e int) float32 {
	r := float32(1)
	for i := 0; i < e; i++ {
		r *= x
	}
	return r
}

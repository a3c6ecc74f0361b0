// Package geometry provides the planar distance and angle measurements used
// to describe a hand pose. Depth (Z) is ignored throughout.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ayusman/mudra/internal/landmark"
)

// Epsilon guards the angle denominator against zero-length vectors.
const Epsilon = 1e-6

// Vec projects a landmark onto the image plane.
func Vec(p landmark.Point3D) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Distance returns the Euclidean distance between two landmarks using X and Y.
func Distance(p1, p2 landmark.Point3D) float64 {
	return norm(r2.Sub(Vec(p1), Vec(p2)))
}

// Angle returns the angle in degrees at vertex p2 formed by the rays to p1
// and p3. The cosine is clamped to [-1, 1] before the inverse cosine, so
// floating-point drift never leaves the domain. A zero-length ray gives a
// finite result; NaN coordinates give NaN, which fails every threshold
// comparison.
func Angle(p1, p2, p3 landmark.Point3D) float64 {
	v1 := r2.Sub(Vec(p1), Vec(p2))
	v2 := r2.Sub(Vec(p3), Vec(p2))

	cos := dot(v1, v2) / (norm(v1)*norm(v2) + Epsilon)
	cos = clamp(cos, -1, 1)

	return math.Acos(cos) * (180 / math.Pi)
}

// dot keeps the products as separate float64 roundings; the explicit
// conversions stop the compiler from fusing them into an FMA.
func dot(a, b r2.Vec) float64 {
	return float64(a.X*b.X) + float64(a.Y*b.Y)
}

func norm(v r2.Vec) float64 {
	return math.Sqrt(dot(v, v))
}

// clamp limits x to [lo, hi]. NaN passes through unchanged.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

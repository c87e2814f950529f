package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a world-space position or velocity. X and Z span the ground plane,
// Y is altitude.
type Vec3 = r3.Vec

// V3 builds a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec3) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// HorizontalDist returns the distance between two points projected onto the
// ground plane.
func HorizontalDist(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// HorizontalDistSq is HorizontalDist squared.
func HorizontalDistSq(a, b Vec3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return dx*dx + dz*dz
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// AngleDiff returns the absolute difference between two headings folded into
// [0, π].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// WrapAngle normalizes a heading to (-π, π].
func WrapAngle(a float64) float64 {
	r := math.Mod(a, 2*math.Pi)
	if r > math.Pi {
		r -= 2 * math.Pi
	}
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

// Heading returns the yaw that points from one point toward another, using the
// same convention as the flight model: forward = (sin(yaw), cos(yaw)).
func Heading(from, to Vec3) float64 {
	return math.Atan2(to.X-from.X, to.Z-from.Z)
}

// Package math provides vector, matrix and scalar helpers for tile geometry.
package math

import "math"

// Vec3 is a 3D vector. X runs left to right, Y forward to backward, Z up.
type Vec3 struct {
	X, Y, Z float64
}

// V3 builds a Vec3 from an array triple.
func V3(p [3]float64) Vec3 {
	return Vec3{p[0], p[1], p[2]}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// LengthSquared returns the squared magnitude.
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

// WithZ returns v with its Z component replaced.
func (v Vec3) WithZ(z float64) Vec3 {
	return Vec3{v.X, v.Y, z}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

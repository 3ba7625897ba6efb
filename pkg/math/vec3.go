// Package math provides the float32 vector types stored in compiled map files.
//
// Geometry work happens in float64 (mgl64); these types only carry values
// exactly as they were read from disk.
package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D vector as stored on disk.
type Vec3 struct {
	X, Y, Z float32
}

// Vec64 widens v to a float64 vector.
func (v Vec3) Vec64() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

// Array returns the components as an indexable array.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Max returns the largest component.
func (v Vec3) Max() float32 {
	return math32.Max(v.X, math32.Max(v.Y, v.Z))
}

// Vec4 is a 4-component vector, used for texture projection axes
// (xyz direction plus offset).
type Vec4 [4]float32

// XYZ returns the direction part.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Offset returns the fourth component.
func (v Vec4) Offset() float32 {
	return v[3]
}

// AxisLength returns the length of the direction part as float64.
// Texel and luxel densities are derived from it.
func (v Vec4) AxisLength() float64 {
	return v.XYZ().Vec64().Len()
}

package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 represents a 3D vector or point. Arithmetic is delegated to gonum's r3 package.
type Vec3 r3.Vec

// Vec2 represents a 2D sample or coordinate pair
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) r3() r3.Vec { return r3.Vec(v) }

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3(r3.Add(v.r3(), other.r3()))
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3(r3.Sub(v.r3(), other.r3()))
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3(r3.Scale(scalar, v.r3()))
}

// Divide returns the vector divided by a scalar
func (v Vec3) Divide(scalar float64) Vec3 {
	return Vec3(r3.Scale(1/scalar, v.r3()))
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return r3.Norm(v.r3())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return r3.Norm2(v.r3())
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.r3(), other.r3())
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3(r3.Cross(v.r3(), other.r3()))
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	if v.X == 0 && v.Y == 0 && v.Z == 0 {
		return Vec3{}
	}
	return Vec3(r3.Unit(v.r3()))
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// NearZero reports whether every component is within 1e-8 of zero
func (v Vec3) NearZero() bool {
	const s = 1e-8
	return math.Abs(v.X) < s && math.Abs(v.Y) < s && math.Abs(v.Z) < s
}

// Reflect mirrors v about the normal n: v - 2*dot(v,n)*n
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends the unit vector v through a surface with unit normal n using Snell's law.
// etaRatio is the ratio of the incident to the transmitted refractive index.
func (v Vec3) Refract(n Vec3, etaRatio float64) Vec3 {
	cosTheta := math.Min(v.Negate().Dot(n), 1.0)
	rOutPerp := v.Add(n.Multiply(cosTheta)).Multiply(etaRatio)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Equals reports whether two vectors are within 1e-9 of each other component-wise
func (v Vec3) Equals(other Vec3) bool {
	const tolerance = 1e-9
	return math.Abs(v.X-other.X) < tolerance &&
		math.Abs(v.Y-other.Y) < tolerance &&
		math.Abs(v.Z-other.Z) < tolerance
}

// Package geom holds the planar vector helpers used to reason about lobe directions.
package geom

import "math"

// Vector2D is a point on the plane, normally a unit direction (versor)
type Vector2D struct {
	X, Y float64
}

// Versor returns the unit vector pointing at degree (counter-clockwise from X axis)
func Versor(degree float64) Vector2D {
	rad := degree * math.Pi / 180.0
	return Vector2D{X: math.Cos(rad), Y: math.Sin(rad)}
}

func Add(v1, v2 Vector2D) Vector2D {
	return Vector2D{X: v1.X + v2.X, Y: v1.Y + v2.Y}
}

func Scale(k float64, v Vector2D) Vector2D {
	return Vector2D{X: k * v.X, Y: k * v.Y}
}

// Dot returns the scalar product of v1 and v2
func Dot(v1, v2 Vector2D) float64 {
	return v1.X*v2.X + v1.Y*v2.Y
}

// Cross returns the z component of v1 x v2, positive when v2 lies counter-clockwise of v1
func Cross(v1, v2 Vector2D) float64 {
	return v1.X*v2.Y - v1.Y*v2.X
}

// Sum adds all the vectors
func Sum(vectors []Vector2D) Vector2D {
	var result Vector2D
	for _, v := range vectors {
		result = Add(result, v)
	}
	return result
}

func (v Vector2D) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Argument returns the angle of v in radians, in (-pi, pi]
func (v Vector2D) Argument() float64 {
	return math.Atan2(v.Y, v.X)
}

// Degree returns the angle of v in degrees wrapped to [0, 360)
func (v Vector2D) Degree() float64 {
	deg := v.Argument() * 180.0 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// insideRayLength is how far past the first patch the containment ray ends.
const insideRayLength = 30

// intersectGuard keeps the segment/triangle solve finite for parallel cases.
const intersectGuard = 1e-10

// Shape is an ordered list of patches.
type Shape struct {
	Polys []*Polygon
}

// CloseEnough returns the first patch whose centroid matches point within
// epsilon on every axis. Axes are compared by magnitude, so a centroid
// mirrored across an axis plane still matches.
func (s *Shape) CloseEnough(point mgl64.Vec3, epsilon float64) *Polygon {
	for _, p := range s.Polys {
		if magnitudesClose(p.Center, point, epsilon) {
			return p
		}
	}
	return nil
}

func magnitudesClose(a, b mgl64.Vec3, epsilon float64) bool {
	for i := 0; i < 3; i++ {
		d := math.Abs(a[i]) - math.Abs(b[i])
		if d < -epsilon || d > epsilon {
			return false
		}
	}
	return true
}

// IsInside casts a segment from point to a spot just behind the first
// patch and counts the patches it crosses. An odd count means point is
// enclosed; the last patch hit is returned. Shapes built by subdivision are
// open sheets, so this only answers meaningfully for closed shapes such as
// those from ExtrudeShape.
func (s *Shape) IsInside(point mgl64.Vec3) *Polygon {
	if len(s.Polys) == 0 {
		return nil
	}
	first := s.Polys[0]
	dest := first.Points[0].Add(first.Normal.Mul(-insideRayLength))

	hits := 0
	var last *Polygon
	for _, p := range s.Polys {
		if p.Intersects(point, dest) {
			hits++
			last = p
		}
	}
	if hits%2 == 1 {
		return last
	}
	return nil
}

// Intersects reports whether the segment from l1 to l2 crosses any
// triangle of the polygon's fan.
func (p *Polygon) Intersects(l1, l2 mgl64.Vec3) bool {
	dir := l1.Sub(l2) // -(l2 - l1)
	for _, tri := range p.Triangles() {
		p0 := tri[0]
		p01 := tri[1].Sub(p0)
		p02 := tri[2].Sub(p0)
		rel := l1.Sub(p0)

		n := p01.Cross(p02)
		denom := n.Dot(dir) + intersectGuard

		t := n.Dot(rel) / denom
		u := p02.Cross(dir).Dot(rel) / denom
		v := dir.Cross(p01).Dot(rel) / denom

		if t >= 0 && t <= 1 && u >= 0 && u <= 1 && v >= 0 && v <= 1 && u+v <= 1 {
			return true
		}
	}
	return false
}

// ExtrudeShape sweeps p width units along its normal into a closed prism:
// the base, one quad per edge and a reversed cap.
func ExtrudeShape(p *Polygon, width float64) (*Shape, error) {
	offset := p.Normal.Mul(width)
	n := len(p.Points)

	polys := make([]*Polygon, 0, n+2)
	polys = append(polys, p)

	for i, pt := range p.Points {
		next := p.Points[(i+1)%n]
		side, err := NewPolygon([]mgl64.Vec3{pt, next, next.Add(offset), pt.Add(offset)})
		if err != nil {
			return nil, err
		}
		polys = append(polys, side)
	}

	capPoints := make([]mgl64.Vec3, n)
	for i, pt := range p.Points {
		capPoints[n-1-i] = pt.Add(offset)
	}
	top, err := NewPolygon(capPoints)
	if err != nil {
		return nil, err
	}
	polys = append(polys, top)

	return &Shape{Polys: polys}, nil
}

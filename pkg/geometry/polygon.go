// Package geometry subdivides planar convex polygons into bounded patches and
// answers proximity and containment queries over the result.
package geometry

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry errors.
var (
	ErrDegeneratePolygon = errors.New("degenerate polygon")
	ErrClipVertexBudget  = errors.New("clip exceeded its vertex budget")
	ErrMaxDepthExceeded  = errors.New("subdivision exceeded maximum depth")
)

// Polygon is a planar convex polygon with its derived properties. The ring
// is closed implicitly from the last point back to the first. A Polygon is
// never modified after NewPolygon returns it.
type Polygon struct {
	Points []mgl64.Vec3
	Normal mgl64.Vec3
	Mins   mgl64.Vec3
	Maxs   mgl64.Vec3
	Area   float64
	Center mgl64.Vec3 // area-weighted centroid
}

// NewPolygon builds a polygon from at least three points. A polygon with
// no area is rejected with ErrDegeneratePolygon.
func NewPolygon(points []mgl64.Vec3) (*Polygon, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: %d points, need at least 3", ErrDegeneratePolygon, len(points))
	}

	p := &Polygon{Points: points}
	p.Normal = newellNormal(points)
	p.Mins, p.Maxs = bounds(points)
	p.Area, p.Center = areaAndCenter(points)

	if !(p.Area > 0) {
		return nil, fmt.Errorf("%w: area %g", ErrDegeneratePolygon, p.Area)
	}
	return p, nil
}

// newellNormal sums the signed projected areas of the ring. The result is
// negated so it matches the map compiler's winding.
func newellNormal(points []mgl64.Vec3) mgl64.Vec3 {
	var n mgl64.Vec3
	count := len(points)
	for i, cur := range points {
		next := points[(i+1)%count]
		n[0] += (cur[1] - next[1]) * (cur[2] + next[2])
		n[1] += (cur[2] - next[2]) * (cur[0] + next[0])
		n[2] += (cur[0] - next[0]) * (cur[1] + next[1])
	}
	return normalize(n.Mul(-1))
}

func bounds(points []mgl64.Vec3) (mins, maxs mgl64.Vec3) {
	mins, maxs = points[0], points[0]
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < mins[i] {
				mins[i] = p[i]
			}
			if p[i] > maxs[i] {
				maxs[i] = p[i]
			}
		}
	}
	return mins, maxs
}

// areaAndCenter fans the ring out from its first point. Each triangle
// contributes its centroid weighted by its own area. Keep the summation
// order: CloseEnough compares against the tolerance to the last bit.
func areaAndCenter(points []mgl64.Vec3) (float64, mgl64.Vec3) {
	var total float64
	var center mgl64.Vec3
	p0 := points[0]
	for i := 1; i < len(points)-1; i++ {
		p1, p2 := points[i], points[i+1]
		a := p1.Sub(p0).Cross(p2.Sub(p1)).Len()
		total += a
		center = center.Add(p1.Mul(a / 3)).Add(p2.Mul(a / 3)).Add(p0.Mul(a / 3))
	}
	if total != 0 {
		center = center.Mul(1 / total)
	}
	return total * 0.5, center
}

// Triangles returns the fan triangulation from the first point.
func (p *Polygon) Triangles() [][3]mgl64.Vec3 {
	tris := make([][3]mgl64.Vec3, 0, len(p.Points)-2)
	for i := 1; i < len(p.Points)-1; i++ {
		tris = append(tris, [3]mgl64.Vec3{p.Points[0], p.Points[i], p.Points[i+1]})
	}
	return tris
}

// Extent returns the bounding box size.
func (p *Polygon) Extent() mgl64.Vec3 {
	return p.Maxs.Sub(p.Mins)
}

// normalize returns the zero vector for zero-length input instead of NaNs.
func normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxClipPoints caps the size of either contour a clip can produce.
const MaxClipPoints = 64

type side int

const (
	sideFront side = iota
	sideBack
	sideOn
)

// Clip splits p against the plane dot(x, normal) = dist, where normal is an
// axis vector (exactly one non-zero component). Points within epsilon of
// the plane belong to both halves. A half that keeps fewer than three
// points is returned as nil; when p lies entirely on one side it is
// returned unchanged on that side.
func (p *Polygon) Clip(normal mgl64.Vec3, dist, epsilon float64) (front, back *Polygon, err error) {
	n := len(p.Points)
	sides := make([]side, n+1)
	dists := make([]float64, n+1)
	var counts [3]int

	for i, pt := range p.Points {
		d := pt.Dot(normal) - dist
		dists[i] = d
		switch {
		case d > epsilon:
			sides[i] = sideFront
		case d < -epsilon:
			sides[i] = sideBack
		default:
			sides[i] = sideOn
		}
		counts[sides[i]]++
	}
	sides[n] = sides[0]
	dists[n] = dists[0]

	if counts[sideFront] == 0 {
		return nil, p, nil
	}
	if counts[sideBack] == 0 {
		return p, nil, nil
	}

	f := make([]mgl64.Vec3, 0, n+4)
	b := make([]mgl64.Vec3, 0, n+4)

	for i, pt := range p.Points {
		if sides[i] == sideOn {
			f = append(f, pt)
			b = append(b, pt)
			continue
		}
		if sides[i] == sideFront {
			f = append(f, pt)
		} else {
			b = append(b, pt)
		}

		if sides[i+1] == sideOn || sides[i+1] == sides[i] {
			continue
		}

		next := p.Points[(i+1)%n]
		t := dists[i] / (dists[i] - dists[i+1])
		var mid mgl64.Vec3
		for j := 0; j < 3; j++ {
			// Snap to the plane on the clip axis.
			switch normal[j] {
			case 1:
				mid[j] = dist
			case -1:
				mid[j] = -dist
			default:
				mid[j] = pt[j] + t*(next[j]-pt[j])
			}
		}
		f = append(f, mid)
		b = append(b, mid)
	}

	limit := min(n+4, MaxClipPoints)
	if len(f) > limit || len(b) > limit {
		return nil, nil, fmt.Errorf("%w: %d front, %d back points from %d (limit %d)",
			ErrClipVertexBudget, len(f), len(b), n, limit)
	}

	if len(f) >= 3 {
		if front, err = NewPolygon(f); err != nil {
			return nil, nil, err
		}
	}
	if len(b) >= 3 {
		if back, err = NewPolygon(b); err != nil {
			return nil, nil, err
		}
	}
	if front == nil && back == nil {
		return nil, nil, fmt.Errorf("%w: clip left no contour on either side", ErrDegeneratePolygon)
	}
	return front, back, nil
}

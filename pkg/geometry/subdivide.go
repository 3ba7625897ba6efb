package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Subdivider chops polygons into patches no larger than Chop luxels along
// any axis.
type Subdivider struct {
	Chop     float64 // starting chop size, in luxels
	MinChop  float64 // floor for both splitting and sliver halving
	Epsilon  float64 // on-plane tolerance passed to Clip
	MaxDepth int     // recursion guard
}

// DefaultSubdivider matches the map compiler's patch settings.
var DefaultSubdivider = Subdivider{
	Chop:     4,
	MinChop:  4,
	Epsilon:  0.1,
	MaxDepth: 128,
}

// Subdivide splits p into leaf patches in depth-first order, front half
// before back half. luxelScale is the mean luxels-per-world-unit of the
// surface's lightmap axes.
func (s Subdivider) Subdivide(p *Polygon, luxelScale float64) ([]*Polygon, error) {
	var patches []*Polygon
	if err := s.subdivide(p, luxelScale, s.Chop, 0, &patches); err != nil {
		return nil, err
	}
	return patches, nil
}

// SubdivideToShape is Subdivide wrapped into a Shape.
func (s Subdivider) SubdivideToShape(p *Polygon, luxelScale float64) (*Shape, error) {
	patches, err := s.Subdivide(p, luxelScale)
	if err != nil {
		return nil, err
	}
	return &Shape{Polys: patches}, nil
}

func (s Subdivider) subdivide(p *Polygon, luxelScale, chop float64, depth int, out *[]*Polygon) error {
	if depth > s.MaxDepth {
		return fmt.Errorf("%w: depth %d", ErrMaxDepthExceeded, depth)
	}

	extent := p.Extent().Mul(luxelScale)

	widest := -1.0
	axis := -1
	split := false
	for i := 0; i < 3; i++ {
		if extent[i] > widest {
			axis = i
			widest = extent[i]
		}
		if extent[i] >= chop && extent[i] >= s.MinChop {
			split = true
		}
	}

	// Long thin slivers get a smaller chop even when no axis crosses it.
	if !split && axis != -1 {
		if widest > extent[(axis+1)%3]*2 && widest > extent[(axis+2)%3]*2 && chop > s.MinChop {
			split = true
			chop = max(s.MinChop, chop/2)
		}
	}

	if !split {
		*out = append(*out, p)
		return nil
	}

	var normal mgl64.Vec3
	normal[axis] = 1
	dist := (p.Mins[axis] + p.Maxs[axis]) * 0.5

	front, back, err := p.Clip(normal, dist, s.Epsilon)
	if err != nil {
		return fmt.Errorf("clipping at depth %d: %w", depth, err)
	}

	for _, child := range []*Polygon{front, back} {
		if child == nil {
			continue
		}
		// A clip that keeps the whole polygon on one side can't make progress.
		if child == p {
			*out = append(*out, p)
			continue
		}
		if err := s.subdivide(child, luxelScale, chop, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

// Package extract recovers lights.rad texture colors from a decoded map by
// matching surface world lights back to the light-emitting faces that
// produced them.
package extract

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/lightsrad/pkg/bsp"
	"github.com/Faultbox/lightsrad/pkg/geometry"
)

// ErrBadReference is returned when a face points outside the lump it
// indexes into.
var ErrBadReference = errors.New("face references data outside its lump")

const (
	// gamma is the exponent the compiler applies to lights.rad colors.
	gamma = 2.2
	// intensityScale undoes the compiler's 100x100 texel brightness scale.
	intensityScale = 255.0 / (100 * 100)
)

// Options control the search.
type Options struct {
	// QuickSearch keeps only the first light face of each texture.
	QuickSearch bool
	// SearchDistance is the per-axis tolerance between a light origin and
	// a patch centroid.
	SearchDistance float64
	// IncludeHDRLights falls back to the HDR world lights when the LDR
	// lump is empty.
	IncludeHDRLights bool
	Subdivider       geometry.Subdivider
}

// DefaultOptions returns the command line defaults.
func DefaultOptions() Options {
	return Options{
		SearchDistance:   1,
		IncludeHDRLights: true,
		Subdivider:       geometry.DefaultSubdivider,
	}
}

// TextureLight is one recovered lights.rad entry.
type TextureLight struct {
	Name  string // as stored in the map, not case folded
	Color [3]int
	Face  int // face whose patch matched
	Light int // index of the matching world light
}

// Result is the outcome of one extraction.
type Result struct {
	Textures    []TextureLight // in the order they were resolved
	LightFaces  int            // faces flagged SURF_LIGHT
	Shapes      int            // faces that were subdivided
	FailedFaces int            // faces whose polygon could not be built or subdivided
	Lights      int            // surface lights considered
	UsedHDR     bool           // lights came from the HDR lump
}

// Extractor runs the two-pass search over a map.
type Extractor struct {
	opts Options
	log  *zap.Logger
}

// New creates an Extractor. A nil logger discards output.
func New(opts Options, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{opts: opts, log: log}
}

// lightFace is a subdivided light-emitting face.
type lightFace struct {
	shape   *geometry.Shape
	face    int
	texture string
	texInfo bsp.TexInfo
	texData bsp.TexData
}

// Extract subdivides every light-emitting face and resolves each texture
// to the color of the first surface light sitting on one of its patches.
func (e *Extractor) Extract(m *bsp.Map) (*Result, error) {
	res := &Result{}

	faces, err := e.lightFaces(m, res)
	if err != nil {
		return nil, err
	}

	lights := m.WorldLights()
	if len(lights) == 0 && e.opts.IncludeHDRLights {
		if hdr := m.WorldLightsHDR(); len(hdr) > 0 {
			lights = hdr
			res.UsedHDR = true
		}
	}

	resolved := make(map[string]bool)
	for li, light := range lights {
		if light.Type != bsp.EmitSurface {
			continue
		}
		res.Lights++

		origin := light.Origin.Vec64()
		for i, lf := range faces {
			patch := lf.shape.CloseEnough(origin, e.opts.SearchDistance)
			if patch == nil {
				continue
			}

			color, err := textureColor(light.Intensity.Vec64(), lf, patch)
			if err != nil {
				e.log.Warn("Cannot compute texture color",
					zap.String("texture", lf.texture),
					zap.Int("face", lf.face),
					zap.Error(err))
				res.FailedFaces++
				faces = append(faces[:i], faces[i+1:]...)
				break
			}

			res.Textures = append(res.Textures, TextureLight{
				Name:  lf.texture,
				Color: color,
				Face:  lf.face,
				Light: li,
			})
			resolved[lf.texture] = true
			e.log.Debug("Resolved texture",
				zap.String("texture", lf.texture),
				zap.Ints("rgb", color[:]),
				zap.Int("face", lf.face),
				zap.Int("light", li))

			faces = dropResolved(faces, resolved)
			break
		}
	}

	return res, nil
}

// lightFaces builds a shape for every SURF_LIGHT face, in face order.
func (e *Extractor) lightFaces(m *bsp.Map, res *Result) ([]lightFace, error) {
	texInfos := m.TexInfos()
	texData := m.TexData()
	seen := make(map[string]bool)

	var out []lightFace
	for fi, face := range m.Faces() {
		// Faces without a texinfo (-1) cannot emit light.
		if face.TexInfo < 0 {
			continue
		}
		if int(face.TexInfo) >= len(texInfos) {
			return nil, fmt.Errorf("%w: face %d texinfo %d of %d", ErrBadReference, fi, face.TexInfo, len(texInfos))
		}
		ti := texInfos[face.TexInfo]
		if !ti.Flags.Has(bsp.SurfLight) {
			continue
		}
		res.LightFaces++

		if ti.TexData < 0 || int(ti.TexData) >= len(texData) {
			return nil, fmt.Errorf("%w: face %d texdata %d of %d", ErrBadReference, fi, ti.TexData, len(texData))
		}
		td := texData[ti.TexData]
		name, err := m.TextureName(td)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", fi, err)
		}

		if e.opts.QuickSearch && seen[name] {
			continue
		}

		ring, err := faceRing(m, fi, face)
		if err != nil {
			return nil, err
		}

		// Failed faces still count as seen.
		seen[name] = true

		luxel := ti.LuxelScale()
		shape, err := e.subdivide(ring, (luxel[0]+luxel[1])/2)
		if err != nil {
			e.log.Warn("Failed to subdivide face",
				zap.Int("face", fi),
				zap.String("texture", name),
				zap.Error(err))
			res.FailedFaces++
			continue
		}

		out = append(out, lightFace{shape: shape, face: fi, texture: name, texInfo: ti, texData: td})
		res.Shapes++
	}
	return out, nil
}

func (e *Extractor) subdivide(ring []mgl64.Vec3, luxelScale float64) (*geometry.Shape, error) {
	poly, err := geometry.NewPolygon(ring)
	if err != nil {
		return nil, err
	}
	return e.opts.Subdivider.SubdivideToShape(poly, luxelScale)
}

// faceRing walks a face's surfedges. A negative surfedge traverses its edge
// backwards, so the ring starts from the edge's second vertex.
func faceRing(m *bsp.Map, fi int, face bsp.Face) ([]mgl64.Vec3, error) {
	surfEdges := m.SurfEdges()
	edges := m.Edges()
	verts := m.Vertexes()

	first, n := int(face.FirstEdge), int(face.NumEdges)
	if first < 0 || n < 0 || first+n > len(surfEdges) {
		return nil, fmt.Errorf("%w: face %d surfedges [%d,%d) of %d", ErrBadReference, fi, first, first+n, len(surfEdges))
	}

	ring := make([]mgl64.Vec3, 0, n)
	for _, se := range surfEdges[first : first+n] {
		idx := int64(se)
		if idx < 0 {
			idx = -idx
		}
		if idx >= int64(len(edges)) {
			return nil, fmt.Errorf("%w: face %d edge %d of %d", ErrBadReference, fi, idx, len(edges))
		}
		edge := edges[idx]
		v := edge.V[0]
		if se < 0 {
			v = edge.V[1]
		}
		if int(v) >= len(verts) {
			return nil, fmt.Errorf("%w: face %d vertex %d of %d", ErrBadReference, fi, v, len(verts))
		}
		ring = append(ring, verts[v].Point.Vec64())
	}
	return ring, nil
}

// textureColor scales the light back to the per-texel reflectivity the
// compiler started from, then re-applies gamma.
func textureColor(intensity mgl64.Vec3, lf lightFace, patch *geometry.Polygon) ([3]int, error) {
	texel := lf.texInfo.TexelScale()
	texels := float64(lf.texData.Width) * float64(lf.texData.Height)
	factor := texels / (texel[0] * texel[1] * patch.Area)
	if math.IsInf(factor, 0) || math.IsNaN(factor) {
		return [3]int{}, fmt.Errorf("texture scale %v over patch area %g", texel, patch.Area)
	}

	var rgb [3]int
	for c := 0; c < 3; c++ {
		base := intensity[c] * intensityScale * factor
		if base < 0 {
			base = 0
		}
		rgb[c] = int(math.RoundToEven(math.Pow(base/255, 1/gamma) * 255))
	}
	return rgb, nil
}

func dropResolved(faces []lightFace, resolved map[string]bool) []lightFace {
	kept := faces[:0]
	for _, lf := range faces {
		if !resolved[lf.texture] {
			kept = append(kept, lf)
		}
	}
	return kept
}

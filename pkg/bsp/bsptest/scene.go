package bsptest

import (
	"bytes"
	"encoding/binary"

	"github.com/Faultbox/lightsrad/pkg/bsp"
	"github.com/Faultbox/lightsrad/pkg/math"
)

// Surface describes one face to put into a Scene.
type Surface struct {
	Texture       string
	Points        []math.Vec3 // closed ring, in winding order
	Flags         bsp.SurfFlags
	TexelScale    float32 // texels per world unit on both texture axes
	LuxelScale    float32 // luxels per world unit on both lightmap axes
	Width, Height int32   // texture dimensions
	ReverseEdges  bool    // store edges backwards and walk them with negative surfedges
}

// Light describes one world light.
type Light struct {
	Origin    math.Vec3
	Intensity math.Vec3
	Type      bsp.EmitType
}

// Scene is a minimal renderable world: faces with their texture chain and
// a world light lump.
type Scene struct {
	Surfaces     []Surface
	Lights       []Light
	LightVersion uint32 // 0 or 1
	HDRLights    bool   // put the lights into the HDR lump instead
}

// Build lays out every lump the scene needs.
func (s Scene) Build() *Builder {
	b := New()

	var (
		vertexes  []bsp.Vertex
		edges     = []bsp.Edge{{}} // edge 0 is never referenced
		surfedges []int32
		faces     []bsp.Face
		texinfos  []bsp.TexInfo
		texdata   []bsp.TexData
		names     []string
		nameIndex = map[string]int32{}
	)

	for _, surf := range s.Surfaces {
		first := len(vertexes)
		for _, p := range surf.Points {
			vertexes = append(vertexes, bsp.Vertex{Point: p})
		}

		firstEdge := int32(len(surfedges))
		n := len(surf.Points)
		for i := 0; i < n; i++ {
			a := uint16(first + i)
			c := uint16(first + (i+1)%n)
			idx := int32(len(edges))
			if surf.ReverseEdges {
				edges = append(edges, bsp.Edge{V: [2]uint16{c, a}})
				surfedges = append(surfedges, -idx)
			} else {
				edges = append(edges, bsp.Edge{V: [2]uint16{a, c}})
				surfedges = append(surfedges, idx)
			}
		}

		nameID, ok := nameIndex[surf.Texture]
		if !ok {
			nameID = int32(len(names))
			nameIndex[surf.Texture] = nameID
			names = append(names, surf.Texture)
		}
		texdata = append(texdata, bsp.TexData{
			NameStringTableID: nameID,
			Width:             surf.Width,
			Height:            surf.Height,
			ViewWidth:         surf.Width,
			ViewHeight:        surf.Height,
		})

		ts, ls := surf.TexelScale, surf.LuxelScale
		texinfos = append(texinfos, bsp.TexInfo{
			TextureVecs:  [2]math.Vec4{{ts, 0, 0, 0}, {0, ts, 0, 0}},
			LightmapVecs: [2]math.Vec4{{ls, 0, 0, 0}, {0, ls, 0, 0}},
			Flags:        surf.Flags,
			TexData:      int32(len(texdata) - 1),
		})

		faces = append(faces, bsp.Face{
			FirstEdge: firstEdge,
			NumEdges:  int16(n),
			TexInfo:   int16(len(texinfos) - 1),
			DispInfo:  -1,
			Styles:    [4]uint8{0, 255, 255, 255},
		})
	}

	// Empty lumps are left out of the directory entirely.
	if len(faces) > 0 {
		b.Records(bsp.LumpVertexes, 0, vertexes)
		b.Records(bsp.LumpEdges, 0, edges)
		b.Records(bsp.LumpSurfEdges, 0, surfedges)
		b.Records(bsp.LumpFaces, 1, faces)
		b.Records(bsp.LumpTexInfo, 0, texinfos)
		b.Records(bsp.LumpTexData, 0, texdata)
		b.Strings(names...)
	}

	lightLump := bsp.LumpWorldLights
	if s.HDRLights {
		lightLump = bsp.LumpWorldLightsHDR
	}
	if len(s.Lights) > 0 {
		b.Raw(lightLump, s.LightVersion, EncodeLights(s.LightVersion, s.Lights))
	}
	return b
}

// EncodeLights writes lights in the record layout of the given lump version.
func EncodeLights(version uint32, lights []Light) []byte {
	buf := new(bytes.Buffer)
	for _, l := range lights {
		wl := bsp.WorldLight{
			Origin:       l.Origin,
			Intensity:    l.Intensity,
			Normal:       math.Vec3{Z: -1},
			Type:         l.Type,
			Style:        0,
			ConstantAttn: 1,
			TexInfo:      -1,
		}
		if version == 1 {
			binary.Write(buf, binary.LittleEndian, wl)
			continue
		}
		binary.Write(buf, binary.LittleEndian, wl.Origin)
		binary.Write(buf, binary.LittleEndian, wl.Intensity)
		binary.Write(buf, binary.LittleEndian, wl.Normal)
		binary.Write(buf, binary.LittleEndian, struct {
			Cluster                                 int32
			Type                                    bsp.EmitType
			Style                                   int32
			StopDot, StopDot2, Exponent, Radius     float32
			ConstantAttn, LinearAttn, QuadraticAttn float32
			Flags, TexInfo, Owner                   int32
		}{
			Cluster:      wl.Cluster,
			Type:         wl.Type,
			Style:        wl.Style,
			ConstantAttn: wl.ConstantAttn,
			TexInfo:      wl.TexInfo,
		})
	}
	return buf.Bytes()
}

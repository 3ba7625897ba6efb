package bsp

import "github.com/Faultbox/lightsrad/pkg/math"

// Field order and widths match the on-disk layout; the records are read
// with encoding/binary, so nothing here may be reordered.

// Plane is a dplane_t (20 bytes).
type Plane struct {
	Normal math.Vec3
	Dist   float32
	Type   int32 // 0-2 axial in X/Y/Z, 3-5 non-axial
}

// TexData is a dtexdata_t (32 bytes).
type TexData struct {
	Reflectivity      math.Vec3
	NameStringTableID int32
	Width             int32
	Height            int32
	ViewWidth         int32
	ViewHeight        int32
}

// Vertex is a dvertex_t (12 bytes).
type Vertex struct {
	Point math.Vec3
}

// TexInfo is a texinfo_t (72 bytes).
type TexInfo struct {
	TextureVecs  [2]math.Vec4 // texels per world unit, S and T
	LightmapVecs [2]math.Vec4 // luxels per world unit, S and T
	Flags        SurfFlags
	TexData      int32
}

// TexelScale returns the texture-space density along S and T.
func (t TexInfo) TexelScale() [2]float64 {
	return [2]float64{t.TextureVecs[0].AxisLength(), t.TextureVecs[1].AxisLength()}
}

// LuxelScale returns the lightmap density along S and T.
func (t TexInfo) LuxelScale() [2]float64 {
	return [2]float64{t.LightmapVecs[0].AxisLength(), t.LightmapVecs[1].AxisLength()}
}

// Face is a dface_t (56 bytes).
type Face struct {
	PlaneNum           uint16
	Side               uint8
	OnNode             uint8
	FirstEdge          int32
	NumEdges           int16
	TexInfo            int16
	DispInfo           int16
	SurfaceFogVolumeID int16
	Styles             [4]uint8
	LightOffset        int32
	Area               float32
	LightmapMins       [2]int32 // texture-space mins in luxels
	LightmapSize       [2]int32 // texture-space size in luxels
	OrigFace           int32
	NumPrims           uint16
	FirstPrimID        uint16
	SmoothingGroups    uint32
}

// Edge is a dedge_t (4 bytes).
type Edge struct {
	V [2]uint16
}

// Brush is a dbrush_t (12 bytes).
type Brush struct {
	FirstSide int32
	NumSides  int32
	Contents  int32
}

// BrushSide is a dbrushside_t (8 bytes).
type BrushSide struct {
	PlaneNum uint16
	TexInfo  int16
	DispInfo int16
	Bevel    int8
	Thin     int8
}

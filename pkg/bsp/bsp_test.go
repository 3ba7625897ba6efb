package bsp_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/lightsrad/pkg/bsp"
	"github.com/Faultbox/lightsrad/pkg/bsp/bsptest"
	"github.com/Faultbox/lightsrad/pkg/math"
)

func quadScene() bsptest.Scene {
	return bsptest.Scene{
		Surfaces: []bsptest.Surface{{
			Texture: "LIGHTS/WHITE001",
			Points: []math.Vec3{
				{X: 0, Y: 0, Z: 64},
				{X: 2, Y: 0, Z: 64},
				{X: 2, Y: 2, Z: 64},
				{X: 0, Y: 2, Z: 64},
			},
			Flags:      bsp.SurfLight,
			TexelScale: 0.25,
			LuxelScale: 0.0625,
			Width:      128,
			Height:     128,
		}},
		Lights: []bsptest.Light{{
			Origin:    math.Vec3{X: 1, Y: 1, Z: 64},
			Intensity: math.Vec3{X: 50, Y: 40, Z: 30},
			Type:      bsp.EmitSurface,
		}},
		LightVersion: 1,
	}
}

func TestParse_ValidFile(t *testing.T) {
	b := quadScene().Build()
	b.Revision = 42
	data := b.Bytes()

	m, err := bsp.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if m.Ident != bsp.Ident {
		t.Errorf("expected ident %#x, got %#x", bsp.Ident, m.Ident)
	}
	if m.Version != 20 {
		t.Errorf("expected version 20, got %d", m.Version)
	}
	if m.MapRevision != 42 {
		t.Errorf("expected map revision 42, got %d", m.MapRevision)
	}
	if len(m.Lumps) != bsp.HeaderLumps {
		t.Errorf("expected %d lumps, got %d", bsp.HeaderLumps, len(m.Lumps))
	}

	if len(m.Faces()) != 1 {
		t.Fatalf("expected 1 face, got %d", len(m.Faces()))
	}
	if len(m.Vertexes()) != 4 {
		t.Errorf("expected 4 vertexes, got %d", len(m.Vertexes()))
	}
	if len(m.Edges()) != 5 {
		t.Errorf("expected 5 edges, got %d", len(m.Edges()))
	}
	if got := m.Vertexes()[2].Point; got != (math.Vec3{X: 2, Y: 2, Z: 64}) {
		t.Errorf("unexpected vertex 2: %v", got)
	}

	face := m.Faces()[0]
	if face.NumEdges != 4 || face.FirstEdge != 0 {
		t.Errorf("unexpected face edges: first=%d num=%d", face.FirstEdge, face.NumEdges)
	}
	if face.DispInfo != -1 {
		t.Errorf("expected dispinfo -1, got %d", face.DispInfo)
	}

	tx := m.TexInfos()[face.TexInfo]
	if !tx.Flags.Has(bsp.SurfLight) {
		t.Error("expected SURF_LIGHT on texinfo")
	}
	name, err := m.TextureName(m.TexData()[tx.TexData])
	if err != nil {
		t.Fatalf("TextureName failed: %v", err)
	}
	if name != "LIGHTS/WHITE001" {
		t.Errorf("expected texture LIGHTS/WHITE001, got %q", name)
	}

	lights := m.WorldLights()
	if len(lights) != 1 {
		t.Fatalf("expected 1 world light, got %d", len(lights))
	}
	if lights[0].Type != bsp.EmitSurface {
		t.Errorf("expected emit_surface, got %s", lights[0].Type)
	}
	if lights[0].Intensity != (math.Vec3{X: 50, Y: 40, Z: 30}) {
		t.Errorf("unexpected intensity %v", lights[0].Intensity)
	}

	if len(m.RecoveredLumps()) != 0 {
		t.Errorf("expected no recovered lumps, got %v", m.RecoveredLumps())
	}
}

func TestParse_DirectoryLayout(t *testing.T) {
	data := quadScene().Build().Bytes()
	m, err := bsp.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// The first payload starts right after the 8-byte header and the
	// 1024-byte directory.
	lowest := uint32(0)
	for _, l := range m.Lumps {
		if l.Offset != 0 && (lowest == 0 || l.Offset < lowest) {
			lowest = l.Offset
		}
	}
	if lowest != 8+1024 {
		t.Errorf("expected first payload at 1032, got %d", lowest)
	}
	if bsp.HeaderSize != 1036 {
		t.Errorf("expected header size 1036, got %d", bsp.HeaderSize)
	}
}

func TestParse_InvalidMagic(t *testing.T) {
	b := bsptest.New()
	b.Ident = 0x12345678
	_, err := bsp.Parse(b.Bytes())
	if !errors.Is(err, bsp.ErrBadMagic) {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}
}

func TestParse_Truncated(t *testing.T) {
	data := bsptest.New().Bytes()
	for _, n := range []int{0, 4, 8, bsp.HeaderSize - 1} {
		_, err := bsp.Parse(data[:n])
		if !errors.Is(err, bsp.ErrTruncatedHeader) {
			t.Errorf("%d bytes: expected ErrTruncatedHeader, got %v", n, err)
		}
	}

	if _, err := bsp.Parse(data[:bsp.HeaderSize]); err != nil {
		t.Errorf("header-only file should parse, got %v", err)
	}
}

func TestParse_LengthRecovery(t *testing.T) {
	b := bsptest.New().
		Entry(bsp.LumpEdges, 100, 0, 0).
		Entry(bsp.LumpPakFile, 300, 16, 0)

	m, err := bsp.Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	edges := m.Lumps[bsp.LumpEdges]
	if edges.Length != 200 {
		t.Errorf("expected recovered length 200, got %d", edges.Length)
	}
	if !edges.Recovered {
		t.Error("expected lump to be marked as recovered")
	}
	if len(m.Edges()) != 50 {
		t.Errorf("expected 50 edges, got %d", len(m.Edges()))
	}

	recovered := m.RecoveredLumps()
	if len(recovered) != 1 || recovered[0] != bsp.LumpEdges {
		t.Errorf("expected [LUMP_EDGES] recovered, got %v", recovered)
	}
}

func TestParse_LengthRecoveryUsesAllEntries(t *testing.T) {
	// The closest following offset belongs to a lump with a higher
	// identifier than the zero-length one.
	scene := quadScene()
	b := scene.Build().ZeroLength(bsp.LumpFaces)

	m, err := bsp.Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(m.Faces()) != 1 {
		t.Fatalf("expected 1 recovered face, got %d", len(m.Faces()))
	}
	if m.Lumps[bsp.LumpFaces].Length != 56 {
		t.Errorf("expected recovered length 56, got %d", m.Lumps[bsp.LumpFaces].Length)
	}
	if m.Faces()[0].NumEdges != 4 {
		t.Errorf("expected 4 edges on recovered face, got %d", m.Faces()[0].NumEdges)
	}
}

func TestParse_UnrecoverableLength(t *testing.T) {
	b := bsptest.New().Entry(bsp.LumpPlanes, 900, 0, 0)
	_, err := bsp.Parse(b.Bytes())
	if !errors.Is(err, bsp.ErrUnrecoverableLumpLength) {
		t.Errorf("expected ErrUnrecoverableLumpLength, got %v", err)
	}
}

func TestParse_AbsentLumpsStayEmpty(t *testing.T) {
	m, err := bsp.Parse(bsptest.New().Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if m.Faces() != nil || m.WorldLights() != nil || m.StringData() != nil {
		t.Error("expected absent lumps to decode to nil")
	}
}

func TestParse_MisalignedLump(t *testing.T) {
	b := bsptest.New().Raw(bsp.LumpPlanes, 0, make([]byte, 30))
	_, err := bsp.Parse(b.Bytes())
	if !errors.Is(err, bsp.ErrMisalignedLumpSize) {
		t.Errorf("expected ErrMisalignedLumpSize, got %v", err)
	}
}

func TestParse_MisalignedPackedLump(t *testing.T) {
	b := bsptest.New().Raw(bsp.LumpSurfEdges, 0, make([]byte, 6))
	_, err := bsp.Parse(b.Bytes())
	if !errors.Is(err, bsp.ErrMisalignedLumpSize) {
		t.Errorf("expected ErrMisalignedLumpSize, got %v", err)
	}
}

func TestParse_UnsupportedLumpVersion(t *testing.T) {
	b := bsptest.New().Raw(bsp.LumpWorldLights, 7, make([]byte, 100))
	_, err := bsp.Parse(b.Bytes())
	if !errors.Is(err, bsp.ErrUnsupportedLumpVersion) {
		t.Fatalf("expected ErrUnsupportedLumpVersion, got %v", err)
	}
	if !bytes.Contains([]byte(err.Error()), []byte("LUMP_WORLDLIGHTS version 7")) {
		t.Errorf("expected error to name lump and version, got %q", err)
	}
}

func TestParse_WorldLightVersions(t *testing.T) {
	lights := []bsptest.Light{
		{Origin: math.Vec3{X: 1, Y: 2, Z: 3}, Intensity: math.Vec3{X: 10, Y: 20, Z: 30}, Type: bsp.EmitSurface},
		{Origin: math.Vec3{X: -4, Y: 5, Z: -6}, Intensity: math.Vec3{X: 1, Y: 1, Z: 1}, Type: bsp.EmitPoint},
	}

	for _, version := range []uint32{0, 1} {
		payload := bsptest.EncodeLights(version, lights)
		wantSize := 88
		if version == 1 {
			wantSize = 100
		}
		if len(payload) != wantSize*len(lights) {
			t.Fatalf("v%d: expected %d bytes, got %d", version, wantSize*len(lights), len(payload))
		}

		m, err := bsp.Parse(bsptest.New().Raw(bsp.LumpWorldLights, version, payload).Bytes())
		if err != nil {
			t.Fatalf("v%d: Parse failed: %v", version, err)
		}
		got := m.WorldLights()
		if len(got) != 2 {
			t.Fatalf("v%d: expected 2 lights, got %d", version, len(got))
		}
		for i, l := range lights {
			if got[i].Origin != l.Origin || got[i].Intensity != l.Intensity || got[i].Type != l.Type {
				t.Errorf("v%d light %d: got %+v", version, i, got[i])
			}
			if got[i].ConstantAttn != 1 || got[i].TexInfo != -1 {
				t.Errorf("v%d light %d: trailing fields misread: %+v", version, i, got[i])
			}
		}
	}
}

func TestParse_HDRWorldLights(t *testing.T) {
	scene := quadScene()
	scene.HDRLights = true
	m, err := bsp.Parse(scene.Build().Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(m.WorldLights()) != 0 {
		t.Errorf("expected no LDR lights, got %d", len(m.WorldLights()))
	}
	if len(m.WorldLightsHDR()) != 1 {
		t.Errorf("expected 1 HDR light, got %d", len(m.WorldLightsHDR()))
	}
}

func TestParse_OutOfBounds(t *testing.T) {
	b := bsptest.New().Entry(bsp.LumpPlanes, 1032, 4000, 0)
	_, err := bsp.Parse(b.Bytes())
	if !errors.Is(err, bsp.ErrLumpOutOfBounds) {
		t.Errorf("expected ErrLumpOutOfBounds, got %v", err)
	}
}

func TestParse_CompressedLump(t *testing.T) {
	payload := make([]byte, 40)
	copy(payload, "LZMA")
	b := bsptest.New().Raw(bsp.LumpPlanes, 0, payload).FourCC(bsp.LumpPlanes, [4]byte{40, 0, 0, 0})
	_, err := bsp.Parse(b.Bytes())
	if !errors.Is(err, bsp.ErrCompressedLump) {
		t.Errorf("expected ErrCompressedLump, got %v", err)
	}
}

func TestParse_NegativeSurfEdges(t *testing.T) {
	scene := quadScene()
	scene.Surfaces[0].ReverseEdges = true
	m, err := bsp.Parse(scene.Build().Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	se := m.SurfEdges()
	if len(se) != 4 {
		t.Fatalf("expected 4 surfedges, got %d", len(se))
	}
	for i, e := range se {
		if e >= 0 {
			t.Errorf("surfedge %d: expected negative index, got %d", i, e)
		}
	}
}

func TestParse_UndecodedLumpsKeptRaw(t *testing.T) {
	entities := []byte("{\n\"classname\" \"worldspawn\"\n}\n\x00")
	m, err := bsp.Parse(bsptest.New().Raw(bsp.LumpEntities, 0, entities).Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if m.Decoded(bsp.LumpEntities) != nil {
		t.Error("expected entities lump to stay undecoded")
	}
	if !bytes.Equal(m.Raw(bsp.LumpEntities), entities) {
		t.Errorf("unexpected raw entities: %q", m.Raw(bsp.LumpEntities))
	}
	if bsp.Decodable(bsp.LumpEntities) {
		t.Error("entities lump should not be decodable")
	}
}

func TestParse_BrushLumps(t *testing.T) {
	brushes := []bsp.Brush{{FirstSide: 0, NumSides: 6, Contents: 1}}
	sides := []bsp.BrushSide{{PlaneNum: 3, TexInfo: -1, DispInfo: -1, Bevel: 0, Thin: 1}}
	planes := []bsp.Plane{{Normal: math.Vec3{Z: 1}, Dist: 64, Type: 2}}

	b := bsptest.New().
		Records(bsp.LumpPlanes, 0, planes).
		Records(bsp.LumpBrushes, 0, brushes).
		Records(bsp.LumpBrushSides, 0, sides)

	m, err := bsp.Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(m.Brushes()) != 1 || m.Brushes()[0] != brushes[0] {
		t.Errorf("unexpected brushes: %+v", m.Brushes())
	}
	if len(m.BrushSides()) != 1 || m.BrushSides()[0] != sides[0] {
		t.Errorf("unexpected brush sides: %+v", m.BrushSides())
	}
	if len(m.Planes()) != 1 || m.Planes()[0] != planes[0] {
		t.Errorf("unexpected planes: %+v", m.Planes())
	}
}

func TestParse_DoesNotModifyInput(t *testing.T) {
	data := quadScene().Build().ZeroLength(bsp.LumpFaces).Bytes()
	orig := append([]byte(nil), data...)
	if _, err := bsp.Parse(data); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !bytes.Equal(data, orig) {
		t.Error("Parse modified its input")
	}

	// The declared length in the directory is still zero.
	declared := binary.LittleEndian.Uint32(data[8+int(bsp.LumpFaces)*16+4:])
	if declared != 0 {
		t.Errorf("expected declared length 0, got %d", declared)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.bsp")
	if err := os.WriteFile(path, quadScene().Build().Bytes(), 0644); err != nil {
		t.Fatalf("writing map: %v", err)
	}
	m, err := bsp.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(m.Faces()) != 1 {
		t.Errorf("expected 1 face, got %d", len(m.Faces()))
	}

	if _, err := bsp.ParseFile(filepath.Join(t.TempDir(), "missing.bsp")); err == nil {
		t.Error("expected error for missing file")
	}
}

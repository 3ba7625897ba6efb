// Package bsp decodes compiled Source engine map files (VBSP).
//
// Only the lumps needed to follow faces to their textures and to the world
// lights are decoded; every other lump is kept as a raw directory entry.
package bsp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// Ident is the container signature, "VBSP" read as a little-endian uint32.
const Ident uint32 = 0x50534256

const (
	lumpEntrySize = 16
	directorySize = HeaderLumps * lumpEntrySize
	// HeaderSize covers ident, version, the directory and the trailing
	// map revision.
	HeaderSize = 8 + directorySize + 4

	lzmaMagic = "LZMA"
)

// BSP format errors.
var (
	ErrBadMagic                = errors.New("invalid BSP magic: expected 'VBSP'")
	ErrTruncatedHeader         = errors.New("truncated BSP header")
	ErrUnsupportedLumpVersion  = errors.New("unsupported lump version")
	ErrMisalignedLumpSize      = errors.New("lump size is not a multiple of its record size")
	ErrUnrecoverableLumpLength = errors.New("lump has no size and it could not be estimated")
	ErrLumpOutOfBounds         = errors.New("lump extends past the end of the file")
	ErrCompressedLump          = errors.New("compressed lumps are not supported")
)

// Header holds the container identification.
type Header struct {
	Ident       uint32
	Version     int32
	MapRevision int32 // read from the last 4 bytes of the file
}

// lumpEntry is the on-disk lump_t.
type lumpEntry struct {
	Offset  uint32
	Length  uint32
	Version uint32
	FourCC  [4]byte
}

// Lump is one directory entry.
type Lump struct {
	Offset  uint32
	Length  uint32
	Version uint32
	FourCC  [4]byte

	// Recovered is set when the declared length was zero and Length was
	// estimated from the next lump in file order.
	Recovered bool
}

// End returns the offset one past the lump's last byte.
func (l Lump) End() uint64 {
	return uint64(l.Offset) + uint64(l.Length)
}

// absent reports a slot with nothing in it. Offset 0 is inside the header,
// so no payload can start there.
func (l Lump) absent() bool {
	return l.Offset == 0 && l.Length == 0
}

// Map is a decoded map container. It is read-only after Parse returns.
type Map struct {
	Header
	Lumps [HeaderLumps]Lump

	raw  []byte
	data [HeaderLumps]any
}

// Parse decodes a map container. Parsing is all or nothing: any error
// leaves no partial Map behind.
func Parse(data []byte) (*Map, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncatedHeader, len(data), HeaderSize)
	}

	ident := binary.LittleEndian.Uint32(data[0:4])
	if ident != Ident {
		return nil, fmt.Errorf("%w: got %#08x", ErrBadMagic, ident)
	}

	m := &Map{
		Header: Header{
			Ident:       ident,
			Version:     int32(binary.LittleEndian.Uint32(data[4:8])),
			MapRevision: int32(binary.LittleEndian.Uint32(data[len(data)-4:])),
		},
		raw: data,
	}

	var entries [HeaderLumps]lumpEntry
	if err := binary.Read(bytes.NewReader(data[8:8+directorySize]), binary.LittleEndian, &entries); err != nil {
		return nil, fmt.Errorf("%w: reading lump directory", ErrTruncatedHeader)
	}
	for i, e := range entries {
		m.Lumps[i] = Lump{Offset: e.Offset, Length: e.Length, Version: e.Version, FourCC: e.FourCC}
	}

	// Length recovery needs every directory offset, so zero-length lumps
	// wait until the first pass is over.
	var deferred []LumpID
	for i := range m.Lumps {
		id := LumpID(i)
		if !Decodable(id) || m.Lumps[i].absent() {
			continue
		}
		if m.Lumps[i].Length == 0 {
			deferred = append(deferred, id)
			continue
		}
		if err := m.decode(id); err != nil {
			return nil, err
		}
	}

	for _, id := range deferred {
		if err := m.recoverLength(id); err != nil {
			return nil, err
		}
		if err := m.decode(id); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ParseFile parses a map file from disk.
func ParseFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading BSP file: %w", err)
	}
	return Parse(data)
}

// recoverLength estimates the length of a zero-length lump as the distance
// to the closest lump that starts after it.
func (m *Map) recoverLength(id LumpID) error {
	lump := &m.Lumps[id]

	var closest uint32
	for _, other := range m.Lumps {
		if other.Offset > lump.Offset && (closest == 0 || other.Offset < closest) {
			closest = other.Offset
		}
	}

	length := int64(closest) - int64(lump.Offset)
	if length <= 0 {
		return fmt.Errorf("%w: %s (estimated %d)", ErrUnrecoverableLumpLength, id, length)
	}

	lump.Length = uint32(length)
	lump.Recovered = true
	return nil
}

func (m *Map) decode(id LumpID) error {
	lump := m.Lumps[id]
	if lump.End() > uint64(len(m.raw)) {
		return fmt.Errorf("%w: %s spans %d..%d of %d bytes",
			ErrLumpOutOfBounds, id, lump.Offset, lump.End(), len(m.raw))
	}

	v, err := decodeLump(id, lump.Version, m.raw[lump.Offset:lump.End()])
	if err != nil {
		return err
	}
	m.data[id] = v
	return nil
}

// RecoveredLumps returns the lumps whose length had to be estimated.
func (m *Map) RecoveredLumps() []LumpID {
	var ids []LumpID
	for i, l := range m.Lumps {
		if l.Recovered {
			ids = append(ids, LumpID(i))
		}
	}
	return ids
}

// Raw returns the payload bytes of a lump, or nil for an absent or
// out-of-range entry.
func (m *Map) Raw(id LumpID) []byte {
	if !id.Valid() {
		return nil
	}
	l := m.Lumps[id]
	if l.absent() || l.End() > uint64(len(m.raw)) {
		return nil
	}
	return m.raw[l.Offset:l.End()]
}

// Decoded returns the decoded value of a lump: a record slice, []int32,
// StringData, or nil when the lump is not decoded.
func (m *Map) Decoded(id LumpID) any {
	if !id.Valid() {
		return nil
	}
	return m.data[id]
}

// Planes returns the decoded plane lump.
func (m *Map) Planes() []Plane {
	v, _ := m.data[LumpPlanes].([]Plane)
	return v
}

// TexData returns the decoded texdata lump.
func (m *Map) TexData() []TexData {
	v, _ := m.data[LumpTexData].([]TexData)
	return v
}

// Vertexes returns the decoded vertex lump.
func (m *Map) Vertexes() []Vertex {
	v, _ := m.data[LumpVertexes].([]Vertex)
	return v
}

// TexInfos returns the decoded texinfo lump.
func (m *Map) TexInfos() []TexInfo {
	v, _ := m.data[LumpTexInfo].([]TexInfo)
	return v
}

// Faces returns the decoded face lump.
func (m *Map) Faces() []Face {
	v, _ := m.data[LumpFaces].([]Face)
	return v
}

// Edges returns the decoded edge lump.
func (m *Map) Edges() []Edge {
	v, _ := m.data[LumpEdges].([]Edge)
	return v
}

// SurfEdges returns the signed edge indices. A negative index walks the
// edge from its second vertex.
func (m *Map) SurfEdges() []int32 {
	v, _ := m.data[LumpSurfEdges].([]int32)
	return v
}

// WorldLights returns the LDR world lights.
func (m *Map) WorldLights() []WorldLight {
	v, _ := m.data[LumpWorldLights].([]WorldLight)
	return v
}

// WorldLightsHDR returns the HDR world lights.
func (m *Map) WorldLightsHDR() []WorldLight {
	v, _ := m.data[LumpWorldLightsHDR].([]WorldLight)
	return v
}

// Brushes returns the decoded brush lump.
func (m *Map) Brushes() []Brush {
	v, _ := m.data[LumpBrushes].([]Brush)
	return v
}

// BrushSides returns the decoded brush side lump.
func (m *Map) BrushSides() []BrushSide {
	v, _ := m.data[LumpBrushSides].([]BrushSide)
	return v
}

// StringData returns the texture name blob.
func (m *Map) StringData() StringData {
	v, _ := m.data[LumpTexDataStringData].(StringData)
	return v
}

// StringTable returns the offsets into StringData.
func (m *Map) StringTable() []int32 {
	v, _ := m.data[LumpTexDataStringTable].([]int32)
	return v
}

// TextureName resolves the material name of a texdata entry.
func (m *Map) TextureName(td TexData) (string, error) {
	table := m.StringTable()
	if td.NameStringTableID < 0 || int(td.NameStringTableID) >= len(table) {
		return "", fmt.Errorf("string table index %d out of range (%d entries)", td.NameStringTableID, len(table))
	}
	return m.StringData().At(table[td.NameStringTableID])
}

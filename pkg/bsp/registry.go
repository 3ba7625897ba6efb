package bsp

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// lumpCodec decodes one lump payload. Array codecs slice the payload into
// elemSize records; buffer codecs (elemSize 0) receive it whole.
type lumpCodec struct {
	elemSize int
	decode   func(data []byte) (any, error)
}

// lumpFormat is either a single codec or a table keyed by lump version.
type lumpFormat struct {
	codec    lumpCodec
	versions map[uint32]lumpCodec
}

func arrayCodec[T any]() lumpCodec {
	var zero T
	size := binary.Size(zero)
	return lumpCodec{
		elemSize: size,
		decode: func(data []byte) (any, error) {
			out := make([]T, len(data)/size)
			if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, out); err != nil {
				return nil, err
			}
			return out, nil
		},
	}
}

// upgradedArrayCodec decodes records of an older layout W and converts
// each to the current type T.
func upgradedArrayCodec[W, T any](upgrade func(W) T) lumpCodec {
	inner := arrayCodec[W]()
	return lumpCodec{
		elemSize: inner.elemSize,
		decode: func(data []byte) (any, error) {
			v, err := inner.decode(data)
			if err != nil {
				return nil, err
			}
			old := v.([]W)
			out := make([]T, len(old))
			for i, w := range old {
				out[i] = upgrade(w)
			}
			return out, nil
		},
	}
}

func bufferCodec(decode func([]byte) (any, error)) lumpCodec {
	return lumpCodec{decode: decode}
}

var worldLightVersions = map[uint32]lumpCodec{
	0: upgradedArrayCodec(worldLightV0.upgrade),
	1: arrayCodec[WorldLight](),
}

// lumpFormats lists every lump this package decodes. Lumps missing here
// stay as raw directory entries.
var lumpFormats = map[LumpID]lumpFormat{
	LumpPlanes:             {codec: arrayCodec[Plane]()},
	LumpTexData:            {codec: arrayCodec[TexData]()},
	LumpVertexes:           {codec: arrayCodec[Vertex]()},
	LumpTexInfo:            {codec: arrayCodec[TexInfo]()},
	LumpFaces:              {codec: arrayCodec[Face]()},
	LumpEdges:              {codec: arrayCodec[Edge]()},
	LumpSurfEdges:          {codec: bufferCodec(decodeInt32s)},
	LumpWorldLights:        {versions: worldLightVersions},
	LumpWorldLightsHDR:     {versions: worldLightVersions},
	LumpBrushes:            {codec: arrayCodec[Brush]()},
	LumpBrushSides:         {codec: arrayCodec[BrushSide]()},
	LumpTexDataStringData:  {codec: bufferCodec(decodeStringData)},
	LumpTexDataStringTable: {codec: bufferCodec(decodeInt32s)},
}

// Decodable reports whether the package has a decoder for id.
func Decodable(id LumpID) bool {
	_, ok := lumpFormats[id]
	return ok
}

func (f lumpFormat) codecFor(id LumpID, version uint32) (lumpCodec, error) {
	if f.versions == nil {
		return f.codec, nil
	}
	c, ok := f.versions[version]
	if !ok {
		return lumpCodec{}, fmt.Errorf("%w: %s version %d", ErrUnsupportedLumpVersion, id, version)
	}
	return c, nil
}

// decodeLump dispatches one lump payload to its registered codec.
func decodeLump(id LumpID, version uint32, payload []byte) (any, error) {
	format, ok := lumpFormats[id]
	if !ok {
		return nil, nil
	}
	codec, err := format.codecFor(id, version)
	if err != nil {
		return nil, err
	}

	if len(payload) >= 4 && string(payload[:4]) == lzmaMagic {
		return nil, fmt.Errorf("%w: %s", ErrCompressedLump, id)
	}

	if codec.elemSize > 0 && len(payload)%codec.elemSize != 0 {
		return nil, fmt.Errorf("%w: %s is %d bytes, not a multiple of %d",
			ErrMisalignedLumpSize, id, len(payload), codec.elemSize)
	}

	v, err := codec.decode(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", id, err)
	}
	return v, nil
}

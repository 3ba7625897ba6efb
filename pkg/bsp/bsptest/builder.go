// Package bsptest assembles synthetic map containers for tests.
package bsptest

import (
	"bytes"
	"encoding/binary"

	"github.com/Faultbox/lightsrad/pkg/bsp"
)

type lump struct {
	data       []byte
	version    uint32
	fourCC     [4]byte
	zeroLength bool

	// set by Entry
	fixed       bool
	fixedOffset uint32
	fixedLength uint32
}

// Builder lays out a container: header, directory, lump payloads in
// identifier order (4-byte aligned), then the map revision.
type Builder struct {
	Version  int32
	Revision int32
	Ident    uint32

	lumps map[bsp.LumpID]*lump
}

// New returns a builder for a version 20 container.
func New() *Builder {
	return &Builder{
		Version:  20,
		Revision: 1,
		Ident:    bsp.Ident,
		lumps:    make(map[bsp.LumpID]*lump),
	}
}

func (b *Builder) lump(id bsp.LumpID) *lump {
	l, ok := b.lumps[id]
	if !ok {
		l = &lump{}
		b.lumps[id] = l
	}
	return l
}

// Raw sets a lump payload verbatim.
func (b *Builder) Raw(id bsp.LumpID, version uint32, data []byte) *Builder {
	l := b.lump(id)
	l.data = data
	l.version = version
	return b
}

// Records encodes a record slice (or any fixed-size value) as the lump
// payload.
func (b *Builder) Records(id bsp.LumpID, version uint32, records any) *Builder {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, records); err != nil {
		panic(err)
	}
	return b.Raw(id, version, buf.Bytes())
}

// Strings builds the string data and string table lumps from names and
// returns their table indices in order.
func (b *Builder) Strings(names ...string) []int32 {
	var blob bytes.Buffer
	table := make([]int32, len(names))
	ids := make([]int32, len(names))
	for i, name := range names {
		table[i] = int32(blob.Len())
		blob.WriteString(name)
		blob.WriteByte(0)
		ids[i] = int32(i)
	}
	b.Raw(bsp.LumpTexDataStringData, 0, blob.Bytes())
	b.Records(bsp.LumpTexDataStringTable, 0, table)
	return ids
}

// ZeroLength writes the payload of id but declares its length as zero.
func (b *Builder) ZeroLength(id bsp.LumpID) *Builder {
	b.lump(id).zeroLength = true
	return b
}

// Entry overrides the directory entry of id without writing a payload.
func (b *Builder) Entry(id bsp.LumpID, offset, length, version uint32) *Builder {
	l := b.lump(id)
	l.fixed = true
	l.fixedOffset = offset
	l.fixedLength = length
	l.version = version
	return b
}

// FourCC sets the fourCC field of a lump entry.
func (b *Builder) FourCC(id bsp.LumpID, code [4]byte) *Builder {
	b.lump(id).fourCC = code
	return b
}

// Bytes assembles the container.
func (b *Builder) Bytes() []byte {
	type entry struct {
		Offset  uint32
		Length  uint32
		Version uint32
		FourCC  [4]byte
	}
	var dir [bsp.HeaderLumps]entry
	var payload bytes.Buffer

	base := uint32(8 + bsp.HeaderLumps*16)
	for i := 0; i < bsp.HeaderLumps; i++ {
		l, ok := b.lumps[bsp.LumpID(i)]
		if !ok {
			continue
		}
		dir[i].Version = l.version
		dir[i].FourCC = l.fourCC
		if l.fixed {
			dir[i].Offset = l.fixedOffset
			dir[i].Length = l.fixedLength
			continue
		}
		for payload.Len()%4 != 0 {
			payload.WriteByte(0)
		}
		dir[i].Offset = base + uint32(payload.Len())
		dir[i].Length = uint32(len(l.data))
		if l.zeroLength {
			dir[i].Length = 0
		}
		payload.Write(l.data)
	}
	for payload.Len()%4 != 0 {
		payload.WriteByte(0)
	}

	out := new(bytes.Buffer)
	binary.Write(out, binary.LittleEndian, b.Ident)
	binary.Write(out, binary.LittleEndian, b.Version)
	binary.Write(out, binary.LittleEndian, dir)
	out.Write(payload.Bytes())
	binary.Write(out, binary.LittleEndian, b.Revision)
	return out.Bytes()
}

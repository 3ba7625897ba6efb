package bsp

import "github.com/Faultbox/lightsrad/pkg/math"

// WorldLight is a dworldlight_t. Its layout is the version 1 lump record
// (100 bytes); version 0 records lack ShadowCastOffset and decode with it
// left zero.
type WorldLight struct {
	Origin           math.Vec3
	Intensity        math.Vec3
	Normal           math.Vec3
	ShadowCastOffset math.Vec3
	Cluster          int32
	Type             EmitType
	Style            int32
	StopDot          float32 // start of penumbra for spotlights
	StopDot2         float32 // end of penumbra
	Exponent         float32
	Radius           float32 // cutoff distance
	ConstantAttn     float32
	LinearAttn       float32
	QuadraticAttn    float32
	Flags            int32
	TexInfo          int32
	Owner            int32 // entity that this light is relative to
}

// worldLightV0 is the 88-byte record of version 0 lumps.
type worldLightV0 struct {
	Origin        math.Vec3
	Intensity     math.Vec3
	Normal        math.Vec3
	Cluster       int32
	Type          EmitType
	Style         int32
	StopDot       float32
	StopDot2      float32
	Exponent      float32
	Radius        float32
	ConstantAttn  float32
	LinearAttn    float32
	QuadraticAttn float32
	Flags         int32
	TexInfo       int32
	Owner         int32
}

func (w worldLightV0) upgrade() WorldLight {
	return WorldLight{
		Origin:        w.Origin,
		Intensity:     w.Intensity,
		Normal:        w.Normal,
		Cluster:       w.Cluster,
		Type:          w.Type,
		Style:         w.Style,
		StopDot:       w.StopDot,
		StopDot2:      w.StopDot2,
		Exponent:      w.Exponent,
		Radius:        w.Radius,
		ConstantAttn:  w.ConstantAttn,
		LinearAttn:    w.LinearAttn,
		QuadraticAttn: w.QuadraticAttn,
		Flags:         w.Flags,
		TexInfo:       w.TexInfo,
		Owner:         w.Owner,
	}
}

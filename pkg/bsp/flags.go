package bsp

import "fmt"

// SurfFlags is the texinfo surface flag bitmask.
type SurfFlags uint32

// Surface flags.
const (
	SurfLight     SurfFlags = 0x0001 // emits light, value holds the strength
	SurfSky2D     SurfFlags = 0x0002
	SurfSky       SurfFlags = 0x0004
	SurfWarp      SurfFlags = 0x0008
	SurfTrans     SurfFlags = 0x0010
	SurfNoPortal  SurfFlags = 0x0020
	SurfTrigger   SurfFlags = 0x0040
	SurfNoDraw    SurfFlags = 0x0080
	SurfHint      SurfFlags = 0x0100
	SurfSkip      SurfFlags = 0x0200
	SurfNoLight   SurfFlags = 0x0400
	SurfBumpLight SurfFlags = 0x0800
	SurfNoShadows SurfFlags = 0x1000
	SurfNoDecals  SurfFlags = 0x2000
	SurfNoPaint   SurfFlags = SurfNoDecals
	SurfNoChop    SurfFlags = 0x4000
	SurfHitbox    SurfFlags = 0x8000
)

// Has reports whether all bits of flag are set.
func (f SurfFlags) Has(flag SurfFlags) bool {
	return f&flag == flag
}

// EmitType is the world light emission kind.
type EmitType uint32

// Emission types.
const (
	EmitSurface    EmitType = iota // light emitted by a textured surface
	EmitPoint                      // simple point light
	EmitSpotlight                  // spotlight with penumbra
	EmitSkyLight                   // directional, no falloff
	EmitQuakeLight                 // linear falloff, non-lambertian
	EmitSkyAmbient                 // spherical, no falloff
)

// String returns the emit_* name.
func (e EmitType) String() string {
	switch e {
	case EmitSurface:
		return "emit_surface"
	case EmitPoint:
		return "emit_point"
	case EmitSpotlight:
		return "emit_spotlight"
	case EmitSkyLight:
		return "emit_skylight"
	case EmitQuakeLight:
		return "emit_quakelight"
	case EmitSkyAmbient:
		return "emit_skyambient"
	default:
		return fmt.Sprintf("emit_unknown(%d)", uint32(e))
	}
}

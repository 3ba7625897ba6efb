//go:build ignore

// This program writes a small sample map for trying the commands.
// Run with: go run generate.go
package main

import (
	"os"

	"github.com/Faultbox/lightsrad/pkg/bsp"
	"github.com/Faultbox/lightsrad/pkg/bsp/bsptest"
	"github.com/Faultbox/lightsrad/pkg/math"
)

func main() {
	square := func(texture string, x, y, z, size float32) bsptest.Surface {
		return bsptest.Surface{
			Texture: texture,
			Points: []math.Vec3{
				{X: x, Y: y, Z: z},
				{X: x + size, Y: y, Z: z},
				{X: x + size, Y: y + size, Z: z},
				{X: x, Y: y + size, Z: z},
			},
			Flags:      bsp.SurfLight,
			TexelScale: 0.25,
			LuxelScale: 0.0625,
			Width:      128,
			Height:     128,
		}
	}

	floor := square("CONCRETE/CONCRETEFLOOR001A", -256, -256, 0, 512)
	floor.Flags = 0

	scene := bsptest.Scene{
		Surfaces: []bsptest.Surface{
			floor,
			square("LIGHTS/WHITE001", 0, 0, 128, 2),
			square("LIGHTS/FLUORESCENTCOOL001A", 64, 0, 128, 2),
		},
		Lights: []bsptest.Light{
			{Origin: math.Vec3{X: 1, Y: 1, Z: 128}, Intensity: math.Vec3{X: 0.15, Y: 0.14, Z: 0.12}, Type: bsp.EmitSurface},
			{Origin: math.Vec3{X: 65, Y: 1, Z: 128}, Intensity: math.Vec3{X: 0.10, Y: 0.12, Z: 0.15}, Type: bsp.EmitSurface},
			{Origin: math.Vec3{X: 0, Y: 0, Z: 64}, Intensity: math.Vec3{X: 50, Y: 50, Z: 50}, Type: bsp.EmitPoint},
		},
		LightVersion: 1,
	}

	b := scene.Build()
	b.Revision = 1
	if err := os.WriteFile("sample.bsp", b.Bytes(), 0644); err != nil {
		panic(err)
	}
}

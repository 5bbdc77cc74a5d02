// Package lighting converts scene lights into shader-ready values.
package lighting

import "github.com/Faultbox/diorama/pkg/diorama"

// Lights holds the uniforms of the single-pass lighting model: an ambient
// term plus one directional sun.
type Lights struct {
	Ambient  [3]float32 // color * intensity
	SunColor [3]float32 // color * intensity
	SunDir   [3]float32 // unit vector pointing towards the sun
}

// SunDirection converts a directional light position into a normalized
// direction pointing from the origin towards the light.
func SunDirection(pos diorama.Vec3) [3]float32 {
	l := pos.Length()
	if l == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{float32(pos.X / l), float32(pos.Y / l), float32(pos.Z / l)}
}

// FromEnvironment builds the light uniforms of a scene environment.
func FromEnvironment(env diorama.Environment) Lights {
	return Lights{
		Ambient:  scaled(env.Ambient),
		SunColor: scaled(env.SunLight),
		SunDir:   SunDirection(env.SunLight.Position),
	}
}

func scaled(l diorama.Light) [3]float32 {
	c := l.Color.Floats()
	k := float32(l.Intensity)
	return [3]float32{c[0] * k, c[1] * k, c[2] * k}
}

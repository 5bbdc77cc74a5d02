package diorama

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is a 24-bit RGB value stored as 0xRRGGBB.
type Color uint32

// Palette colors.
const (
	ColorSky      Color = 0x87ceeb
	ColorGrass    Color = 0x228b22
	ColorWater    Color = 0x1e90ff
	ColorMountain Color = 0x556b2f
	ColorSun      Color = 0xffd700
	ColorBark     Color = 0x8b4513
	ColorFoliage  Color = 0x228b22
	ColorWall     Color = 0xcd853f
	ColorRoof     Color = 0x8b0000
	ColorPaddy    Color = 0x9acd32
	ColorRice     Color = 0x2e8b57
	ColorStone    Color = 0x555555
	ColorWhite    Color = 0xffffff
)

// RGB splits the color into its byte components.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Floats returns the color as normalized float32 components.
func (c Color) Floats() [3]float32 {
	r, g, b := c.RGB()
	return [3]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// ParseColor parses "#rrggbb", "0xrrggbb" or a decimal value.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	base := 10
	switch {
	case strings.HasPrefix(s, "#"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil || v > 0xffffff {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	return Color(v), nil
}

// MarshalYAML writes the color as "#rrggbb".
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML accepts "#rrggbb" strings as well as plain integers.
func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a scalar", n.Line)
	}
	v, err := ParseColor(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*c = v
	return nil
}

// Shading selects the lighting model a renderer applies.
type Shading string

const (
	ShadingStandard Shading = "standard" // lit, PBR-ish
	ShadingPhong    Shading = "phong"
	ShadingBasic    Shading = "basic" // unlit
	ShadingLine     Shading = "line"
)

// Material describes how an element is shaded.
type Material struct {
	Shading     Shading `json:"shading" yaml:"shading"`
	Color       Color   `json:"color" yaml:"color"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
	Transparent bool    `json:"transparent,omitempty" yaml:"transparent,omitempty"`
	Metalness   float64 `json:"metalness,omitempty" yaml:"metalness,omitempty"`
	Roughness   float64 `json:"roughness,omitempty" yaml:"roughness,omitempty"`
	FlatShading bool    `json:"flat_shading,omitempty" yaml:"flat_shading,omitempty"`
}

// Unlit reports whether lighting must be skipped for the material.
func (m Material) Unlit() bool {
	return m.Shading == ShadingBasic || m.Shading == ShadingLine
}

func standard(c Color) Material {
	return Material{Shading: ShadingStandard, Color: c, Opacity: 1, Roughness: 1}
}

var (
	groundMaterial   = standard(ColorGrass)
	mountainMaterial = Material{Shading: ShadingStandard, Color: ColorMountain, Opacity: 1, Roughness: 1, FlatShading: true}
	sunMaterial      = Material{Shading: ShadingBasic, Color: ColorSun, Opacity: 1}
	trunkMaterial    = standard(ColorBark)
	foliageMaterial  = Material{Shading: ShadingStandard, Color: ColorFoliage, Opacity: 1, Roughness: 1, FlatShading: true}
	wallMaterial     = standard(ColorWall)
	roofMaterial     = standard(ColorRoof)
	riceMaterial     = Material{Shading: ShadingLine, Color: ColorRice, Opacity: 1}
	rockMaterial     = standard(ColorStone)
	riverMaterial    = Material{
		Shading:     ShadingPhong,
		Color:       ColorWater,
		Opacity:     0.9,
		Transparent: true,
		Metalness:   0.7,
		Roughness:   0.3,
	}
	fieldMaterial = Material{
		Shading:   ShadingStandard,
		Color:     ColorPaddy,
		Opacity:   1,
		Metalness: 0.2,
		Roughness: 0.6,
	}
)

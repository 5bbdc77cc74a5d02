package diorama

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDeterministicPlacement(t *testing.T) {
	l := DefaultLayout()

	tests := []struct {
		name     string
		el       Element
		shape    ShapeKind
		position Vec3
		color    Color
	}{
		{"ground", Ground(l.GroundSize), ShapePlane, Vec3{}, 0x228b22},
		{"river", RiverPlane(l.River), ShapePlane, Vec3{Y: 0.03}, 0x1e90ff},
		{"sun", SunSphere(l.Sun), ShapeSphere, Vec3{X: 90, Y: 80, Z: 100}, 0xffd700},
		{"field", FieldPlane(l.Field), ShapePlane, Vec3{Y: 0.05, Z: -60}, 0x9acd32},
		{"mountain", Mountain(1, l.Mountains[1]), ShapeCone, Vec3{X: -10, Y: 18, Z: 90}, 0x556b2f},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shape, tt.el.Shape)
			assert.Equal(t, tt.position, tt.el.Position)
			assert.Equal(t, tt.color, tt.el.Material.Color)
			assert.Equal(t, Unit, tt.el.Scale)
		})
	}
}

func TestPlanesLieFlat(t *testing.T) {
	l := DefaultLayout()
	for _, e := range []Element{Ground(l.GroundSize), RiverPlane(l.River), FieldPlane(l.Field)} {
		assert.Equal(t, -math.Pi/2, e.Rotation.X, e.ID)
	}

	river := RiverPlane(l.River)
	assert.Equal(t, 250.0, river.Geometry.Width)
	assert.Equal(t, 20.0, river.Geometry.Depth)
	assert.True(t, river.Material.Transparent)
	assert.Equal(t, 0.9, river.Material.Opacity)
}

func TestMountains(t *testing.T) {
	l := DefaultLayout()
	sizes := []float64{15, 18, 12, 16}
	require.Len(t, l.Mountains, 4)

	for i, p := range l.Mountains {
		m := Mountain(i, p)
		assert.Equal(t, sizes[i], m.Geometry.Radius)
		assert.Equal(t, sizes[i]*1.8, m.Geometry.Height)
		assert.Equal(t, 8, m.Geometry.RadialSegments)
		assert.GreaterOrEqual(t, m.Position.Z, 80.0)
		assert.LessOrEqual(t, m.Position.Z, 95.0)
		assert.True(t, m.Material.FlatShading)
	}
}

func TestHouseParts(t *testing.T) {
	parts := HouseParts(DefaultLayout().House)
	base, roof := parts[0], parts[1]

	assert.Equal(t, ShapeBox, base.Shape)
	assert.Equal(t, Vec3{X: 20, Y: 2, Z: 40}, base.Position)
	assert.Equal(t, Geometry{Width: 6, Height: 4, Depth: 6}, base.Geometry)
	assert.Equal(t, ColorWall, base.Material.Color)

	assert.Equal(t, ShapeCone, roof.Shape)
	assert.Equal(t, Vec3{X: 20, Y: 5, Z: 40}, roof.Position)
	assert.Equal(t, 4, roof.Geometry.RadialSegments)
	assert.Equal(t, math.Pi/4, roof.Rotation.Y)
	assert.Equal(t, ColorRoof, roof.Material.Color)
}

func TestRoofFollowsCustomHouse(t *testing.T) {
	h := DefaultLayout().House
	h.Base.Y = 10
	h.RoofHeight = 6
	roof := HouseParts(h)[1]

	assert.Equal(t, 12.0, roof.Position.Y)
	assert.Equal(t, h.RoofCenterY(), roof.Position.Y)

	// The eaves sink a sixth of the roof height into the walls.
	eaves := roof.Position.Y - h.RoofHeight/2
	assert.InDelta(t, h.Base.Y-h.RoofHeight/6, eaves, 1e-9)
	assert.Less(t, eaves, h.Base.Y)
}

func TestTreeScaling(t *testing.T) {
	parts := Tree(3, -16, 45, 1.2)
	trunk, foliage := parts[0], parts[1]

	assert.Equal(t, "tree-03-trunk", trunk.ID)
	assert.Equal(t, "tree-03-foliage", foliage.ID)
	assert.Equal(t, ShapeCylinder, trunk.Shape)
	assert.Equal(t, ShapeCone, foliage.Shape)
	assert.InDelta(t, 1.44, trunk.Position.Y, 1e-12)
	assert.InDelta(t, 3.36, foliage.Position.Y, 1e-12)
	assert.Equal(t, Vec3{X: 1.2, Y: 1.2, Z: 1.2}, trunk.Scale)

	ext := trunk.Extent()
	assert.InDelta(t, 0.6, ext.X, 1e-12)
	assert.InDelta(t, 1.5, ext.Y, 1e-12)
}

func TestScattererSeededOutput(t *testing.T) {
	a := NewScatterer(rand.New(rand.NewPCG(3, 4)))
	b := NewScatterer(rand.New(rand.NewPCG(3, 4)))

	assert.Equal(t, a.Rocks(DefaultLayout().Rocks), b.Rocks(DefaultLayout().Rocks))
	assert.Equal(t, a.RiceStalks(DefaultLayout().Rice), b.RiceStalks(DefaultLayout().Rice))
}

func TestScattererDegenerateRange(t *testing.T) {
	s := NewScatterer(rand.New(rand.NewPCG(1, 1)))
	rocks := s.Rocks(Rocks{
		Count:  5,
		Region: Region{X: Range{Min: 3, Max: 3}, Z: Range{Min: -2, Max: -2}},
		Scale:  Range{Min: 0.7, Max: 0.7},
	})

	require.Len(t, rocks, 5)
	for _, r := range rocks {
		assert.Equal(t, Vec3{X: 3, Y: 0.7, Z: -2}, r.Position)
	}
}

func TestColor(t *testing.T) {
	r, g, b := ColorWall.RGB()
	assert.Equal(t, [3]uint8{0xcd, 0x85, 0x3f}, [3]uint8{r, g, b})
	assert.Equal(t, "#1e90ff", ColorWater.String())
	assert.Equal(t, [3]float32{1, 1, 1}, ColorWhite.Floats())
	assert.True(t, sunMaterial.Unlit())
	assert.False(t, rockMaterial.Unlit())
}

func TestColorYAML(t *testing.T) {
	out, err := yaml.Marshal(map[string]Color{"sky": ColorSky})
	require.NoError(t, err)
	assert.Contains(t, string(out), "#87ceeb")

	var back map[string]Color
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, ColorSky, back["sky"])

	var env struct {
		A Color `yaml:"a"`
		B Color `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 0xff0000\nb: 255\n"), &env))
	assert.Equal(t, Color(0xff0000), env.A)
	assert.Equal(t, Color(0xff), env.B)

	assert.Error(t, yaml.Unmarshal([]byte("a: \"#gg0000\"\n"), &env))
	_, err = ParseColor("#1000000")
	assert.Error(t, err)
}

func TestElementBounds(t *testing.T) {
	stalk := RiceStalk(0, 10, 0.1, -5, 1.5)
	b := stalk.Bounds()
	assert.InDelta(t, 10, b.Min.X, 1e-9)
	assert.InDelta(t, 0.1, b.Min.Y, 1e-9)
	assert.InDelta(t, -5, b.Min.Z, 1e-9)
	assert.InDelta(t, 1.6, b.Max.Y, 1e-9)
	assert.Equal(t, b.Min.X, b.Max.X)

	house := HouseParts(DefaultLayout().House)[0]
	hb := house.Bounds()
	assert.InDelta(t, 0, hb.Min.Y, 1e-9)
	assert.InDelta(t, house.Geometry.Height, hb.Max.Y, 1e-9)
	assert.InDelta(t, house.Position.X-house.Geometry.Width/2, hb.Min.X, 1e-9)
}

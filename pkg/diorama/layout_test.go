package diorama

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayoutValid(t *testing.T) {
	assert.NoError(t, DefaultLayout().Validate())
	assert.Equal(t, 30, DefaultLayout().Trees.Count())
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Layout)
		field  string
	}{
		{"negative ground", func(l *Layout) { l.GroundSize = -1 }, "ground_size"},
		{"zero river depth", func(l *Layout) { l.River.Depth = 0 }, "river.depth"},
		{"negative mountain", func(l *Layout) { l.Mountains[2].Size = -12 }, "mountains[2].size"},
		{"nan sun", func(l *Layout) { l.Sun.Radius = math.NaN() }, "sun.radius"},
		{"flat house", func(l *Layout) { l.House.Base.Y = 0 }, "house.base.y"},
		{"negative rows", func(l *Layout) { l.Trees.Rows = -5 }, "trees.rows"},
		{"inverted tree scale", func(l *Layout) { l.Trees.Scale = Range{Min: 1.3, Max: 1.0} }, "trees.scale"},
		{"negative rice count", func(l *Layout) { l.Rice.Count = -400 }, "rice.count"},
		{"inverted rice region", func(l *Layout) { l.Rice.Region.Z = Range{Min: -40, Max: -80} }, "rice.region.z"},
		{"zero rice height", func(l *Layout) { l.Rice.Height = Range{} }, "rice.height.min"},
		{"negative rock scale", func(l *Layout) { l.Rocks.Scale.Min = -0.5 }, "rocks.scale.min"},
		{"bad fov", func(l *Layout) { l.Environment.Camera.FOV = 0 }, "environment.camera.fov"},
		{"far before near", func(l *Layout) { l.Environment.Camera.Far = 0.01 }, "environment.camera.far"},
		{"huge rice count", func(l *Layout) { l.Rice.Count = 1 << 62 }, "rice.count"},
		{"huge rock count", func(l *Layout) { l.Rocks.Count = MaxCount + 1 }, "rocks.count"},
		{"tree grid overflow", func(l *Layout) { l.Trees.Rows, l.Trees.Cols = 1<<40, 1<<40 }, "trees.rows"},
		{"tree grid too large", func(l *Layout) { l.Trees.Rows, l.Trees.Cols = 1000, 1000 }, "trees"},
		{"too many mountains", func(l *Layout) { l.Mountains = make([]Peak, MaxCount+1) }, "mountains"},
		{"infinite rock region", func(l *Layout) { l.Rocks.Region.X = Range{Min: math.Inf(-1), Max: math.Inf(1)} }, "rocks.region.x"},
		{"infinite tree scale", func(l *Layout) { l.Trees.Scale.Max = math.Inf(1) }, "trees.scale"},
		{"infinite house", func(l *Layout) { l.House.X = math.Inf(1) }, "house"},
		{"nan peak", func(l *Layout) { l.Mountains[1].Z = math.NaN() }, "mountains[1]"},
		{"nan sun position", func(l *Layout) { l.Sun.Position.Y = math.NaN() }, "sun.position"},
		{"infinite field center", func(l *Layout) { l.Field.Center.Z = math.Inf(-1) }, "field.center"},
		{"infinite tree step", func(l *Layout) { l.Trees.StepX = math.Inf(1) }, "trees.step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultLayout()
			tt.mutate(&l)

			err := l.Validate()
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestBuildRejectsOversizedLayout(t *testing.T) {
	l := DefaultLayout()
	l.Rice.Count = 1 << 62

	var s *Scene
	var err error
	require.NotPanics(t, func() { s, err = Build(l, 1) })
	assert.Nil(t, s)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "rice.count", cfgErr.Field)
}

func TestLayoutCloneIndependent(t *testing.T) {
	l := DefaultLayout()
	c := l.Clone()
	c.Mountains[0].X = 1000
	assert.Equal(t, -50.0, l.Mountains[0].X)
}

func TestRange(t *testing.T) {
	r := Range{Min: 0.5, Max: 0.9}
	assert.True(t, r.Contains(0.5))
	assert.True(t, r.Contains(0.89))
	assert.False(t, r.Contains(0.9))
	assert.False(t, r.Contains(0.4))
	assert.True(t, Range{Min: 2, Max: 2}.Contains(2))

	reg := Region{X: Range{Min: -60, Max: 60}, Z: Range{Min: -90, Max: 90}}
	assert.True(t, reg.Contains(0, 0))
	assert.False(t, reg.Contains(61, 0))
}

package diorama

import (
	"errors"
	"fmt"
	"math"
)

// Range is a half-open interval [Min, Max) sampled uniformly.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies in [Min, Max). A degenerate range
// (Min == Max) contains exactly Min.
func (r Range) Contains(v float64) bool {
	if r.Min == r.Max {
		return v == r.Min
	}
	return v >= r.Min && v < r.Max
}

// Region is a rectangle on the ground plane used for scattering.
type Region struct {
	X Range `json:"x" yaml:"x"`
	Z Range `json:"z" yaml:"z"`
}

// Contains reports whether (x, z) lies inside the region.
func (r Region) Contains(x, z float64) bool {
	return r.X.Contains(x) && r.Z.Contains(z)
}

// Peak is one mountain: a cone of radius Size centered at (X, Z).
type Peak struct {
	X    float64 `json:"x" yaml:"x"`
	Z    float64 `json:"z" yaml:"z"`
	Size float64 `json:"size" yaml:"size"`
}

// River is the water band crossing the ground.
type River struct {
	Width float64 `json:"width" yaml:"width"`
	Depth float64 `json:"depth" yaml:"depth"`
	Y     float64 `json:"y" yaml:"y"`
	Z     float64 `json:"z" yaml:"z"`
}

// Sun is the sphere in the sky.
type Sun struct {
	Position Vec3    `json:"position" yaml:"position"`
	Radius   float64 `json:"radius" yaml:"radius"`
}

// House is a box with a pyramidal roof.
type House struct {
	X          float64 `json:"x" yaml:"x"`
	Z          float64 `json:"z" yaml:"z"`
	Base       Vec3    `json:"base" yaml:"base"`
	RoofRadius float64 `json:"roof_radius" yaml:"roof_radius"`
	RoofHeight float64 `json:"roof_height" yaml:"roof_height"`
	Yaw        float64 `json:"yaw" yaml:"yaw"`
}

// RoofCenterY is the height of the roof's center. A cone is centered on its
// mid-height, so placing it RoofHeight/3 above the walls drops its eaves
// RoofHeight/6 below the wall top, hiding the seam between base and roof.
func (h House) RoofCenterY() float64 {
	return h.Base.Y + h.RoofHeight/3
}

// Field is the flat rice paddy.
type Field struct {
	Width  float64 `json:"width" yaml:"width"`
	Depth  float64 `json:"depth" yaml:"depth"`
	Center Vec3    `json:"center" yaml:"center"`
}

// TreeGrid places Rows*Cols trees on a regular grid with a random scale each.
type TreeGrid struct {
	Rows    int     `json:"rows" yaml:"rows"`
	Cols    int     `json:"cols" yaml:"cols"`
	OriginX float64 `json:"origin_x" yaml:"origin_x"`
	OriginZ float64 `json:"origin_z" yaml:"origin_z"`
	StepX   float64 `json:"step_x" yaml:"step_x"`
	StepZ   float64 `json:"step_z" yaml:"step_z"`
	Scale   Range   `json:"scale" yaml:"scale"`
}

// Count returns the number of trees in the grid.
func (g TreeGrid) Count() int {
	return g.Rows * g.Cols
}

// RiceStalks scatters vertical line segments over the field.
type RiceStalks struct {
	Count  int     `json:"count" yaml:"count"`
	Region Region  `json:"region" yaml:"region"`
	BaseY  float64 `json:"base_y" yaml:"base_y"`
	Height Range   `json:"height" yaml:"height"`
}

// Rocks scatters low-poly stones resting on the ground.
type Rocks struct {
	Count  int    `json:"count" yaml:"count"`
	Region Region `json:"region" yaml:"region"`
	Scale  Range  `json:"scale" yaml:"scale"`
}

// Layout gathers every placement parameter of the scene.
type Layout struct {
	GroundSize  float64     `json:"ground_size" yaml:"ground_size"`
	River       River       `json:"river" yaml:"river"`
	Mountains   []Peak      `json:"mountains" yaml:"mountains"`
	Sun         Sun         `json:"sun" yaml:"sun"`
	House       House       `json:"house" yaml:"house"`
	Field       Field       `json:"field" yaml:"field"`
	Trees       TreeGrid    `json:"trees" yaml:"trees"`
	Rice        RiceStalks  `json:"rice" yaml:"rice"`
	Rocks       Rocks       `json:"rocks" yaml:"rocks"`
	Environment Environment `json:"environment" yaml:"environment"`
}

// DefaultLayout returns the riverside diorama layout.
func DefaultLayout() Layout {
	return Layout{
		GroundSize: 250,
		River:      River{Width: 250, Depth: 20, Y: 0.03, Z: 0},
		Mountains: []Peak{
			{X: -50, Z: 80, Size: 15},
			{X: -10, Z: 90, Size: 18},
			{X: 40, Z: 85, Size: 12},
			{X: 70, Z: 95, Size: 16},
		},
		Sun: Sun{Position: Vec3{X: 90, Y: 80, Z: 100}, Radius: 6},
		House: House{
			X:          20,
			Z:          40,
			Base:       Vec3{X: 6, Y: 4, Z: 6},
			RoofRadius: 5,
			RoofHeight: 3,
			Yaw:        math.Pi / 4,
		},
		Field: Field{Width: 170, Depth: 44, Center: Vec3{X: 0, Y: 0.05, Z: -60}},
		Trees: TreeGrid{
			Rows:    5,
			Cols:    6,
			OriginX: -40,
			OriginZ: 25,
			StepX:   12,
			StepZ:   10,
			Scale:   Range{Min: 1.0, Max: 1.3},
		},
		Rice: RiceStalks{
			Count:  400,
			Region: Region{X: Range{Min: -80, Max: 80}, Z: Range{Min: -80, Max: -40}},
			BaseY:  0.05,
			Height: Range{Min: 0.5, Max: 0.8},
		},
		Rocks: Rocks{
			Count:  12,
			Region: Region{X: Range{Min: -60, Max: 60}, Z: Range{Min: -90, Max: 90}},
			Scale:  Range{Min: 0.5, Max: 0.9},
		},
		Environment: DefaultEnvironment(),
	}
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	c := l
	c.Mountains = append([]Peak(nil), l.Mountains...)
	return c
}

// ConfigError reports one invalid layout parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("layout %s: %s", e.Field, e.Reason)
}

// MaxCount bounds every element count of a layout: the mountain list, the
// tree grid (rows*cols), the rice stalks and the rocks.
const MaxCount = 100_000

// Validate rejects sizes, counts, positions and ranges that would produce
// degenerate, invisible or non-finite shapes. All problems are reported,
// joined into one error.
func (l Layout) Validate() error {
	var errs []error
	finite := func(field string, vs ...float64) {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf("must be finite, got %g", v)})
				return
			}
		}
	}
	positive := func(field string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf("must be positive, got %g", v)})
		}
	}
	count := func(field string, n int) {
		switch {
		case n < 0:
			errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf("must not be negative, got %d", n)})
		case n > MaxCount:
			errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf("must not exceed %d, got %d", MaxCount, n)})
		}
	}
	ordered := func(field string, r Range) {
		switch {
		case math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0):
			errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf("bounds must be finite, got [%g, %g)", r.Min, r.Max)})
		case r.Min > r.Max:
			errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf("min %g exceeds max %g", r.Min, r.Max)})
		}
	}
	positiveRange := func(field string, r Range) {
		ordered(field, r)
		if !(r.Min > 0) {
			errs = append(errs, &ConfigError{Field: field + ".min", Reason: fmt.Sprintf("must be positive, got %g", r.Min)})
		}
	}

	positive("ground_size", l.GroundSize)
	positive("river.width", l.River.Width)
	positive("river.depth", l.River.Depth)
	finite("river.y", l.River.Y)
	finite("river.z", l.River.Z)
	count("mountains", len(l.Mountains))
	for i, p := range l.Mountains {
		finite(fmt.Sprintf("mountains[%d]", i), p.X, p.Z)
		positive(fmt.Sprintf("mountains[%d].size", i), p.Size)
	}
	finite("sun.position", l.Sun.Position.X, l.Sun.Position.Y, l.Sun.Position.Z)
	positive("sun.radius", l.Sun.Radius)
	finite("house", l.House.X, l.House.Z)
	finite("house.yaw", l.House.Yaw)
	positive("house.base.x", l.House.Base.X)
	positive("house.base.y", l.House.Base.Y)
	positive("house.base.z", l.House.Base.Z)
	positive("house.roof_radius", l.House.RoofRadius)
	positive("house.roof_height", l.House.RoofHeight)
	positive("field.width", l.Field.Width)
	positive("field.depth", l.Field.Depth)
	finite("field.center", l.Field.Center.X, l.Field.Center.Y, l.Field.Center.Z)

	count("trees.rows", l.Trees.Rows)
	count("trees.cols", l.Trees.Cols)
	// Both factors are bounded above, so the product cannot overflow.
	if r, c := l.Trees.Rows, l.Trees.Cols; r > 0 && c > 0 && r <= MaxCount && c <= MaxCount && r*c > MaxCount {
		errs = append(errs, &ConfigError{Field: "trees", Reason: fmt.Sprintf("grid of %dx%d exceeds %d trees", r, c, MaxCount)})
	}
	finite("trees.origin", l.Trees.OriginX, l.Trees.OriginZ)
	finite("trees.step", l.Trees.StepX, l.Trees.StepZ)
	positiveRange("trees.scale", l.Trees.Scale)

	count("rice.count", l.Rice.Count)
	finite("rice.base_y", l.Rice.BaseY)
	ordered("rice.region.x", l.Rice.Region.X)
	ordered("rice.region.z", l.Rice.Region.Z)
	positiveRange("rice.height", l.Rice.Height)

	count("rocks.count", l.Rocks.Count)
	ordered("rocks.region.x", l.Rocks.Region.X)
	ordered("rocks.region.z", l.Rocks.Region.Z)
	positiveRange("rocks.scale", l.Rocks.Scale)

	if err := l.Environment.validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

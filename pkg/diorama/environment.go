package diorama

import (
	"errors"
	"fmt"
)

// Light is a colored light source. Position is only meaningful for
// directional lights, where it points from the origin towards the light.
type Light struct {
	Color     Color   `json:"color" yaml:"color"`
	Intensity float64 `json:"intensity" yaml:"intensity"`
	Position  Vec3    `json:"position,omitempty" yaml:"position,omitempty"`
}

// CameraView is the initial perspective camera of the scene.
type CameraView struct {
	FOV      float64 `json:"fov" yaml:"fov"` // vertical, degrees
	Near     float64 `json:"near" yaml:"near"`
	Far      float64 `json:"far" yaml:"far"`
	Position Vec3    `json:"position" yaml:"position"`
	Target   Vec3    `json:"target" yaml:"target"`
}

// Environment holds everything around the placed elements: sky, lights and
// the starting viewpoint.
type Environment struct {
	Background Color      `json:"background" yaml:"background"`
	Ambient    Light      `json:"ambient" yaml:"ambient"`
	SunLight   Light      `json:"sun_light" yaml:"sun_light"`
	Camera     CameraView `json:"camera" yaml:"camera"`
}

// DefaultEnvironment returns the sky, lights and camera of the diorama.
func DefaultEnvironment() Environment {
	return Environment{
		Background: ColorSky,
		Ambient:    Light{Color: ColorWhite, Intensity: 0.6},
		SunLight:   Light{Color: ColorWhite, Intensity: 1.2, Position: Vec3{X: 80, Y: 100, Z: -80}},
		Camera: CameraView{
			FOV:      60,
			Near:     0.1,
			Far:      1000,
			Position: Vec3{X: 60, Y: 50, Z: 100},
		},
	}
}

func (e Environment) validate() error {
	var errs []error
	if e.Camera.FOV <= 0 || e.Camera.FOV >= 180 {
		errs = append(errs, &ConfigError{Field: "environment.camera.fov", Reason: fmt.Sprintf("must be in (0, 180), got %g", e.Camera.FOV)})
	}
	if e.Camera.Near <= 0 {
		errs = append(errs, &ConfigError{Field: "environment.camera.near", Reason: fmt.Sprintf("must be positive, got %g", e.Camera.Near)})
	}
	if e.Camera.Far <= e.Camera.Near {
		errs = append(errs, &ConfigError{Field: "environment.camera.far", Reason: fmt.Sprintf("must exceed near %g, got %g", e.Camera.Near, e.Camera.Far)})
	}
	if e.Ambient.Intensity < 0 {
		errs = append(errs, &ConfigError{Field: "environment.ambient.intensity", Reason: "must not be negative"})
	}
	if e.SunLight.Intensity < 0 {
		errs = append(errs, &ConfigError{Field: "environment.sun_light.intensity", Reason: "must not be negative"})
	}
	if e.SunLight.Position.Length() == 0 {
		errs = append(errs, &ConfigError{Field: "environment.sun_light.position", Reason: "must not be the origin"})
	}
	return errors.Join(errs...)
}

package diorama

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Issue is one broken scene invariant.
type Issue struct {
	ElementID string `json:"element_id,omitempty" yaml:"element_id,omitempty"`
	Message   string `json:"message" yaml:"message"`
}

func (i Issue) Error() string {
	if i.ElementID == "" {
		return i.Message
	}
	return i.ElementID + ": " + i.Message
}

// Validate checks the built scene against its layout: singleton and scatter
// counts, unique IDs, and that every scattered element stayed in range.
func (s *Scene) Validate() []Issue {
	var issues []Issue
	add := func(id, format string, args ...any) {
		issues = append(issues, Issue{ElementID: id, Message: fmt.Sprintf(format, args...)})
	}

	l := s.layout
	want := map[Category]int{
		CategoryGround:      1,
		CategoryRiver:       1,
		CategoryMountain:    len(l.Mountains),
		CategorySun:         1,
		CategoryTreeTrunk:   l.Trees.Count(),
		CategoryTreeFoliage: l.Trees.Count(),
		CategoryHouseBase:   1,
		CategoryHouseRoof:   1,
		CategoryField:       1,
		CategoryRiceStalk:   l.Rice.Count,
		CategoryRock:        l.Rocks.Count,
	}
	for _, c := range Categories {
		if got := s.Count(c); got != want[c] {
			add("", "expected %d %s elements, got %d", want[c], c, got)
		}
	}

	seen := make(map[string]bool, len(s.elements))
	trunks := make(map[string]Vec3, l.Trees.Count())
	var foliage []Element
	groundIdx, riverIdx := -1, -1
	for i, e := range s.elements {
		if seen[e.ID] {
			add(e.ID, "duplicate element id")
		}
		seen[e.ID] = true

		switch e.Category {
		case CategoryGround:
			groundIdx = i
		case CategoryRiver:
			riverIdx = i
		case CategoryTreeTrunk:
			checkTree(e, l.Trees, add)
			trunks[strings.TrimSuffix(e.ID, "-trunk")] = e.Position
		case CategoryTreeFoliage:
			checkTree(e, l.Trees, add)
			foliage = append(foliage, e)
		case CategoryRiceStalk:
			if !l.Rice.Region.Contains(e.Position.X, e.Position.Z) {
				add(e.ID, "outside rice region at (%g, %g)", e.Position.X, e.Position.Z)
			}
			if h := e.length(); !l.Rice.Height.Contains(h) {
				add(e.ID, "stalk height %g outside %v", h, l.Rice.Height)
			}
		case CategoryRock:
			if !l.Rocks.Region.Contains(e.Position.X, e.Position.Z) {
				add(e.ID, "outside rock region at (%g, %g)", e.Position.X, e.Position.Z)
			}
			if !l.Rocks.Scale.Contains(e.Scale.X) {
				add(e.ID, "rock scale %g outside %v", e.Scale.X, l.Rocks.Scale)
			}
			if e.Position.Y != e.Scale.X {
				add(e.ID, "rock does not rest on the ground: y=%g scale=%g", e.Position.Y, e.Scale.X)
			}
		}
	}
	for _, f := range foliage {
		p, ok := trunks[strings.TrimSuffix(f.ID, "-foliage")]
		switch {
		case !ok:
			add(f.ID, "foliage without a trunk")
		case p.X != f.Position.X || p.Z != f.Position.Z:
			add(f.ID, "foliage at (%g, %g) is off its trunk at (%g, %g)", f.Position.X, f.Position.Z, p.X, p.Z)
		}
	}
	if groundIdx >= 0 && riverIdx >= 0 && riverIdx < groundIdx {
		add("river", "emitted before the ground")
	}
	return issues
}

// Err folds the issues of Validate into one error, or nil.
func (s *Scene) Err() error {
	issues := s.Validate()
	errs := make([]error, len(issues))
	for i, is := range issues {
		errs[i] = is
	}
	return errors.Join(errs...)
}

func checkTree(e Element, g TreeGrid, add func(id, format string, args ...any)) {
	if !g.Scale.Contains(e.Scale.X) {
		add(e.ID, "tree scale %g outside %v", e.Scale.X, g.Scale)
	}
	if g.StepX != 0 {
		col := (e.Position.X - g.OriginX) / g.StepX
		if col != math.Trunc(col) || col < 0 || int(col) >= g.Cols {
			add(e.ID, "x %g is off the tree grid", e.Position.X)
		}
	}
	if g.StepZ != 0 {
		row := (e.Position.Z - g.OriginZ) / g.StepZ
		if row != math.Trunc(row) || row < 0 || int(row) >= g.Rows {
			add(e.ID, "z %g is off the tree grid", e.Position.Z)
		}
	}
}

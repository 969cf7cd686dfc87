// Package stage models a scene description: a tree of typed prims carrying
// transform operators and time-sampled attributes. A Stage is the in-memory
// form of a single scene layer; evaluation is always by time code.
package stage

import "strings"

// Stage is a prim tree plus layer metadata.
type Stage struct {
	root *Prim
	name string

	defaultPrim string
	start, end  float64
	hasRange    bool
	tcps        float64
}

// New returns an empty stage with only the pseudo-root prim.
func New(name string) *Stage {
	return &Stage{
		root: &Prim{kind: KindOther},
		name: name,
	}
}

// Name returns the stage name (usually the source file name).
func (s *Stage) Name() string { return s.name }

// SetName sets the stage name.
func (s *Stage) SetName(name string) { s.name = name }

// Root returns the pseudo-root prim at path "/".
func (s *Stage) Root() *Prim { return s.root }

// Define returns the prim at the given absolute path, creating it and any
// missing ancestors first. Ancestors are created as Xform prims. Defining an
// existing path updates its type. Invalid paths return nil.
func (s *Stage) Define(path, typeName string) *Prim {
	names, ok := splitPath(path)
	if !ok {
		return nil
	}

	p := s.root
	for i, name := range names {
		child := p.child(name)
		if child == nil {
			child = &Prim{
				name:     name,
				typeName: "Xform",
				kind:     KindXform,
				parent:   p,
			}
			p.children = append(p.children, child)
		}
		if i == len(names)-1 {
			child.typeName = typeName
			child.kind = ParseKind(typeName)
		}
		p = child
	}
	return p
}

// PrimAtPath returns the prim at the given absolute path, or nil.
// The path "/" returns the pseudo-root.
func (s *Stage) PrimAtPath(path string) *Prim {
	names, ok := splitPath(path)
	if !ok {
		return nil
	}

	p := s.root
	for _, name := range names {
		if p = p.child(name); p == nil {
			return nil
		}
	}
	return p
}

// Traverse visits every prim below the pseudo-root in pre-order. Returning
// false from fn stops the walk.
func (s *Stage) Traverse(fn func(*Prim) bool) {
	var walk func(*Prim) bool
	walk = func(p *Prim) bool {
		for _, c := range p.children {
			if !fn(c) {
				return false
			}
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(s.root)
}

// DefaultPrim returns the name of the layer's default prim ("" when unset).
func (s *Stage) DefaultPrim() string { return s.defaultPrim }

// SetDefaultPrim sets the default prim name.
func (s *Stage) SetDefaultPrim(name string) { s.defaultPrim = name }

// StartTime returns the first time code of the animation range.
func (s *Stage) StartTime() float64 { return s.start }

// EndTime returns the last time code of the animation range.
func (s *Stage) EndTime() float64 { return s.end }

// SetTimeRange sets the animation range in time codes.
func (s *Stage) SetTimeRange(start, end float64) {
	s.start, s.end = start, end
	s.hasRange = true
}

// HasAnimation reports whether the stage declares a non-empty time range.
func (s *Stage) HasAnimation() bool {
	return s.hasRange && s.end > s.start
}

// TimeCodesPerSecond returns the playback rate, defaulting to 24.
func (s *Stage) TimeCodesPerSecond() float64 {
	if s.tcps <= 0 {
		return 24
	}
	return s.tcps
}

// SetTimeCodesPerSecond sets the playback rate.
func (s *Stage) SetTimeCodesPerSecond(tcps float64) { s.tcps = tcps }

// splitPath splits an absolute prim path into its name components.
func splitPath(path string) ([]string, bool) {
	if path == "/" {
		return nil, true
	}
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}
	names := strings.Split(path[1:], "/")
	for _, name := range names {
		if name == "" {
			return nil, false
		}
	}
	return names, true
}

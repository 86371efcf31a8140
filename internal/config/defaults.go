package config

import (
	"embed"
)

//go:embed scenes/*.yaml
var builtinScenes embed.FS

// Runner defaults applied when a scene leaves them out.
const (
	DefaultSteps      = 600
	DefaultDT         = 1.0 / 60.0
	DefaultIterations = 4
	DefaultBiasFactor = 0.2
)

// applyDefaults fills the zero run parameters.
func (s *Scene) applyDefaults() {
	if s.Run.Steps <= 0 {
		s.Run.Steps = DefaultSteps
	}
	if s.Run.DT <= 0 {
		s.Run.DT = DefaultDT
	}
	if s.Run.Iterations <= 0 {
		s.Run.Iterations = DefaultIterations
	}
	for i := range s.Joints {
		if s.Joints[i].Type == "revolute" && s.Joints[i].BiasFactor == 0 {
			s.Joints[i].BiasFactor = DefaultBiasFactor
		}
	}
}

package sat2d

import "strings"

// Material tags a body with a surface type. It decides the default
// restitution and indexes the pairwise friction table.
type Material uint8

const (
	MaterialDefault Material = iota
	MaterialWood
	MaterialSteel
	MaterialRubber
	MaterialIce
	MaterialMud

	materialCount
)

// RestitutionFromMaterial can be passed as BodyDef.Restitution to use the
// material's restitution instead of an explicit value.
const RestitutionFromMaterial = -1.0

var materialNames = [materialCount]string{"Default", "Wood", "Steel", "Rubber", "Ice", "Mud"}

var materialRestitution = [materialCount]float64{0.5, 0.35, 0.6, 0.85, 0.25, 0.15}

// MaterialPair holds the friction coefficients of two touching materials.
type MaterialPair struct {
	Static  float64
	Dynamic float64
	Rolling float64
}

// frictionTable is indexed by [a][b] in Material order.
var frictionTable = [materialCount][materialCount]MaterialPair{
	// Default
	{{0.6, 0.45, 0.02}, {0.55, 0.4, 0.03}, {0.4, 0.25, 0.015}, {0.98, 0.82, 0.06}, {0.12, 0.06, 0.001}, {0.78, 0.62, 0.04}},
	// Wood
	{{0.55, 0.4, 0.03}, {0.65, 0.5, 0.04}, {0.45, 0.3, 0.02}, {0.85, 0.65, 0.05}, {0.18, 0.08, 0.005}, {0.72, 0.55, 0.045}},
	// Steel
	{{0.4, 0.25, 0.015}, {0.45, 0.3, 0.02}, {0.7, 0.5, 0.04}, {0.72, 0.55, 0.045}, {0.07, 0.035, 0.003}, {0.5, 0.35, 0.025}},
	// Rubber
	{{0.98, 0.82, 0.08}, {0.85, 0.65, 0.07}, {0.72, 0.55, 0.05}, {1.05, 0.95, 0.1}, {0.22, 0.12, 0.01}, {0.9, 0.72, 0.09}},
	// Ice
	{{0.12, 0.06, 0.002}, {0.18, 0.08, 0.0025}, {0.07, 0.035, 0.001}, {0.22, 0.12, 0.003}, {0.03, 0.02, 0.0005}, {0.1, 0.05, 0.0015}},
	// Mud
	{{0.78, 0.62, 0.05}, {0.72, 0.55, 0.055}, {0.5, 0.35, 0.03}, {0.9, 0.72, 0.07}, {0.1, 0.05, 0.006}, {0.98, 0.82, 0.09}},
}

func (m Material) valid() bool {
	return m < materialCount
}

func (m Material) String() string {
	if !m.valid() {
		return materialNames[MaterialDefault]
	}
	return materialNames[m]
}

// Restitution returns the default coefficient of restitution for m.
func (m Material) Restitution() float64 {
	if !m.valid() {
		return materialRestitution[MaterialDefault]
	}
	return materialRestitution[m]
}

// ParseMaterial returns the material named s (case-insensitive).
// Unknown names map to MaterialDefault.
func ParseMaterial(s string) Material {
	for i, name := range materialNames {
		if strings.EqualFold(name, s) {
			return Material(i)
		}
	}
	return MaterialDefault
}

// FrictionBetween looks up the friction coefficients for a material pair.
//
// The solver applies normal impulses only; these values are informational.
func FrictionBetween(a, b Material) MaterialPair {
	if !a.valid() {
		a = MaterialDefault
	}
	if !b.valid() {
		b = MaterialDefault
	}
	return frictionTable[a][b]
}

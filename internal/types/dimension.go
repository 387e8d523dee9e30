// Package types defines the shared domain types for representative scoring.
package types

// Dimension identifies one axis of a representative's rating.
type Dimension string

const (
	DimensionOverall       Dimension = "overall"
	DimensionTransparency  Dimension = "transparency"
	DimensionEffectiveness Dimension = "effectiveness"
	DimensionIntegrity     Dimension = "integrity"
	DimensionConsistency   Dimension = "consistency"
	DimensionConstituency  Dimension = "constituency_service"
)

// AllDimensions returns every rating dimension including overall.
func AllDimensions() []Dimension {
	return []Dimension{
		DimensionOverall,
		DimensionTransparency,
		DimensionEffectiveness,
		DimensionIntegrity,
		DimensionConsistency,
		DimensionConstituency,
	}
}

// ImpactDimensions returns the five sub-dimensions agents score directly.
func ImpactDimensions() []Dimension {
	return []Dimension{
		DimensionTransparency,
		DimensionEffectiveness,
		DimensionIntegrity,
		DimensionConsistency,
		DimensionConstituency,
	}
}

// Valid reports whether d is a known dimension.
func (d Dimension) Valid() bool {
	switch d {
	case DimensionOverall, DimensionTransparency, DimensionEffectiveness,
		DimensionIntegrity, DimensionConsistency, DimensionConstituency:
		return true
	}
	return false
}

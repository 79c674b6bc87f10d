package resistor

import (
	"math"

	"github.com/resistor-color/api/models"
)

// Match is the outcome of classifying one pixel color
type Match struct {
	Color ReferenceColor
	// Swatch is the catalog point or custom color that won, before canonicalization
	Swatch      string
	Distance    float64
	RawDistance float64
	Custom      bool
}

// Classifier matches pixel colors against a catalog under a bias policy
type Classifier struct {
	Catalog *Catalog
	Policy  BiasPolicy
}

// DefaultClassifier uses the standard catalog and bias policy
var DefaultClassifier = Classifier{Catalog: StandardCatalog, Policy: DefaultBiasPolicy}

// FindClosestColor classifies px with the default classifier
func FindClosestColor(px models.RGB, custom []models.CustomColor) ReferenceColor {
	return DefaultClassifier.Classify(px, custom).Color
}

// Classify returns the best biased match for px. It never fails: with an
// empty catalog and no custom colors the zero Match is returned.
func (cl Classifier) Classify(px models.RGB, custom []models.CustomColor) Match {
	return cl.classifyLab(RGBToLab(px), custom)
}

func (cl Classifier) classifyLab(pixelLab Lab, custom []models.CustomColor) Match {
	stats := statsFor(pixelLab)
	best := Match{Distance: math.Inf(1)}

	for _, cc := range custom {
		raw := LabDistance(pixelLab, RGBToLab(cc.RGB))
		biased := raw * cl.Policy.Custom
		if biased < best.Distance {
			best = Match{
				Color:       cl.resolveCustom(cc),
				Swatch:      cc.Name,
				Distance:    biased,
				RawDistance: raw,
				Custom:      true,
			}
		}
	}

	for _, ref := range cl.Catalog.colors {
		factor := cl.Policy.Factor(ref, stats)
		consider := func(name string, rgb models.RGB) {
			raw := LabDistance(pixelLab, RGBToLab(rgb))
			biased := raw * factor
			if biased < best.Distance {
				best = Match{Color: ref, Swatch: name, Distance: biased, RawDistance: raw}
			}
		}
		consider(ref.Name, ref.RGB)
		for _, alias := range ref.Aliases {
			consider(alias.Name, alias.RGB)
		}
	}

	if math.IsInf(best.Distance, 1) && len(cl.Catalog.colors) > 0 {
		best.Color = cl.Catalog.colors[0]
		best.Swatch = best.Color.Name
	}
	return best
}

// resolveCustom maps a taught name onto its catalog color so the taught
// swatch keeps the digit/multiplier/tolerance meaning of that color
func (cl Classifier) resolveCustom(cc models.CustomColor) ReferenceColor {
	if ref, ok := cl.Catalog.Lookup(cc.Name); ok {
		return ref
	}
	return ReferenceColor{Name: cc.Name, RGB: cc.RGB, Role: RoleCustom}
}

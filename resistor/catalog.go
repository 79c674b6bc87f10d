package resistor

import (
	"strings"

	"github.com/resistor-color/api/models"
)

// Role decides how a reference color takes part in decoding
type Role int

const (
	RoleDigit Role = iota
	RoleGold
	RoleSilver
	RoleBody
	RoleCustom
)

var roleNames = []string{"digit", "gold", "silver", "body", "custom"}

func (r Role) String() string {
	if int(r) < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// Metallic reports whether the role is one of the tolerance metals
func (r Role) Metallic() bool {
	return r == RoleGold || r == RoleSilver
}

// Swatch is an extra matching point owned by a reference color.
// Swatches widen the net around a color family; they are never surfaced as a result.
type Swatch struct {
	Name string
	RGB  models.RGB
}

// ReferenceColor is one canonical catalog color
type ReferenceColor struct {
	Name       string
	RGB        models.RGB
	Role       Role
	Neutral    bool
	Value      *int
	Multiplier *float64
	Tolerance  *float64
	Aliases    []Swatch
}

// IsBody reports whether the color is a resistor body color
func (c ReferenceColor) IsBody() bool {
	return c.Role == RoleBody
}

const (
	GoldName   = "Gold"
	SilverName = "Silver"
	bodySuffix = " (Body)"
)

// Catalog is an immutable, ordered set of reference colors
type Catalog struct {
	colors []ReferenceColor
	index  map[string]int
}

// NewCatalog indexes colors by canonical and alias name.
// It panics on a duplicate name: the table is static and a duplicate is a programming error.
func NewCatalog(colors []ReferenceColor) *Catalog {
	cat := &Catalog{
		colors: make([]ReferenceColor, len(colors)),
		index:  make(map[string]int),
	}
	copy(cat.colors, colors)
	for i, c := range cat.colors {
		cat.add(c.Name, i)
		for _, alias := range c.Aliases {
			cat.add(alias.Name, i)
		}
	}
	return cat
}

func (cat *Catalog) add(name string, i int) {
	key := strings.ToLower(name)
	if _, exists := cat.index[key]; exists {
		panic("resistor: duplicate catalog name " + name)
	}
	cat.index[key] = i
}

// Colors returns a copy of the ordered catalog
func (cat *Catalog) Colors() []ReferenceColor {
	out := make([]ReferenceColor, len(cat.colors))
	copy(out, cat.colors)
	return out
}

// Lookup resolves a canonical or alias name (case-insensitive) to its canonical color
func (cat *Catalog) Lookup(name string) (ReferenceColor, bool) {
	i, ok := cat.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ReferenceColor{}, false
	}
	return cat.colors[i], true
}

// Canonical returns the canonical name for name, or name itself when unknown
func (cat *Catalog) Canonical(name string) string {
	if c, ok := cat.Lookup(name); ok {
		return c.Name
	}
	return name
}

// IsBodyName reports whether name resolves to a body color
func (cat *Catalog) IsBodyName(name string) bool {
	c, ok := cat.Lookup(name)
	if ok {
		return c.IsBody()
	}
	return strings.HasSuffix(name, bodySuffix)
}

// digitName returns the canonical digit color for 0-9
func (cat *Catalog) digitName(digit int) (string, bool) {
	for _, c := range cat.colors {
		if c.Role == RoleDigit && c.Value != nil && *c.Value == digit {
			return c.Name, true
		}
	}
	return "", false
}

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func digit(name string, rgb models.RGB, value int, tolerance *float64, aliases ...Swatch) ReferenceColor {
	mult := 1.0
	for i := 0; i < value; i++ {
		mult *= 10
	}
	return ReferenceColor{
		Name:       name,
		RGB:        rgb,
		Role:       RoleDigit,
		Value:      intp(value),
		Multiplier: floatp(mult),
		Tolerance:  tolerance,
		Aliases:    aliases,
	}
}

func body(name string, rgb models.RGB, aliases ...Swatch) ReferenceColor {
	return ReferenceColor{
		Name:    name + bodySuffix,
		RGB:     rgb,
		Role:    RoleBody,
		Neutral: true,
		Aliases: aliases,
	}
}

func neutral(c ReferenceColor) ReferenceColor {
	c.Neutral = true
	return c
}

var standardColors = []ReferenceColor{
	neutral(digit("Black", models.RGB{R: 0, G: 0, B: 0}, 0, nil)),
	digit("Brown", models.RGB{R: 150, G: 75, B: 0}, 1, floatp(1),
		Swatch{"Brown_Dark", models.RGB{R: 101, G: 52, B: 20}}),
	digit("Red", models.RGB{R: 255, G: 0, B: 0}, 2, floatp(2),
		Swatch{"Red_Dark", models.RGB{R: 180, G: 30, B: 30}}),
	digit("Orange", models.RGB{R: 255, G: 165, B: 0}, 3, nil,
		Swatch{"Orange_Dark", models.RGB{R: 230, G: 110, B: 20}}),
	digit("Yellow", models.RGB{R: 255, G: 255, B: 0}, 4, nil,
		Swatch{"Yellow_Dark", models.RGB{R: 225, G: 205, B: 20}}),
	digit("Green", models.RGB{R: 0, G: 128, B: 0}, 5, floatp(0.5),
		Swatch{"Green_Dark", models.RGB{R: 20, G: 90, B: 40}}),
	digit("Blue", models.RGB{R: 0, G: 0, B: 255}, 6, floatp(0.25),
		Swatch{"Blue_Dark", models.RGB{R: 20, G: 40, B: 140}}),
	digit("Violet", models.RGB{R: 128, G: 0, B: 128}, 7, floatp(0.1),
		Swatch{"Violet_Dark", models.RGB{R: 80, G: 0, B: 100}}),
	neutral(digit("Gray", models.RGB{R: 128, G: 128, B: 128}, 8, floatp(0.05))),
	neutral(digit("White", models.RGB{R: 255, G: 255, B: 255}, 9, nil)),
	{
		Name:       GoldName,
		RGB:        models.RGB{R: 212, G: 175, B: 55},
		Role:       RoleGold,
		Multiplier: floatp(0.1),
		Tolerance:  floatp(5),
		Aliases: []Swatch{
			{"Gold_Light", models.RGB{R: 230, G: 195, B: 90}},
			{"Gold_Dark", models.RGB{R: 170, G: 135, B: 40}},
			{"Gold_Shadow", models.RGB{R: 140, G: 115, B: 60}},
			{"Gold_Muted", models.RGB{R: 190, G: 160, B: 90}},
		},
	},
	{
		Name:       SilverName,
		RGB:        models.RGB{R: 192, G: 192, B: 192},
		Role:       RoleSilver,
		Neutral:    true,
		Multiplier: floatp(0.01),
		Tolerance:  floatp(10),
	},
	body("Beige", models.RGB{R: 245, G: 245, B: 220},
		Swatch{"Beige_Dark", models.RGB{R: 215, G: 205, B: 175}}),
	body("Tan", models.RGB{R: 210, G: 180, B: 140},
		Swatch{"Tan_Dark", models.RGB{R: 175, G: 145, B: 105}}),
	body("Cream", models.RGB{R: 255, G: 253, B: 208}),
	body("Light Blue", models.RGB{R: 173, G: 216, B: 230},
		Swatch{"Light Blue_Dark", models.RGB{R: 120, G: 160, B: 185}}),
}

// StandardCatalog is the process-wide reference table. Nothing mutates it.
var StandardCatalog = NewCatalog(standardColors)

// CatalogEntries renders the catalog for API output
func (cat *Catalog) CatalogEntries() []models.CatalogEntry {
	entries := make([]models.CatalogEntry, 0, len(cat.colors))
	for _, c := range cat.colors {
		entry := models.CatalogEntry{
			Name:       c.Name,
			RGB:        c.RGB,
			Hex:        c.RGB.Hex(),
			Role:       c.Role.String(),
			Value:      c.Value,
			Multiplier: c.Multiplier,
			Tolerance:  c.Tolerance,
		}
		for _, a := range c.Aliases {
			entry.Aliases = append(entry.Aliases, a.Name)
		}
		entries = append(entries, entry)
	}
	return entries
}

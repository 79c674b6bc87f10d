package resistor

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const defaultTolerance = 20.0

var (
	ErrTooFewBands         = errors.New("at least 3 bands are required")
	ErrNotEnoughValidBands = errors.New("Not enough valid bands")
	ErrInvalidBandSequence = errors.New("Invalid band sequence")
)

// CalculateResistorValue decodes band names with the standard catalog
func CalculateResistorValue(names []string) (string, error) {
	return StandardCatalog.CalculateResistorValue(names)
}

// CalculateResistorValue decodes an ordered band sequence into e.g. "4.7kΩ ±5%".
// ErrTooFewBands means there was nothing to decode; the other errors carry the
// diagnostic text shown to the user in place of a value.
func (cat *Catalog) CalculateResistorValue(names []string) (string, error) {
	ohms, tolerance, err := cat.Decode(names)
	if err != nil {
		return "", err
	}
	return FormatResistance(ohms) + " ±" + formatPercent(tolerance) + "%", nil
}

// Decode returns the resistance in ohms and the tolerance percentage.
// A trailing band with a tolerance is read as the tolerance band when at least
// four bands resolved; three bands are always digit, digit, multiplier.
func (cat *Catalog) Decode(names []string) (float64, float64, error) {
	if len(names) < 3 {
		return 0, 0, ErrTooFewBands
	}

	var bands []ReferenceColor
	for _, name := range names {
		if ref, ok := cat.Lookup(name); ok {
			bands = append(bands, ref)
		}
	}
	if len(bands) < 3 {
		return 0, 0, ErrNotEnoughValidBands
	}

	tolerance := defaultTolerance
	last := bands[len(bands)-1]
	multiplierBand := last
	digits := bands[:len(bands)-1]
	if last.Tolerance != nil && len(bands) >= 4 {
		tolerance = *last.Tolerance
		multiplierBand = bands[len(bands)-2]
		digits = bands[:len(bands)-2]
	}

	if len(digits) == 0 || multiplierBand.Multiplier == nil {
		return 0, 0, ErrInvalidBandSequence
	}
	digitValue := 0
	for _, d := range digits {
		if d.Value == nil {
			return 0, 0, ErrInvalidBandSequence
		}
		digitValue = digitValue*10 + *d.Value
	}

	return float64(digitValue) * *multiplierBand.Multiplier, tolerance, nil
}

var resistanceUnits = []string{"Ω", "kΩ", "MΩ"}

// FormatResistance renders ohms with an Ω, kΩ or MΩ suffix and one decimal place, ".0" trimmed.
// The unit is picked after rounding, so 999.96 is "1kΩ".
func FormatResistance(ohms float64) string {
	value := ohms
	unit := 0
	for unit < len(resistanceUnits)-1 && math.Round(value*10)/10 >= 1000 {
		value /= 1000
		unit++
	}
	s := strconv.FormatFloat(math.Round(value*10)/10, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + resistanceUnits[unit]
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// RemoveDominant drops the body candidate: the one name that repeats.
// When no name or more than one name repeats there is no unambiguous body
// and names come back unchanged, so applying it twice is a no-op.
func RemoveDominant(names []string) []string {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}
	dominant := ""
	for _, n := range names {
		if counts[n] < 2 || n == dominant {
			continue
		}
		if dominant != "" {
			return append([]string(nil), names...)
		}
		dominant = n
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != dominant {
			out = append(out, n)
		}
	}
	return out
}

// StripBody removes body bands before decoding. Names that resolve to a body
// color are dropped by name; only when none is present does the dominant
// repeated name stand in for the body.
func (cat *Catalog) StripBody(names []string) []string {
	var out []string
	found := false
	for _, n := range names {
		if cat.IsBodyName(n) {
			found = true
			continue
		}
		out = append(out, n)
	}
	if found {
		return out
	}
	return RemoveDominant(names)
}

// DecodeBands strips the body and decodes what is left, returning the stripped
// sequence alongside the value. A nil value means too few bands were left;
// other failures put the diagnostic text in the value and return the error too.
func (cat *Catalog) DecodeBands(names []string) ([]string, *string, error) {
	stripped := cat.StripBody(names)
	if stripped == nil {
		stripped = []string{}
	}

	value, err := cat.CalculateResistorValue(stripped)
	switch {
	case err == nil:
		return stripped, &value, nil
	case errors.Is(err, ErrTooFewBands):
		return stripped, nil, err
	default:
		msg := err.Error()
		return stripped, &msg, err
	}
}

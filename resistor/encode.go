package resistor

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const minOhms = 0.1

var ErrOutOfRange = errors.New("resistance cannot be encoded in color bands")

// toleranceBands maps a tolerance code in percent to its band; "None" means no band
var toleranceBands = map[string]string{
	"1":    "Brown",
	"2":    "Red",
	"0.5":  "Green",
	"0.25": "Blue",
	"0.1":  "Violet",
	"5":    GoldName,
	"10":   SilverName,
	"20":   "None",
}

// ResistanceToColors encodes ohms with the standard catalog
func ResistanceToColors(ohms float64, toleranceCode string) ([]string, error) {
	return StandardCatalog.ResistanceToColors(ohms, toleranceCode)
}

// ResistanceToColors derives the canonical digit, digit, multiplier sequence
// for ohms, plus a tolerance band when toleranceCode names one
func (cat *Catalog) ResistanceToColors(ohms float64, toleranceCode string) ([]string, error) {
	if ohms < minOhms || math.IsNaN(ohms) || math.IsInf(ohms, 0) {
		return nil, fmt.Errorf("%w: %g ohms", ErrOutOfRange, ohms)
	}

	exponent := decimalExponent(ohms)
	twoDigits := int(math.Round(ohms / math.Pow10(exponent-1)))
	if twoDigits == 100 {
		twoDigits = 10
		exponent++
	}
	first, second := twoDigits/10, twoDigits%10
	multiplierExponent := exponent - 1

	firstName, ok1 := cat.digitName(first)
	secondName, ok2 := cat.digitName(second)
	multiplierName, ok3 := cat.multiplierName(multiplierExponent)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: %g ohms (multiplier 10^%d)", ErrOutOfRange, ohms, multiplierExponent)
	}

	colors := []string{firstName, secondName, multiplierName}
	if band, ok := toleranceBands[normalizeToleranceCode(toleranceCode)]; ok && band != "None" {
		colors = append(colors, band)
	}
	return colors, nil
}

// decimalExponent is floor(log10(v)), corrected for log10 rounding at exact powers of ten
func decimalExponent(v float64) int {
	e := int(math.Floor(math.Log10(v)))
	if math.Pow10(e+1) <= v {
		e++
	}
	if math.Pow10(e) > v {
		e--
	}
	return e
}

// multiplierName maps 10^exp to its band; fractional multipliers are the metals only
func (cat *Catalog) multiplierName(exp int) (string, bool) {
	switch {
	case exp == -1:
		return GoldName, true
	case exp == -2:
		return SilverName, true
	case exp >= 0 && exp <= 9:
		return cat.digitName(exp)
	}
	return "", false
}

func normalizeToleranceCode(code string) string {
	code = strings.TrimSpace(code)
	code = strings.TrimPrefix(code, "±")
	return strings.TrimSuffix(code, "%")
}

// ValidToleranceCode reports whether code (e.g. "5", "±5%") names a known tolerance
func ValidToleranceCode(code string) bool {
	_, ok := toleranceBands[normalizeToleranceCode(code)]
	return ok
}

// ToleranceCodes lists the accepted tolerance codes
func ToleranceCodes() []string {
	return []string{"0.1", "0.25", "0.5", "1", "2", "5", "10", "20"}
}

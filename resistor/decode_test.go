package resistor

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestCalculateResistorValue(t *testing.T) {
	tests := []struct {
		name  string
		bands []string
		want  string
	}{
		{"four band", []string{"Brown", "Black", "Red", "Gold"}, "1kΩ ±5%"},
		{"three band", []string{"Yellow", "Violet", "Orange"}, "47kΩ ±20%"},
		{"three band with tolerance-capable last", []string{"Red", "Red", "Brown"}, "220Ω ±20%"},
		{"five band", []string{"Brown", "Black", "Black", "Brown", "Brown"}, "1kΩ ±1%"},
		{"gold multiplier", []string{"Yellow", "Violet", "Gold", "Silver"}, "4.7Ω ±10%"},
		{"mega", []string{"Brown", "Black", "Green", "Gold"}, "1MΩ ±5%"},
		{"fractional mega", []string{"Brown", "Green", "Green"}, "1.5MΩ ±20%"},
		{"fine tolerance", []string{"Red", "Red", "Red", "Blue"}, "2.2kΩ ±0.25%"},
		{"alias names", []string{"brown", "Black", "Red_Dark", "Gold_Shadow"}, "1kΩ ±5%"},
		{"unknown names dropped", []string{"Brown", "Magenta", "Black", "Red", "Gold"}, "1kΩ ±5%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateResistorValue(tt.bands)
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if got != tt.want {
				t.Errorf("CalculateResistorValue(%v) = %q, want %q", tt.bands, got, tt.want)
			}
		})
	}
}

func TestCalculateResistorValueFailures(t *testing.T) {
	tests := []struct {
		name  string
		bands []string
		want  error
	}{
		{"empty", nil, ErrTooFewBands},
		{"two", []string{"Red", "Red"}, ErrTooFewBands},
		{"unresolvable", []string{"Red", "Magenta", "Teal"}, ErrNotEnoughValidBands},
		{"metal digit", []string{"Gold", "Red", "Red"}, ErrInvalidBandSequence},
		{"body digit", []string{"Red", "Tan (Body)", "Red", "Gold"}, ErrInvalidBandSequence},
		{"body multiplier", []string{"Red", "Red", "Tan (Body)"}, ErrInvalidBandSequence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateResistorValue(tt.bands)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
	if ErrNotEnoughValidBands.Error() != "Not enough valid bands" || ErrInvalidBandSequence.Error() != "Invalid band sequence" {
		t.Errorf("diagnostic text changed")
	}
}

func TestFormatResistance(t *testing.T) {
	tests := []struct {
		ohms float64
		want string
	}{
		{0.47, "0.5Ω"},
		{4.7000000000000002, "4.7Ω"},
		{220, "220Ω"},
		{999, "999Ω"},
		{1000, "1kΩ"},
		{4700, "4.7kΩ"},
		{47000, "47kΩ"},
		{1_000_000, "1MΩ"},
		{2_200_000, "2.2MΩ"},
		{999.96, "1kΩ"},
		{999_990, "1MΩ"},
		{999_999.96, "1MΩ"},
		{999_940, "999.9kΩ"},
		{5e9, "5000MΩ"},
	}
	for _, tt := range tests {
		if got := FormatResistance(tt.ohms); got != tt.want {
			t.Errorf("FormatResistance(%v) = %q, want %q", tt.ohms, got, tt.want)
		}
	}
}

func TestRemoveDominant(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"single repeated", []string{"Tan", "Brown", "Tan", "Black", "Tan", "Red", "Tan"}, []string{"Brown", "Black", "Red"}},
		{"all distinct", []string{"Brown", "Black", "Red", "Gold"}, []string{"Brown", "Black", "Red", "Gold"}},
		{"two repeated", []string{"Red", "Red", "Tan", "Tan", "Gold"}, []string{"Red", "Red", "Tan", "Tan", "Gold"}},
		{"empty", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveDominant(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RemoveDominant(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRemoveDominantIdempotent(t *testing.T) {
	inputs := [][]string{
		{"Tan", "Brown", "Tan", "Black", "Tan", "Red", "Tan", "Gold"},
		{"Blue", "Red", "Blue", "Red", "Blue"},
		{"Brown", "Black", "Red"},
		{"Red", "Red", "Red"},
	}
	for _, in := range inputs {
		once := RemoveDominant(in)
		twice := RemoveDominant(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("RemoveDominant not idempotent on %v: %v then %v", in, once, twice)
		}
	}
}

func TestStripBody(t *testing.T) {
	named := []string{"Tan (Body)", "Red", "Red", "Tan (Body)", "Brown", "Gold"}
	if got := StandardCatalog.StripBody(named); !reflect.DeepEqual(got, []string{"Red", "Red", "Brown", "Gold"}) {
		t.Errorf("StripBody by name = %v", got)
	}
	unnamed := []string{"Blue", "Brown", "Blue", "Black", "Blue", "Red", "Blue", "Gold"}
	if got := StandardCatalog.StripBody(unnamed); !reflect.DeepEqual(got, []string{"Brown", "Black", "Red", "Gold"}) {
		t.Errorf("StripBody by dominance = %v", got)
	}
}

func TestDecodeBands(t *testing.T) {
	stripped, v, err := StandardCatalog.DecodeBands([]string{"Beige (Body)", "Brown", "Black", "Red", "Gold", "Beige (Body)"})
	if err != nil || v == nil || *v != "1kΩ ±5%" {
		t.Errorf("DecodeBands = %v, %v", v, err)
	}
	if want := []string{"Brown", "Black", "Red", "Gold"}; !reflect.DeepEqual(stripped, want) {
		t.Errorf("stripped = %v, want %v", stripped, want)
	}

	stripped, v, err = StandardCatalog.DecodeBands([]string{"Beige (Body)", "Red"})
	if v != nil || !errors.Is(err, ErrTooFewBands) || len(stripped) != 1 {
		t.Errorf("short sequence: %v, %v, %v", stripped, v, err)
	}

	_, v, err = StandardCatalog.DecodeBands([]string{"Gold", "Silver", "Orange", "Red"})
	if v == nil || *v != "Invalid band sequence" || !errors.Is(err, ErrInvalidBandSequence) {
		t.Errorf("invalid sequence: %v, %v", v, err)
	}

	// a repeated digit survives when the body was removed by name
	_, v, err = StandardCatalog.DecodeBands([]string{"Tan (Body)", "Red", "Red", "Brown", "Gold", "Tan (Body)"})
	if err != nil || v == nil || *v != "220Ω ±5%" {
		t.Errorf("repeated digit: %v, %v", v, err)
	}

	stripped, _, _ = StandardCatalog.DecodeBands(nil)
	if stripped == nil {
		t.Errorf("stripped should be empty, not nil")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	values := []float64{0.1, 0.47, 4.7, 10, 47, 220, 330, 1000, 4700, 10_000, 56_000, 100_000, 1_000_000, 2_200_000, 82_000_000}
	for _, ohms := range values {
		for _, code := range ToleranceCodes() {
			colors, err := ResistanceToColors(ohms, code)
			if err != nil {
				t.Fatalf("ResistanceToColors(%v, %q): %v", ohms, code, err)
			}
			gotOhms, gotTol, err := StandardCatalog.Decode(colors)
			if err != nil {
				t.Fatalf("Decode(%v): %v", colors, err)
			}
			if math.Abs(gotOhms-ohms) > ohms*1e-9 {
				t.Errorf("%v ohms / %s%% -> %v -> %v ohms", ohms, code, colors, gotOhms)
			}
			if formatPercent(gotTol) != code {
				t.Errorf("%v ohms / %s%% -> %v -> tolerance %v", ohms, code, colors, gotTol)
			}
			s, _ := CalculateResistorValue(colors)
			if !strings.HasSuffix(s, "±"+code+"%") {
				t.Errorf("formatted %q does not end with ±%s%%", s, code)
			}
		}
	}
}

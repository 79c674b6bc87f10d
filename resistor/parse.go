package resistor

import (
	"fmt"
	"strconv"
	"strings"
)

var metricSuffixes = map[byte]float64{
	'R': 1,
	'r': 1,
	'k': 1e3,
	'K': 1e3,
	'M': 1e6,
	'G': 1e9,
}

// ParseResistance reads human-entered values such as "470", "4.7k", "4k7",
// "1M", "2R2" or "10 kΩ" into ohms
func ParseResistance(s string) (float64, error) {
	in := strings.TrimSpace(s)
	for _, unit := range []string{"ohms", "ohm", "Ω"} {
		in = strings.TrimSuffix(in, unit)
	}
	in = strings.ReplaceAll(in, " ", "")
	if in == "" {
		return 0, fmt.Errorf("empty resistance %q", s)
	}

	multiplier := 1.0
	for i := 0; i < len(in); i++ {
		m, ok := metricSuffixes[in[i]]
		if !ok {
			continue
		}
		multiplier = m
		head, tail := in[:i], in[i+1:]
		if tail != "" {
			if strings.Contains(head, ".") {
				return 0, fmt.Errorf("invalid resistance %q", s)
			}
			if head == "" {
				head = "0"
			}
			in = head + "." + tail
		} else {
			in = head
		}
		break
	}

	v, err := strconv.ParseFloat(in, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid resistance %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative resistance %q", s)
	}
	return v * multiplier, nil
}

// Package units resolves queries such as "5 km", "5 km mi" or "70 f to c"
// into conversions within one category.
package units

import (
	"math"
	"strconv"
	"strings"
)

type Conversion struct {
	SourceValue float64
	Source      *UnitDef
	TargetValue float64
	Target      *UnitDef
}

// Label is the display line for the converted value, e.g. "3.106856 mi".
func (c Conversion) Label() string {
	return FormatNumber(c.TargetValue) + " " + c.Target.Name
}

// SourceLabel is the display line for the input value, e.g. "5 km".
func (c Conversion) SourceLabel() string {
	return FormatNumber(c.SourceValue) + " " + c.Source.Name
}

// Convert parses "<number> <unit>", "<number> <unit> <unit>" or
// "<number> <unit> (to|in) <unit>". Without a target every other unit of the
// source's category is produced, in table order.
func Convert(text string) ([]Conversion, bool) {
	value, src, dst, ok := parseQuery(text)
	if !ok {
		return nil, false
	}

	targets := []*UnitDef{dst}
	if dst == nil {
		targets = InCategory(src.Category)
	}

	base := src.ToBase(value)
	var out []Conversion
	for _, t := range targets {
		if t.Name == src.Name {
			continue
		}
		out = append(out, Conversion{
			SourceValue: value,
			Source:      src,
			TargetValue: t.FromBase(base),
			Target:      t,
		})
	}
	return out, len(out) > 0
}

func parseQuery(text string) (float64, *UnitDef, *UnitDef, bool) {
	num, rest, ok := splitNumber(text)
	if !ok {
		return 0, nil, nil, false
	}
	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, nil, nil, false
	}

	tokens := strings.Fields(strings.ToLower(rest))
	if len(tokens) == 0 {
		return 0, nil, nil, false
	}
	src, ok := Find(tokens[0])
	if !ok {
		return 0, nil, nil, false
	}

	var target string
	switch {
	case len(tokens) == 1:
		return value, src, nil, true
	case len(tokens) == 2:
		target = tokens[1]
	case len(tokens) == 3 && (tokens[1] == "to" || tokens[1] == "in"):
		target = tokens[2]
	default:
		return 0, nil, nil, false
	}

	dst, ok := Find(target)
	if !ok || dst.Category != src.Category {
		return 0, nil, nil, false
	}
	return value, src, dst, true
}

// splitNumber takes an optional sign followed by digits and dots. No
// exponent form here.
func splitNumber(s string) (string, string, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := false
	end := 0
	for ; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			digits = true
		} else if c != '.' {
			break
		}
		end = i + 1
	}
	if !digits {
		return "", "", false
	}
	return s[:end], s[end:], true
}

// FormatNumber renders six decimals with trailing zeros and a bare point
// stripped. Magnitudes under 1e-9 print as "0".
func FormatNumber(v float64) string {
	if math.Abs(v) < 1e-9 {
		v = 0
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

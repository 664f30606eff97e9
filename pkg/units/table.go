package units

type Category int

const (
	Length Category = iota
	Mass
	Volume
	Temperature
)

func (c Category) String() string {
	switch c {
	case Length:
		return "length"
	case Mass:
		return "mass"
	case Volume:
		return "volume"
	case Temperature:
		return "temperature"
	}
	return "unknown"
}

// UnitDef converts linearly to its category's base unit:
// base = (value + Offset) * Scale.
type UnitDef struct {
	Name     string
	Aliases  []string
	Category Category
	Scale    float64
	Offset   float64
}

func (u *UnitDef) ToBase(value float64) float64 {
	return (value + u.Offset) * u.Scale
}

func (u *UnitDef) FromBase(base float64) float64 {
	return base/u.Scale - u.Offset
}

// Bases: metre, gram, litre, degree Celsius.
var table = []UnitDef{
	{"mm", []string{"millimeter", "millimetre", "millimeters", "millimetres"}, Length, 0.001, 0},
	{"cm", []string{"centimeter", "centimetre", "centimeters", "centimetres"}, Length, 0.01, 0},
	{"m", []string{"meter", "metre", "meters", "metres"}, Length, 1, 0},
	{"km", []string{"kilometer", "kilometre", "kilometers", "kilometres"}, Length, 1000, 0},
	{"in", []string{"inch", "inches"}, Length, 0.0254, 0},
	{"ft", []string{"foot", "feet"}, Length, 0.3048, 0},
	{"yd", []string{"yard", "yards"}, Length, 0.9144, 0},
	{"mi", []string{"mile", "miles"}, Length, 1609.344, 0},

	{"mg", []string{"milligram", "milligrams"}, Mass, 0.001, 0},
	{"g", []string{"gram", "grams"}, Mass, 1, 0},
	{"kg", []string{"kilogram", "kilograms"}, Mass, 1000, 0},
	{"oz", []string{"ounce", "ounces"}, Mass, 28.349523125, 0},
	{"lb", []string{"lbs", "pound", "pounds"}, Mass, 453.59237, 0},

	{"ml", []string{"milliliter", "millilitre", "milliliters", "millilitres"}, Volume, 0.001, 0},
	{"l", []string{"liter", "litre", "liters", "litres"}, Volume, 1, 0},
	{"tsp", []string{"teaspoon", "teaspoons"}, Volume, 0.00492892159375, 0},
	{"tbsp", []string{"tablespoon", "tablespoons"}, Volume, 0.01478676478125, 0},
	{"floz", []string{"fl-oz", "fl_oz", "fluidounce", "fluidounces"}, Volume, 0.0295735295625, 0},
	{"cup", []string{"cups"}, Volume, 0.2365882365, 0},
	{"pt", []string{"pint", "pints"}, Volume, 0.473176473, 0},
	{"qt", []string{"quart", "quarts"}, Volume, 0.946352946, 0},
	{"gal", []string{"gallon", "gallons"}, Volume, 3.785411784, 0},

	{"c", []string{"celsius", "centigrade"}, Temperature, 1, 0},
	{"f", []string{"fahrenheit"}, Temperature, 5.0 / 9.0, -32},
	{"k", []string{"kelvin", "kelvins"}, Temperature, 1, -273.15},
}

// Find looks a unit up by canonical name or alias. Matching is
// case-insensitive; callers lowercase first.
func Find(token string) (*UnitDef, bool) {
	if token == "" {
		return nil, false
	}
	for i := range table {
		u := &table[i]
		if u.Name == token {
			return u, true
		}
		for _, a := range u.Aliases {
			if a == token {
				return u, true
			}
		}
	}
	return nil, false
}

// InCategory lists the units of c in table order.
func InCategory(c Category) []*UnitDef {
	var out []*UnitDef
	for i := range table {
		if table[i].Category == c {
			out = append(out, &table[i])
		}
	}
	return out
}

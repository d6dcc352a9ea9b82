package optimization

// standardBounds holds the valid operating ranges used across copper
// and cobalt hydrometallurgical circuits.
var standardBounds = map[string][2]float64{
	"ore_grade":          {0.5, 8.0},  // % metal content
	"leaching_time":      {2, 48},     // hours
	"acid_concentration": {0.1, 5.0},  // mol/L
	"temperature":        {15, 95},    // °C
	"voltage":            {1.0, 4.0},  // V
	"current_density":    {100, 800},  // A/m²
	"pH":                 {0.5, 14.0},
	"pressure":           {0.5, 10.0}, // atm
	"flow_rate":          {1, 200},    // L/min
	"particle_size":      {0.1, 100},  // mm
	"reagent_dosage":     {0.1, 10.0}, // kg/tonne
	"retention_time":     {0.5, 24},   // hours
}

// defaultBound is assigned to parameters whose value gives no hint of
// a sensible range.
var defaultBound = [2]float64{0.1, 10.0}

// ResolveBounds returns a bound for every key in the parameter map.
// Known parameters get their domain range; unknown numeric parameters
// get a range derived from their own value, so the current value
// always lies inside it. It never fails.
func ResolveBounds(params ParameterMap) Bounds {
	bounds := make(Bounds, len(params))
	for name, value := range params {
		if b, ok := standardBounds[name]; ok {
			bounds[name] = b
			continue
		}
		if v, ok := Numeric(value); ok {
			lower := v * 0.5
			if lower < 0.1 {
				lower = 0.1
			}
			bounds[name] = [2]float64{lower, v * 2.0}
			continue
		}
		bounds[name] = defaultBound
	}
	return bounds
}

// clamp restricts v to the inclusive range [lower, upper].
func clamp(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

package optimization

import (
	"testing"
)

func TestResolveBoundsKnownParameters(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		lower float64
		upper float64
	}{
		{"temperature", 65, 15, 95},
		{"voltage", 2.2, 1.0, 4.0},
		{"pH", 7, 0.5, 14.0},
		{"acid_concentration", 1.5, 0.1, 5.0},
		{"current_density", 300, 100, 800},
		{"ore_grade", 2.5, 0.5, 8.0},
		{"leaching_time", 8, 2, 48},
		{"pressure", 2, 0.5, 10.0},
		{"flow_rate", 40, 1, 200},
		{"particle_size", 10, 0.1, 100},
		{"reagent_dosage", 2, 0.1, 10.0},
		{"retention_time", 8, 0.5, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bounds := ResolveBounds(ParameterMap{tt.name: tt.value})
			got, ok := bounds[tt.name]
			if !ok {
				t.Fatalf("no bound resolved for %s", tt.name)
			}
			if got[0] != tt.lower || got[1] != tt.upper {
				t.Errorf("bounds for %s: got [%v, %v], want [%v, %v]",
					tt.name, got[0], got[1], tt.lower, tt.upper)
			}
		})
	}
}

func TestResolveBoundsUnknownNumeric(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		lower float64
		upper float64
	}{
		{"agitation_speed", 120.0, 60.0, 240.0},
		{"small value floors at 0.1", 0.05, 0.1, 0.1},
		{"unit value", 1.0, 0.5, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bounds := ResolveBounds(ParameterMap{"custom": tt.value})
			got := bounds["custom"]
			if got[0] != tt.lower || got[1] != tt.upper {
				t.Errorf("got [%v, %v], want [%v, %v]", got[0], got[1], tt.lower, tt.upper)
			}
			if got[0] > got[1] {
				t.Errorf("inverted bound: [%v, %v]", got[0], got[1])
			}
		})
	}
}

func TestResolveBoundsUnknownNonNumeric(t *testing.T) {
	bounds := ResolveBounds(ParameterMap{"circuit": "heap_leach"})
	if got := bounds["circuit"]; got != defaultBound {
		t.Errorf("non-numeric parameter: got %v, want %v", got, defaultBound)
	}
}

func TestResolveBoundsCoversEveryKey(t *testing.T) {
	params := ParameterMap{
		"temperature": 65.0,
		"mystery":     3.3,
		"label":       "oxide",
	}
	bounds := ResolveBounds(params)
	for name := range params {
		if _, ok := bounds[name]; !ok {
			t.Errorf("missing bound for %s", name)
		}
	}
	// The current value of an unknown numeric parameter always lies
	// inside its own derived bound.
	if !bounds.Contains("mystery", 3.3) {
		t.Error("derived bound excludes the current value")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lower, upper, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lower, tt.upper); got != tt.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lower, tt.upper, got, tt.want)
		}
	}
}

package optimization

import (
	"testing"
)

// testParams returns the reference leach/electrowinning operating
// point used across the package tests.
func testParams() ParameterMap {
	return ParameterMap{
		"temperature":        65.0,
		"acid_concentration": 1.5,
		"leaching_time":      8.0,
		"voltage":            2.2,
		"ore_grade":          2.5,
	}
}

// assertWithinBounds fails when any numeric parameter lies outside its
// resolved bound.
func assertWithinBounds(t *testing.T, params ParameterMap, bounds Bounds) {
	t.Helper()

	for name, value := range params {
		v, ok := Numeric(value)
		if !ok {
			continue
		}
		bound, ok := bounds[name]
		if !ok {
			continue
		}
		if v < bound[0] || v > bound[1] {
			t.Fatalf("parameter %s = %v outside bounds [%v, %v]", name, v, bound[0], bound[1])
		}
	}
}

// numericParam extracts a numeric parameter value or fails the test.
func numericParam(t *testing.T, params ParameterMap, name string) float64 {
	t.Helper()

	v, ok := Numeric(params[name])
	if !ok {
		t.Fatalf("parameter %s is not numeric: %v", name, params[name])
	}
	return v
}

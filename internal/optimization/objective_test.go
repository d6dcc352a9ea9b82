package optimization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateReferenceOperatingPoint(t *testing.T) {
	params := testParams()

	tests := []struct {
		name      string
		objective Objective
		want      float64
	}{
		// recovery = 0.75 * (40/60) * (1.5/2) * sqrt(8/8) * (2.5/3)
		// energy   = 1 - 0.2 - 0.4 - 0.1
		{"efficiency", MaximizeEfficiency, 0.3125 * 0.3},
		// reagent 160 + energy (264 + 256) + time 192
		{"cost", MinimizeCost, 872},
		// 0.90 * (2.2/2.5) * (1 - 100/800) * (1 - 5/60)
		{"purity", MaximizePurity, 0.9 * 0.88 * 0.875 * (1 - 5.0/60)},
		{"time", MinimizeTime, 8},
		// composite: recovery * 1/(160/100)
		{"composite fallback", Composite, 0.3125 / 1.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(params, tt.objective)
			assert.InDelta(t, tt.want, got, 1e-9)
			// Deterministic: repeated evaluation is identical.
			assert.Equal(t, got, Evaluate(params, tt.objective))
		})
	}
}

func TestEvaluateEmptyParameterMap(t *testing.T) {
	// Every sub-estimator must fall back to its industry default and
	// yield a finite baseline.
	for _, objective := range []Objective{
		MaximizeEfficiency, MinimizeCost, MaximizePurity, MinimizeTime, Composite,
	} {
		got := Evaluate(ParameterMap{}, objective)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("objective %s: non-finite value %v for empty map", objective, got)
		}
		if got <= 0 {
			t.Errorf("objective %s: non-positive baseline %v for empty map", objective, got)
		}
	}
}

func TestEstimateRecoveryCap(t *testing.T) {
	params := ParameterMap{
		"temperature":        95.0,
		"acid_concentration": 5.0,
		"leaching_time":      48.0,
		"ore_grade":          8.0,
	}
	got := estimateRecovery(params)
	assert.Equal(t, 0.98, got, "recovery should cap at 98%%")
}

func TestEstimatePurity(t *testing.T) {
	t.Run("cap", func(t *testing.T) {
		params := ParameterMap{
			"voltage":         4.0,
			"current_density": 400.0,
			"temperature":     60.0,
		}
		// 0.90 * 1.1 * 1.0 * 1.0 = 0.99, below the cap
		assert.InDelta(t, 0.99, estimatePurity(params), 1e-9)
	})

	t.Run("factor floors", func(t *testing.T) {
		params := ParameterMap{
			"voltage":         2.5,
			"current_density": 800.0, // far from the 400 optimum
			"temperature":     15.0,  // far from the 60 optimum
		}
		assert.InDelta(t, 0.9*1.0*0.8*0.8, estimatePurity(params), 1e-9)
	})
}

func TestEstimateEnergyEfficiencyFloor(t *testing.T) {
	params := ParameterMap{
		"voltage":       4.0,
		"temperature":   95.0,
		"leaching_time": 48.0,
	}
	assert.Equal(t, 0.3, estimateEnergyEfficiency(params))
}

func TestEstimateProcessingTimeKinetics(t *testing.T) {
	tests := []struct {
		name   string
		params ParameterMap
		want   float64
	}{
		{
			name:   "nominal conditions",
			params: ParameterMap{"leaching_time": 10.0, "temperature": 65.0, "acid_concentration": 1.5},
			want:   10,
		},
		{
			name:   "cold leach slows kinetics",
			params: ParameterMap{"leaching_time": 10.0, "temperature": 40.0, "acid_concentration": 1.5},
			want:   15,
		},
		{
			name:   "dilute acid slows dissolution",
			params: ParameterMap{"leaching_time": 10.0, "temperature": 65.0, "acid_concentration": 0.5},
			want:   13,
		},
		{
			name:   "both penalties compound",
			params: ParameterMap{"leaching_time": 10.0, "temperature": 40.0, "acid_concentration": 0.5},
			want:   19.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, estimateProcessingTime(tt.params), 1e-9)
		})
	}
}

func TestEstimateTimeCostRetentionDefaultsToLeach(t *testing.T) {
	withRetention := estimateTimeCost(ParameterMap{"leaching_time": 8.0, "retention_time": 4.0})
	assert.InDelta(t, 144, withRetention, 1e-9)

	withoutRetention := estimateTimeCost(ParameterMap{"leaching_time": 8.0})
	assert.InDelta(t, 192, withoutRetention, 1e-9)
}

func TestEvaluateUnknownObjectiveUsesComposite(t *testing.T) {
	params := testParams()
	assert.Equal(t, Evaluate(params, Composite), Evaluate(params, Objective("maximize_throughput")))
}

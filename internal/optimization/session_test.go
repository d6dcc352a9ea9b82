package optimization

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warpmining/procopt/internal/logging"
)

func testSession(opts Options) *Session {
	logger := logging.New(logging.ErrorLevel, io.Discard)
	return NewSession(opts, NewRingHistory(16), logger)
}

func TestSessionOptimizeEfficiencyScenario(t *testing.T) {
	session := testSession(Options{MaxIterations: 100, RandomSeed: 42})

	result, err := session.Optimize(testParams(), "maximize_efficiency")
	require.NoError(t, err)

	assert.Equal(t, MaximizeEfficiency, result.Objective)
	assert.Equal(t, ParticleSwarm, result.Algorithm)

	temp := numericParam(t, result.OptimizedParameters, "temperature")
	assert.GreaterOrEqual(t, temp, 15.0)
	assert.LessOrEqual(t, temp, 95.0)

	assert.GreaterOrEqual(t, result.Score, 70.0)
	assert.LessOrEqual(t, result.Score, 100.0)
	assert.NotEmpty(t, result.Recommendations)

	assert.Equal(t, testParams(), result.OriginalParameters)
	assertWithinBounds(t, result.OptimizedParameters, ResolveBounds(testParams()))
}

func TestSessionOptimizeAcidClampScenario(t *testing.T) {
	session := testSession(Options{MaxIterations: 100, RandomSeed: 42})

	result, err := session.Optimize(ParameterMap{"acid_concentration": 6.0}, "minimize_cost")
	require.NoError(t, err)

	assert.Equal(t, SimulatedAnnealing, result.Algorithm)

	acid := numericParam(t, result.OptimizedParameters, "acid_concentration")
	assert.LessOrEqual(t, acid, 5.0, "acid concentration must clamp to its domain bound")

	var foundDecrease bool
	for _, rec := range result.Recommendations {
		if strings.HasPrefix(rec, "Decrease Acid Concentration") {
			foundDecrease = true
		}
	}
	assert.True(t, foundDecrease, "expected a decrease suggestion for acid_concentration, got %v", result.Recommendations)
}

func TestSessionOptimizeUnknownObjectiveDegrades(t *testing.T) {
	session := testSession(Options{MaxIterations: 50, RandomSeed: 1})

	result, err := session.Optimize(testParams(), "maximize_throughput")
	require.NoError(t, err, "unknown objective must never abort the call")
	assert.Equal(t, Composite, result.Objective)
}

func TestSessionOptimizeDeterministicUnderFixedSeed(t *testing.T) {
	session := testSession(Options{MaxIterations: 100, RandomSeed: 1234})

	first, err := session.Optimize(testParams(), "maximize_purity")
	require.NoError(t, err)
	second, err := session.Optimize(testParams(), "maximize_purity")
	require.NoError(t, err)

	assert.Equal(t, first.OptimizedParameters, second.OptimizedParameters)
	assert.Equal(t, first.ImprovementPct, second.ImprovementPct)
	assert.Equal(t, first.Iterations, second.Iterations)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Recommendations, second.Recommendations)
}

func TestSessionOptimizeZeroIterations(t *testing.T) {
	session := testSession(Options{MaxIterations: 0, RandomSeed: 1})

	result, err := session.Optimize(testParams(), "maximize_efficiency")
	require.NoError(t, err)

	assert.Equal(t, testParams(), result.OptimizedParameters)
	assert.Equal(t, 0, result.Iterations)
	assert.Equal(t, 0.0, result.ImprovementPct)
}

func TestSessionOptimizeInvalidBaseline(t *testing.T) {
	session := testSession(Options{MaxIterations: 100, RandomSeed: 1})

	_, err := session.Optimize(ParameterMap{"temperature": 20.0}, "maximize_efficiency")
	require.Error(t, err)

	var baseline *InvalidBaselineError
	require.True(t, errors.As(err, &baseline))

	// A failed call never corrupts history.
	assert.Empty(t, session.History())
}

func TestSessionOptimizeNonNumericParameterCarriedThrough(t *testing.T) {
	session := testSession(Options{MaxIterations: 100, RandomSeed: 8})

	params := testParams()
	params["circuit"] = "heap_leach"

	result, err := session.Optimize(params, "maximize_efficiency")
	require.NoError(t, err)
	assert.Equal(t, "heap_leach", result.OptimizedParameters["circuit"])
}

func TestSessionHistoryAccumulates(t *testing.T) {
	session := testSession(Options{MaxIterations: 10, RandomSeed: 2})

	_, err := session.Optimize(testParams(), "maximize_efficiency")
	require.NoError(t, err)
	_, err = session.Optimize(testParams(), "minimize_cost")
	require.NoError(t, err)

	history := session.History()
	require.Len(t, history, 2)
	assert.Equal(t, MaximizeEfficiency, history[0].Objective)
	assert.Equal(t, MinimizeCost, history[1].Objective)
}

func TestSessionMultiObjectiveScenario(t *testing.T) {
	session := testSession(Options{MaxIterations: 100, RandomSeed: 42})

	params := ParameterMap{"voltage": 2.2, "temperature": 65.0}
	result, err := session.MultiObjectiveOptimize(params, []string{"maximize_purity", "minimize_cost"}, nil)
	require.NoError(t, err)

	assert.Equal(t, GeneticAlgorithm, result.Algorithm)
	require.Len(t, result.ParetoSolutions, 5)

	// Normalized equal weights from the nil vector.
	require.Len(t, result.Weights, 2)
	assert.InDelta(t, 0.5, result.Weights[0], 1e-9)
	assert.InDelta(t, 0.5, result.Weights[1], 1e-9)

	bounds := ResolveBounds(params)
	for i, solution := range result.ParetoSolutions {
		sum := 0.0
		for _, w := range solution.Weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "solution %d weights must sum to 1", i)

		require.Len(t, solution.Objectives, 2)
		for obj, value := range solution.Objectives {
			assert.False(t, math.IsNaN(value), "objective %s", obj)
		}
		assertWithinBounds(t, solution.Parameters, bounds)
	}

	// Best compromise is always the first generated solution.
	assert.Equal(t, &result.ParetoSolutions[0], result.BestCompromise)
	assert.Equal(t, result.ParetoSolutions[0].Parameters, result.OptimizedParameters)
	assert.NotEmpty(t, result.Recommendations)

	// The run is recorded in the shared history.
	history := session.History()
	require.Len(t, history, 1)
	assert.Equal(t, MultiObjective, history[0].Objective)
}

func TestSessionMultiObjectiveExplicitWeights(t *testing.T) {
	session := testSession(Options{MaxIterations: 100, RandomSeed: 42})

	params := testParams()
	result, err := session.MultiObjectiveOptimize(params, []string{"maximize_efficiency", "minimize_cost"}, []float64{3, 1})
	require.NoError(t, err)

	assert.InDelta(t, 0.75, result.Weights[0], 1e-9)
	assert.InDelta(t, 0.25, result.Weights[1], 1e-9)
}

func TestSessionMultiObjectiveValidation(t *testing.T) {
	session := testSession(Options{MaxIterations: 100, RandomSeed: 42})
	params := testParams()

	t.Run("no objectives", func(t *testing.T) {
		_, err := session.MultiObjectiveOptimize(params, nil, nil)
		require.Error(t, err)
	})

	t.Run("weight count mismatch", func(t *testing.T) {
		_, err := session.MultiObjectiveOptimize(params, []string{"minimize_cost"}, []float64{0.5, 0.5})
		require.Error(t, err)
	})

	t.Run("non-positive weights", func(t *testing.T) {
		_, err := session.MultiObjectiveOptimize(params, []string{"minimize_cost", "maximize_purity"}, []float64{0, 0})
		require.Error(t, err)
	})

	assert.Empty(t, session.History(), "failed calls must not touch history")
}

func TestSessionMultiObjectiveDoesNotMutateWeights(t *testing.T) {
	session := testSession(Options{MaxIterations: 100, RandomSeed: 42})

	weights := []float64{3, 1}
	_, err := session.MultiObjectiveOptimize(testParams(), []string{"maximize_efficiency", "minimize_cost"}, weights)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1}, weights)
}

func TestSessionDefaults(t *testing.T) {
	session := NewSession(Options{MaxIterations: -5}, nil, nil)
	assert.Equal(t, 0, session.opts.MaxIterations)
	assert.Equal(t, DefaultParetoSolutions, session.opts.ParetoSolutions)
	assert.NotNil(t, session.history)
	assert.NotNil(t, session.logger)
}

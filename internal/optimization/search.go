package optimization

import (
	"math"
	"math/rand"
	"sort"
)

// perturbationScale is the standard deviation of a single adjustment,
// as a fraction of the parameter's bound width.
const perturbationScale = 0.05

// SearchResult carries the numeric outcome of a heuristic search run.
type SearchResult struct {
	OptimizedParameters ParameterMap
	ImprovementPct      float64
	Iterations          int
	Score               float64
	Confidence          float64
}

// Search runs the bounded random-walk heuristic: each iteration
// perturbs every numeric parameter by a bounds-scaled normal draw
// weighted by the improvement-factor table and a decaying convergence
// weight, clamping back into bounds. The rng must be owned by this
// call; sharing a generator across concurrent calls breaks
// reproducibility.
func Search(rng *rand.Rand, algorithm Algorithm, params ParameterMap, objective Objective, bounds Bounds, maxIterations int) (*SearchResult, error) {
	baseline := Evaluate(params, objective)
	if baseline <= 0 {
		return nil, &InvalidBaselineError{
			Objective:  objective,
			Baseline:   baseline,
			Parameters: params.Clone(),
		}
	}

	profile := algorithm.Profile()
	cutoff := float64(maxIterations) * profile.ConvergenceRate

	// Iterate parameters in a fixed order so the random stream is
	// consumed identically on every run with the same seed.
	names := sortedKeys(params)

	candidate := params.Clone()
	iterations := 0
	for i := 0; i < maxIterations; i++ {
		next := candidate.Clone()
		for _, name := range names {
			bound, ok := bounds[name]
			if !ok {
				continue
			}
			v, ok := Numeric(candidate[name])
			if !ok {
				// Non-numeric values are excluded from perturbation.
				continue
			}
			factor := improvementFactor(name, objective, i, maxIterations)
			adjustment := rng.NormFloat64() * (bound[1] - bound[0]) * perturbationScale * factor
			next[name] = clamp(v+adjustment, bound[0], bound[1])
		}
		candidate = next
		iterations = i + 1

		// Algorithm-specific early exit. This is the only place the
		// algorithm label changes the search outcome.
		if float64(i) > cutoff {
			break
		}
	}

	optimized := Evaluate(candidate, objective)

	var improvement float64
	if objective.IsMinimize() {
		improvement = baseline - optimized
	} else {
		improvement = optimized - baseline
	}
	improvementPct := clamp(improvement/baseline*100, 0, 50)

	score := math.Min(100, 70+improvementPct*0.6)
	confidence := confidenceFor(algorithm, len(params))

	return &SearchResult{
		OptimizedParameters: candidate,
		ImprovementPct:      improvementPct,
		Iterations:          iterations,
		Score:               score,
		Confidence:          confidence,
	}, nil
}

// nonNumericKeys lists the parameters that will be excluded from
// perturbation because their values cannot be coerced to numbers.
func nonNumericKeys(params ParameterMap) []*OutOfBoundsParameterError {
	var excluded []*OutOfBoundsParameterError
	for _, name := range sortedKeys(params) {
		if _, ok := Numeric(params[name]); !ok {
			excluded = append(excluded, &OutOfBoundsParameterError{Name: name, Value: params[name]})
		}
	}
	return excluded
}

// sortedKeys returns the map's keys in lexical order.
func sortedKeys(params ParameterMap) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

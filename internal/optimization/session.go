package optimization

import (
	"math"
	"math/rand"
	"os"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/warpmining/procopt/internal/logging"
)

// Default session tuning. MaxIterations matches the plant-trial run
// length used across the processing circuits.
const (
	DefaultMaxIterations   = 100
	DefaultParetoSolutions = 5
)

// multiWeightScale is the standard deviation of a single multi-
// objective adjustment, as a fraction of the bound width.
const multiWeightScale = 0.1

// Options configures a Session.
type Options struct {
	// MaxIterations bounds every search run. Zero is honored as "no
	// perturbation"; negative values are coerced to zero.
	MaxIterations int

	// ParetoSolutions is the number of candidates generated per
	// multi-objective run. Values below 1 use the default of 5.
	ParetoSolutions int

	// RandomSeed seeds a fresh generator per call so identical calls
	// reproduce bit-identical numeric results. Zero seeds from the
	// wall clock.
	RandomSeed int64
}

// Session orchestrates bounds resolution, the heuristic search and
// recommendation generation for single and multi-objective runs, and
// records every run in its history store. Each call owns its random
// generator, so a Session may be shared across goroutines as long as
// the injected HistoryStore is concurrency-safe (RingHistory is).
type Session struct {
	opts    Options
	history HistoryStore
	logger  *logging.Logger
}

// NewSession creates a session with the given options, history store
// and logger. A nil store gets a bounded ring; a nil logger falls back
// to stderr.
func NewSession(opts Options, history HistoryStore, logger *logging.Logger) *Session {
	if opts.MaxIterations < 0 {
		opts.MaxIterations = 0
	}
	if opts.ParetoSolutions < 1 {
		opts.ParetoSolutions = DefaultParetoSolutions
	}
	if history == nil {
		history = NewRingHistory(256)
	}
	if logger == nil {
		logger = logging.New(logging.InfoLevel, os.Stderr)
	}
	return &Session{
		opts:    opts,
		history: history,
		logger:  logger,
	}
}

// rng returns a generator owned by a single call.
func (s *Session) rng() *rand.Rand {
	seed := s.opts.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Optimize runs a single-objective optimization. An unrecognized
// objective string never aborts the call: it degrades to the composite
// objective. The returned result has already been appended to history.
func (s *Session) Optimize(params ParameterMap, objective string) (*OptimizationResult, error) {
	obj, err := ParseObjective(objective)
	if err != nil {
		s.logger.Warn("Unknown objective, using composite default", map[string]interface{}{
			"objective": objective,
		})
	}

	for _, excluded := range nonNumericKeys(params) {
		s.logger.Warn("Parameter excluded from perturbation", map[string]interface{}{
			"parameter": excluded.Name,
			"error":     excluded.Error(),
		})
	}

	algorithm := SelectAlgorithm(obj, len(params))
	bounds := ResolveBounds(params)

	search, err := Search(s.rng(), algorithm, params, obj, bounds, s.opts.MaxIterations)
	if err != nil {
		return nil, WrapError(err, "search failed").
			WithComponent("session").
			WithOperation("optimize")
	}

	result := &OptimizationResult{
		Timestamp:           time.Now(),
		Algorithm:           algorithm,
		Objective:           obj,
		OriginalParameters:  params.Clone(),
		OptimizedParameters: search.OptimizedParameters,
		ImprovementPct:      search.ImprovementPct,
		Iterations:          search.Iterations,
		Score:               search.Score,
		Confidence:          search.Confidence,
		Recommendations:     Recommendations(params, search.OptimizedParameters, obj, search.ImprovementPct),
	}
	s.history.Append(result)

	s.logger.Info("Optimization completed", map[string]interface{}{
		"algorithm":   string(algorithm),
		"objective":   string(obj),
		"iterations":  result.Iterations,
		"improvement": result.ImprovementPct,
	})

	return result, nil
}

// MultiObjectiveOptimize runs a weighted multi-objective optimization.
// A nil weight vector means equal weights; otherwise one weight per
// objective is required. The best compromise is always the first
// generated solution.
func (s *Session) MultiObjectiveOptimize(params ParameterMap, objectives []string, weights []float64) (*MultiObjectiveResult, error) {
	if len(objectives) == 0 {
		return nil, NewError("at least one objective is required").
			WithComponent("session").
			WithOperation("multi_objective")
	}

	objs := make([]Objective, len(objectives))
	for i, name := range objectives {
		obj, err := ParseObjective(name)
		if err != nil {
			s.logger.Warn("Unknown objective, using composite default", map[string]interface{}{
				"objective": name,
			})
		}
		objs[i] = obj
	}

	if weights == nil {
		weights = make([]float64, len(objs))
		for i := range weights {
			weights[i] = 1.0 / float64(len(objs))
		}
	} else if len(weights) != len(objs) {
		return nil, NewError("weight count does not match objective count").
			WithComponent("session").
			WithOperation("multi_objective")
	} else {
		weights = append([]float64(nil), weights...)
	}

	sum := floats.Sum(weights)
	if sum <= 0 {
		return nil, NewError("weights must sum to a positive value").
			WithComponent("session").
			WithOperation("multi_objective")
	}
	floats.Scale(1/sum, weights)

	rng := s.rng()
	bounds := ResolveBounds(params)
	names := sortedKeys(params)

	solutions := make([]ParetoSolution, 0, s.opts.ParetoSolutions)
	for i := 0; i < s.opts.ParetoSolutions; i++ {
		solutions = append(solutions, s.paretoSolution(rng, params, objs, weights, bounds, names))
	}
	best := &solutions[0]

	recommendations := MultiObjectiveRecommendations(params, best)

	result := &MultiObjectiveResult{
		Timestamp:           time.Now(),
		Algorithm:           GeneticAlgorithm,
		Objectives:          objs,
		Weights:             weights,
		OriginalParameters:  params.Clone(),
		ParetoSolutions:     solutions,
		BestCompromise:      best,
		OptimizedParameters: best.Parameters,
		Recommendations:     recommendations,
	}

	// The best compromise is recorded alongside single-objective runs
	// so one store serves both entry points.
	s.history.Append(&OptimizationResult{
		Timestamp:           result.Timestamp,
		Algorithm:           GeneticAlgorithm,
		Objective:           MultiObjective,
		OriginalParameters:  result.OriginalParameters,
		OptimizedParameters: best.Parameters,
		Confidence:          confidenceFor(GeneticAlgorithm, len(params)),
		Recommendations:     recommendations,
	})

	s.logger.Info("Multi-objective optimization completed", map[string]interface{}{
		"objectives": objectives,
		"solutions":  len(solutions),
	})

	return result, nil
}

// paretoSolution perturbs the parameter map under a jittered copy of
// the weight vector and evaluates every objective at the result.
func (s *Session) paretoSolution(rng *rand.Rand, params ParameterMap, objs []Objective, weights []float64, bounds Bounds, names []string) ParetoSolution {
	varied := make([]float64, len(weights))
	for i, w := range weights {
		varied[i] = math.Max(0, w+rng.NormFloat64()*0.1)
	}
	if sum := floats.Sum(varied); sum > 0 {
		floats.Scale(1/sum, varied)
	}

	solution := params.Clone()
	for _, name := range names {
		bound, ok := bounds[name]
		if !ok {
			continue
		}
		v, ok := Numeric(solution[name])
		if !ok {
			continue
		}

		// Weighted pull across objectives, at the half-decayed
		// convergence weight.
		total := 0.0
		for i, obj := range objs {
			total += improvementFactor(name, obj, 50, 100) * varied[i]
		}

		adjustment := rng.NormFloat64() * (bound[1] - bound[0]) * multiWeightScale * total
		solution[name] = clamp(v+adjustment, bound[0], bound[1])
	}

	values := make(map[Objective]float64, len(objs))
	for _, obj := range objs {
		values[obj] = Evaluate(solution, obj)
	}

	return ParetoSolution{
		Parameters: solution,
		Objectives: values,
		Weights:    varied,
	}
}

// History returns a read-only snapshot of the recorded runs.
func (s *Session) History() []*OptimizationResult {
	return s.history.Snapshot()
}

// confidenceFor applies the standard confidence formula: the
// algorithm's convergence rate less a complexity penalty, floored at
// one half.
func confidenceFor(algorithm Algorithm, paramCount int) float64 {
	penalty := math.Min(0.2, float64(paramCount)*0.02)
	return math.Max(0.5, algorithm.Profile().ConvergenceRate-penalty)
}

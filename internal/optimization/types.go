package optimization

import (
	"time"
)

// Objective identifies the quantity being maximized or minimized.
type Objective string

const (
	// MaximizeEfficiency optimizes recovery weighted by energy efficiency.
	MaximizeEfficiency Objective = "maximize_efficiency"
	// MinimizeCost optimizes the sum of reagent, energy and time costs.
	MinimizeCost Objective = "minimize_cost"
	// MaximizePurity optimizes product purity.
	MaximizePurity Objective = "maximize_purity"
	// MinimizeTime optimizes total processing time.
	MinimizeTime Objective = "minimize_time"
	// MultiObjective is the composite mode used for weighted Pareto runs.
	MultiObjective Objective = "multi_objective"
	// Composite is the fallback objective applied when the caller's
	// objective string matches none of the known categories.
	Composite Objective = "composite_default"
)

// knownObjectives is the set accepted by ParseObjective.
var knownObjectives = map[string]Objective{
	string(MaximizeEfficiency): MaximizeEfficiency,
	string(MinimizeCost):       MinimizeCost,
	string(MaximizePurity):     MaximizePurity,
	string(MinimizeTime):       MinimizeTime,
	string(MultiObjective):     MultiObjective,
}

// ParseObjective maps an objective string to its tagged variant.
// Unknown strings return Composite together with an
// *InvalidObjectiveError; callers decide whether to degrade or abort.
func ParseObjective(s string) (Objective, error) {
	if obj, ok := knownObjectives[s]; ok {
		return obj, nil
	}
	return Composite, &InvalidObjectiveError{Objective: s}
}

// IsMinimize reports whether improvement means a decrease in the
// objective value.
func (o Objective) IsMinimize() bool {
	return o == MinimizeCost || o == MinimizeTime
}

// Algorithm is a label for the search strategy. The labels are
// cosmetic: all of them run the same bounded random perturbation, and
// only the profile's ConvergenceRate changes the numeric outcome (the
// early-exit cutoff and the confidence base).
type Algorithm string

const (
	GeneticAlgorithm      Algorithm = "genetic_algorithm"
	ParticleSwarm         Algorithm = "particle_swarm"
	SimulatedAnnealing    Algorithm = "simulated_annealing"
	DifferentialEvolution Algorithm = "differential_evolution"
)

// AlgorithmProfile carries the static descriptive metadata attached to
// an algorithm label.
type AlgorithmProfile struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	BestFor            []string `json:"best_for"`
	ConvergenceRate    float64  `json:"convergence_rate"`
	ExplorationAbility float64  `json:"exploration_ability"`
}

var algorithmProfiles = map[Algorithm]AlgorithmProfile{
	GeneticAlgorithm: {
		Name:               "Genetic Algorithm (GA)",
		Description:        "Population-based evolutionary optimization",
		BestFor:            []string{"multi-objective", "discrete_variables"},
		ConvergenceRate:    0.85,
		ExplorationAbility: 0.9,
	},
	ParticleSwarm: {
		Name:               "Particle Swarm Optimization (PSO)",
		Description:        "Swarm intelligence optimization",
		BestFor:            []string{"continuous_variables", "fast_convergence"},
		ConvergenceRate:    0.92,
		ExplorationAbility: 0.8,
	},
	SimulatedAnnealing: {
		Name:               "Simulated Annealing (SA)",
		Description:        "Temperature-based stochastic optimization",
		BestFor:            []string{"local_optima_avoidance", "single_objective"},
		ConvergenceRate:    0.88,
		ExplorationAbility: 0.85,
	},
	DifferentialEvolution: {
		Name:               "Differential Evolution (DE)",
		Description:        "Vector-based evolutionary algorithm",
		BestFor:            []string{"robust_optimization", "noisy_functions"},
		ConvergenceRate:    0.90,
		ExplorationAbility: 0.87,
	},
}

// Profile returns the static metadata for the algorithm label.
func (a Algorithm) Profile() AlgorithmProfile {
	return algorithmProfiles[a]
}

// AlgorithmProfiles returns the full label-to-profile table.
func AlgorithmProfiles() map[Algorithm]AlgorithmProfile {
	profiles := make(map[Algorithm]AlgorithmProfile, len(algorithmProfiles))
	for k, v := range algorithmProfiles {
		profiles[k] = v
	}
	return profiles
}

// objectiveAlgorithms is the explicit objective-to-algorithm selection
// table. Objectives absent from the table fall through to the
// parameter-count rule in SelectAlgorithm.
var objectiveAlgorithms = map[Objective]Algorithm{
	MultiObjective: GeneticAlgorithm,
	MinimizeCost:   SimulatedAnnealing,
	MinimizeTime:   ParticleSwarm,
}

// SelectAlgorithm picks the algorithm label for an objective and
// problem size. High-dimensional problems without a table entry get
// differential evolution; everything else defaults to particle swarm.
func SelectAlgorithm(objective Objective, paramCount int) Algorithm {
	if algo, ok := objectiveAlgorithms[objective]; ok {
		return algo
	}
	if paramCount > 6 {
		return DifferentialEvolution
	}
	return ParticleSwarm
}

// ParameterMap holds named process inputs. Numeric values participate
// in the search; non-numeric values are carried through untouched and
// never perturbed.
type ParameterMap map[string]any

// Clone returns a shallow copy. Search iterations operate on copies so
// the caller's map is never mutated.
func (p ParameterMap) Clone() ParameterMap {
	out := make(ParameterMap, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Numeric coerces a parameter value to float64. It accepts the numeric
// types that survive JSON decoding and config plumbing.
func Numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// numericOr returns the parameter's numeric value, or def when the key
// is absent or not numeric. Every estimator falls back to an industry
// default instead of failing.
func (p ParameterMap) numericOr(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		if f, ok := Numeric(v); ok {
			return f
		}
	}
	return def
}

// Bounds maps each parameter name to its inclusive [lower, upper]
// range. Invariant: lower <= upper.
type Bounds map[string][2]float64

// Contains reports whether v lies inside the bound for name. Unknown
// names are treated as unbounded.
func (b Bounds) Contains(name string, v float64) bool {
	bound, ok := b[name]
	if !ok {
		return true
	}
	return v >= bound[0] && v <= bound[1]
}

// OptimizationResult is the immutable record produced by a single
// optimize call.
type OptimizationResult struct {
	Timestamp           time.Time    `json:"timestamp"`
	Algorithm           Algorithm    `json:"algorithm"`
	Objective           Objective    `json:"objective"`
	OriginalParameters  ParameterMap `json:"original_parameters"`
	OptimizedParameters ParameterMap `json:"optimized_parameters"`
	ImprovementPct      float64      `json:"improvement_pct"`
	Iterations          int          `json:"convergence_iterations"`
	Score               float64      `json:"optimization_score"`
	Confidence          float64      `json:"confidence_level"`
	Recommendations     []string     `json:"recommendations"`
}

// ParetoSolution is one candidate parameter set produced under a
// perturbed weighting of multiple objectives.
type ParetoSolution struct {
	Parameters ParameterMap          `json:"parameters"`
	Objectives map[Objective]float64 `json:"objectives"`
	Weights    []float64             `json:"weights"`
}

// MultiObjectiveResult is the record produced by a weighted
// multi-objective run.
type MultiObjectiveResult struct {
	Timestamp           time.Time        `json:"timestamp"`
	Algorithm           Algorithm        `json:"algorithm"`
	Objectives          []Objective      `json:"objectives"`
	Weights             []float64        `json:"weights"`
	OriginalParameters  ParameterMap     `json:"original_parameters"`
	ParetoSolutions     []ParetoSolution `json:"pareto_solutions"`
	BestCompromise      *ParetoSolution  `json:"best_compromise"`
	OptimizedParameters ParameterMap     `json:"optimized_parameters"`
	Recommendations     []string         `json:"recommendations"`
}

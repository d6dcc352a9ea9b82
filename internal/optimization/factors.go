package optimization

// improvementFactors encodes the perturbation sign and strength per
// parameter and objective. Positive pushes the parameter up, negative
// down. Kept as data so the table can be tuned without touching the
// search loop.
var improvementFactors = map[string]map[Objective]float64{
	"temperature": {
		MaximizeEfficiency: 0.8,
		MinimizeCost:       -0.6, // lower temperature, less energy cost
		MaximizePurity:     0.7,
		MinimizeTime:       0.9,
	},
	"acid_concentration": {
		MaximizeEfficiency: 0.6,
		MinimizeCost:       -0.8, // less acid, lower cost
		MaximizePurity:     0.4,
		MinimizeTime:       0.7,
	},
	"voltage": {
		MaximizeEfficiency: 0.5,
		MinimizeCost:       -0.7, // lower voltage, less energy
		MaximizePurity:     0.9,
		MinimizeTime:       0.6,
	},
	"leaching_time": {
		MaximizeEfficiency: 0.7,
		MinimizeCost:       -0.5,
		MaximizePurity:     0.8,
		MinimizeTime:       -0.9, // shorter leach cycles
	},
}

// defaultImprovementFactor applies to parameter/objective pairs absent
// from the table.
const defaultImprovementFactor = 0.5

// baseImprovementFactor returns the static table entry for a
// parameter/objective pair.
func baseImprovementFactor(param string, objective Objective) float64 {
	if strategies, ok := improvementFactors[param]; ok {
		if factor, ok := strategies[objective]; ok {
			return factor
		}
	}
	return defaultImprovementFactor
}

// improvementFactor scales the table entry by a convergence weight
// that decays linearly over the run: strong moves early, fine-tuning
// late.
func improvementFactor(param string, objective Objective, iteration, maxIterations int) float64 {
	convergence := 1.0 - float64(iteration)/float64(maxIterations)
	return baseImprovementFactor(param, objective) * convergence
}

package optimization

import (
	"fmt"
	"sort"
	"strings"
)

// changeThreshold is the relative change below which a parameter
// adjustment is not worth calling out.
const changeThreshold = 0.05

// objectiveGuidance holds the fixed implementation-monitoring advice
// appended per objective.
var objectiveGuidance = map[Objective][]string{
	MaximizeEfficiency: {
		"Monitor recovery rates closely during implementation",
		"Consider staged implementation to validate improvements",
	},
	MinimizeCost: {
		"Implement cost tracking to verify savings",
		"Balance cost reduction with quality requirements",
	},
	MaximizePurity: {
		"Increase analytical testing frequency during optimization",
		"Ensure downstream processes can handle purity changes",
	},
	MinimizeTime: {
		"Verify that time reduction doesn't compromise quality",
		"Update production schedules based on new cycle times",
	},
}

var rolloutGuidance = []string{
	"Implement changes gradually to assess individual impacts",
	"Establish monitoring protocols for key performance indicators",
}

// Recommendations builds the ordered guidance list for a completed
// run: directional sentences for every materially changed parameter,
// objective-specific monitoring advice, generic rollout guidance, and
// a pilot-test caution for large claimed improvements. The list is
// never empty.
func Recommendations(original, optimized ParameterMap, objective Objective, improvementPct float64) []string {
	recommendations := parameterChanges(original, optimized, func(name string, orig, opt, changePct float64) string {
		direction := "Increase"
		if opt < orig {
			direction = "Decrease"
		}
		return fmt.Sprintf("%s %s from %.2f to %.2f (%+.1f%% change)",
			direction, displayName(name), orig, opt, changePct)
	})

	recommendations = append(recommendations, objectiveGuidance[objective]...)
	recommendations = append(recommendations, rolloutGuidance...)

	if improvementPct > 20 {
		recommendations = append(recommendations,
			"High improvement potential - consider pilot testing before full implementation")
	}

	return recommendations
}

// MultiObjectiveRecommendations builds the guidance list for a
// weighted multi-objective run.
func MultiObjectiveRecommendations(original ParameterMap, best *ParetoSolution) []string {
	recommendations := []string{
		"Multi-objective optimization complete - analyze trade-offs carefully",
	}

	recommendations = append(recommendations, parameterChanges(original, best.Parameters, func(name string, orig, opt, changePct float64) string {
		return fmt.Sprintf("Adjust %s: %.2f → %.2f (%+.1f%%)",
			displayName(name), orig, opt, changePct)
	})...)

	recommendations = append(recommendations,
		"Monitor all objectives during implementation to ensure balanced performance",
		"Consider adjusting objective weights based on business priorities",
		"Validate Pareto solutions through pilot testing",
	)

	return recommendations
}

// parameterChanges emits one line per parameter whose relative change
// exceeds the threshold. Names are sorted so the output is stable
// across runs; zero-valued originals are skipped since their relative
// change is undefined.
func parameterChanges(original, optimized ParameterMap, format func(name string, orig, opt, changePct float64) string) []string {
	names := make([]string, 0, len(optimized))
	for name := range optimized {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		origValue, ok := original[name]
		if !ok {
			continue
		}
		orig, ok := Numeric(origValue)
		if !ok || orig == 0 {
			continue
		}
		opt, ok := Numeric(optimized[name])
		if !ok {
			continue
		}
		change := (opt - orig) / orig
		if abs(change) <= changeThreshold {
			continue
		}
		lines = append(lines, format(name, orig, opt, change*100))
	}
	return lines
}

// displayName converts a parameter key like "acid_concentration" into
// "Acid Concentration" for human-readable output.
func displayName(param string) string {
	words := strings.Split(param, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

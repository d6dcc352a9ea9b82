package optimization

import "math"

// Industry defaults applied when an estimator's input parameter is
// absent from the map. Every estimator must yield a finite value for
// an empty parameter map.
const (
	defaultTemperature    = 65.0
	defaultPurityTemp     = 60.0
	defaultAcid           = 1.5
	defaultLeachingTime   = 8.0
	defaultVoltage        = 2.2
	defaultCurrentDensity = 300.0
	defaultOreGrade       = 2.5
	defaultReagentDosage  = 2.0
)

// Evaluate computes the scalar objective value for a parameter map.
// It is deterministic: no randomness, no parameter mutation. Unknown
// objectives (including Composite itself) use the composite formula.
func Evaluate(params ParameterMap, objective Objective) float64 {
	switch objective {
	case MaximizeEfficiency:
		return estimateRecovery(params) * estimateEnergyEfficiency(params)
	case MinimizeCost:
		return estimateReagentCost(params) + estimateEnergyCost(params) + estimateTimeCost(params)
	case MaximizePurity:
		return estimatePurity(params)
	case MinimizeTime:
		return estimateProcessingTime(params)
	default:
		recovery := estimateRecovery(params)
		costFactor := 1.0 / math.Max(0.1, estimateReagentCost(params)/100)
		return recovery * costFactor
	}
}

// estimateRecovery models metal recovery as a base rate scaled by
// multiplicative condition factors, capped at 98%.
func estimateRecovery(params ParameterMap) float64 {
	const baseRecovery = 0.75

	temp := params.numericOr("temperature", defaultTemperature)
	tempFactor := math.Min(1.2, (temp-25)/60)

	acid := params.numericOr("acid_concentration", defaultAcid)
	acidFactor := math.Min(1.1, acid/2.0)

	// Diminishing returns on leach duration.
	hours := params.numericOr("leaching_time", defaultLeachingTime)
	timeFactor := math.Min(1.15, math.Sqrt(hours/8))

	grade := params.numericOr("ore_grade", defaultOreGrade)
	gradeFactor := math.Min(1.1, grade/3.0)

	recovery := baseRecovery * tempFactor * acidFactor * timeFactor * gradeFactor
	return math.Min(0.98, recovery)
}

// estimatePurity models cathode purity. Current density peaks around
// 400 A/m² and temperature around 60°C; both factors floor at 0.8.
func estimatePurity(params ParameterMap) float64 {
	const basePurity = 0.90

	voltage := params.numericOr("voltage", defaultVoltage)
	voltageFactor := math.Min(1.1, voltage/2.5)

	current := params.numericOr("current_density", defaultCurrentDensity)
	currentFactor := math.Max(0.8, 1.0-math.Abs(current-400)/800)

	temp := params.numericOr("temperature", defaultPurityTemp)
	tempFactor := math.Max(0.8, 1.0-math.Abs(temp-60)/60)

	purity := basePurity * voltageFactor * currentFactor * tempFactor
	return math.Min(0.999, purity)
}

// estimateEnergyEfficiency applies linear penalties for voltage above
// 1.8 V, temperature above 25°C and leach time above 6 h, floored at 0.3.
func estimateEnergyEfficiency(params ParameterMap) float64 {
	voltage := params.numericOr("voltage", defaultVoltage)
	temp := params.numericOr("temperature", defaultTemperature)
	hours := params.numericOr("leaching_time", defaultLeachingTime)

	voltagePenalty := (voltage - 1.8) / 2.0
	tempPenalty := math.Max(0, temp-25) / 100
	timePenalty := math.Max(0, hours-6) / 20

	return math.Max(0.3, 1.0-voltagePenalty-tempPenalty-timePenalty)
}

// estimateReagentCost returns reagent spend in USD per tonne: a fixed
// base plus acid and other-reagent components.
func estimateReagentCost(params ParameterMap) float64 {
	acid := params.numericOr("acid_concentration", defaultAcid)
	dosage := params.numericOr("reagent_dosage", defaultReagentDosage)
	return 50 + acid*40 + dosage*25
}

// estimateEnergyCost returns electrowinning plus heating energy cost
// in USD per tonne.
func estimateEnergyCost(params ParameterMap) float64 {
	voltage := params.numericOr("voltage", defaultVoltage)
	temp := params.numericOr("temperature", defaultTemperature)
	hours := params.numericOr("leaching_time", defaultLeachingTime)

	electrowinning := voltage * 15 * hours
	heating := math.Max(0, temp-25) * 0.8 * hours
	return electrowinning + heating
}

// estimateTimeCost returns equipment and labor cost for the leach and
// retention stages. Retention defaults to the leach duration.
func estimateTimeCost(params ParameterMap) float64 {
	hours := params.numericOr("leaching_time", defaultLeachingTime)
	retention := params.numericOr("retention_time", hours)
	return (hours + retention) * 12
}

// estimateProcessingTime returns the leach duration adjusted for slow
// kinetics at low temperature or low acid concentration.
func estimateProcessingTime(params ParameterMap) float64 {
	hours := params.numericOr("leaching_time", defaultLeachingTime)
	temp := params.numericOr("temperature", defaultTemperature)
	acid := params.numericOr("acid_concentration", defaultAcid)

	if temp < 50 {
		hours *= 1.5
	}
	if acid < 1.0 {
		hours *= 1.3
	}
	return hours
}

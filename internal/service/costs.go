package service

// modelPricing holds USD rates per 1000 tokens.
type modelPricing struct {
	InputRate  float64
	OutputRate float64
}

// modelPrices is the static price table used for cost accounting. Rates are
// maintained by hand; a model missing from the table yields a nil cost on
// the usage record rather than a guess.
var modelPrices = map[string]modelPricing{
	"gpt-4o":        {InputRate: 0.0025, OutputRate: 0.01},
	"gpt-4o-mini":   {InputRate: 0.00015, OutputRate: 0.0006},
	"gpt-4-turbo":   {InputRate: 0.01, OutputRate: 0.03},
	"gpt-3.5-turbo": {InputRate: 0.0005, OutputRate: 0.0015},
}

// CalculateCost returns the estimated USD cost of a completion, or nil when
// the model has no entry in the price table.
func CalculateCost(model string, inputTokens, outputTokens int) *float64 {
	pricing, ok := modelPrices[model]
	if !ok {
		return nil
	}

	cost := float64(inputTokens)/1000*pricing.InputRate + float64(outputTokens)/1000*pricing.OutputRate
	return &cost
}

package configuration

import "fmt"

// RuleCount is the number of ergonomic rules with configurable weights.
const RuleCount = 15

// RuleWeights maps each ergonomic rule to its penalty weight. The slot for
// rule N is Weights[N-1].
type RuleWeights [RuleCount]float64

// DefaultRuleWeights returns the standard weighting. Rule 13 (practical span
// exceeded) dominates, rule 8 (thumb on a black key) is softened, and rules
// 1 and 11 are emphasized.
func DefaultRuleWeights() RuleWeights {
	return RuleWeights{2, 1, 1, 1, 1, 1, 1, 0.5, 1, 1, 2, 1, 10, 1, 1}
}

// Rule returns the weight of rule n, 1-based. It panics when n is outside
// [1, RuleCount].
func (w *RuleWeights) Rule(n int) float64 {
	if n < 1 || n > RuleCount {
		panic(fmt.Sprintf("rule number %d outside [1, %d]", n, RuleCount))
	}
	return w[n-1]
}

// Validate rejects negative weights. Zero disables a rule.
func (w *RuleWeights) Validate() error {
	for i, v := range w {
		if v < 0 {
			return NewConfigurationError(fmt.Sprintf("rule %d weight %v is negative", i+1, v))
		}
	}
	return nil
}

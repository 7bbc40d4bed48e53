package configuration

import "fmt"

// Config is the complete evaluation configuration: one distance matrix per
// hand, the rule weights and the search parameters.
type Config struct {
	LeftHand  DistanceMatrix
	RightHand DistanceMatrix
	Weights   RuleWeights
	Algorithm AlgorithmParameters
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.RightHand.Validate(); err != nil {
		return fmt.Errorf("right hand: %w", err)
	}
	if err := c.LeftHand.Validate(); err != nil {
		return fmt.Errorf("left hand: %w", err)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if err := c.Algorithm.Validate(); err != nil {
		return fmt.Errorf("algorithm: %w", err)
	}
	return nil
}

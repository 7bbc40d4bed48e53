package configuration

import "fmt"

// AlgorithmParameters tunes the fingering search. The evaluator itself only
// reads the weights and distances; these knobs are consumed by search drivers
// built on top of it.
type AlgorithmParameters struct {
	BeamWidth            int
	ILSIterations        int
	PerturbationStrength int
}

// DefaultAlgorithmParameters returns the standard search settings.
func DefaultAlgorithmParameters() AlgorithmParameters {
	return AlgorithmParameters{
		BeamWidth:            100,
		ILSIterations:        1000,
		PerturbationStrength: 3,
	}
}

// Validate requires every parameter to be positive.
func (p AlgorithmParameters) Validate() error {
	if p.BeamWidth <= 0 {
		return NewConfigurationError(fmt.Sprintf("beam width %d must be positive", p.BeamWidth))
	}
	if p.ILSIterations <= 0 {
		return NewConfigurationError(fmt.Sprintf("ILS iterations %d must be positive", p.ILSIterations))
	}
	if p.PerturbationStrength <= 0 {
		return NewConfigurationError(fmt.Sprintf("perturbation strength %d must be positive", p.PerturbationStrength))
	}
	return nil
}

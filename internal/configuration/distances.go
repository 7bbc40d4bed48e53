package configuration

import "fmt"

// Distance values are measured in modified chromatic steps and bounded to a
// physically meaningful range.
const (
	MinDistanceValue = -20
	MaxDistanceValue = 20
)

// FingerPairDistances holds the three nested tolerance intervals for one
// finger pair: practical contains comfort contains relaxed. A stretch inside
// the relaxed interval costs nothing; each interval it leaves adds to the
// penalty.
type FingerPairDistances struct {
	MinPrac int
	MinComf int
	MinRel  int
	MaxRel  int
	MaxComf int
	MaxPrac int
}

// Validate checks the bounds and the nesting invariant
// MinPrac <= MinComf <= MinRel < MaxRel <= MaxComf <= MaxPrac.
func (d FingerPairDistances) Validate() error {
	values := [6]int{d.MinPrac, d.MinComf, d.MinRel, d.MaxRel, d.MaxComf, d.MaxPrac}
	for _, v := range values {
		if v < MinDistanceValue || v > MaxDistanceValue {
			return NewConfigurationError(fmt.Sprintf("distance value %d outside [%d, %d]", v, MinDistanceValue, MaxDistanceValue))
		}
	}
	if !(d.MinPrac <= d.MinComf && d.MinComf <= d.MinRel &&
		d.MinRel < d.MaxRel &&
		d.MaxRel <= d.MaxComf && d.MaxComf <= d.MaxPrac) {
		return NewConfigurationError(fmt.Sprintf(
			"distance intervals must nest: MinPrac(%d) <= MinComf(%d) <= MinRel(%d) < MaxRel(%d) <= MaxComf(%d) <= MaxPrac(%d)",
			d.MinPrac, d.MinComf, d.MinRel, d.MaxRel, d.MaxComf, d.MaxPrac))
	}
	return nil
}

// DistanceMatrix holds the distance thresholds for all ten finger pairs of
// one hand, indexed by FingerPair.
type DistanceMatrix [FingerPairCount]FingerPairDistances

// Pair returns the thresholds for one finger pair.
func (m *DistanceMatrix) Pair(p FingerPair) FingerPairDistances {
	return m[p]
}

// Validate checks every pair's thresholds.
func (m *DistanceMatrix) Validate() error {
	for i := range m {
		if err := m[i].Validate(); err != nil {
			return fmt.Errorf("pair %s: %w", FingerPair(i), err)
		}
	}
	return nil
}

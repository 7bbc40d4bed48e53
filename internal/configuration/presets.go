package configuration

import (
	"fmt"
	"strings"
)

// Hand size presets. Each preset carries a right-hand matrix measured on real
// players; the left hand is always derived by mirroring.

func mediumRightHand() DistanceMatrix {
	var m DistanceMatrix
	m[ThumbIndex] = FingerPairDistances{-8, -6, 1, 5, 8, 10}
	m[ThumbMiddle] = FingerPairDistances{-7, -5, 3, 9, 12, 14}
	m[ThumbRing] = FingerPairDistances{-5, -3, 5, 11, 13, 15}
	m[ThumbPinky] = FingerPairDistances{-2, 0, 7, 12, 14, 16}
	m[IndexMiddle] = FingerPairDistances{1, 1, 1, 2, 5, 7}
	m[IndexRing] = FingerPairDistances{1, 1, 3, 4, 6, 8}
	m[IndexPinky] = FingerPairDistances{2, 2, 5, 6, 10, 12}
	m[MiddleRing] = FingerPairDistances{1, 1, 1, 2, 2, 4}
	m[MiddlePinky] = FingerPairDistances{1, 1, 3, 4, 6, 8}
	m[RingPinky] = FingerPairDistances{1, 1, 1, 2, 4, 6}
	return m
}

func smallRightHand() DistanceMatrix {
	m := mediumRightHand()
	m[ThumbIndex] = FingerPairDistances{-7, -5, 1, 3, 8, 10}
	m[ThumbMiddle] = FingerPairDistances{-6, -4, 3, 6, 10, 12}
	m[ThumbRing] = FingerPairDistances{-4, -2, 5, 8, 11, 13}
	m[ThumbPinky] = FingerPairDistances{-2, 0, 7, 10, 12, 14}
	m[IndexMiddle] = FingerPairDistances{1, 1, 1, 2, 4, 6}
	m[IndexPinky] = FingerPairDistances{2, 2, 5, 6, 8, 10}
	return m
}

func largeRightHand() DistanceMatrix {
	m := mediumRightHand()
	m[ThumbIndex] = FingerPairDistances{-10, -8, 1, 6, 9, 11}
	m[ThumbMiddle] = FingerPairDistances{-8, -6, 3, 9, 13, 15}
	m[ThumbRing] = FingerPairDistances{-6, -4, 5, 11, 14, 16}
	m[ThumbPinky] = FingerPairDistances{-2, 0, 7, 12, 16, 18}
	return m
}

// MirrorToLeftHand derives a left-hand matrix from a right-hand one. The
// keyboard geometry is symmetric, so each interval flips sign and swaps min
// with max.
func MirrorToLeftHand(right DistanceMatrix) DistanceMatrix {
	var left DistanceMatrix
	for i, r := range right {
		left[i] = FingerPairDistances{
			MinPrac: -r.MaxPrac,
			MinComf: -r.MaxComf,
			MinRel:  -r.MaxRel,
			MaxRel:  -r.MinRel,
			MaxComf: -r.MinComf,
			MaxPrac: -r.MinPrac,
		}
	}
	return left
}

// LoadPreset builds a full configuration from a named hand size preset:
// "small", "medium" or "large". The name is case-insensitive.
func LoadPreset(name string) (Config, error) {
	var right DistanceMatrix
	switch strings.ToLower(name) {
	case "small":
		right = smallRightHand()
	case "medium":
		right = mediumRightHand()
	case "large":
		right = largeRightHand()
	default:
		return Config{}, NewConfigurationError(fmt.Sprintf("unknown hand size preset %q", name))
	}
	cfg := Config{
		LeftHand:  MirrorToLeftHand(right),
		RightHand: right,
		Weights:   DefaultRuleWeights(),
		Algorithm: DefaultAlgorithmParameters(),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

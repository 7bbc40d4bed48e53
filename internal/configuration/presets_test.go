package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handspan/internal/music"
)

func TestLoadPreset(t *testing.T) {
	for _, name := range []string{"small", "medium", "large", "Medium", "LARGE"} {
		cfg, err := LoadPreset(name)
		require.NoError(t, err, name)
		assert.NoError(t, cfg.Validate(), name)
	}

	_, err := LoadPreset("giant")
	assert.Error(t, err)
}

func TestPresetThumbPinkySpans(t *testing.T) {
	small, err := LoadPreset("small")
	require.NoError(t, err)
	medium, err := LoadPreset("medium")
	require.NoError(t, err)
	large, err := LoadPreset("large")
	require.NoError(t, err)

	assert.Equal(t, 14, small.RightHand.Pair(ThumbPinky).MaxPrac)
	assert.Equal(t, 16, medium.RightHand.Pair(ThumbPinky).MaxPrac)
	assert.Equal(t, 18, large.RightHand.Pair(ThumbPinky).MaxPrac)

	// Non-thumb pairs are shared between medium and large.
	assert.Equal(t, medium.RightHand.Pair(MiddleRing), large.RightHand.Pair(MiddleRing))
}

func TestMirrorToLeftHand(t *testing.T) {
	right := mediumRightHand()
	left := MirrorToLeftHand(right)

	r := right[ThumbIndex]
	l := left[ThumbIndex]
	assert.Equal(t, FingerPairDistances{
		MinPrac: -r.MaxPrac,
		MinComf: -r.MaxComf,
		MinRel:  -r.MaxRel,
		MaxRel:  -r.MinRel,
		MaxComf: -r.MinComf,
		MaxPrac: -r.MinPrac,
	}, l)

	// Mirroring preserves the nesting invariant for every pair.
	assert.NoError(t, left.Validate())
}

func TestPairOf(t *testing.T) {
	assert.Equal(t, ThumbIndex, PairOf(music.Thumb, music.Index))
	assert.Equal(t, ThumbIndex, PairOf(music.Index, music.Thumb))
	assert.Equal(t, MiddlePinky, PairOf(music.Pinky, music.Middle))

	// Repeated fingers map onto a neighboring pair.
	assert.Equal(t, ThumbIndex, PairOf(music.Thumb, music.Thumb))
	assert.Equal(t, IndexMiddle, PairOf(music.Index, music.Index))
	assert.Equal(t, MiddleRing, PairOf(music.Middle, music.Middle))
	assert.Equal(t, RingPinky, PairOf(music.Ring, music.Ring))
	assert.Equal(t, RingPinky, PairOf(music.Pinky, music.Pinky))
}

func TestParseFingerPair(t *testing.T) {
	p, err := ParseFingerPair("2-5")
	require.NoError(t, err)
	assert.Equal(t, IndexPinky, p)
	assert.Equal(t, "2-5", p.String())

	_, err = ParseFingerPair("5-2")
	assert.Error(t, err)
}

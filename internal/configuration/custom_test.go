package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCustomOverrides(t *testing.T) {
	path := writeTempYAML(t, `
right_hand:
  1-5:
    max_prac: 17
weights:
  13: 20
algorithm:
  beam_width: 50
`)

	cfg, err := LoadCustom("medium", path)
	require.NoError(t, err)

	assert.Equal(t, 17, cfg.RightHand.Pair(ThumbPinky).MaxPrac)
	// Untouched fields keep preset values.
	assert.Equal(t, 14, cfg.RightHand.Pair(ThumbPinky).MaxComf)
	assert.Equal(t, 20.0, cfg.Weights.Rule(13))
	assert.Equal(t, 1.0, cfg.Weights.Rule(2))
	assert.Equal(t, 50, cfg.Algorithm.BeamWidth)
	assert.Equal(t, 1000, cfg.Algorithm.ILSIterations)

	// The left hand is untouched unless overridden.
	medium, err := LoadPreset("medium")
	require.NoError(t, err)
	assert.Equal(t, medium.LeftHand, cfg.LeftHand)
}

func TestLoadCustomRejectsInvalidMerge(t *testing.T) {
	// An override that breaks the interval nesting fails validation.
	path := writeTempYAML(t, `
right_hand:
  1-2:
    max_prac: -15
`)
	_, err := LoadCustom("medium", path)
	assert.Error(t, err)
}

func TestLoadCustomUnknownKeys(t *testing.T) {
	path := writeTempYAML(t, `
right_hand:
  6-7:
    max_prac: 10
`)
	_, err := LoadCustom("medium", path)
	assert.Error(t, err)

	path = writeTempYAML(t, `
weights:
  16: 1
`)
	_, err = LoadCustom("medium", path)
	assert.Error(t, err)
}

func TestLoadCustomMissingFile(t *testing.T) {
	_, err := LoadCustom("medium", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

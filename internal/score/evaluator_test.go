package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handspan/internal/configuration"
	"handspan/internal/music"
	"handspan/internal/score/rule"
)

// noteAt builds a quarter note at the given absolute pitch.
func noteAt(t *testing.T, absolutePitch int) music.Note {
	t.Helper()
	pitch, err := music.NewPitch(absolutePitch % music.PitchClassCount)
	require.NoError(t, err)
	note, err := music.NewNote(pitch, absolutePitch/music.PitchClassCount, 4, false, 1, 1)
	require.NoError(t, err)
	return note
}

func restNote(t *testing.T) music.Note {
	t.Helper()
	pitch, err := music.NewPitch(0)
	require.NoError(t, err)
	note, err := music.NewNote(pitch, 4, 4, true, 1, 1)
	require.NoError(t, err)
	return note
}

// melody builds a right-hand piece with one slice per absolute pitch.
func melody(t *testing.T, absolutePitches ...int) *music.Piece {
	t.Helper()
	slices := make([]music.Slice, 0, len(absolutePitches))
	for _, p := range absolutePitches {
		slice, err := music.NewSlice(noteAt(t, p))
		require.NoError(t, err)
		slices = append(slices, slice)
	}
	measure, err := music.NewMeasure(1, slices, music.CommonTime())
	require.NoError(t, err)
	piece, err := music.NewPiece(music.Metadata{}, nil, []music.Measure{measure})
	require.NoError(t, err)
	return &piece
}

func fingerings(fs ...music.Finger) []music.Fingering {
	out := make([]music.Fingering, 0, len(fs))
	for _, f := range fs {
		out = append(out, music.FingeringOf(f))
	}
	return out
}

func mediumConfig(t *testing.T) *configuration.Config {
	t.Helper()
	cfg, err := configuration.LoadPreset("medium")
	require.NoError(t, err)
	return &cfg
}

func TestEvaluateEmptyFingerings(t *testing.T) {
	evaluator := NewEvaluator(mediumConfig(t))
	piece := melody(t, 56, 58, 60)

	assert.Equal(t, 0.0, evaluator.Evaluate(piece, nil, music.RightHand))
}

func TestEvaluateSingleComfortableNote(t *testing.T) {
	evaluator := NewEvaluator(mediumConfig(t))
	piece := melody(t, 56)

	assert.Equal(t, 0.0, evaluator.Evaluate(piece, fingerings(music.Thumb), music.RightHand))
}

func TestEvaluateSingleRingFingerNote(t *testing.T) {
	evaluator := NewEvaluator(mediumConfig(t))
	piece := melody(t, 56)

	assert.Equal(t, 1.0, evaluator.Evaluate(piece, fingerings(music.Ring), music.RightHand))
}

func TestEvaluateComfortableScaleFragment(t *testing.T) {
	evaluator := NewEvaluator(mediumConfig(t))
	// C, D, E on white keys under 1-2-3: every rule stays silent.
	piece := melody(t, 56, 58, 60)

	score := evaluator.Evaluate(piece, fingerings(music.Thumb, music.Index, music.Middle), music.RightHand)
	assert.Equal(t, 0.0, score)
}

func TestEvaluateAwkwardFragment(t *testing.T) {
	evaluator := NewEvaluator(mediumConfig(t))
	// C, D, E played 3-4-3: ring finger once (1), middle-ring succession
	// twice (2), triplet span beyond the 3-4 comfort range (1), span excess
	// beyond the 3-3 comfort range (2), finger repetition over a monotonic
	// run (1).
	piece := melody(t, 56, 58, 60)

	score := evaluator.Evaluate(piece, fingerings(music.Middle, music.Ring, music.Middle), music.RightHand)
	assert.Equal(t, 7.0, score)
}

func TestEvaluateRestsConsumeNoFingering(t *testing.T) {
	cfg := mediumConfig(t)

	withRest := func() *music.Piece {
		s1, err := music.NewSlice(noteAt(t, 56))
		require.NoError(t, err)
		rest, err := music.NewSlice(restNote(t))
		require.NoError(t, err)
		s2, err := music.NewSlice(noteAt(t, 58))
		require.NoError(t, err)
		s3, err := music.NewSlice(noteAt(t, 60))
		require.NoError(t, err)
		measure, err := music.NewMeasure(1, []music.Slice{s1, rest, s2, s3}, music.CommonTime())
		require.NoError(t, err)
		piece, err := music.NewPiece(music.Metadata{}, nil, []music.Measure{measure})
		require.NoError(t, err)
		return &piece
	}()

	plain := melody(t, 56, 58, 60)
	assignment := fingerings(music.Middle, music.Ring, music.Middle)

	withRestScore := NewEvaluator(cfg).Evaluate(withRest, assignment, music.RightHand)
	plainScore := NewEvaluator(cfg).Evaluate(plain, assignment, music.RightHand)
	assert.Equal(t, plainScore, withRestScore)
}

func TestEvaluateChordStretch(t *testing.T) {
	evaluator := NewEvaluator(mediumConfig(t))

	// A full octave C to C, thumb and pinky. Distance 14 exceeds the 1-5
	// relaxed maximum of 12 by two but stays within the comfort maximum,
	// so the chord pays only the doubled relaxed excess: 2*2*1.0.
	slice, err := music.NewSlice(noteAt(t, 56), noteAt(t, 70))
	require.NoError(t, err)
	measure, err := music.NewMeasure(1, []music.Slice{slice}, music.CommonTime())
	require.NoError(t, err)
	piece, err := music.NewPiece(music.Metadata{}, nil, []music.Measure{measure})
	require.NoError(t, err)

	assignment := []music.Fingering{music.FingeringOf(music.Thumb, music.Pinky)}
	assert.Equal(t, 4.0, evaluator.Evaluate(&piece, assignment, music.RightHand))
}

func TestEvaluateChordWithinRelaxedSpan(t *testing.T) {
	evaluator := NewEvaluator(mediumConfig(t))

	// Distance 9 sits inside the 1-5 relaxed interval [7, 12], so even the
	// doubled chord shells charge nothing.
	slice, err := music.NewSlice(noteAt(t, 56), noteAt(t, 65))
	require.NoError(t, err)
	measure, err := music.NewMeasure(1, []music.Slice{slice}, music.CommonTime())
	require.NoError(t, err)
	piece, err := music.NewPiece(music.Metadata{}, nil, []music.Measure{measure})
	require.NoError(t, err)

	assignment := []music.Fingering{music.FingeringOf(music.Thumb, music.Pinky)}
	assert.Equal(t, 0.0, evaluator.Evaluate(&piece, assignment, music.RightHand))
}

func TestEvaluateLeftHandUsesMirroredMatrix(t *testing.T) {
	cfg := mediumConfig(t)

	slices := make([]music.Slice, 0, 2)
	for _, p := range []int{60, 56} {
		slice, err := music.NewSlice(noteAt(t, p))
		require.NoError(t, err)
		slices = append(slices, slice)
	}
	measure, err := music.NewMeasure(1, slices, music.CommonTime())
	require.NoError(t, err)
	piece, err := music.NewPiece(music.Metadata{}, []music.Measure{measure}, nil)
	require.NoError(t, err)

	// Descending 1-2 in the left hand mirrors ascending 1-2 in the right:
	// distance -4 sits inside the mirrored relaxed interval [-5, -1].
	score := NewEvaluator(cfg).Evaluate(&piece, fingerings(music.Thumb, music.Index), music.LeftHand)
	assert.Equal(t, 0.0, score)
}

func TestEvaluateWithCustomRules(t *testing.T) {
	env, err := rule.NewTransitionEnv()
	require.NoError(t, err)
	extra := rule.Rule{
		Name:    "any upward step",
		When:    "distance > 0",
		Penalty: 0.25,
	}
	require.NoError(t, extra.Init(env))

	cfg := mediumConfig(t)
	piece := melody(t, 56, 58, 60)
	assignment := fingerings(music.Thumb, music.Index, music.Middle)

	base := NewEvaluator(cfg).Evaluate(piece, assignment, music.RightHand)
	withExtra := NewEvaluatorWithRules(cfg, []rule.Rule{extra}).
		Evaluate(piece, assignment, music.RightHand)

	// Two upward transitions fire the custom rule once each.
	assert.Equal(t, base+0.5, withExtra)
}

func deltaEqualsDifference(t *testing.T, piece *music.Piece, current, proposed []music.Fingering,
	location SliceLocation, hand music.Hand) {
	t.Helper()
	cfg := mediumConfig(t)

	full := NewEvaluator(cfg)
	want := full.Evaluate(piece, proposed, hand) - full.Evaluate(piece, current, hand)

	evaluator := NewEvaluator(cfg)
	evaluator.Evaluate(piece, current, hand) // warm the cache
	got := evaluator.EvaluateDelta(piece, current, proposed, location, hand)
	assert.InDelta(t, want, got, 1e-9, "cached delta")

	cold := NewEvaluator(cfg)
	got = cold.EvaluateDelta(piece, current, proposed, location, hand)
	assert.InDelta(t, want, got, 1e-9, "cold delta")
}

func TestEvaluateDeltaFirstNote(t *testing.T) {
	piece := melody(t, 56, 58, 60, 62, 64)
	current := fingerings(music.Thumb, music.Index, music.Middle, music.Ring, music.Pinky)
	proposed := fingerings(music.Middle, music.Index, music.Middle, music.Ring, music.Pinky)

	deltaEqualsDifference(t, piece, current, proposed,
		SliceLocation{Measure: 0, Slice: 0, Note: 0, Fingering: 0}, music.RightHand)
}

func TestEvaluateDeltaMiddleNote(t *testing.T) {
	piece := melody(t, 56, 58, 60, 62, 64)
	current := fingerings(music.Thumb, music.Index, music.Middle, music.Ring, music.Pinky)
	proposed := fingerings(music.Thumb, music.Index, music.Thumb, music.Ring, music.Pinky)

	deltaEqualsDifference(t, piece, current, proposed,
		SliceLocation{Measure: 0, Slice: 2, Note: 0, Fingering: 2}, music.RightHand)
}

func TestEvaluateDeltaLastNote(t *testing.T) {
	piece := melody(t, 56, 58, 60, 62, 64)
	current := fingerings(music.Thumb, music.Index, music.Middle, music.Ring, music.Pinky)
	proposed := fingerings(music.Thumb, music.Index, music.Middle, music.Ring, music.Ring)

	deltaEqualsDifference(t, piece, current, proposed,
		SliceLocation{Measure: 0, Slice: 4, Note: 0, Fingering: 4}, music.RightHand)
}

func TestEvaluateDeltaNoChange(t *testing.T) {
	piece := melody(t, 56, 58, 60)
	assignment := fingerings(music.Thumb, music.Index, music.Middle)

	evaluator := NewEvaluator(mediumConfig(t))
	evaluator.Evaluate(piece, assignment, music.RightHand)
	delta := evaluator.EvaluateDelta(piece, assignment, assignment,
		SliceLocation{Measure: 0, Slice: 1, Note: 0, Fingering: 1}, music.RightHand)
	assert.Equal(t, 0.0, delta)
}

func TestEvaluateDeltaInnerChordNote(t *testing.T) {
	s1, err := music.NewSlice(noteAt(t, 56))
	require.NoError(t, err)
	chord, err := music.NewSlice(noteAt(t, 58), noteAt(t, 62))
	require.NoError(t, err)
	s3, err := music.NewSlice(noteAt(t, 64))
	require.NoError(t, err)
	measure, err := music.NewMeasure(1, []music.Slice{s1, chord, s3}, music.CommonTime())
	require.NoError(t, err)
	piece, err := music.NewPiece(music.Metadata{}, nil, []music.Measure{measure})
	require.NoError(t, err)

	current := []music.Fingering{
		music.FingeringOf(music.Thumb),
		music.FingeringOf(music.Index, music.Ring),
		music.FingeringOf(music.Pinky),
	}
	proposed := []music.Fingering{
		music.FingeringOf(music.Thumb),
		music.FingeringOf(music.Index, music.Pinky),
		music.FingeringOf(music.Pinky),
	}

	// The second chord note is not the primary note, so only the chord
	// penalty and the single-note rule move.
	deltaEqualsDifference(t, &piece, current, proposed,
		SliceLocation{Measure: 0, Slice: 1, Note: 1, Fingering: 1}, music.RightHand)
}

func TestEvaluateDeltaChordPrimaryNote(t *testing.T) {
	s1, err := music.NewSlice(noteAt(t, 56))
	require.NoError(t, err)
	chord, err := music.NewSlice(noteAt(t, 58), noteAt(t, 62))
	require.NoError(t, err)
	s3, err := music.NewSlice(noteAt(t, 64))
	require.NoError(t, err)
	measure, err := music.NewMeasure(1, []music.Slice{s1, chord, s3}, music.CommonTime())
	require.NoError(t, err)
	piece, err := music.NewPiece(music.Metadata{}, nil, []music.Measure{measure})
	require.NoError(t, err)

	current := []music.Fingering{
		music.FingeringOf(music.Thumb),
		music.FingeringOf(music.Index, music.Ring),
		music.FingeringOf(music.Pinky),
	}
	proposed := []music.Fingering{
		music.FingeringOf(music.Thumb),
		music.FingeringOf(music.Middle, music.Ring),
		music.FingeringOf(music.Pinky),
	}

	deltaEqualsDifference(t, &piece, current, proposed,
		SliceLocation{Measure: 0, Slice: 1, Note: 0, Fingering: 1}, music.RightHand)
}

func TestEvaluateDeltaInvalidLocationFallsBack(t *testing.T) {
	piece := melody(t, 56, 58, 60)
	current := fingerings(music.Thumb, music.Index, music.Middle)
	proposed := fingerings(music.Thumb, music.Middle, music.Middle)

	cfg := mediumConfig(t)
	full := NewEvaluator(cfg)
	want := full.Evaluate(piece, proposed, music.RightHand) -
		full.Evaluate(piece, current, music.RightHand)

	evaluator := NewEvaluator(cfg)
	got := evaluator.EvaluateDelta(piece, current, proposed,
		SliceLocation{Measure: 7, Slice: 0, Note: 0, Fingering: 1}, music.RightHand)
	assert.InDelta(t, want, got, 1e-9)

	// The fallback path ends with a full evaluation of the current
	// fingering, so the cache is valid afterwards.
	delta := evaluator.EvaluateDelta(piece, current, proposed,
		SliceLocation{Measure: 0, Slice: 1, Note: 0, Fingering: 1}, music.RightHand)
	assert.InDelta(t, want, delta, 1e-9)
}

func TestEvaluateDeltaStaleCacheRebuilds(t *testing.T) {
	piece := melody(t, 56, 58, 60, 62)
	current := fingerings(music.Thumb, music.Index, music.Middle, music.Ring)
	proposed := fingerings(music.Thumb, music.Middle, music.Middle, music.Ring)

	cfg := mediumConfig(t)
	full := NewEvaluator(cfg)
	want := full.Evaluate(piece, proposed, music.RightHand) -
		full.Evaluate(piece, current, music.RightHand)

	// Prime the cache with a shorter fingering so the length check rejects
	// it and the primary notes are rebuilt.
	evaluator := NewEvaluator(cfg)
	short := melody(t, 56, 58)
	evaluator.Evaluate(short, fingerings(music.Thumb, music.Index), music.RightHand)

	got := evaluator.EvaluateDelta(piece, current, proposed,
		SliceLocation{Measure: 0, Slice: 1, Note: 0, Fingering: 1}, music.RightHand)
	assert.InDelta(t, want, got, 1e-9)
}

func TestEvaluateDeltaOppositeHandCacheRejected(t *testing.T) {
	s, err := music.NewSlice(noteAt(t, 56))
	require.NoError(t, err)
	s2, err := music.NewSlice(noteAt(t, 60))
	require.NoError(t, err)
	measure, err := music.NewMeasure(1, []music.Slice{s, s2}, music.CommonTime())
	require.NoError(t, err)
	piece, err := music.NewPiece(music.Metadata{}, []music.Measure{measure}, []music.Measure{measure})
	require.NoError(t, err)

	current := fingerings(music.Thumb, music.Index)
	proposed := fingerings(music.Thumb, music.Middle)

	cfg := mediumConfig(t)
	full := NewEvaluator(cfg)
	want := full.Evaluate(&piece, proposed, music.LeftHand) -
		full.Evaluate(&piece, current, music.LeftHand)

	// Cache built for the right hand must not serve a left-hand delta.
	evaluator := NewEvaluator(cfg)
	evaluator.Evaluate(&piece, current, music.RightHand)
	got := evaluator.EvaluateDelta(&piece, current, proposed,
		SliceLocation{Measure: 0, Slice: 1, Note: 0, Fingering: 1}, music.LeftHand)
	assert.InDelta(t, want, got, 1e-9)
}

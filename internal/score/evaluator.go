package score

import (
	"log/slog"

	"handspan/internal/configuration"
	"handspan/internal/music"
	"handspan/internal/score/rule"
)

// SliceLocation addresses the note that a delta evaluation changed.
type SliceLocation struct {
	// Measure — index into the hand's measure list.
	Measure int
	// Slice — slice index within the measure, rests included.
	Slice int
	// Note — non-rest note index within the slice.
	Note int
	// Fingering — playable-slice index, i.e. the index into the fingering
	// list.
	Fingering int
}

// cacheData remembers the primary-note sequence computed by the last full
// evaluation, so a following delta evaluation can skip rebuilding it. It is
// only trusted when the fingering length and hand still match.
type cacheData struct {
	notes          []noteInfo
	fingeringCount int
	hand           music.Hand
}

// Evaluator scores a finger assignment for one hand of a piece against the
// ergonomic rule set. It is not safe for concurrent use: the evaluator keeps
// a cache of the last full evaluation for use by EvaluateDelta.
type Evaluator struct {
	config *configuration.Config
	rules  []rule.Rule
	cache  *cacheData
}

// NewEvaluator creates an evaluator with the built-in rule set only.
func NewEvaluator(config *configuration.Config) *Evaluator {
	return &Evaluator{config: config}
}

// NewEvaluatorWithRules creates an evaluator that applies the given
// transition rules on top of the built-in rule set. The rules must already
// be initialized.
func NewEvaluatorWithRules(config *configuration.Config, rules []rule.Rule) *Evaluator {
	return &Evaluator{config: config, rules: rules}
}

// evalContext groups the per-call parameters shared by the rule helpers.
type evalContext struct {
	distances *configuration.DistanceMatrix
	weights   *configuration.RuleWeights
	hand      music.Hand
	rules     []rule.Rule
}

func (e *Evaluator) context(hand music.Hand) evalContext {
	distances := &e.config.RightHand
	if hand == music.LeftHand {
		distances = &e.config.LeftHand
	}
	return evalContext{
		distances: distances,
		weights:   &e.config.Weights,
		hand:      hand,
		rules:     e.rules,
	}
}

// forEachPlayableSlice walks the measures left to right and invokes fn for
// every playable slice (at least one non-rest note), passing the slice, its
// fingering index and its position. The walk stops once the fingering list
// is exhausted.
func forEachPlayableSlice(measures []music.Measure, fingerings []music.Fingering,
	fn func(slice music.Slice, fingeringIdx, measureIdx, sliceIdx int)) {
	fingeringIdx := 0
	for measureIdx, measure := range measures {
		for sliceIdx := 0; sliceIdx < measure.Len(); sliceIdx++ {
			slice := measure.At(sliceIdx)
			if !slice.IsPlayable() {
				continue
			}
			if fingeringIdx >= len(fingerings) {
				return
			}
			fn(slice, fingeringIdx, measureIdx, sliceIdx)
			fingeringIdx++
		}
	}
}

// collectNotes extracts the primary note of every playable slice: the first
// non-rest note that has an assigned finger. The sequential rules run over
// this sequence; inner chord notes are covered by the chord penalty and the
// single-note rule instead.
func collectNotes(measures []music.Measure, fingerings []music.Fingering) []noteInfo {
	var notes []noteInfo

	forEachPlayableSlice(measures, fingerings, func(slice music.Slice, fingeringIdx, _, _ int) {
		fingering := fingerings[fingeringIdx]
		noteIdx := 0
		for i := 0; i < slice.Len(); i++ {
			note := slice.At(i)
			if note.IsRest() {
				continue
			}
			if noteIdx < fingering.Len() {
				if finger, ok := fingering.At(noteIdx); ok {
					notes = append(notes, noteInfo{
						finger: finger,
						pitch:  note.AbsolutePitch(),
						black:  note.Pitch().IsBlackKey(),
					})
					break
				}
			}
			noteIdx++
		}
	})

	return notes
}

// singleNotePenalties applies the ring-finger rule to every assigned note,
// chord-internal notes included.
func singleNotePenalties(measures []music.Measure, fingerings []music.Fingering,
	weights *configuration.RuleWeights) float64 {
	penalty := 0.0

	forEachPlayableSlice(measures, fingerings, func(slice music.Slice, fingeringIdx, _, _ int) {
		fingering := fingerings[fingeringIdx]
		noteIdx := 0
		for i := 0; i < slice.Len(); i++ {
			if slice.At(i).IsRest() {
				continue
			}
			if noteIdx < fingering.Len() {
				if finger, ok := fingering.At(noteIdx); ok {
					penalty += ruleFive(finger, weights.Rule(5))
				}
			}
			noteIdx++
		}
	})

	return penalty
}

// chordSlicePenalty scores every unordered pair of assigned notes within one
// chord slice with the doubled-shell chord penalty.
func chordSlicePenalty(slice music.Slice, fingering music.Fingering,
	distances *configuration.DistanceMatrix, weights *configuration.RuleWeights) float64 {
	var chordNotes []noteInfo
	noteIdx := 0
	for i := 0; i < slice.Len(); i++ {
		note := slice.At(i)
		if note.IsRest() {
			continue
		}
		if noteIdx < fingering.Len() {
			if finger, ok := fingering.At(noteIdx); ok {
				chordNotes = append(chordNotes, noteInfo{
					finger: finger,
					pitch:  note.AbsolutePitch(),
					black:  note.Pitch().IsBlackKey(),
				})
			}
		}
		noteIdx++
	}

	penalty := 0.0
	for j := 0; j < len(chordNotes); j++ {
		for k := j + 1; k < len(chordNotes); k++ {
			n1, n2 := chordNotes[j], chordNotes[k]
			d := distances.Pair(configuration.PairOf(n1.finger, n2.finger))
			penalty += ChordPenalty(d, n2.pitch-n1.pitch, weights)
		}
	}

	return penalty
}

// chordPenalties applies the chord penalty to every slice holding more than
// one note.
func chordPenalties(measures []music.Measure, fingerings []music.Fingering,
	distances *configuration.DistanceMatrix, weights *configuration.RuleWeights) float64 {
	penalty := 0.0

	forEachPlayableSlice(measures, fingerings, func(slice music.Slice, fingeringIdx, _, _ int) {
		if slice.Len() > 1 {
			penalty += chordSlicePenalty(slice, fingerings[fingeringIdx], distances, weights)
		}
	})

	return penalty
}

// pairPenalties applies the two-note rules to a consecutive pair of primary
// notes. prev is the note before n1 when it exists; only its key color is
// consulted, by the thumb-on-black rule.
func pairPenalties(n1, n2 noteInfo, prev *noteInfo, ctx evalContext) float64 {
	w := ctx.weights
	penalty := 0.0

	penalty += ruleSix(n1.finger, n2.finger, w.Rule(6))
	penalty += ruleSeven(n1.finger, n1.black, n2.finger, n2.black, w.Rule(7))

	var prevBlack *bool
	if prev != nil {
		prevBlack = &prev.black
	}
	nextBlack := n2.black
	penalty += ruleEight(n1.finger, n1.black, prevBlack, &nextBlack, w.Rule(8))

	penalty += ruleNine(n1.finger, n1.black, n2.black, w.Rule(9))
	penalty += ruleNine(n2.finger, n2.black, n1.black, w.Rule(9))

	crossing := isCrossing(n1.finger, n1.pitch, n2.finger, n2.pitch, ctx.hand)
	penalty += ruleTen(crossing, n1.black, n2.black, w.Rule(10))

	lower, higher := orderByPitch(n1, n2)
	penalty += ruleEleven(lower, higher, w.Rule(11))

	d := ctx.distances.Pair(configuration.PairOf(n1.finger, n2.finger))
	penalty += CascadingPenalty(d, n2.pitch-n1.pitch, w)

	penalty += customPenalties(n1, n2, ctx.rules)

	return penalty
}

// customPenalties runs the user-supplied transition rules on one pair.
// An evaluation failure is logged and the rule skipped, so a bad rule never
// poisons the whole score.
func customPenalties(n1, n2 noteInfo, rules []rule.Rule) float64 {
	if len(rules) == 0 {
		return 0
	}

	transition := rule.Transition{
		"finger1":  int64(n1.finger),
		"finger2":  int64(n2.finger),
		"pitch1":   int64(n1.pitch),
		"pitch2":   int64(n2.pitch),
		"black1":   n1.black,
		"black2":   n2.black,
		"distance": int64(n2.pitch - n1.pitch),
	}

	penalty := 0.0
	for i := range rules {
		delta, err := rules[i].Eval(transition)
		if err != nil {
			slog.Error("transition rule eval", "error", err, "rule", rules[i].Name)
			continue
		}
		penalty += delta
	}

	return penalty
}

// tripletPenalties applies the three-note rules to a consecutive triplet of
// primary notes.
func tripletPenalties(n1, n2, n3 noteInfo, distances *configuration.DistanceMatrix,
	weights *configuration.RuleWeights) float64 {
	penalty := 0.0

	t := triplet{n1.pitch, n2.pitch, n3.pitch, n1.finger, n2.finger, n3.finger}

	leading := distances.Pair(configuration.PairOf(n1.finger, n2.finger))
	penalty += ruleThree(leading, t, weights.Rule(3))

	span := n3.pitch - n1.pitch
	outer := distances.Pair(configuration.PairOf(n1.finger, n3.finger))
	penalty += ruleFour(outer, span, weights.Rule(4))

	penalty += ruleTwelve(t, weights.Rule(12))

	penalty += ruleFifteen(n1.finger, n2.finger, n1.pitch, n2.pitch, weights.Rule(15))

	return penalty
}

// Evaluate computes the full ergonomic score of a finger assignment for one
// hand. fingerings[i] belongs to the i-th playable slice in measure order.
// Lower is better; zero means no rule fired. The computed primary-note
// sequence is cached for a subsequent EvaluateDelta call.
func (e *Evaluator) Evaluate(piece *music.Piece, fingerings []music.Fingering, hand music.Hand) float64 {
	ctx := e.context(hand)
	measures := piece.Measures(hand)

	notes := collectNotes(measures, fingerings)

	total := singleNotePenalties(measures, fingerings, ctx.weights)

	if len(notes) > 1 {
		for i := range notes {
			if i+1 < len(notes) {
				var prev *noteInfo
				if i > 0 {
					prev = &notes[i-1]
				}
				total += pairPenalties(notes[i], notes[i+1], prev, ctx)
			}
			if i+2 < len(notes) {
				total += tripletPenalties(notes[i], notes[i+1], notes[i+2], ctx.distances, ctx.weights)
			}
		}
	}

	total += chordPenalties(measures, fingerings, ctx.distances, ctx.weights)

	e.cache = &cacheData{
		notes:          notes,
		fingeringCount: len(fingerings),
		hand:           hand,
	}

	return total
}

// noteAtLocation resolves the changed note under one fingering. It returns
// false when the location is out of range or the note has no assigned
// finger.
func noteAtLocation(measures []music.Measure, fingerings []music.Fingering,
	location SliceLocation) (noteInfo, bool) {
	if location.Measure < 0 || location.Measure >= len(measures) {
		return noteInfo{}, false
	}
	measure := measures[location.Measure]
	if location.Slice < 0 || location.Slice >= measure.Len() {
		return noteInfo{}, false
	}
	slice := measure.At(location.Slice)
	if location.Fingering < 0 || location.Fingering >= len(fingerings) {
		return noteInfo{}, false
	}
	fingering := fingerings[location.Fingering]

	nonRest := 0
	for i := 0; i < slice.Len(); i++ {
		note := slice.At(i)
		if note.IsRest() {
			continue
		}
		if nonRest == location.Note {
			if nonRest < fingering.Len() {
				if finger, ok := fingering.At(nonRest); ok {
					return noteInfo{
						finger: finger,
						pitch:  note.AbsolutePitch(),
						black:  note.Pitch().IsBlackKey(),
					}, true
				}
			}
			return noteInfo{}, false
		}
		nonRest++
	}

	return noteInfo{}, false
}

// sequentialDeltaPenalties recomputes every pair and triplet window touching
// the changed primary note under both fingerings, accumulating into
// oldPenalty and newPenalty.
func sequentialDeltaPenalties(idx int, oldChanged, newChanged noteInfo,
	oldNotes, newNotes []noteInfo, ctx evalContext, oldPenalty, newPenalty *float64) {
	// Pair [prev, changed]
	if idx > 0 {
		var prevPrevOld, prevPrevNew *noteInfo
		if idx >= 2 {
			prevPrevOld = &oldNotes[idx-2]
			prevPrevNew = &newNotes[idx-2]
		}
		*oldPenalty += pairPenalties(oldNotes[idx-1], oldChanged, prevPrevOld, ctx)
		*newPenalty += pairPenalties(newNotes[idx-1], newChanged, prevPrevNew, ctx)
	}

	// Pair [changed, next]
	if idx+1 < len(oldNotes) && idx+1 < len(newNotes) {
		var prevOld, prevNew *noteInfo
		if idx > 0 {
			prevOld = &oldNotes[idx-1]
			prevNew = &newNotes[idx-1]
		}
		*oldPenalty += pairPenalties(oldChanged, oldNotes[idx+1], prevOld, ctx)
		*newPenalty += pairPenalties(newChanged, newNotes[idx+1], prevNew, ctx)
	}

	// Triplet [prev, changed, next]
	if idx > 0 && idx+1 < len(oldNotes) && idx+1 < len(newNotes) {
		*oldPenalty += tripletPenalties(oldNotes[idx-1], oldChanged, oldNotes[idx+1], ctx.distances, ctx.weights)
		*newPenalty += tripletPenalties(newNotes[idx-1], newChanged, newNotes[idx+1], ctx.distances, ctx.weights)
	}

	// Triplet [changed, next, next+1]
	if idx+2 < len(oldNotes) && idx+2 < len(newNotes) {
		*oldPenalty += tripletPenalties(oldChanged, oldNotes[idx+1], oldNotes[idx+2], ctx.distances, ctx.weights)
		*newPenalty += tripletPenalties(newChanged, newNotes[idx+1], newNotes[idx+2], ctx.distances, ctx.weights)
	}

	// Triplet [prev-1, prev, changed]
	if idx >= 2 {
		*oldPenalty += tripletPenalties(oldNotes[idx-2], oldNotes[idx-1], oldChanged, ctx.distances, ctx.weights)
		*newPenalty += tripletPenalties(newNotes[idx-2], newNotes[idx-1], newChanged, ctx.distances, ctx.weights)
	}
}

// chordDeltaPenalties recomputes the chord penalty of the changed slice only.
// All other chords are untouched by a single-note change.
func chordDeltaPenalties(location SliceLocation, measures []music.Measure,
	current, proposed []music.Fingering, distances *configuration.DistanceMatrix,
	weights *configuration.RuleWeights, oldPenalty, newPenalty *float64) {
	if location.Measure < 0 || location.Measure >= len(measures) {
		return
	}
	measure := measures[location.Measure]
	if location.Slice < 0 || location.Slice >= measure.Len() {
		return
	}
	slice := measure.At(location.Slice)
	if slice.Len() <= 1 {
		return
	}
	if location.Fingering >= len(current) || location.Fingering >= len(proposed) {
		return
	}
	*oldPenalty += chordSlicePenalty(slice, current[location.Fingering], distances, weights)
	*newPenalty += chordSlicePenalty(slice, proposed[location.Fingering], distances, weights)
}

// EvaluateDelta returns Evaluate(proposed) - Evaluate(current) while only
// recomputing the windows around the changed note. current and proposed must
// differ in at most the one note addressed by location. When the location
// cannot be resolved under either fingering, the method falls back to two
// full evaluations, which leaves the cache valid for the current fingering.
// A successful delta evaluation leaves the cache untouched.
func (e *Evaluator) EvaluateDelta(piece *music.Piece, current, proposed []music.Fingering,
	location SliceLocation, hand music.Hand) float64 {
	ctx := e.context(hand)
	measures := piece.Measures(hand)

	oldChanged, oldOK := noteAtLocation(measures, current, location)
	newChanged, newOK := noteAtLocation(measures, proposed, location)

	if !oldOK || !newOK {
		newScore := e.Evaluate(piece, proposed, hand)
		oldScore := e.Evaluate(piece, current, hand)
		return newScore - oldScore
	}

	oldPenalty := 0.0
	newPenalty := 0.0

	// The single-note rule touches only the changed note.
	oldPenalty += ruleFive(oldChanged.finger, ctx.weights.Rule(5))
	newPenalty += ruleFive(newChanged.finger, ctx.weights.Rule(5))

	var oldNotes []noteInfo
	if e.cache != nil && e.cache.fingeringCount == len(current) && e.cache.hand == hand {
		oldNotes = e.cache.notes
	} else {
		oldNotes = collectNotes(measures, current)
	}

	newNotes := collectNotes(measures, proposed)

	idx := location.Fingering
	if idx >= len(oldNotes) || idx >= len(newNotes) {
		newScore := e.Evaluate(piece, proposed, hand)
		oldScore := e.Evaluate(piece, current, hand)
		return newScore - oldScore
	}

	// Sequential rules see only the primary note of each slice. A change to
	// an inner chord note affects the chord penalty and the single-note rule
	// alone.
	if location.Note == 0 {
		sequentialDeltaPenalties(idx, oldChanged, newChanged, oldNotes, newNotes, ctx,
			&oldPenalty, &newPenalty)
	}

	chordDeltaPenalties(location, measures, current, proposed, ctx.distances, ctx.weights,
		&oldPenalty, &newPenalty)

	return newPenalty - oldPenalty
}

package score

import (
	"handspan/internal/configuration"
	"handspan/internal/music"
)

// noteInfo carries the attributes the rules need from one note.
type noteInfo struct {
	finger music.Finger
	pitch  int
	black  bool
}

// triplet groups three consecutive notes for the three-note rules.
type triplet struct {
	p1, p2, p3 int
	f1, f2, f3 music.Finger
}

// isMonotonic reports whether the middle pitch lies between the outer two,
// endpoints included.
func isMonotonic(p1, p2, p3 int) bool {
	return (p1 <= p2 && p2 <= p3) || (p3 <= p2 && p2 <= p1)
}

// isCrossing reports whether two consecutive notes form a thumb crossing:
// exactly one of the fingers is the thumb, and the thumb plays the note that
// lies on the far side for its hand (above for the right hand, below for the
// left).
func isCrossing(f1 music.Finger, p1 int, f2 music.Finger, p2 int, hand music.Hand) bool {
	if (f1 == music.Thumb) == (f2 == music.Thumb) {
		return false
	}
	thumbPitch, otherPitch := p1, p2
	if f2 == music.Thumb {
		thumbPitch, otherPitch = p2, p1
	}
	if hand == music.RightHand {
		return thumbPitch > otherPitch
	}
	return thumbPitch < otherPitch
}

// CascadingPenalty scores a sequential stretch against the three nested
// tolerance shells. The relaxed shell is checked first; the comfort shell
// only when relaxed is violated; the practical shell only when comfort is
// violated too. Each violated shell contributes its excess times its own
// rule weight, so the penalties stack for severe stretches.
func CascadingPenalty(d configuration.FingerPairDistances, distance int, w *configuration.RuleWeights) float64 {
	return shellPenalty(d, distance, w.Rule(2), w.Rule(1), w.Rule(13))
}

// ChordPenalty scores a simultaneous stretch with the same nested shells,
// but the relaxed and comfort contributions are doubled. The practical
// contribution is not: at extreme stretches a chord is no worse than a leap.
func ChordPenalty(d configuration.FingerPairDistances, distance int, w *configuration.RuleWeights) float64 {
	return shellPenalty(d, distance, 2*w.Rule(2), 2*w.Rule(1), w.Rule(13))
}

func shellPenalty(d configuration.FingerPairDistances, distance int, relaxed, comfort, practical float64) float64 {
	penalty := 0.0
	switch {
	case distance < d.MinRel:
		penalty += float64(d.MinRel-distance) * relaxed
		if distance < d.MinComf {
			penalty += float64(d.MinComf-distance) * comfort
			if distance < d.MinPrac {
				penalty += float64(d.MinPrac-distance) * practical
			}
		}
	case distance > d.MaxRel:
		penalty += float64(distance-d.MaxRel) * relaxed
		if distance > d.MaxComf {
			penalty += float64(distance-d.MaxComf) * comfort
			if distance > d.MaxPrac {
				penalty += float64(distance-d.MaxPrac) * practical
			}
		}
	}
	return penalty
}

// Rule 3: hand position change within a triplet. The first-to-third span is
// checked against the thresholds of the leading finger pair. An uncomfortable
// span costs the base weight; if the passage is also monotonic with the thumb
// in the middle and the span leaves the practical range, it costs the weight
// again. A silent substitution (same outer pitch, different outer fingers)
// costs the weight independently.
func ruleThree(d configuration.FingerPairDistances, t triplet, weight float64) float64 {
	penalty := 0.0
	span := t.p3 - t.p1

	if span < d.MinComf || span > d.MaxComf {
		penalty += weight
		if isMonotonic(t.p1, t.p2, t.p3) && t.f2 == music.Thumb {
			if span < d.MinPrac || span > d.MaxPrac {
				penalty += weight
			}
		}
	}

	if t.p1 == t.p3 && t.f1 != t.f3 {
		penalty += weight
	}

	return penalty
}

// Rule 4: the first-to-third span, checked against the outer finger pair's
// comfort range, costs the weight per unit of excess.
func ruleFour(d configuration.FingerPairDistances, span int, weight float64) float64 {
	switch {
	case span < d.MinComf:
		return float64(d.MinComf-span) * weight
	case span > d.MaxComf:
		return float64(span-d.MaxComf) * weight
	}
	return 0
}

// Rule 5: the ring finger is weak.
func ruleFive(f music.Finger, weight float64) float64 {
	if f == music.Ring {
		return weight
	}
	return 0
}

// Rule 6: middle and ring in direct succession.
func ruleSix(f1, f2 music.Finger, weight float64) float64 {
	if (f1 == music.Middle && f2 == music.Ring) || (f1 == music.Ring && f2 == music.Middle) {
		return weight
	}
	return 0
}

// Rule 7: middle on white against ring on black, in either order.
func ruleSeven(f1 music.Finger, black1 bool, f2 music.Finger, black2 bool, weight float64) float64 {
	if f1 == music.Middle && !black1 && f2 == music.Ring && black2 {
		return weight
	}
	if f1 == music.Ring && black1 && f2 == music.Middle && !black2 {
		return weight
	}
	return 0
}

// Rule 8: thumb on a black key. The base weight applies regardless of
// context; each existing neighbor on a white key adds a further 1.0. Both
// neighbors are checked independently, so a thumb between two white keys
// pays twice.
func ruleEight(f music.Finger, black bool, prevBlack, nextBlack *bool, weight float64) float64 {
	if f != music.Thumb || !black {
		return 0
	}
	penalty := weight
	if prevBlack != nil && !*prevBlack {
		penalty += 1.0
	}
	if nextBlack != nil && !*nextBlack {
		penalty += 1.0
	}
	return penalty
}

// Rule 9: pinky on a black key next to a white one.
func ruleNine(f music.Finger, black bool, otherBlack bool, weight float64) float64 {
	if f == music.Pinky && black && !otherBlack {
		return weight
	}
	return 0
}

// Rule 10: a thumb crossing where both keys share a color.
func ruleTen(crossing bool, black1, black2 bool, weight float64) float64 {
	if crossing && black1 == black2 {
		return weight
	}
	return 0
}

// Rule 11: a non-thumb finger on a white key below the thumb on a black key.
func ruleEleven(lower, higher noteInfo, weight float64) float64 {
	if lower.finger != music.Thumb && !lower.black && higher.finger == music.Thumb && higher.black {
		return weight
	}
	return 0
}

// Rule 12: the same finger reused on two different pitches with the middle
// pitch between them.
func ruleTwelve(t triplet, weight float64) float64 {
	if t.f1 == t.f3 && t.p1 != t.p3 && isMonotonic(t.p1, t.p2, t.p3) {
		return weight
	}
	return 0
}

// Rule 15: the same pitch struck again with a different finger.
func ruleFifteen(f1, f2 music.Finger, p1, p2 int, weight float64) float64 {
	if p1 == p2 && f1 != f2 {
		return weight
	}
	return 0
}

// orderByPitch returns the two notes as (lower, higher).
func orderByPitch(n1, n2 noteInfo) (noteInfo, noteInfo) {
	if n1.pitch < n2.pitch {
		return n1, n2
	}
	return n2, n1
}

// SPDX-License-Identifier: MIT
package analysis

import "math"

// Stabilizer smooths successive chromagrams and decides when a recognition
// result is worth surfacing. It is owned by the analysis loop and carries
// its state across cycles; it is not safe for concurrent use.
//
// Per cycle: smooth the incoming chroma, match it, suppress the label below
// the confidence threshold, then emit only when the label changed or a
// non-sentinel label moved in confidence by more than the emit delta. The
// smoothed chroma always advances; the last-emitted record advances only on
// emission, which is what suppresses flicker between cycles.
type Stabilizer struct {
	alpha         float64 // Weight on history in the exponential smoothing
	confidenceMin float64 // Below this the label collapses to the sentinel
	emitDelta     float64 // Confidence movement that forces a re-emission

	smoothed    Chromagram
	hasSmoothed bool

	lastLabel      string
	lastConfidence float64
}

// NewStabilizer creates a Stabilizer with the given smoothing factor,
// confidence threshold, and re-emission delta.
func NewStabilizer(alpha, confidenceMin, emitDelta float64) *Stabilizer {
	return &Stabilizer{
		alpha:         alpha,
		confidenceMin: confidenceMin,
		emitDelta:     emitDelta,
		lastLabel:     NoChordLabel,
	}
}

// Advance runs one stabilization cycle on a fresh Chromagram. It returns
// the thresholded result and whether it should be surfaced to the display.
func (s *Stabilizer) Advance(chroma Chromagram) (ChordResult, bool) {
	if !s.hasSmoothed {
		s.smoothed = chroma
		s.hasSmoothed = true
	} else {
		for i := range s.smoothed {
			s.smoothed[i] = s.alpha*s.smoothed[i] + (1-s.alpha)*chroma[i]
		}
	}

	result := Match(s.smoothed)

	// The confidence is kept for display even when the label is suppressed.
	if result.Confidence < s.confidenceMin {
		result.Label = NoChordLabel
	}

	emit := result.Label != s.lastLabel ||
		(result.Label != NoChordLabel && math.Abs(result.Confidence-s.lastConfidence) > s.emitDelta)

	if emit {
		s.lastLabel = result.Label
		s.lastConfidence = result.Confidence
	}

	return result, emit
}

// Smoothed returns the current smoothed Chromagram.
func (s *Stabilizer) Smoothed() Chromagram {
	return s.smoothed
}

// SPDX-License-Identifier: MIT
package analysis

// NoChordLabel is the sentinel emitted when no template explains the input.
const NoChordLabel = "—"

// NoteNames are the pitch-class labels in chromatic order, C=0.
var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Triad scale-degree offsets from the root, mod 12.
var (
	majorOffsets = [3]int{0, 4, 7}
	minorOffsets = [3]int{0, 3, 7}
)

// Template is an idealized chroma pattern for one major or minor triad.
// Templates are immutable after construction.
type Template struct {
	Label   string
	degrees [3]int // Pitch classes of the triad notes
}

// Vector returns the template as a binary 12-element chroma pattern.
func (t Template) Vector() Chromagram {
	var v Chromagram
	for _, d := range t.degrees {
		v[d] = 1
	}
	return v
}

// templates is the fixed bank of 24 triads, built once at process start.
// Iteration order is deterministic: for each root 0..11, major then minor.
// Ties during matching resolve to the first template reaching the maximum,
// so lowest root wins, major before minor.
var templates = buildTemplates()

func buildTemplates() []Template {
	bank := make([]Template, 0, 24)
	for root := 0; root < 12; root++ {
		maj := Template{Label: NoteNames[root]}
		min := Template{Label: NoteNames[root] + "m"}
		for i := 0; i < 3; i++ {
			maj.degrees[i] = (root + majorOffsets[i]) % 12
			min.degrees[i] = (root + minorOffsets[i]) % 12
		}
		bank = append(bank, maj, min)
	}
	return bank
}

// Templates returns the immutable template bank in iteration order.
func Templates() []Template {
	return templates
}

// ChordResult is a recognized label with its confidence. Confidence is the
// fraction of the input's pitch-class energy falling on the matched triad's
// notes, in [0,1]; it is not a probability.
type ChordResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Match scores a Chromagram against every template and returns the best
// label with its confidence. An all-zero (or degenerate) input returns the
// sentinel with confidence 0.
func Match(chroma Chromagram) ChordResult {
	// Defensive: clamp negatives and re-normalize so the score stays a
	// fraction of total energy.
	var sum float64
	for i, v := range chroma {
		if v < 0 {
			chroma[i] = 0
			v = 0
		}
		sum += v
	}
	if sum > 0 {
		for i := range chroma {
			chroma[i] /= sum
		}
	}

	best := ChordResult{Label: NoChordLabel, Confidence: 0}
	for _, tpl := range templates {
		score := chroma[tpl.degrees[0]] + chroma[tpl.degrees[1]] + chroma[tpl.degrees[2]]
		if score > best.Confidence {
			best.Confidence = score
			best.Label = tpl.Label
		}
	}

	// Rounding slack from the normalization above must not push the
	// confidence past 1.
	if best.Confidence > 1 {
		best.Confidence = 1
	}

	return best
}

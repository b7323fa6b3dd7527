// SPDX-License-Identifier: MIT
package analysis

import "testing"

func TestTemplateBankShape(t *testing.T) {
	bank := Templates()
	if len(bank) != 24 {
		t.Fatalf("template bank has %d entries, want 24", len(bank))
	}

	// Fixed iteration order: for each root, major then minor.
	if bank[0].Label != "C" || bank[1].Label != "Cm" {
		t.Errorf("bank starts %q, %q; want C, Cm", bank[0].Label, bank[1].Label)
	}
	if bank[22].Label != "B" || bank[23].Label != "Bm" {
		t.Errorf("bank ends %q, %q; want B, Bm", bank[22].Label, bank[23].Label)
	}

	for _, tpl := range bank {
		v := tpl.Vector()
		ones := 0
		for _, x := range v {
			if x == 1 {
				ones++
			}
		}
		if ones != 3 {
			t.Errorf("template %s has %d active pitch classes, want 3", tpl.Label, ones)
		}
	}
}

func TestMatchSelfTemplates(t *testing.T) {
	// Every template matched against its own pattern scores a full 1.0.
	for _, tpl := range Templates() {
		t.Run(tpl.Label, func(t *testing.T) {
			result := Match(tpl.Vector())
			if result.Label != tpl.Label {
				t.Errorf("label = %q, want %q", result.Label, tpl.Label)
			}
			if result.Confidence < 0.999999 {
				t.Errorf("confidence = %f, want 1.0", result.Confidence)
			}
		})
	}
}

func TestMatchZeroChroma(t *testing.T) {
	result := Match(Chromagram{})
	if result.Label != NoChordLabel {
		t.Errorf("label = %q, want the sentinel %q", result.Label, NoChordLabel)
	}
	if result.Confidence != 0 {
		t.Errorf("confidence = %f, want 0", result.Confidence)
	}
}

func TestMatchNegativeClamping(t *testing.T) {
	// Negative energy is clamped before scoring; only pitch class 0
	// survives, and every template containing C explains all of it.
	chroma := Chromagram{0.5, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
	result := Match(chroma)
	if result.Label != "C" {
		t.Errorf("label = %q, want %q", result.Label, "C")
	}
	if result.Confidence < 0.999999 {
		t.Errorf("confidence = %f, want 1.0", result.Confidence)
	}
}

func TestMatchTieBreakOrder(t *testing.T) {
	// C major {0,4,7} and A minor {9,0,4} share pitch classes 0 and 4.
	// Equal energy on only those two classes ties the scores; the first
	// template in iteration order (lowest root, major first) must win.
	chroma := Chromagram{}
	chroma[0] = 0.5
	chroma[4] = 0.5

	result := Match(chroma)
	if result.Label != "C" {
		t.Errorf("tie resolved to %q, want %q (first in iteration order)", result.Label, "C")
	}
}

func TestMatchConfidenceIsEnergyFraction(t *testing.T) {
	// 70% of the energy on a G major triad, 30% elsewhere.
	chroma := Chromagram{}
	chroma[7] = 0.30 // G
	chroma[11] = 0.20 // B
	chroma[2] = 0.20  // D
	chroma[5] = 0.30  // F, outside the triad

	result := Match(chroma)
	if result.Label != "G" {
		t.Fatalf("label = %q, want %q", result.Label, "G")
	}
	if diff := result.Confidence - 0.70; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("confidence = %f, want 0.70", result.Confidence)
	}
}

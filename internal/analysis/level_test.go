package analysis

import (
	"math"
	"testing"
)

func TestRMS(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Errorf("RMS(nil) = %f, want 0", got)
	}
	if got := RMS(make([]float32, 64)); got != 0 {
		t.Errorf("RMS(silence) = %f, want 0", got)
	}

	// A full-scale square wave has RMS 1.
	square := make([]float32, 64)
	for i := range square {
		if i%2 == 0 {
			square[i] = 1
		} else {
			square[i] = -1
		}
	}
	if got := RMS(square); math.Abs(got-1) > 1e-9 {
		t.Errorf("RMS(square) = %f, want 1", got)
	}

	// A sine wave has RMS amplitude/sqrt(2).
	sine := make([]float32, 1000)
	for i := range sine {
		sine[i] = float32(0.5 * math.Sin(2*math.Pi*float64(i)/100))
	}
	want := 0.5 / math.Sqrt2
	if got := RMS(sine); math.Abs(got-want) > 1e-3 {
		t.Errorf("RMS(sine) = %f, want %f", got, want)
	}
}

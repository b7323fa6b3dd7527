// Package utils provides shared test fixtures: synthetic signal generators
// and a transport double that records what the engine emitted.
package utils

import (
	"math"

	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/transport"
)

// MockTransport implements transport.Transport for testing, recording every
// update it receives.
type MockTransport struct {
	Updates []transport.Update
	Closed  bool
}

// Send stores the update for later inspection instead of transmitting.
func (m *MockTransport) Send(u transport.Update) error {
	m.Updates = append(m.Updates, u)
	return nil
}

// Close marks the transport closed.
func (m *MockTransport) Close() error {
	m.Closed = true
	return nil
}

var _ transport.Transport = (*MockTransport)(nil)

// GenerateSineWave returns size samples of a sine at the given frequency,
// peak amplitude 0.9.
func GenerateSineWave(size int, sampleRate, frequency float64) []float32 {
	buffer := make([]float32, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = float32(math.Sin(2*math.Pi*frequency*t) * 0.9)
	}
	return buffer
}

// GenerateChordWave returns size samples of the equal-amplitude sum of the
// given tones, scaled so the peak stays inside [-1, 1].
func GenerateChordWave(size int, sampleRate float64, frequencies ...float64) []float32 {
	buffer := make([]float32, size)
	if len(frequencies) == 0 {
		return buffer
	}
	scale := 0.9 / float64(len(frequencies))
	for i := range buffer {
		t := float64(i) / sampleRate
		var signal float64
		for _, f := range frequencies {
			signal += math.Sin(2 * math.Pi * f * t)
		}
		buffer[i] = float32(signal * scale)
	}
	return buffer
}

// CMajorTriad are the fundamental frequencies of C4, E4, and G4.
var CMajorTriad = []float64{261.63, 329.63, 392.00}

// AMinorTriad are the fundamental frequencies of A4, C5, and E5.
var AMinorTriad = []float64{440.00, 523.25, 659.25}

// SPDX-License-Identifier: MIT
/*
Package analysis implements the chord recognition pipeline: chroma
extraction from raw samples, template matching against the 24 major/minor
triads, and temporal stabilization of the recognized label.

The extractor pre-allocates all FFT buffers; a single Extractor instance is
owned by the analysis loop and is not safe for concurrent use.
*/
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/nojokecox2102-crypto/quantum-chord-display/pkg/bitint"
)

// Chromagram is a 12-bin pitch-class energy vector (C=0 .. B=11). After
// extraction it is normalized to sum 1, or all-zero when the input carried
// no usable energy.
type Chromagram [12]float64

// Sum returns the total energy across all pitch classes.
func (c Chromagram) Sum() float64 {
	var s float64
	for _, v := range c {
		s += v
	}
	return s
}

const (
	// minFreq is the lower bound for bins contributing to the chromagram.
	// Content below this is rumble, not pitch.
	minFreq = 20.0

	// magnitudeFloor discards bins whose magnitude is numerically negligible.
	magnitudeFloor = 1e-10

	// referencePitch and referenceFreq anchor the frequency-to-pitch mapping
	// (A4 = 440 Hz, MIDI note 69).
	referencePitch = 69.0
	referenceFreq  = 440.0
)

// chromaWorkspace holds pre-allocated buffers for the STFT.
type chromaWorkspace struct {
	frame     []float64    // Windowed, mean-removed input frame
	fftOutput []complex128 // FFT complex results
	magnitude []float64    // Magnitude spectrum
	window    []float64    // Hann coefficients
}

// Extractor converts blocks of raw samples into Chromagrams using a
// Hann-windowed STFT with a hop of a quarter frame.
type Extractor struct {
	fft        *fourier.FFT
	fftSize    int
	hop        int
	sampleRate float64
	pitchClass []int // Per-bin pitch class, -1 for bins outside (minFreq, Nyquist]
	workspace  chromaWorkspace
}

// NewExtractor creates an Extractor for the given frame length and sample
// rate. The frame length must be a power of 2.
func NewExtractor(fftSize int, sampleRate float64) (*Extractor, error) {
	if !bitint.IsPowerOfTwo(fftSize) {
		return nil, fmt.Errorf("fft size must be a power of 2, got %d", fftSize)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %f", sampleRate)
	}

	windowCoeffs := make([]float64, fftSize)
	for i := range windowCoeffs {
		windowCoeffs[i] = 1.0
	}
	window.Hann(windowCoeffs)

	// FFT output size for real input is N/2 + 1 complex values.
	outputSize := fftSize/2 + 1
	nyquist := sampleRate / 2
	freqStep := sampleRate / float64(fftSize)

	// Pre-compute the bin to pitch-class mapping once. The mapping uses the
	// exact continuous formula, not a quantized lookup table, so boundary
	// frequencies round consistently.
	pitchClass := make([]int, outputSize)
	for i := range pitchClass {
		freq := float64(i) * freqStep
		if freq < minFreq || freq > nyquist {
			pitchClass[i] = -1
			continue
		}
		pitchClass[i] = pitchClassOf(freq)
	}

	return &Extractor{
		fft:        fourier.NewFFT(fftSize),
		fftSize:    fftSize,
		hop:        fftSize / 4,
		sampleRate: sampleRate,
		pitchClass: pitchClass,
		workspace: chromaWorkspace{
			frame:     make([]float64, fftSize),
			fftOutput: make([]complex128, outputSize),
			magnitude: make([]float64, outputSize),
			window:    windowCoeffs,
		},
	}, nil
}

// pitchClassOf maps a frequency to its pitch class via
// pitch = 69 + 12*log2(f/440), rounded half away from zero.
func pitchClassOf(freq float64) int {
	pitch := referencePitch + 12.0*math.Log2(freq/referenceFreq)
	pc := int(math.Round(pitch)) % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// Extract computes the Chromagram for a block of samples. Blocks shorter
// than one frame yield the all-zero Chromagram. The result is the
// frame-averaged, sum-normalized pitch-class energy of the block.
func (e *Extractor) Extract(samples []float32) Chromagram {
	var chroma Chromagram

	if len(samples) < e.fftSize {
		return chroma
	}

	// DC offset removal uses the mean of the whole block, not per frame.
	var mean float64
	for _, s := range samples {
		mean += float64(s)
	}
	mean /= float64(len(samples))

	frames := 0
	for start := 0; start+e.fftSize <= len(samples); start += e.hop {
		for i := 0; i < e.fftSize; i++ {
			e.workspace.frame[i] = (float64(samples[start+i]) - mean) * e.workspace.window[i]
		}

		e.fft.Coefficients(e.workspace.fftOutput, e.workspace.frame)
		for i, c := range e.workspace.fftOutput {
			e.workspace.magnitude[i] = cmplx.Abs(c)
		}

		for i, pc := range e.pitchClass {
			if pc < 0 || e.workspace.magnitude[i] < magnitudeFloor {
				continue
			}
			chroma[pc] += e.workspace.magnitude[i]
		}
		frames++
	}

	if frames > 0 {
		for i := range chroma {
			chroma[i] /= float64(frames)
		}
	}

	if total := chroma.Sum(); total > 0 {
		for i := range chroma {
			chroma[i] /= total
		}
	}

	return chroma
}

// FFTSize returns the configured analysis frame length.
func (e *Extractor) FFTSize() int {
	return e.fftSize
}

// SampleRate returns the configured sample rate (Hz).
func (e *Extractor) SampleRate() float64 {
	return e.sampleRate
}

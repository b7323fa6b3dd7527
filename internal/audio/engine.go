// SPDX-License-Identifier: MIT
package audio

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gordonklaus/portaudio"

	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/analysis"
	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/config"
	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/log"
	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/transport"
)

// Engine wires the capture producer to the analysis consumer. The capture
// stream pushes every block into the RingBuffer; Run polls the buffer on a
// fixed interval, extracts a chromagram from the most recent window, runs
// the stabilizer, and fans surfaced results out to the sinks.
//
// The RingBuffer is the only state shared between the two sides.
type Engine struct {
	config      *config.Config
	inputDevice *portaudio.DeviceInfo
	ring        *RingBuffer
	capture     Capture
	extractor   *analysis.Extractor
	stabilizer  *analysis.Stabilizer
	sinks       []transport.Transport

	// Recording state. isRecording gates the capture-thread write path.
	isRecording int32
	outputFile  *os.File
	wavEncoder  *wav.Encoder
	sampleBuf   *goaudio.IntBuffer
}

// NewEngine creates an Engine for the given configuration. Surfaced results
// are sent to every sink; sinks are owned by the caller and not closed here.
func NewEngine(cfg *config.Config, sinks ...transport.Transport) (*Engine, error) {
	inputDevice, err := InputDevice(cfg.Audio.DeviceID)
	if err != nil {
		return nil, err
	}

	extractor, err := analysis.NewExtractor(cfg.Analysis.FFTSize, cfg.Audio.SampleRate)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config:      cfg,
		inputDevice: inputDevice,
		ring:        NewRingBuffer(cfg.WindowSamples()),
		extractor:   extractor,
		stabilizer: analysis.NewStabilizer(
			cfg.Analysis.Smoothing,
			cfg.Analysis.ConfidenceMin,
			cfg.Analysis.EmitDelta,
		),
		sinks: sinks,
	}
	e.capture = NewCapture(inputDevice, &cfg.Audio, e.handleSamples)

	log.Infof("Engine: device %q, %.0f Hz, %.2fs window (%d samples), fft %d",
		inputDevice.Name, cfg.Audio.SampleRate, cfg.Analysis.WindowSeconds,
		e.ring.Capacity(), cfg.Analysis.FFTSize)

	return e, nil
}

// StartInputStream opens and starts the capture stream. The first block
// delivered marks the start of the producer side.
func (e *Engine) StartInputStream() error {
	return e.capture.Start()
}

// handleSamples receives each mono capture block. Runs on the capture
// thread: push into the ring, optionally append to the recording, nothing
// else.
func (e *Engine) handleSamples(block []float32) {
	e.ring.Push(block)
	e.writeRecording(block)
}

// Run is the analysis loop. It polls the ring on the configured interval
// until done is closed. Errors never propagate out of the loop; degenerate
// input resolves to the sentinel result inside the pipeline.
func (e *Engine) Run(done <-chan struct{}) {
	interval := time.Duration(e.config.Analysis.PollIntervalMs) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	windowSamples := e.ring.Capacity()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}

		samples := e.ring.ReadLast(windowSamples)
		if len(samples) == 0 {
			continue
		}

		chroma := e.extractor.Extract(samples)
		result, emit := e.stabilizer.Advance(chroma)
		if !emit {
			continue
		}

		update := transport.Update{
			Label:      result.Label,
			Confidence: result.Confidence,
			Level:      analysis.RMS(samples),
		}
		log.Debugf("Engine: emit %s (level %.3f)", update, update.Level)
		for _, sink := range e.sinks {
			if err := sink.Send(update); err != nil {
				log.Warnf("Engine: sink send failed: %v", err)
			}
		}
	}
}

// StartRecording begins writing the raw mono capture to a 32-bit WAV file.
func (e *Engine) StartRecording(filename string) error {
	if atomic.LoadInt32(&e.isRecording) == 1 {
		return fmt.Errorf("already recording")
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	e.outputFile = file

	sampleRate := int(e.config.Audio.SampleRate)
	e.wavEncoder = wav.NewEncoder(file, sampleRate, 32, 1, 1)
	e.sampleBuf = &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data: make([]int, e.config.Audio.FramesPerBuffer),
	}

	atomic.StoreInt32(&e.isRecording, 1)
	log.Infof("Engine: recording to %s", filename)

	return nil
}

// writeRecording appends a block to the active recording, converting
// float32 [-1,1] to 32-bit integer PCM. Runs on the capture thread.
func (e *Engine) writeRecording(block []float32) {
	if atomic.LoadInt32(&e.isRecording) != 1 || e.wavEncoder == nil {
		return
	}

	if len(block) > cap(e.sampleBuf.Data) {
		block = block[:cap(e.sampleBuf.Data)]
	}
	e.sampleBuf.Data = e.sampleBuf.Data[:len(block)]
	for i, s := range block {
		e.sampleBuf.Data[i] = int(s * 0x7FFFFFFF)
	}

	if err := e.wavEncoder.Write(e.sampleBuf); err != nil {
		log.Errorf("Engine: WAV write failed: %v", err)
	}
}

// StopRecording finalizes and closes the recording file. Safe to call when
// no recording is active.
func (e *Engine) StopRecording() error {
	if atomic.LoadInt32(&e.isRecording) == 0 {
		return nil
	}
	atomic.StoreInt32(&e.isRecording, 0)

	if e.wavEncoder != nil {
		if err := e.wavEncoder.Close(); err != nil {
			return err
		}
		e.wavEncoder = nil
	}
	if e.outputFile != nil {
		if err := e.outputFile.Close(); err != nil {
			return err
		}
		e.outputFile = nil
	}

	return nil
}

// Close stops any active recording and the capture stream.
func (e *Engine) Close() error {
	if err := e.StopRecording(); err != nil {
		return err
	}
	return e.capture.Stop()
}

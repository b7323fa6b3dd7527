// SPDX-License-Identifier: MIT
package audio

import (
	"errors"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/config"
	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/log"
)

// Capture produces mono float32 samples at a fixed rate and hands each
// block to a handler. Two concrete implementations exist: a callback-driven
// stream and a blocking-read stream. Transient capture errors are logged
// and skipped; they never stop the stream.
type Capture interface {
	Start() error
	Stop() error
}

// captureParams builds the PortAudio stream parameters shared by both
// capture variants.
func captureParams(device *portaudio.DeviceInfo, cfg *config.AudioConfig) portaudio.StreamParameters {
	latency := device.DefaultHighInputLatency
	if cfg.LowLatency {
		latency = device.DefaultLowInputLatency
	}

	return portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: cfg.Channels,
			Latency:  latency,
		},
		FramesPerBuffer: cfg.FramesPerBuffer,
		SampleRate:      cfg.SampleRate,
	}
}

// NewCapture creates the capture variant selected by the configuration.
// The handler receives each mono block; for multi-channel input, channel 0
// is extracted. The handler must not retain the slice past the call.
func NewCapture(device *portaudio.DeviceInfo, cfg *config.AudioConfig, handler func([]float32)) Capture {
	if cfg.BlockingRead {
		return newBlockingCapture(device, cfg, handler)
	}
	return newCallbackCapture(device, cfg, handler)
}

// callbackCapture delivers samples from the PortAudio callback thread.
// The callback itself only deinterleaves and hands off; anything heavier
// belongs on the consumer side of the ring buffer.
type callbackCapture struct {
	params  portaudio.StreamParameters
	stream  *portaudio.Stream
	handler func([]float32)
	mono    []float32 // Pre-allocated channel-0 buffer
	chans   int
}

func newCallbackCapture(device *portaudio.DeviceInfo, cfg *config.AudioConfig, handler func([]float32)) *callbackCapture {
	return &callbackCapture{
		params:  captureParams(device, cfg),
		handler: handler,
		mono:    make([]float32, cfg.FramesPerBuffer),
		chans:   cfg.Channels,
	}
}

func (c *callbackCapture) Start() error {
	stream, err := portaudio.OpenStream(c.params, c.process)
	if err != nil {
		return err
	}
	c.stream = stream

	if err := c.stream.Start(); err != nil {
		c.stream.Close()
		c.stream = nil
		return err
	}

	log.Debugf("Capture: callback stream started (%d frames/buffer)", c.params.FramesPerBuffer)
	return nil
}

// process is the real-time audio callback. No allocations here.
func (c *callbackCapture) process(in []float32) {
	if c.chans == 1 {
		c.handler(in)
		return
	}

	frames := len(in) / c.chans
	if frames > len(c.mono) {
		frames = len(c.mono)
	}
	for i := range frames {
		c.mono[i] = in[i*c.chans]
	}
	c.handler(c.mono[:frames])
}

func (c *callbackCapture) Stop() error {
	if c.stream == nil {
		return nil
	}
	if err := c.stream.Stop(); err != nil {
		return err
	}
	err := c.stream.Close()
	c.stream = nil
	return err
}

// blockingCapture reads fixed-size blocks with stream.Read in a background
// goroutine. The goroutine is a daemon: Stop signals it, but process exit
// never waits on an in-flight read.
type blockingCapture struct {
	params  portaudio.StreamParameters
	stream  *portaudio.Stream
	handler func([]float32)
	buf     []float32
	mono    []float32
	chans   int
	done    chan struct{}
}

func newBlockingCapture(device *portaudio.DeviceInfo, cfg *config.AudioConfig, handler func([]float32)) *blockingCapture {
	return &blockingCapture{
		params:  captureParams(device, cfg),
		handler: handler,
		buf:     make([]float32, cfg.FramesPerBuffer*cfg.Channels),
		mono:    make([]float32, cfg.FramesPerBuffer),
		chans:   cfg.Channels,
	}
}

func (c *blockingCapture) Start() error {
	stream, err := portaudio.OpenStream(c.params, c.buf)
	if err != nil {
		return err
	}
	c.stream = stream

	if err := c.stream.Start(); err != nil {
		c.stream.Close()
		c.stream = nil
		return err
	}

	c.done = make(chan struct{})
	go c.readLoop()

	log.Debugf("Capture: blocking stream started (%d frames/buffer)", c.params.FramesPerBuffer)
	return nil
}

func (c *blockingCapture) readLoop() {
	for {
		select {
		case <-c.done:
			return
		default:
		}

		if err := c.stream.Read(); err != nil {
			if errors.Is(err, portaudio.InputOverflowed) {
				// Overflow means we were late; the ring keeps only the most
				// recent window anyway, so just carry on.
				log.Debugf("Capture: input overflow")
				continue
			}
			log.Errorf("Capture: read failed: %v", err)
			time.Sleep(10 * time.Millisecond)
			continue
		}

		if c.chans == 1 {
			c.handler(c.buf)
			continue
		}
		frames := len(c.buf) / c.chans
		for i := range frames {
			c.mono[i] = c.buf[i*c.chans]
		}
		c.handler(c.mono[:frames])
	}
}

func (c *blockingCapture) Stop() error {
	if c.stream == nil {
		return nil
	}
	close(c.done)
	if err := c.stream.Stop(); err != nil {
		return err
	}
	err := c.stream.Close()
	c.stream = nil
	return err
}

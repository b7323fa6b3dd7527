// SPDX-License-Identifier: MIT
/*
Package audio owns the capture side of the recognizer: the PortAudio
subsystem lifecycle, input device selection, the shared sample RingBuffer,
the capture stream implementations, and the Engine that wires capture to
the analysis loop.
*/
package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/config"
)

// Initialize sets up the PortAudio subsystem. Must be called before any
// audio operation and paired with Terminate. An error here means no capture
// backend is available, which is fatal at startup.
func Initialize() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("no audio backend available: %w", err)
	}
	return nil
}

// Terminate cleanly shuts down the PortAudio subsystem.
func Terminate() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}

// InputDevice retrieves the input device for the given ID, or the system
// default input device when id is config.MinDeviceID (-1).
func InputDevice(id int) (*portaudio.DeviceInfo, error) {
	if id == config.MinDeviceID {
		device, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("no default input device: %w", err)
		}
		return device, nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	if id < 0 || id >= len(devices) {
		return nil, fmt.Errorf("invalid device ID: %d", id)
	}
	if devices[id].MaxInputChannels < 1 {
		return nil, fmt.Errorf("device %d (%s) has no input channels", id, devices[id].Name)
	}
	return devices[id], nil
}

// ListDevices prints every available audio device with its type, channel
// counts, default sample rate, and latency range.
func ListDevices() error {
	devices, err := portaudio.Devices()
	if err != nil {
		return err
	}

	defaultInput, _ := portaudio.DefaultInputDevice()

	fmt.Printf("\nAvailable Audio Devices\n\n")
	for i, device := range devices {
		deviceType := ""
		switch {
		case device.MaxInputChannels > 0 && device.MaxOutputChannels > 0:
			deviceType = "Input/Output"
		case device.MaxInputChannels > 0:
			deviceType = "Input"
		case device.MaxOutputChannels > 0:
			deviceType = "Output"
		}

		marker := ""
		if defaultInput != nil && device.Name == defaultInput.Name {
			marker = " (default input)"
		}

		fmt.Printf("[%d] %s (%s)%s\n", i, device.Name, deviceType, marker)
		fmt.Printf("    Input channels: %d, Output channels: %d\n",
			device.MaxInputChannels, device.MaxOutputChannels)
		fmt.Printf("    Default sample rate: %.0f Hz\n", device.DefaultSampleRate)
		fmt.Printf("    Latency: Low=%.2fms, High=%.2fms\n\n",
			device.DefaultLowInputLatency.Seconds()*1000,
			device.DefaultHighInputLatency.Seconds()*1000)
	}

	return nil
}

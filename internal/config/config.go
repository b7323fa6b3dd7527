package config

// Core configuration constants that define the boundaries and defaults
// for the chord recognition pipeline.
const (
	// Default values for audio capture
	DefaultChannels        = 1 // Mono audio
	DefaultDeviceID        = MinDeviceID
	DefaultSampleRate      = 22050 // Guitar-range analysis rate
	DefaultFramesPerBuffer = 4096  // Capture block size in frames
	DefaultLowLatency      = false // Standard latency mode
	DefaultBlockingRead    = false // Callback stream by default

	// Default values for the analysis pipeline
	DefaultFFTSize        = 2048 // Analysis frame length (power of 2)
	DefaultWindowSeconds  = 0.75 // Ring buffer window in seconds
	DefaultSmoothing      = 0.7  // Chroma smoothing factor (weight on history)
	DefaultConfidenceMin  = 0.55 // Minimum confidence to surface a label
	DefaultEmitDelta      = 0.05 // Confidence change required to re-emit
	DefaultPollIntervalMs = 100  // Analysis loop period in milliseconds

	// Default values for output and recording
	DefaultRecordInputStream = false
	DefaultOutputFile        = "" // Auto-generated filename
	DefaultServeEnabled      = false
	DefaultServeAddr         = ":8080"
	DefaultCommand           = ""
	DefaultVerbosity         = false

	// Hardware and processing limits
	MinDeviceID   = -1     // -1 represents system default device
	MinSampleRate = 8000   // Minimum usable sample rate (Hz)
	MaxSampleRate = 192000 // Maximum supported sample rate (Hz)
	MaxFFTSize    = 8192   // Maximum analysis frame length (power of 2)
)

// Config holds all runtime configuration for the recognizer. It is built
// from defaults, optionally a YAML file, environment overrides, and finally
// command line flags.
type Config struct {
	LogLevel  string          `yaml:"log_level"` // "debug", "info", "warn", "error"
	Command   string          `yaml:"-"`         // One-off command (e.g. "list")
	TUIMode   bool            `yaml:"-"`         // Full-screen display enabled
	Plain     bool            `yaml:"-"`         // Console banners instead of the TUI
	Verbose   bool            `yaml:"-"`         // Shorthand for log_level: debug
	Audio     AudioConfig     `yaml:"audio"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Recording RecordingConfig `yaml:"recording"`
	Serve     ServeConfig     `yaml:"serve"`
}

// AudioConfig holds capture settings.
type AudioConfig struct {
	DeviceID        int     `yaml:"device"`            // PortAudio device index (-1 for default)
	Channels        int     `yaml:"channels"`          // Input channels (analysis uses channel 0)
	SampleRate      float64 `yaml:"sample_rate"`       // Capture rate in Hz
	FramesPerBuffer int     `yaml:"frames_per_buffer"` // Frames delivered per capture block
	LowLatency      bool    `yaml:"low_latency"`       // Request low latency from the device
	BlockingRead    bool    `yaml:"blocking_read"`     // Use the blocking read API instead of the callback stream
}

// AnalysisConfig holds chroma extraction and stabilization settings.
type AnalysisConfig struct {
	FFTSize        int     `yaml:"fft_size"`         // STFT frame length (power of 2)
	WindowSeconds  float64 `yaml:"window_seconds"`   // Seconds of audio analyzed per cycle
	Smoothing      float64 `yaml:"smoothing"`        // Chroma smoothing factor in [0,1)
	ConfidenceMin  float64 `yaml:"confidence_min"`   // Labels below this confidence are suppressed
	EmitDelta      float64 `yaml:"emit_delta"`       // Confidence change that forces a re-emission
	PollIntervalMs int     `yaml:"poll_interval_ms"` // Analysis loop period
}

// RecordingConfig holds settings for recording the raw capture to WAV.
type RecordingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	OutputFile string `yaml:"output_file"`
}

// ServeConfig holds settings for the WebSocket result broadcast.
type ServeConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// NewConfig creates a Config populated with defaults. This is the base
// configuration before file, environment, or flag overrides are applied.
func NewConfig() *Config {
	return &Config{
		LogLevel: "info",
		Command:  DefaultCommand,
		Verbose:  DefaultVerbosity,
		Audio: AudioConfig{
			DeviceID:        DefaultDeviceID,
			Channels:        DefaultChannels,
			SampleRate:      DefaultSampleRate,
			FramesPerBuffer: DefaultFramesPerBuffer,
			LowLatency:      DefaultLowLatency,
			BlockingRead:    DefaultBlockingRead,
		},
		Analysis: AnalysisConfig{
			FFTSize:        DefaultFFTSize,
			WindowSeconds:  DefaultWindowSeconds,
			Smoothing:      DefaultSmoothing,
			ConfidenceMin:  DefaultConfidenceMin,
			EmitDelta:      DefaultEmitDelta,
			PollIntervalMs: DefaultPollIntervalMs,
		},
		Recording: RecordingConfig{
			Enabled:    DefaultRecordInputStream,
			OutputFile: DefaultOutputFile,
		},
		Serve: ServeConfig{
			Enabled: DefaultServeEnabled,
			Addr:    DefaultServeAddr,
		},
	}
}

// WindowSamples returns the ring buffer capacity implied by the configured
// sample rate and analysis window.
func (c *Config) WindowSamples() int {
	return int(c.Audio.SampleRate * c.Analysis.WindowSeconds)
}

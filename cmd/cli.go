package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/config"
	"github.com/nojokecox2102-crypto/quantum-chord-display/pkg/build"
)

// ParseArgs loads the configuration (defaults, optional config.yaml or
// CHORD_CONFIG path, environment overrides) and applies command line flags
// on top. Flag defaults come from the loaded configuration, so an unset
// flag never clobbers a file setting.
func ParseArgs() (*config.Config, error) {
	buildInfo := build.GetInfo()

	options, err := config.LoadConfig(os.Getenv("CHORD_CONFIG"))
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         "Real-time chord recognition from the microphone",
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			options.TUIMode = true
			return nil
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available audio devices",
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = "list"
			options.TUIMode = false
		},
	}
	rootCmd.AddCommand(listCmd)

	// Audio device configuration
	rootCmd.PersistentFlags().IntVarP(&options.Audio.DeviceID, "device", "d", options.Audio.DeviceID,
		"Input device ID. Use 'list' to see available devices.")
	rootCmd.PersistentFlags().IntVarP(&options.Audio.Channels, "channels", "c", options.Audio.Channels,
		"Number of input channels (analysis uses channel 0)")
	rootCmd.PersistentFlags().Float64VarP(&options.Audio.SampleRate, "sample-rate", "s", options.Audio.SampleRate,
		"Sample rate, measured in Hertz (Hz)")
	rootCmd.PersistentFlags().IntVarP(&options.Audio.FramesPerBuffer, "frames-per-buffer", "b", options.Audio.FramesPerBuffer,
		"The number of frames per capture buffer (affects latency)")
	rootCmd.PersistentFlags().BoolVarP(&options.Audio.LowLatency, "low-latency", "l", options.Audio.LowLatency,
		"Use low latency mode for real-time capture")
	rootCmd.PersistentFlags().BoolVar(&options.Audio.BlockingRead, "blocking-read", options.Audio.BlockingRead,
		"Use the blocking read API instead of the callback stream")

	// Analysis configuration
	rootCmd.PersistentFlags().Float64VarP(&options.Analysis.WindowSeconds, "window", "w", options.Analysis.WindowSeconds,
		"Analysis window in seconds")
	rootCmd.PersistentFlags().Float64Var(&options.Analysis.Smoothing, "smoothing", options.Analysis.Smoothing,
		"Chroma smoothing factor in [0,1); higher is steadier, slower")
	rootCmd.PersistentFlags().Float64Var(&options.Analysis.ConfidenceMin, "confidence-min", options.Analysis.ConfidenceMin,
		"Minimum confidence required to surface a chord label")

	// Recording configuration
	rootCmd.PersistentFlags().BoolVarP(&options.Recording.Enabled, "record", "r", options.Recording.Enabled,
		"Record the raw capture to a WAV file")
	rootCmd.PersistentFlags().StringVarP(&options.Recording.OutputFile, "output", "o", options.Recording.OutputFile,
		"Recording file name. Default is capture-DD-MM-YYYY-HHMMSS.wav")

	// Output configuration
	rootCmd.PersistentFlags().BoolVar(&options.Serve.Enabled, "serve", options.Serve.Enabled,
		"Broadcast recognition results as JSON over WebSocket")
	rootCmd.PersistentFlags().StringVar(&options.Serve.Addr, "serve-addr", options.Serve.Addr,
		"Listen address for the WebSocket broadcast")
	rootCmd.PersistentFlags().BoolVar(&options.Plain, "plain", options.Plain,
		"Plain console banners instead of the full-screen display")
	rootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", options.Verbose,
		"Show verbose output")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	if options.Verbose {
		options.LogLevel = "debug"
	}
	if options.Recording.Enabled && options.Recording.OutputFile == "" {
		options.Recording.OutputFile = "capture-" +
			time.Now().UTC().Format("02-01-2006-150405") + ".wav"
	}

	return options, nil
}

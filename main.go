package main

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nojokecox2102-crypto/quantum-chord-display/cmd"
	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/audio"
	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/config"
	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/log"
	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/transport"
	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/tui"
)

// main is the entry point for the chord recognizer. The program flow is
// divided into three phases:
//
// 1. Startup (cold path):
//   - Initialize PortAudio; a missing backend is fatal here
//   - Parse command line arguments and configuration
//   - Execute one-off commands (device listing) if requested
//
// 2. Concurrent (hot path):
//   - Start the capture stream (producer)
//   - Start the analysis loop (consumer)
//   - Run the display until interrupted
//
// 3. Shutdown (cold path):
//   - Stop the analysis loop and capture stream
//   - Finalize any active recording
//   - Exit 0
func main() {
	// ==================== STARTUP PHASE ====================

	// One thread for the capture callback, one for analysis and display.
	runtime.GOMAXPROCS(2)

	if err := audio.Initialize(); err != nil {
		log.Fatalf("%v", err)
	}
	defer audio.Terminate()

	cfg, err := cmd.ParseArgs()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if level, ok := log.ParseLevel(cfg.LogLevel); ok {
		log.SetLevel(level)
	}

	if cfg.Command == "list" {
		if err := audio.ListDevices(); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	// Help, version, or completion already handled by the CLI.
	if !cfg.TUIMode {
		return
	}

	// ==================== CONCURRENT PHASE ====================

	if cfg.Plain {
		runPlain(cfg)
		return
	}
	runTUI(cfg)
}

// buildSinks assembles the non-display emission targets.
func buildSinks(cfg *config.Config) []transport.Transport {
	var sinks []transport.Transport
	if cfg.Serve.Enabled {
		sinks = append(sinks, transport.NewWebSocketTransport(cfg.Serve.Addr))
	}
	return sinks
}

// runTUI drives the full-screen display. The Bubble Tea program owns the
// terminal; the engine feeds it through a sink.
func runTUI(cfg *config.Config) {
	program := tea.NewProgram(tui.NewChordModel(), tea.WithAltScreen())

	sinks := append(buildSinks(cfg), tui.NewSink(program))
	engine, err := audio.NewEngine(cfg, sinks...)
	if err != nil {
		log.Fatalf("%v", err)
	}

	startPipeline(cfg, engine)

	done := make(chan struct{})
	go engine.Run(done)

	// Forward termination signals into the display so it can restore the
	// terminal before we tear the pipeline down.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		log.Errorf("Display error: %v", err)
	}

	// ==================== SHUTDOWN PHASE ====================

	close(done)
	shutdown(cfg, engine)
}

// runPlain drives the console banner display until interrupted.
func runPlain(cfg *config.Config) {
	sinks := append(buildSinks(cfg), transport.NewConsoleTransport(os.Stdout, true))
	engine, err := audio.NewEngine(cfg, sinks...)
	if err != nil {
		log.Fatalf("%v", err)
	}

	startPipeline(cfg, engine)

	done := make(chan struct{})
	go engine.Run(done)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	close(done)
	shutdown(cfg, engine)
}

// startPipeline starts the capture stream and, if configured, the
// recording. Failures here mean the pipeline cannot run at all.
func startPipeline(cfg *config.Config, engine *audio.Engine) {
	if err := engine.StartInputStream(); err != nil {
		log.Fatalf("failed to start capture: %v", err)
	}
	if cfg.Recording.Enabled {
		if err := engine.StartRecording(cfg.Recording.OutputFile); err != nil {
			log.Fatalf("failed to start recording: %v", err)
		}
	}
}

// shutdown tears the engine down and reports where the recording went.
func shutdown(cfg *config.Config, engine *audio.Engine) {
	if err := engine.Close(); err != nil {
		log.Errorf("Error closing engine: %v", err)
	}
	if cfg.Recording.Enabled {
		log.Infof("Recording saved to: %s", cfg.Recording.OutputFile)
	}
}

// Package transport delivers surfaced recognition results to their
// consumers: the terminal, WebSocket clients, or test doubles.
package transport

import "fmt"

// Update is one surfaced recognition result. Level is the RMS input level
// of the analyzed window, carried along for display.
type Update struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Level      float64 `json:"level"`
}

// String renders the update the way the display shows it.
func (u Update) String() string {
	return fmt.Sprintf("%s (%.2f)", u.Label, u.Confidence)
}

// Transport sends recognition updates somewhere. Implementations must be
// safe for use from the analysis loop and must never block it.
type Transport interface {
	Send(Update) error
	Close() error
}

package utils

import (
	"testing"

	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/transport"
)

func TestMockTransportRecords(t *testing.T) {
	m := &MockTransport{}

	m.Send(transport.Update{Label: "C", Confidence: 0.8})
	m.Send(transport.Update{Label: "Am", Confidence: 0.7})

	if len(m.Updates) != 2 {
		t.Fatalf("recorded %d updates, want 2", len(m.Updates))
	}
	if m.Updates[0].Label != "C" || m.Updates[1].Label != "Am" {
		t.Errorf("recorded labels %q, %q", m.Updates[0].Label, m.Updates[1].Label)
	}

	m.Close()
	if !m.Closed {
		t.Error("Close should mark the transport closed")
	}
}

func TestGenerateSineWavePeak(t *testing.T) {
	buf := GenerateSineWave(1000, 22050, 440)
	if len(buf) != 1000 {
		t.Fatalf("len = %d, want 1000", len(buf))
	}
	for i, s := range buf {
		if s > 0.9 || s < -0.9 {
			t.Fatalf("sample %d = %f exceeds the 0.9 peak", i, s)
		}
	}
}

func TestGenerateChordWaveStaysInRange(t *testing.T) {
	buf := GenerateChordWave(4096, 22050, CMajorTriad...)
	for i, s := range buf {
		if s > 1 || s < -1 {
			t.Fatalf("sample %d = %f outside [-1, 1]", i, s)
		}
	}

	if empty := GenerateChordWave(16, 22050); len(empty) != 16 {
		t.Errorf("no-frequency wave has len %d, want 16", len(empty))
	}
}

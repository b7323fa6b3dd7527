package transport

import (
	"bytes"
	"strings"
	"testing"
)

func TestUpdateString(t *testing.T) {
	u := Update{Label: "Am", Confidence: 0.873}
	if got := u.String(); got != "Am (0.87)" {
		t.Errorf("String() = %q, want %q", got, "Am (0.87)")
	}
}

func TestConsoleTransportBanner(t *testing.T) {
	var buf bytes.Buffer
	ct := NewConsoleTransport(&buf, false)

	if err := ct.Send(Update{Label: "C", Confidence: 0.8}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "C (0.80)") {
		t.Errorf("banner missing the rendered update:\n%s", out)
	}
	if strings.Count(out, strings.Repeat("=", 60)) != 2 {
		t.Errorf("banner should be framed by two rules:\n%s", out)
	}
	if strings.Contains(out, "\033[2J") {
		t.Error("clear sequence emitted with clear disabled")
	}
}

func TestConsoleTransportClear(t *testing.T) {
	var buf bytes.Buffer
	ct := NewConsoleTransport(&buf, true)

	if err := ct.Send(Update{Label: "G", Confidence: 0.7}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\033[2J\033[H") {
		t.Error("clear sequence should precede the banner")
	}
}

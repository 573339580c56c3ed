package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	uu := map[string]struct {
		s string
		e log.Level
	}{
		"debug":   {s: "debug", e: log.DebugLevel},
		"upper":   {s: " WARN ", e: log.WarnLevel},
		"error":   {s: "error", e: log.ErrorLevel},
		"unknown": {s: "chatty", e: log.InfoLevel},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			if got := ParseLevel(u.s); got != u.e {
				t.Errorf("expected %v, got %v", u.e, got)
			}
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "acmeui.log")
	if err := Init("debug", path); err != nil {
		t.Fatal(err)
	}
	Slog().Debug("page loaded", "page", 3)
	Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(raw)
	if !strings.Contains(out, "acmeui started") || !strings.Contains(out, "page loaded") {
		t.Errorf("unexpected log output %q", out)
	}
}

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"", false, true},
		{"loud", false, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		l := New(tt.level, &buf)
		l.Debug().Msg("dbg")
		l.Info().Msg("inf")

		out := buf.String()
		if got := strings.Contains(out, `"dbg"`); got != tt.debugSeen {
			t.Errorf("level %q: debug seen = %v", tt.level, got)
		}
		if got := strings.Contains(out, `"inf"`); got != tt.infoSeen {
			t.Errorf("level %q: info seen = %v", tt.level, got)
		}
	}
}

func TestNewWritesJSONWithTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", &buf)
	l.Info().Int("photos", 4).Msg("loaded")
	out := buf.String()
	for _, want := range []string{`"level":"info"`, `"photos":4`, `"time":`, `"message":"loaded"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	Log("midi", "dropped before enable")
	if err := Enable(path); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	defer Disable()

	Log("midi", "port %s", "Prophet")
	for i := 0; i < 4; i++ {
		LogEvery(2, "clock", "pulse")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "dropped before enable") {
		t.Errorf("logged before Enable")
	}
	if !strings.Contains(out, "port Prophet") {
		t.Errorf("missing log line in %q", out)
	}
	if got := strings.Count(out, "pulse (every 2"); got != 2 {
		t.Errorf("expected 2 throttled lines, got %d", got)
	}
}

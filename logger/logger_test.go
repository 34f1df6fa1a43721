package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	Setup(dir)
	Info("queue drained", 3)

	buf, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatal(err)
	}
	line := string(buf)
	if !strings.Contains(line, "[INFO][logger_test.go:") || !strings.Contains(line, "queue drained 3") {
		t.Errorf("unexpected log line %q", line)
	}
}

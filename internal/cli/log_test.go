package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treezoom/pkg/pipeline"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		debug   bool
		wantLog bool
	}{
		{"info at info level", LogInfo, false, true},
		{"debug at info level", LogInfo, true, false},
		{"debug at debug level", LogDebug, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			if tt.debug {
				logger.Debug("focus changed", "to", "B")
			} else {
				logger.Info("focus changed", "to", "B")
			}
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestLoggerTimestampFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("ready")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("log line should start with a 15:04:05.00 timestamp: %q", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))

	prog.done("Loaded data/nyt.json")

	out := buf.String()
	if !strings.Contains(out, "Loaded data/nyt.json (") || !strings.Contains(out, "s)") {
		t.Errorf("progress line = %q, want message with elapsed time", out)
	}
}

func TestRunRenderLogsProgress(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	input := writeTestDataset(t)
	opts := pipeline.Options{Source: input, Formats: []string{"json"}}

	if err := c.runRender(context.Background(), opts, filepath.Join(t.TempDir(), "out.json"), true); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	if want := "Rendered " + input + " as json ("; !strings.Contains(buf.String(), want) {
		t.Errorf("log output missing %q:\n%s", want, buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	custom := newLogger(os.Stderr, LogDebug)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    hclog.Level
	}{
		{name: "default", want: hclog.Warn},
		{name: "verbose", verbose: true, want: hclog.Debug},
		{name: "quiet", quiet: true, want: hclog.Error},
		{name: "verbose wins", verbose: true, quiet: true, want: hclog.Debug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Level(tt.verbose, tt.quiet); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown", "colours", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at the default level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "colours=3") {
		t.Errorf("warn line missing or malformed: %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Name: "test", Output: &buf, JSON: true, Verbose: true})
	logger.Info("extracted", "colours", 4)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["@message"] != "extracted" {
		t.Errorf("@message = %v, want extracted", line["@message"])
	}
	if line["@module"] != "test" {
		t.Errorf("@module = %v, want test", line["@module"])
	}
}


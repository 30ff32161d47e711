package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewJSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New("debug", "json", &buf)
	logger.WithField("root", "/tmp/x").Debug("scanning")

	out := buf.String()
	if !strings.Contains(out, `"root":"/tmp/x"`) {
		t.Errorf("expected JSON field in output, got %q", out)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New("loud", "text", &buf)
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", logger.GetLevel())
	}
	if !strings.Contains(buf.String(), "invalid log level") {
		t.Errorf("expected warning about invalid level, got %q", buf.String())
	}
}

func TestOrDiscard(t *testing.T) {
	t.Parallel()

	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}
	l := logrus.New()
	if OrDiscard(l) != l {
		t.Error("OrDiscard should return the given logger")
	}
}

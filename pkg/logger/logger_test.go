package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if err != nil {
				t.Fatalf("parseLevel(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := parseLevel("loud"); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("parseLevel(loud) error = %v, want ErrInvalidLogLevel", err)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(&Config{Level: "chatty"}, DefaultServiceName); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestOutputPaths(t *testing.T) {
	out, errOut := outputPaths("/tmp/gym.log")
	if out[0] != "/tmp/gym.log" || errOut[0] != "/tmp/gym.log" {
		t.Errorf("file output = %v %v", out, errOut)
	}
	out, errOut = outputPaths("")
	if out[0] != "stdout" || errOut[0] != "stderr" {
		t.Errorf("default output = %v %v", out, errOut)
	}
}

func TestComponentNilParent(t *testing.T) {
	if Component(nil, "engine") == nil {
		t.Fatal("Component(nil) returned nil")
	}
}

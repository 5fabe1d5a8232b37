package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("  hello world ", 5); got != "hello..." {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("hi", 0); got != "" {
		t.Fatalf("unexpected %q", got)
	}
}

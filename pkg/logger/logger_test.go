package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat("json"), WithOutput(&bytes.Buffer{})); err != nil {
		t.Fatalf("failed to initialize json logger: %v", err)
	}
	if err := Init(WithFormat("xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLoggerTextOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, FormatText, slog.LevelInfo)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx := context.Background()
	l.Info(ctx, "saved rating", String("player", "Kaka"), Int("rating", 8), Bool("new", true))
	l.Debug(ctx, "hidden")

	out := buf.String()
	for _, want := range []string{"msg=\"saved rating\"", "player=Kaka", "rating=8", "new=true", "source=logger_test.go:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered at info level: %q", out)
	}
}

func TestLoggerJSONWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, FormatJSON, slog.LevelDebug)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx := WithRequestID(context.Background(), "req-123")
	l.Named("api").Error(ctx, "store failed", Error(errors.New("boom")), Int64("seed", 42))

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if line["msg"] != "store failed" {
		t.Errorf("unexpected msg: %v", line["msg"])
	}
	group, ok := line["api"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected fields grouped under api, got %v", line)
	}
	if group["request_id"] != "req-123" {
		t.Errorf("expected request id, got %v", group["request_id"])
	}
	if group["error"] != "boom" {
		t.Errorf("expected error field, got %v", group["error"])
	}
}

func TestRequestID(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
	if got := RequestID(WithRequestID(context.Background(), "abc")); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(WithOutput(&bytes.Buffer{})); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}
	namedLogger.Info(context.Background(), "test message")
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error(context.Background(), "discarded")
	l.Named("x").Info(context.Background(), "discarded")
}

func TestSetLevelString(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{" warning ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := SetLevelString(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if !tt.wantErr && levelVar.Level() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, levelVar.Level())
			}
		})
	}
}

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repofolio.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

func msgs(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Msg
	}
	return out
}

func TestTail_RingBuffer(t *testing.T) {
	var lines, all []string
	for i := 1; i <= 10; i++ {
		msg := fmt.Sprintf("line %d", i)
		lines = append(lines, fmt.Sprintf(`{"level":"info","time":"2026-01-01T00:00:%02dZ","msg":%q}`, i, msg))
		all = append(all, msg)
	}
	path := writeLog(t, lines...)

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, all},
		{"read all (negative)", -1, all},
		{"read partial (5)", 5, all[5:]},
		{"read exactly all (10)", 10, all},
		{"read more than exists (20)", 20, all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(path, tt.maxLines, zapcore.DebugLevel)
			if err != nil {
				t.Fatalf("Tail() error = %v", err)
			}
			if !reflect.DeepEqual(msgs(got), tt.expected) {
				t.Errorf("Tail() = %v, want %v", msgs(got), tt.expected)
			}
		})
	}
}

func TestTail_FiltersByLevelBeforeLimiting(t *testing.T) {
	path := writeLog(t,
		`{"level":"warn","msg":"first warning"}`,
		`{"level":"info","msg":"fetched"}`,
		`{"level":"error","msg":"load failed"}`,
		`{"level":"debug","msg":"cache ignored"}`,
		`goroutine 1 [running]:`,
	)

	got, err := Tail(path, 2, zapcore.WarnLevel)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Tail() returned %d entries, want 2", len(got))
	}
	if got[0].Msg != "load failed" {
		t.Errorf("got[0].Msg = %q, want %q", got[0].Msg, "load failed")
	}
	if got[1].Raw != "goroutine 1 [running]:" || got[1].Level != "" {
		t.Errorf("undecodable line = %+v, want raw passthrough", got[1])
	}
}

func TestTail_MissingFileIsEmpty(t *testing.T) {
	got, err := Tail(filepath.Join(t.TempDir(), "absent.log"), 10, zapcore.InfoLevel)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Tail() = %v, want none", got)
	}
}

func TestTail_ReadsLoggerOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Warn("repository cache write failed")
	_ = logger.Sync()

	got, err := Tail(path, 1, zapcore.InfoLevel)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(got) != 1 || got[0].Level != "warn" || got[0].Time == "" {
		t.Fatalf("Tail() = %+v, want one timestamped warn entry", got)
	}
}

func TestEntryFormat(t *testing.T) {
	e := parseEntry(`{"level":"warn","time":"2026-01-01T10:00:00.000Z","msg":"repository fetch failed, serving cache","user":"sqmw","count":3,"caller":"loader/loader.go:90"}`)

	if e.Fields["user"] != "sqmw" {
		t.Errorf("Fields[user] = %v, want sqmw", e.Fields["user"])
	}
	if _, ok := e.Fields["caller"]; ok {
		t.Errorf("caller should be dropped from fields")
	}

	out := e.Format()
	for _, want := range []string{"2026-01-01T10:00:00.000Z", "WARN", "serving cache", "sqmw", "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() = %q, missing %q", out, want)
		}
	}
	if strings.Index(out, "count") > strings.Index(out, "user") {
		t.Errorf("Format() = %q, want fields sorted by key", out)
	}

	raw := parseEntry("plain text")
	if raw.Format() != "plain text" {
		t.Errorf("Format() = %q, want raw line", raw.Format())
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, "")
	l.Debug("hidden")
	l.Info("hello", "user_id", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "hello" || rec["user_id"] != float64(7) {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestNewDevIsTextWithDebug(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true, "").Debug("details", "k", "v")
	if !strings.Contains(buf.String(), "level=DEBUG") || !strings.Contains(buf.String(), "k=v") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

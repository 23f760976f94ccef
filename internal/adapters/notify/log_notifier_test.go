package notify

import (
	"bytes"
	"context"
	"courier-map-service/internal/domain"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogNotifierWritesSummary(t *testing.T) {
	var buf bytes.Buffer
	n := &LogNotifier{logger: zerolog.New(&buf).Level(zerolog.InfoLevel)}

	err := n.Notify(context.Background(), 3, []domain.Transition{
		{PackageID: 1, TrackingCode: "TRK0001", From: domain.StatusPending, To: domain.StatusDelivered},
		{PackageID: 2, TrackingCode: "TRK0002", From: domain.StatusPending, To: domain.StatusDelivered},
		{PackageID: 3, TrackingCode: "TRK0003", From: domain.StatusPending, To: domain.StatusFailed},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines at info level, want 1:\n%s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["message"] != "2 delivered, 1 failed" {
		t.Fatalf("message = %v", entry["message"])
	}
	if entry["route_id"] != float64(3) {
		t.Fatalf("route_id = %v, want 3", entry["route_id"])
	}
}

func TestLogNotifierLogsEachTransitionAtDebug(t *testing.T) {
	var buf bytes.Buffer
	n := &LogNotifier{logger: zerolog.New(&buf).Level(zerolog.DebugLevel)}

	err := n.Notify(context.Background(), 1, []domain.Transition{
		{PackageID: 9, TrackingCode: "TRK0009", From: domain.StatusFailed, To: domain.StatusPending},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"tracking_code":"TRK0009"`) {
		t.Fatalf("missing per-transition event:\n%s", out)
	}
	if !strings.Contains(out, "1 back to pending") {
		t.Fatalf("missing summary:\n%s", out)
	}
}

package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestLoggerNotifierWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	n := NewLoggerNotifier(logger)

	err := n.Send(context.Background(), Message{
		Kind:        KindPixTransfer,
		Destination: "user@pix",
		Amount:      "300.00",
		Balance:     "700.00",
		Reference:   "ref-1",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["kind"] != KindPixTransfer || line["destination"] != "user@pix" || line["reference"] != "ref-1" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestNilLoggerNotifierIsNoop(t *testing.T) {
	var n *LoggerNotifier
	if err := n.Send(context.Background(), Message{Kind: KindDeposit}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

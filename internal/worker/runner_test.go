package worker

import (
	"testing"
)

func TestDecodePayload(t *testing.T) {
	t.Parallel()

	values := map[string]interface{}{
		"type":     "archive",
		"taskId":   "task-1",
		"filename": "1700000000000.png",
	}

	var payload TaskPayload
	if err := decodePayload(values, &payload); err != nil {
		t.Fatalf("decodePayload error: %v", err)
	}

	if payload.Type != "archive" || payload.TaskID != "task-1" || payload.Filename != "1700000000000.png" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDecodePayload_IgnoresExtraFields(t *testing.T) {
	t.Parallel()

	values := map[string]interface{}{
		"type":   "drone",
		"taskId": "task-2",
		"extra":  "ignored",
	}

	var payload TaskPayload
	if err := decodePayload(values, &payload); err != nil {
		t.Fatalf("decodePayload error: %v", err)
	}
	if payload.Type != "drone" || payload.TaskID != "task-2" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

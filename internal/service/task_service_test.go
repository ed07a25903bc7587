package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"droneport/internal/models"
	"droneport/internal/queue"
)

type fakeTaskQueue struct {
	enqueued   []models.Task
	values     []map[string]any
	enqueueErr error
	statuses   map[string]models.TaskStatus
}

func newFakeTaskQueue() *fakeTaskQueue {
	return &fakeTaskQueue{statuses: map[string]models.TaskStatus{}}
}

func (f *fakeTaskQueue) Enqueue(ctx context.Context, task models.Task, values map[string]any) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.enqueued = append(f.enqueued, task)
	f.values = append(f.values, values)
	f.statuses[task.ID] = models.TaskStatusQueued
	return nil
}

func (f *fakeTaskQueue) Status(ctx context.Context, taskID string) (models.TaskStatus, error) {
	status, ok := f.statuses[taskID]
	if !ok {
		return "", queue.ErrTaskNotFound
	}
	return status, nil
}

func TestSubmitDrone_ReturnsHandleAndQueues(t *testing.T) {
	t.Parallel()

	q := newFakeTaskQueue()
	svc := NewTaskService(q, zerolog.Nop())

	task, err := svc.SubmitDrone(context.Background())
	if err != nil {
		t.Fatalf("SubmitDrone error: %v", err)
	}
	if task.ID == "" {
		t.Fatalf("expected a task handle")
	}
	if task.Kind != models.TaskKindDrone {
		t.Fatalf("got kind %q want drone", task.Kind)
	}

	status, err := svc.Status(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("Status error: %v", err)
	}
	if status != models.TaskStatusQueued {
		t.Fatalf("got status %q want queued", status)
	}
}

func TestSubmitArchive_CarriesFilename(t *testing.T) {
	t.Parallel()

	q := newFakeTaskQueue()
	svc := NewTaskService(q, zerolog.Nop())

	if _, err := svc.SubmitArchive(context.Background(), "123.png"); err != nil {
		t.Fatalf("SubmitArchive error: %v", err)
	}
	if len(q.values) != 1 || q.values[0]["filename"] != "123.png" {
		t.Fatalf("expected filename in payload, got %v", q.values)
	}
}

func TestSubmit_PropagatesEnqueueError(t *testing.T) {
	t.Parallel()

	q := newFakeTaskQueue()
	q.enqueueErr = errors.New("stream unavailable")
	svc := NewTaskService(q, zerolog.Nop())

	if _, err := svc.SubmitDrone(context.Background()); err == nil {
		t.Fatalf("expected error when enqueue fails")
	}
}

func TestStatus_UnknownTask(t *testing.T) {
	t.Parallel()

	svc := NewTaskService(newFakeTaskQueue(), zerolog.Nop())

	if _, err := svc.Status(context.Background(), "missing"); !errors.Is(err, queue.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

package service

import (
	"context"

	"github.com/rs/zerolog"

	"droneport/internal/ids"
	"droneport/internal/models"
)

type TaskQueue interface {
	Enqueue(ctx context.Context, task models.Task, values map[string]any) error
	Status(ctx context.Context, taskID string) (models.TaskStatus, error)
}

// TaskService is the submission boundary to the out-of-process drone
// pipeline. Submitting returns a handle immediately; the caller can poll the
// handle, but the task's lifetime is decoupled from the request's.
type TaskService struct {
	queue TaskQueue
	log   zerolog.Logger
}

func NewTaskService(queue TaskQueue, log zerolog.Logger) *TaskService {
	return &TaskService{
		queue: queue,
		log:   log,
	}
}

func (s *TaskService) SubmitDrone(ctx context.Context) (models.Task, error) {
	return s.submit(ctx, models.TaskKindDrone, nil)
}

func (s *TaskService) SubmitArchive(ctx context.Context, filename string) (models.Task, error) {
	return s.submit(ctx, models.TaskKindArchive, map[string]any{"filename": filename})
}

func (s *TaskService) SubmitSweep(ctx context.Context) (models.Task, error) {
	return s.submit(ctx, models.TaskKindSweep, nil)
}

func (s *TaskService) Status(ctx context.Context, taskID string) (models.TaskStatus, error) {
	return s.queue.Status(ctx, taskID)
}

func (s *TaskService) submit(ctx context.Context, kind models.TaskKind, values map[string]any) (models.Task, error) {
	task := models.Task{
		ID:     ids.New(),
		Kind:   kind,
		Status: models.TaskStatusQueued,
	}

	if err := s.queue.Enqueue(ctx, task, values); err != nil {
		return models.Task{}, err
	}

	s.log.Info().Str("task_id", task.ID).Str("kind", string(kind)).Msg("task submitted")
	return task, nil
}

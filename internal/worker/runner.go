package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"droneport/internal/config"
	"droneport/internal/models"
	"droneport/internal/queue"
	"droneport/internal/storage"
)

type TaskPayload struct {
	Type     string `json:"type"`
	TaskID   string `json:"taskId"`
	Filename string `json:"filename"`
}

// Runner executes submitted tasks: launching the external drone pipeline,
// archiving accepted uploads, and sweeping the upload directory for files
// that missed archival.
type Runner struct {
	queue    *queue.RedisQueue
	files    *storage.DiskStore
	archiver *storage.Archiver
	drone    config.DroneConfig
	logger   zerolog.Logger
}

func NewRunner(q *queue.RedisQueue, files *storage.DiskStore, archiver *storage.Archiver, drone config.DroneConfig, logger zerolog.Logger) *Runner {
	return &Runner{
		queue:    q,
		files:    files,
		archiver: archiver,
		drone:    drone,
		logger:   logger,
	}
}

func (r *Runner) Handle(ctx context.Context, msg redis.XMessage) error {
	var payload TaskPayload
	if err := decodePayload(msg.Values, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	switch models.TaskKind(payload.Type) {
	case models.TaskKindDrone:
		return r.handleDrone(ctx, payload)
	case models.TaskKindArchive:
		return r.handleArchive(ctx, payload)
	case models.TaskKindSweep:
		return r.handleSweep(ctx, payload)
	default:
		r.logger.Warn().Str("type", payload.Type).Msg("unknown task type")
		return nil
	}
}

func decodePayload(values map[string]interface{}, out *TaskPayload) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// handleDrone spawns the configured pipeline entry point. Its stdout and
// stderr are streamed into the worker's own log sink; the exit code only
// decides the status the submitter can poll, nothing is propagated further.
func (r *Runner) handleDrone(ctx context.Context, payload TaskPayload) error {
	if len(r.drone.Command) == 0 {
		return r.markFailed(ctx, payload.TaskID, fmt.Errorf("drone command not configured"))
	}

	if err := r.queue.SetStatus(ctx, payload.TaskID, models.TaskStatusRunning); err != nil {
		r.logger.Warn().Err(err).Str("task_id", payload.TaskID).Msg("set running failed")
	}

	childLog := r.logger.With().
		Str("task_id", payload.TaskID).
		Str("source", "drone-pipeline").
		Logger()

	cmd := exec.Command(r.drone.Command[0], r.drone.Command[1:]...)
	cmd.Dir = r.drone.WorkDir
	cmd.Stdout = childLog
	cmd.Stderr = childLog

	r.logger.Info().Strs("command", r.drone.Command).Str("task_id", payload.TaskID).Msg("launching drone pipeline")

	if err := cmd.Run(); err != nil {
		return r.markFailed(ctx, payload.TaskID, err)
	}

	return r.queue.SetStatus(ctx, payload.TaskID, models.TaskStatusDone)
}

func (r *Runner) handleArchive(ctx context.Context, payload TaskPayload) error {
	if payload.Filename == "" {
		return r.markFailed(ctx, payload.TaskID, fmt.Errorf("archive task without filename"))
	}

	if err := r.queue.SetStatus(ctx, payload.TaskID, models.TaskStatusRunning); err != nil {
		r.logger.Warn().Err(err).Str("task_id", payload.TaskID).Msg("set running failed")
	}

	if err := r.archiveFile(ctx, payload.Filename); err != nil {
		return r.markFailed(ctx, payload.TaskID, err)
	}

	return r.queue.SetStatus(ctx, payload.TaskID, models.TaskStatusDone)
}

func (r *Runner) handleSweep(ctx context.Context, payload TaskPayload) error {
	if err := r.queue.SetStatus(ctx, payload.TaskID, models.TaskStatusRunning); err != nil {
		r.logger.Warn().Err(err).Str("task_id", payload.TaskID).Msg("set running failed")
	}

	names, err := r.files.List()
	if err != nil {
		return r.markFailed(ctx, payload.TaskID, err)
	}

	for _, name := range names {
		archived, err := r.queue.IsArchived(ctx, name)
		if err != nil {
			r.logger.Warn().Err(err).Str("filename", name).Msg("archive marker check failed")
			continue
		}
		if archived {
			continue
		}
		if err := r.archiveFile(ctx, name); err != nil {
			r.logger.Error().Err(err).Str("filename", name).Msg("sweep archive failed")
		}
	}

	return r.queue.SetStatus(ctx, payload.TaskID, models.TaskStatusDone)
}

func (r *Runner) archiveFile(ctx context.Context, filename string) error {
	if r.archiver == nil {
		r.logger.Debug().Str("filename", filename).Msg("archival disabled, skipping")
		return nil
	}

	file, err := r.files.Open(filename)
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	if err := r.archiver.Put(ctx, filename, file, ""); err != nil {
		return err
	}

	if err := r.queue.MarkArchived(ctx, filename); err != nil {
		r.logger.Warn().Err(err).Str("filename", filename).Msg("mark archived failed")
	}

	r.logger.Info().Str("filename", filename).Msg("upload archived")
	return nil
}

func (r *Runner) markFailed(ctx context.Context, taskID string, cause error) error {
	if err := r.queue.SetStatus(ctx, taskID, models.TaskStatusFailed); err != nil {
		r.logger.Error().Err(err).Str("task_id", taskID).Msg("set failed status failed")
	}
	r.logger.Error().Err(cause).Str("task_id", taskID).Msg("task failed")
	return nil
}

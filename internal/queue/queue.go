package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"droneport/internal/models"
)

var ErrTaskNotFound = errors.New("task not found")

// RedisQueue is the submission side of the task boundary: tasks go onto a
// redis stream, their status lives under a TTL'd key so callers can poll the
// handle they got back.
type RedisQueue struct {
	client    redis.Cmdable
	stream    string
	statusTTL time.Duration
}

func NewRedisQueue(client redis.Cmdable, stream string, statusTTL time.Duration) *RedisQueue {
	return &RedisQueue{
		client:    client,
		stream:    stream,
		statusTTL: statusTTL,
	}
}

func statusKey(taskID string) string {
	return "task:" + taskID
}

func archivedKey(filename string) string {
	return "archived:" + filename
}

func (q *RedisQueue) Enqueue(ctx context.Context, task models.Task, values map[string]any) error {
	// The status key must exist before the entry hits the stream: a consumer
	// can pick the task up immediately, and its running/done write must not
	// be clobbered by a late "queued".
	if err := q.SetStatus(ctx, task.ID, models.TaskStatusQueued); err != nil {
		return err
	}

	payload := map[string]any{
		"type":   string(task.Kind),
		"taskId": task.ID,
	}
	for k, v := range values {
		payload[k] = v
	}

	if _, err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: payload,
	}).Result(); err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}

	return nil
}

func (q *RedisQueue) SetStatus(ctx context.Context, taskID string, status models.TaskStatus) error {
	if err := q.client.Set(ctx, statusKey(taskID), string(status), q.statusTTL).Err(); err != nil {
		return fmt.Errorf("set task status: %w", err)
	}
	return nil
}

func (q *RedisQueue) Status(ctx context.Context, taskID string) (models.TaskStatus, error) {
	status, err := q.client.Get(ctx, statusKey(taskID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTaskNotFound
		}
		return "", fmt.Errorf("get task status: %w", err)
	}
	return models.TaskStatus(status), nil
}

// MarkArchived records that a local upload has been copied to the object
// store, so the periodic sweep can skip it.
func (q *RedisQueue) MarkArchived(ctx context.Context, filename string) error {
	return q.client.Set(ctx, archivedKey(filename), "1", 0).Err()
}

func (q *RedisQueue) IsArchived(ctx context.Context, filename string) (bool, error) {
	n, err := q.client.Exists(ctx, archivedKey(filename)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

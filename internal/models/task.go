package models

type TaskKind string

const (
	TaskKindDrone   TaskKind = "drone"
	TaskKindArchive TaskKind = "archive"
	TaskKindSweep   TaskKind = "sweep"
)

type TaskStatus string

const (
	TaskStatusQueued  TaskStatus = "queued"
	TaskStatusRunning TaskStatus = "running"
	TaskStatusDone    TaskStatus = "done"
	TaskStatusFailed  TaskStatus = "failed"
)

type Task struct {
	ID     string
	Kind   TaskKind
	Status TaskStatus
}

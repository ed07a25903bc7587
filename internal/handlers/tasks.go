package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"droneport/internal/queue"
)

// StartDrone submits a launch of the external drone pipeline and acknowledges
// immediately. The returned id is a handle the caller can poll; the pipeline's
// lifetime and exit code are deliberately not tied to this request.
func (h HandlerSet) StartDrone(c *gin.Context) {
	task, err := h.taskService.SubmitDrone(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("drone task submit failed")
		c.String(http.StatusInternalServerError, "drone start failed")
		return
	}

	c.String(http.StatusOK, "Drone started! Task: %s", task.ID)
}

func (h HandlerSet) TaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	status, err := h.taskService.Status(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, queue.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task_not_found"})
			return
		}
		h.log.Error().Err(err).Str("task_id", taskID).Msg("task status failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "status_unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": status,
	})
}

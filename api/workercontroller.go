package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kambleakash0/substack-monitor/worker"
)

// RegisterWorkerRoutes registers worker lifecycle endpoints. Lifecycle
// no-ops (already running, not running) are ordinary 200 responses with a
// descriptive status string, never errors.
func RegisterWorkerRoutes(r *gin.Engine, w *worker.Worker) {
	r.POST("/start", func(c *gin.Context) {
		handleStart(c, w)
	})
	r.POST("/stop", func(c *gin.Context) {
		handleStop(c, w)
	})
}

func handleStart(c *gin.Context, w *worker.Worker) {
	if w.Start() {
		c.JSON(http.StatusOK, gin.H{"status": "worker started"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "worker already running"})
}

func handleStop(c *gin.Context, w *worker.Worker) {
	if w.Stop() {
		c.JSON(http.StatusOK, gin.H{"status": "worker stopping - will finish current cycle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "worker not running"})
}

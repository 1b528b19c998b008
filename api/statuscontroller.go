package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kambleakash0/substack-monitor/pinger"
	"github.com/kambleakash0/substack-monitor/worker"
)

// RegisterStatusRoutes registers the root status endpoint.
func RegisterStatusRoutes(r *gin.Engine, w *worker.Worker, p *pinger.Pinger) {
	r.GET("/", func(c *gin.Context) {
		handleStatus(c, w, p)
	})
}

// handleStatus reports a read-only snapshot of worker and pinger state.
func handleStatus(c *gin.Context, w *worker.Worker, p *pinger.Pinger) {
	snap := w.Status()
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"worker_active":  snap.Running,
		"ping_active":    p.Active(),
		"last_processed": snap.LastProcessed,
	})
}

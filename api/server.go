package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kambleakash0/substack-monitor/pinger"
	"github.com/kambleakash0/substack-monitor/worker"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(w *worker.Worker, p *pinger.Pinger) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterStatusRoutes(r, w, p)
	RegisterHealthRoutes(r)
	RegisterWorkerRoutes(r, w)
	return r
}

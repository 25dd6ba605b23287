// Package statusserver is an optional diagnostics HTTP endpoint for a
// running indexer, grounded on the teacher's restapi package (gin route
// registration, see _examples/SharedCode-sop/restapi/register.go)
// simplified to the two read-only routes an embedder needs: a liveness
// probe and a progress snapshot.
package statusserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stats is a snapshot of an indexer's progress counters.
type Stats struct {
	Queued  int64 `json:"queued"`
	Spawned int64 `json:"spawned"`
	Done    int64 `json:"done"`
	Errors  int   `json:"errors"`
}

// StatsFunc produces the current Stats on demand.
type StatsFunc func() Stats

// Server serves GET /healthz and GET /status over HTTP.
type Server struct {
	httpServer *http.Server
}

// New builds a Server listening on addr. Call Start to run it.
func New(addr string, stats StatsFunc) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, stats())
	})

	return &Server{httpServer: &http.Server{Addr: addr, Handler: r}}
}

// Start blocks serving until the Server is shut down. Run it in its own
// goroutine; it returns http.ErrServerClosed after a clean Shutdown.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the Server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

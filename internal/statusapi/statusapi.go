// Package statusapi exposes a read-only gin router reporting the server
// controller's live counters. It carries no application semantics: the
// wire protocol works identically whether or not this router is ever
// mounted.
package statusapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rberlich/workdispatch/internal/server"
)

// Counters is the subset of server.Controller's state this package needs;
// satisfied directly by *server.Controller.
type Counters interface {
	ActiveSessions() int64
	PackagesServed() int64
	Stopped() bool
}

type statusResponse struct {
	ActiveSessions int64 `json:"active_sessions"`
	PackagesServed int64 `json:"packages_served"`
	ServerStopped  bool  `json:"server_stopped"`
}

// NewRouter builds a gin.Engine with a single route, GET /status.
func NewRouter(ctrl Counters) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, statusResponse{
			ActiveSessions: ctrl.ActiveSessions(),
			PackagesServed: ctrl.PackagesServed(),
			ServerStopped:  ctrl.Stopped(),
		})
	})
	return r
}

var _ Counters = (*server.Controller)(nil)

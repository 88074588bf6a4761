package httpapi

import (
	"github.com/gin-gonic/gin"

	"judgecore/internal/judge/pool"
	"judgecore/pkg/utils/response"
)

// poolStatus is the /healthz payload: pool introspection, nested under
// the generic response envelope's Data field.
type poolStatus struct {
	MaxWorkers      int `json:"max_workers"`
	ActiveWorkers   int `json:"active_workers"`
	PanickedWorkers int `json:"panicked_workers"`
	Queued          int `json:"queued"`
}

// NewHealthHandler reports pool introspection through the shared
// response envelope, so /healthz doesn't need its own response shape.
func NewHealthHandler(p *pool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, poolStatus{
			MaxWorkers:      p.MaxWorkers(),
			ActiveWorkers:   p.ActiveWorkers(),
			PanickedWorkers: p.PanickedWorkers(),
			Queued:          p.Queued(),
		})
	}
}

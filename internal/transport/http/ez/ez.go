// Package ez registers endpoints as an ordered guard chain followed by one
// typed terminal handler.
package ez

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	resp "go-gin-blog-api/internal/transport/http/response"
)

type EZ struct{ g gin.IRoutes }

func New(g gin.IRoutes) EZ { return EZ{g: g} }

// Action describes one endpoint. Guards run in order and abort the chain on
// failure; Handler only runs when all of them passed.
type Action[O any] struct {
	Method string
	Path   string
	Guards []gin.HandlerFunc
	// Status on success; 200 when zero.
	Status  int
	Handler func(c *gin.Context) (O, error)
}

func Register[O any](e EZ, a Action[O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	terminal := func(c *gin.Context) {
		out, err := a.Handler(c)
		if err != nil {
			resp.Abort(c, err)
			return
		}
		c.JSON(status, out)
	}
	chain := append(append([]gin.HandlerFunc(nil), a.Guards...), terminal)
	e.g.Handle(strings.ToUpper(a.Method), a.Path, chain...)
}

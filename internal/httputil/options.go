package httputil

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// Options returns a handler answering OPTIONS requests for a resource that
// supports the given methods.
func Options(methods ...string) gin.HandlerFunc {
	allow := strings.Join(append([]string{http.MethodOptions}, methods...), ", ")
	return func(c *gin.Context) {
		c.Header("allow", allow)
		c.Render(http.StatusNoContent, render.JSON{})
	}
}

var (
	// OptionsGet serves read-only resources like /version.
	OptionsGet = Options(http.MethodGet)

	// OptionsGetPost serves plan collections.
	OptionsGetPost = Options(http.MethodGet, http.MethodPost)

	OptionsGetDelete      = Options(http.MethodGet, http.MethodDelete)
	OptionsGetPatchDelete = Options(http.MethodGet, http.MethodPatch, http.MethodDelete)

	// OptionsPut serves the execute toggles.
	OptionsPut = Options(http.MethodPut)
)

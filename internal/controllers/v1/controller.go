package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/money"
	"github.com/moneymate/backend/internal/service"
	ez_uuid "github.com/moneymate/backend/internal/uuid"
	"github.com/ryanuber/go-glob"
)

// Controller serves the v1 API.
type Controller struct {
	services service.Services
	money    money.Formatter
}

// New returns a Controller working on services. Amounts are formatted with f.
func New(services service.Services, f money.Formatter) Controller {
	return Controller{
		services: services,
		money:    f,
	}
}

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

var errNoUpdateFields = errors.New("the request body does not contain any field that can be updated")

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// message returns the message reported to the sink, falling back to the
// error itself.
func message(err error, result service.Result) string {
	if result.Message != "" {
		return result.Message
	}
	return err.Error()
}

// titleMatches reports whether title matches the glob pattern, ignoring case.
// An empty pattern matches everything.
func titleMatches(pattern, title string) bool {
	if pattern == "" {
		return true
	}
	return glob.Glob(strings.ToLower(pattern), strings.ToLower(title))
}

// baseURL returns the API URL set by the URL middleware.
func baseURL(c *gin.Context) string {
	return c.GetString(string(models.DBContextURL))
}

// stream writes every value received on values as a server-sent event until
// the channel is closed or the client goes away.
func stream[T any](c *gin.Context, event string, values <-chan T, render func(T) any) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-values:
			if !ok {
				return
			}

			c.SSEvent(event, render(v))
			c.Writer.Flush()
		}
	}
}

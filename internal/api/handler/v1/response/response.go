package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON body of every failed request.
type Err struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	ErrorText  string `json:"error"`
	// Key echoes the requested entry id for older clients.
	Key   string `json:"key,omitempty"`
	Route string `json:"route,omitempty"`
}

func (e *Err) Error() string {
	return e.ErrorText
}

// RenderErr aborts the request with e. Server side failures are logged with
// their full cause, which never reaches the client.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", e.HTTPStatusCode),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     http.StatusText(http.StatusBadRequest),
		ErrorText:      err.Error(),
	}
}

func ErrInvalidJSON(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     http.StatusText(http.StatusBadRequest),
		ErrorText:      "Invalid JSON",
	}
}

// ErrNotFound reports that no entry has the given id.
func ErrNotFound(resource, id string) *Err {
	return &Err{
		Err:            fmt.Errorf("%s %q not found", resource, id),
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     http.StatusText(http.StatusNotFound),
		ErrorText:      resource + " not found",
		Key:            id,
	}
}

func ErrRouteNotFound(route string) *Err {
	return &Err{
		Err:            fmt.Errorf("no route for %s", route),
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     http.StatusText(http.StatusNotFound),
		ErrorText:      "Not found",
		Route:          route,
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		StatusText:     http.StatusText(http.StatusConflict),
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
		ErrorText:      "Server error",
	}
}

package response

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-blog-api/internal/core/auth"
	"go-gin-blog-api/internal/core/validation"
	"go-gin-blog-api/internal/domain"
	"go-gin-blog-api/internal/service"
)

type Message struct {
	Message string `json:"message"`
}

type Validation struct {
	Validation validation.Errors `json:"validation"`
}

type ErrDetail struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

type Internal struct {
	Message string     `json:"message"`
	Err     *ErrDetail `json:"err,omitempty"`
}

// AErr is an error that already knows its HTTP status.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return messageFor(e.Code)
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Status(code int) error         { return &AErr{Code: code} }

const keyOptions = "response.options"

type Options struct {
	// ExposeErrors adds the message and stack of unhandled errors to 500 bodies.
	ExposeErrors bool
	Log          *zap.Logger
}

// Use makes o available to Abort for the rest of the chain.
func Use(o Options) gin.HandlerFunc {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Set(keyOptions, o)
		c.Next()
	}
}

func optionsFrom(c *gin.Context) Options {
	if v, ok := c.Get(keyOptions); ok {
		if o, ok := v.(Options); ok {
			return o
		}
	}
	return Options{Log: zap.NewNop()}
}

// Abort writes the response err maps to and stops the handler chain.
func Abort(c *gin.Context, err error) {
	code, body := Render(c, err)
	c.AbortWithStatusJSON(code, body)
}

// Render maps err onto a status and a JSON body.
func Render(c *gin.Context, err error) (int, any) {
	var (
		verrs    validation.Errors
		conflict *domain.ConflictError
		aerr     *AErr
	)
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, Validation{Validation: verrs}
	case errors.As(err, &conflict):
		return http.StatusBadRequest, Validation{Validation: validation.Field(conflict.Field, conflict.Error())}
	case errors.As(err, &aerr):
		if aerr.Code >= http.StatusInternalServerError {
			return internal(c, aerr.Code, err)
		}
		return aerr.Code, Message{Message: aerr.Error()}
	case errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized, Message{Message: MsgNoToken}
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusBadRequest, Message{Message: MsgInvalidToken}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, Message{Message: MsgAccessDenied}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, Message{Message: MsgNotFound}
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, Message{Message: MsgBadCredentials}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, Message{Message: MsgRequestTimeout}
	default:
		return internal(c, http.StatusInternalServerError, err)
	}
}

func internal(c *gin.Context, code int, err error) (int, any) {
	o := optionsFrom(c)
	o.Log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", code),
		zap.Error(err),
	)
	body := Internal{Message: messageFor(code)}
	if o.ExposeErrors {
		body.Err = &ErrDetail{Message: err.Error(), Stack: string(debug.Stack())}
	}
	return code, body
}

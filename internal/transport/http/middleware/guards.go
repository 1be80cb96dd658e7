package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-blog-api/internal/core/validation"
	"go-gin-blog-api/internal/service"
	resp "go-gin-blog-api/internal/transport/http/response"
	"go-gin-blog-api/pkg/utils"
)

const (
	keyBody  = "request.body"
	keyQuery = "request.query"
)

// ValidID rejects a malformed path id before anything looks it up.
func ValidID(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsValidID(c.Param(param)) {
			resp.Abort(c, resp.BadRequest(resp.MsgInvalidID))
			return
		}
		c.Next()
	}
}

// ValidateBody decodes the JSON body strictly into T; BodyFrom[T] reads it back.
func ValidateBody[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		in, errs := validation.DecodeJSON[T](c.Request.Body)
		if errs != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(readErr(c), &tooLarge) {
				resp.Abort(c, resp.Status(http.StatusRequestEntityTooLarge))
				return
			}
			resp.Abort(c, errs)
			return
		}
		c.Set(keyBody, in)
		c.Next()
	}
}

// readErr reports the error a capped body reader ends with, if any.
func readErr(c *gin.Context) error {
	if c.Request.Body == nil {
		return nil
	}
	_, err := c.Request.Body.Read(make([]byte, 1))
	return err
}

func BodyFrom[T any](c *gin.Context) *T {
	v, _ := c.Get(keyBody)
	in, _ := v.(*T)
	return in
}

// ValidateQuery coerces the query string into T; QueryFrom[T] reads it back.
func ValidateQuery[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		in, errs := validation.DecodeQuery[T](c.Request.URL.Query())
		if errs != nil {
			resp.Abort(c, errs)
			return
		}
		c.Set(keyQuery, in)
		c.Next()
	}
}

func QueryFrom[T any](c *gin.Context) *T {
	v, _ := c.Get(keyQuery)
	in, _ := v.(*T)
	return in
}

// Unique rejects a body whose field value is held by another record. When
// idParam is set, the record named by that path parameter is exempt.
// Must run after ValidateBody[T].
func Unique[T any](field string, lookup service.Lookup, value func(*T) string, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := BodyFrom[T](c)
		if in == nil {
			resp.Abort(c, errors.New("unique guard: no validated body"))
			return
		}
		exclude := ""
		if idParam != "" {
			exclude = c.Param(idParam)
		}
		if err := service.CheckUnique(c.Request.Context(), lookup, field, value(in), exclude); err != nil {
			resp.Abort(c, err)
			return
		}
		c.Next()
	}
}

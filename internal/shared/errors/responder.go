package errors

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper maps a context-specific error to a ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes Problem Details responses. Mappers run first, then the
// shared fault kinds; anything left over is an opaque internal error.
type Responder struct {
	logger  *slog.Logger
	mappers []ErrorMapper
}

// NewResponder creates a responder that logs internal failures to logger.
func NewResponder(logger *slog.Logger, mappers ...ErrorMapper) *Responder {
	return &Responder{logger: logger, mappers: mappers}
}

// DefaultResponder logs through slog.Default.
var DefaultResponder = NewResponder(nil)

// Respond sends problem with the problem+json content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError converts err into a ProblemDetail and responds.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	if problem, ok := FromFault(err); ok {
		r.Respond(c, problem)
		return
	}
	r.log().ErrorContext(c.Request.Context(), "request failed",
		slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
	r.Respond(c, ErrInternal)
}

func (r *Responder) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// FromFault maps the shared fault kinds. Storage failures keep their cause out
// of the response body.
func FromFault(err error) (ProblemDetail, bool) {
	switch fault.Kind(err) {
	case fault.ErrValidation:
		return ErrValidation.WithDetail(err.Error()), true
	case fault.ErrNotFound:
		return ErrNotFound.WithDetail(err.Error()), true
	case fault.ErrConflict:
		return ErrConflict.WithDetail(err.Error()), true
	case fault.ErrCapacity:
		return ErrCapacity.WithDetail(err.Error()), true
	case fault.ErrStorage:
		return ErrInternal.WithDetail("the store is unavailable, try again"), true
	default:
		return ProblemDetail{}, false
	}
}

// RespondError is a convenience function using the default responder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

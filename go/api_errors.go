package storefrontserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	authapp "github.com/Apurer/storefront-admin/internal/domains/auth/application"
	apierrors "github.com/Apurer/storefront-admin/internal/shared/errors"
)

// respondProblem writes problem through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder(c).Respond(c, problem)
}

// respondError maps err to a Problem Details response. Authentication
// failures never reach the shared fault mapping.
func respondError(c *gin.Context, err error) {
	responder(c).RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func authErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, authapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail("invalid username or password"), true
	case errors.Is(err, authapp.ErrUnauthenticated):
		return apierrors.ErrUnauthorized.WithDetail("a valid session is required"), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

const responderKey = "storefront.responder"

func responder(c *gin.Context) *apierrors.Responder {
	if value, ok := c.Get(responderKey); ok {
		if r, ok := value.(*apierrors.Responder); ok {
			return r
		}
	}
	return apierrors.NewResponder(nil, authErrorMapper)
}

// withResponder installs a responder that logs internal failures to the
// process logger.
func withResponder(r *apierrors.Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(responderKey, r)
		c.Next()
	}
}

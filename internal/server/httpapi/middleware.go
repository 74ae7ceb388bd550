package httpapi

import (
	"context"
	"strings"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/server/models"
	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// bearerToken pulls the token out of the Authorization header.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", common.ErrorMissingCredential
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", common.ErrorMissingCredential
	}

	return token, nil
}

// AuthRequired rejects requests without a valid token and stores the
// resolved user on the context.
func AuthRequired(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}

		user, err := authn.Resolve(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(currentUserKey).(*models.User)
}

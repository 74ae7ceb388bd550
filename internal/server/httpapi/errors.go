package httpapi

import (
	"errors"
	"net/http"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/server/auth"
	"github.com/gin-gonic/gin"
)

// writeError maps sentinel errors to HTTP status codes. Anything
// unrecognized is a 500 with a generic body so internals never leak.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorMissingCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
	case errors.Is(err, common.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "token expired"})
	case errors.Is(err, common.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "could not validate credentials"})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "incorrect email or password"})
	case errors.Is(err, common.ErrorForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": "not enough permissions"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
	case errors.Is(err, common.ErrorEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"detail": common.ErrorEmailTaken.Error()})
	case errors.Is(err, common.ErrorFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": common.ErrorFileTooLarge.Error()})
	case errors.Is(err, common.ErrorUnsupportedMediaType):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"detail": common.ErrorUnsupportedMediaType.Error()})
	case errors.Is(err, common.ErrorInvalidArgument), errors.Is(err, auth.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

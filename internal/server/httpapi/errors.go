package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourplaces/backend/internal/common"
	"github.com/yourplaces/backend/internal/server/geocode"
)

// writeError maps the service error taxonomy onto HTTP statuses. Anything
// unclassified is a 500 with a generic message: storage detail stays inside.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		abortWith(c, http.StatusNotFound, "not_found", "could not find the requested resource")
	case errors.Is(err, common.ErrConflict):
		abortWith(c, http.StatusConflict, "conflict", "resource exists already")
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		abortWith(c, http.StatusUnauthorized, "unauthorized", "invalid credentials")
	case errors.Is(err, common.ErrForbidden):
		abortWith(c, http.StatusForbidden, "forbidden", "you are not allowed to modify this resource")
	case errors.Is(err, geocode.ErrUnresolvable):
		abortWith(c, http.StatusUnprocessableEntity, "invalid_address", "could not resolve the given address")
	default:
		abortWith(c, http.StatusInternalServerError, "internal", "something went wrong, please try again")
	}
}

func writeBindingError(c *gin.Context) {
	abortWith(c, http.StatusUnprocessableEntity, "invalid_input", "invalid inputs passed, please check your data")
}

func abortWith(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{"message": message, "code": code},
	})
}

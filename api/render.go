package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gavel/auction"
)

// renderDomainError maps domain error kinds onto page-level outcomes:
// Unauthorized redirects anonymous visitors to login (403 page otherwise),
// NotFound renders the 404 page, anything unexpected renders a generic 500.
// ValidationError and ErrConflict are not handled here; the originating
// handler re-renders its own form with the attempted input preserved.
func (impl *ServerImpl) renderDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auction.ErrUnauthorized):
		if impl.currentUser(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		c.HTML(http.StatusForbidden, "error.html", gin.H{
			"Message": "You are not allowed to perform this action.",
		})
	case errors.Is(err, auction.ErrNotFound):
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"Message": "The page you requested does not exist.",
		})
	default:
		slog.Error("Unexpected handler failure", slog.String("path", c.FullPath()), slog.Any("error", err))
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Unexpected error occurred",
		})
	}
}

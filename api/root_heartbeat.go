package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate only runs after the JWT middleware, so reaching it means the
// token was good
func (a *API) Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}

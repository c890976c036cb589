package api

import (
	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
)

// canManage is the single ownership predicate used by every handler: an
// actor may operate on an entity if they own it or hold the admin role.
func canManage(c *gin.Context, ownerID string) bool {
	return c.GetString("userID") == ownerID || c.GetString("userRole") == model.RoleAdmin
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("userRole") == model.RoleAdmin
}

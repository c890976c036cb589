package api

import (
	"net/http"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) UserDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	user, ok := a.userByParam(c)
	if !ok {
		return
	}

	// Even their own account: only admins may remove admin accounts
	if user.Role == model.RoleAdmin && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "You can't delete an admin account",
			"requestID": requestID,
		})
		return
	}

	if err := a.DB.Delete(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted",
	})
}

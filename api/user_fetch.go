package api

import (
	"errors"
	"net/http"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// userByParam loads the :id user and checks that the actor is either
// that user or an admin. Writes the error response itself.
func (a *API) userByParam(c *gin.Context) (*model.User, bool) {
	requestID := c.MustGet("requestID").(string)

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No user ID provided",
			"requestID": requestID,
		})
		return nil, false
	}

	var user model.User

	err := a.DB.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return nil, false
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	if !canManage(c, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "You don't have access to this user",
			"requestID": requestID,
		})
		return nil, false
	}

	return &user, true
}

func (a *API) UserFetch(c *gin.Context) {
	user, ok := a.userByParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, user)
}

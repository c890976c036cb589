package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type userEditBody struct {
	Nickname *string `json:"nickname"`
}

func (a *API) UserEdit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data userEditBody
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	user, ok := a.userByParam(c)
	if !ok {
		return
	}

	if data.Nickname != nil && strings.TrimSpace(*data.Nickname) != "" {
		user.Nickname = strings.TrimSpace(*data.Nickname)
	}

	if err := a.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}

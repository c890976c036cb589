package api

import (
	"net/http"

	"artvault/archive-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type userPasswordBody struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (a *API) UserPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data userPasswordBody
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

	// Admins may reset anyone's password, everyone else has to prove
	// they know the current one
	if !isAdmin(c) {
		match, err := a.Argon.VerifyPasswd(data.CurrentPassword, user.PasswordHash)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !match {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Current password is wrong",
				"requestID": requestID,
			})
			return
		}
	}

	if err := validators.PasswordValidator(data.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	hash, err := a.Argon.GenerateFromPassword(data.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user.PasswordHash = hash

	if err := a.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated",
	})
}

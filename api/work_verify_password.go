package api

import (
	"errors"
	"net/http"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type verifyPasswordBody struct {
	Password string `json:"password"`
}

// WorkVerifyPassword is the password gate for shared works. Owners and
// admins pass without a check, as does anyone when the work isn't
// protected. Runs behind the optional JWT middleware, so the actor may
// be anonymous.
func (a *API) WorkVerifyPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data verifyPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	id := c.Param("id")

	var work model.Work

	err := a.DB.Preload("Archive").Where("id = ?", id).First(&work).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Work not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch work", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if canManage(c, work.OwnerID) || !work.IsPasswordProtected {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"work":    work,
		})
		return
	}

	if work.PasswordHash == nil {
		// Protected flag without a hash shouldn't happen, treat it as a
		// failed check rather than open access
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Wrong password",
			"requestID": requestID,
		})
		return
	}

	ok, err := a.Argon.VerifyPasswd(data.Password, *work.PasswordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify work password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Wrong password",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"work":    work,
	})
}

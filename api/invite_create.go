package api

import (
	"net/http"
	"time"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const inviteCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type inviteCreateBody struct {
	ExpiresAt *time.Time `json:"expiresAt"`
}

func (a *API) InviteCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data inviteCreateBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	code, err := gonanoid.Generate(inviteCharset, 8)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate invite code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	invite := model.InviteCode{
		Code:      code,
		CreatedBy: userID,
		ExpiresAt: data.ExpiresAt,
	}

	if err := a.DB.Create(&invite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create invite code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, invite)
}

package api

import (
	"net/http"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) InviteFetchBulk(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var codes []model.InviteCode

	err := a.DB.
		Preload("Creator").
		Preload("Consumer").
		Order("created_at DESC").
		Find(&codes).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch invite codes", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, codes)
}

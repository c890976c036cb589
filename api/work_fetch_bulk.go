package api

import (
	"net/http"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) WorkFetchBulk(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var works []model.Work

	err := a.DB.
		Preload("Archive").
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&works).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch works", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, works)
}

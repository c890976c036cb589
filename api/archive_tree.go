package api

import (
	"net/http"

	"artvault/archive-api/model"
	"artvault/archive-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) ArchiveTree(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var archives []model.Archive

	err := a.DB.
		Where("owner_id = ?", userID).
		Order("created_at ASC").
		Find(&archives).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch archives", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, service.BuildTree(archives))
}

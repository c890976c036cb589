package api

import (
	"errors"
	"net/http"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileServe hands out the actual file bytes for a stored key. Keys are
// random, a key is only known to whoever was allowed to see the work
// record it belongs to.
func (a *API) FileServe(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	key := c.Param("key")
	if key == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file key provided",
			"requestID": requestID,
		})
		return
	}

	var work model.Work

	err := a.DB.Where("file_key = ?", key).First(&work).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if file exists", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.Store.Serve(c, work.FileKey); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "File not found",
			"requestID": requestID,
		})

		zap.L().Warn("Stored file is missing", zap.Error(err), zap.String("file_key", work.FileKey), zap.String("requestID", requestID))
		return
	}
}

package api

import (
	"net/http"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ArchiveDelete removes a single node. Deletion is never recursive, a
// node holding children or works answers with a conflict instead.
func (a *API) ArchiveDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	archive, ok := a.archiveByParam(c)
	if !ok {
		return
	}

	var children int64

	err := a.DB.Model(model.Archive{}).Where("parent_id = ?", archive.ID).Count(&children).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count child archives", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if children > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Delete the child archives first",
			"requestID": requestID,
		})
		return
	}

	var works int64

	err = a.DB.Model(model.Work{}).Where("archive_id = ?", archive.ID).Count(&works).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count attached works", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if works > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Remove the works from this archive first",
			"requestID": requestID,
		})
		return
	}

	if err := a.DB.Delete(archive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete archive", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Archive deleted",
	})
}

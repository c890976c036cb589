package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WorkDelete removes the stored file and then the metadata record. File
// removal is best-effort, a file that's already gone must not keep the
// record alive.
func (a *API) WorkDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	work, ok := a.workByParam(c)
	if !ok {
		return
	}

	if err := a.Store.Remove(c.Request.Context(), work.FileKey); err != nil {
		zap.L().Warn("Failed to remove stored file, deleting metadata anyway",
			zap.Error(err),
			zap.String("file_key", work.FileKey),
			zap.String("requestID", requestID),
		)
	}

	if err := a.DB.Delete(work).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete work", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Work deleted",
	})
}

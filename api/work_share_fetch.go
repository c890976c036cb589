package api

import (
	"errors"
	"net/http"
	"time"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WorkSharedFetch resolves a share link without authentication. The
// Expired state isn't stored anywhere, it's derived here by comparing
// the stored expiry against the clock.
func (a *API) WorkSharedFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	shareLink := c.Param("shareLink")
	if shareLink == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No share link provided",
			"requestID": requestID,
		})
		return
	}

	var work model.Work

	err := a.DB.
		Preload("Archive").
		Where("share_link = ?", shareLink).
		First(&work).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Work not found or the link is no longer valid",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to resolve share link", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if work.ShareExpiry != nil && time.Now().After(*work.ShareExpiry) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "Share link expired",
			"requestID": requestID,
		})
		return
	}

	// Best-effort view counter, repeat viewers aren't deduplicated and
	// a failed increment doesn't block the response
	err = a.DB.
		Model(model.Work{}).
		Where("id = ?", work.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).
		Error
	if err != nil {
		zap.L().Warn("Failed to increment view counter", zap.Error(err), zap.String("requestID", requestID))
	} else {
		work.ViewCount++
	}

	if work.IsPasswordProtected {
		// Hold back the file key until the password gate is passed
		work.FileKey = ""

		c.JSON(http.StatusOK, gin.H{
			"work":             work,
			"requiresPassword": true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"work":             work,
		"requiresPassword": false,
	})
}

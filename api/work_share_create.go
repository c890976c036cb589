package api

import (
	"net/http"
	"time"

	"artvault/archive-api/model"
	"artvault/archive-api/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type shareCreateBody struct {
	ShareExpiry *time.Time `json:"shareExpiry"`
}

// WorkShareCreate mints a fresh share token for a work. The previous
// token is overwritten, so links handed out earlier die immediately.
func (a *API) WorkShareCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data shareCreateBody
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	work, ok := a.workByParam(c)
	if !ok {
		return
	}

	shareLink, err := util.GenerateToken(16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate share token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.
		Model(model.Work{}).
		Where("id = ?", work.ID).
		Updates(map[string]any{
			"share_link":   shareLink,
			"share_expiry": data.ShareExpiry,
		}).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update share link", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shareLink":   shareLink,
		"shareExpiry": data.ShareExpiry,
	})
}

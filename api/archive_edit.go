package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type archiveEditBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ArchiveEdit updates name and/or description. The materialized paths
// of descendants are NOT rewritten on rename, path only reflects the
// names at creation time.
func (a *API) ArchiveEdit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data archiveEditBody
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	archive, ok := a.archiveByParam(c)
	if !ok {
		return
	}

	if data.Name != nil {
		name := strings.TrimSpace(*data.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Archive name can't be empty",
				"requestID": requestID,
			})
			return
		}

		archive.Name = name
	}

	if data.Description != nil {
		archive.Description = *data.Description
	}

	if err := a.DB.Save(archive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update archive", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, archive)
}

package api

import (
	"errors"
	"net/http"
	"strings"

	"artvault/archive-api/model"
	"artvault/archive-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type archiveCreateBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parentId"`
}

func (a *API) ArchiveCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data archiveCreateBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	data.Name = strings.TrimSpace(data.Name)
	if data.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No archive name provided",
			"requestID": requestID,
		})
		return
	}

	path := "/" + data.Name

	if data.ParentID != nil {
		var parent model.Archive

		err := a.DB.Where("id = ?", *data.ParentID).First(&parent).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"error":     "Parent archive not found",
					"requestID": requestID,
				})
				return
			}

			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to fetch parent archive", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !canManage(c, parent.OwnerID) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":     "You can't create archives under this parent",
				"requestID": requestID,
			})
			return
		}

		path = service.FullPath(a.DB, &parent) + "/" + data.Name
	}

	archive := model.Archive{
		Name:        data.Name,
		Description: data.Description,
		OwnerID:     userID,
		ParentID:    data.ParentID,
		Path:        path,
	}

	if err := a.DB.Create(&archive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create archive", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, archive)
}

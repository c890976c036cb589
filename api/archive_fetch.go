package api

import (
	"errors"
	"net/http"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// archiveByParam loads the :id archive and runs the ownership check.
// Writes the error response itself, callers just bail on !ok.
func (a *API) archiveByParam(c *gin.Context) (*model.Archive, bool) {
	requestID := c.MustGet("requestID").(string)

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No archive ID provided",
			"requestID": requestID,
		})
		return nil, false
	}

	var archive model.Archive

	err := a.DB.Where("id = ?", id).First(&archive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Archive not found",
				"requestID": requestID,
			})
			return nil, false
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch archive", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	if !canManage(c, archive.OwnerID) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "You don't have access to this archive",
			"requestID": requestID,
		})
		return nil, false
	}

	return &archive, true
}

func (a *API) ArchiveFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	archive, ok := a.archiveByParam(c)
	if !ok {
		return
	}

	var children []model.Archive

	err := a.DB.Where("parent_id = ?", archive.ID).Find(&children).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch child archives", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var works []model.Work

	err = a.DB.Where("archive_id = ?", archive.ID).Find(&works).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch attached works", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"archive":  archive,
		"children": children,
		"works":    works,
	})
}

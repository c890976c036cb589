package api

import (
	"errors"
	"net/http"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// workByParam loads the :id work with its archive and runs the
// ownership check. Writes the error response itself.
func (a *API) workByParam(c *gin.Context) (*model.Work, bool) {
	requestID := c.MustGet("requestID").(string)

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No work ID provided",
			"requestID": requestID,
		})
		return nil, false
	}

	var work model.Work

	err := a.DB.Preload("Archive").Where("id = ?", id).First(&work).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Work not found",
				"requestID": requestID,
			})
			return nil, false
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch work", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	if !canManage(c, work.OwnerID) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "You don't have access to this work",
			"requestID": requestID,
		})
		return nil, false
	}

	return &work, true
}

func (a *API) WorkFetch(c *gin.Context) {
	work, ok := a.workByParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, work)
}

package api

import (
	"errors"
	"net/http"
	"strings"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type workEditBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`

	// 0 moves the work out of any archive
	ArchiveID *uint `json:"archiveId"`

	IsPasswordProtected *bool   `json:"isPasswordProtected"`
	Password            *string `json:"password"`
}

func (a *API) WorkEdit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data workEditBody
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

	if data.Title != nil {
		title := strings.TrimSpace(*data.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Work title can't be empty",
				"requestID": requestID,
			})
			return
		}

		work.Title = title
	}

	if data.Description != nil {
		work.Description = *data.Description
	}

	if data.ArchiveID != nil {
		if *data.ArchiveID == 0 {
			work.ArchiveID = nil
			work.Archive = nil
		} else {
			var archive model.Archive

			err := a.DB.Where("id = ?", *data.ArchiveID).First(&archive).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusNotFound, gin.H{
						"error":     "Archive not found",
						"requestID": requestID,
					})
					return
				}

				c.JSON(http.StatusInternalServerError, gin.H{
					"error":     "Internal server error",
					"requestID": requestID,
				})

				zap.L().Error("Failed to fetch archive", zap.Error(err), zap.String("requestID", requestID))
				return
			}

			if !canManage(c, archive.OwnerID) {
				c.JSON(http.StatusForbidden, gin.H{
					"error":     "You can't file works into this archive",
					"requestID": requestID,
				})
				return
			}

			work.ArchiveID = &archive.ID
			work.Archive = &archive
		}
	}

	if data.IsPasswordProtected != nil {
		work.IsPasswordProtected = *data.IsPasswordProtected

		if !work.IsPasswordProtected {
			// Dropping protection clears the stored hash
			work.PasswordHash = nil
		} else if data.Password != nil && *data.Password != "" {
			hash, err := a.Argon.GenerateFromPassword(*data.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":     "Internal server error",
					"requestID": requestID,
				})

				zap.L().Error("Failed to hash work password", zap.Error(err), zap.String("requestID", requestID))
				return
			}

			work.PasswordHash = &hash
		}

		if work.IsPasswordProtected && work.PasswordHash == nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "No password provided for a protected work",
				"requestID": requestID,
			})
			return
		}
	}

	// Save with Select so cleared fields (archive_id, password_hash)
	// actually reach the database
	err := a.DB.
		Model(work).
		Select("title", "description", "archive_id", "is_password_protected", "password_hash").
		Updates(map[string]any{
			"title":                 work.Title,
			"description":           work.Description,
			"archive_id":            work.ArchiveID,
			"is_password_protected": work.IsPasswordProtected,
			"password_hash":         work.PasswordHash,
		}).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update work", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, work)
}

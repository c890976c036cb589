package api

import (
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"artvault/archive-api/model"
	"artvault/archive-api/util"
	"artvault/archive-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) WorkUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed multipart form",
			"requestID": requestID,
		})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	fh := files[0]

	code, f, err := validators.FileValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.Error(err), zap.String("requestID", requestID))
			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No title provided",
			"requestID": requestID,
		})
		return
	}

	var archiveID *uint

	if v := c.PostForm("archiveId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid archive ID",
				"requestID": requestID,
			})
			return
		}

		var archive model.Archive

		err = a.DB.Where("id = ?", id).First(&archive).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"error":     "Archive not found",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to fetch archive", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !canManage(c, archive.OwnerID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "You can't file works into this archive",
				"requestID": requestID,
			})
			return
		}

		archiveID = &archive.ID
	}

	isProtected := c.PostForm("isPasswordProtected") == "true"

	var passwordHash *string

	if isProtected {
		password := c.PostForm("password")
		if password == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "No password provided for a protected work",
				"requestID": requestID,
			})
			return
		}

		// Hashed exactly once here, the clear text is never persisted
		hash, err := a.Argon.GenerateFromPassword(password)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to hash work password", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		passwordHash = &hash
	}

	// Every work gets a share token right away, sharing later is just a
	// matter of handing out the link
	shareLink, err := util.GenerateToken(16)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate share token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	fileKey := uuid.NewString() + path.Ext(fh.Filename)

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	err = a.Store.Save(c.Request.Context(), fileKey, f, fh.Size, contentType)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	work := model.Work{
		Title:               title,
		Description:         c.PostForm("description"),
		OwnerID:             userID,
		FileKey:             fileKey,
		FileType:            contentType,
		FileSize:            fh.Size,
		ArchiveID:           archiveID,
		IsPasswordProtected: isProtected,
		PasswordHash:        passwordHash,
		ShareLink:           shareLink,
	}

	if err := a.DB.Create(&work).Error; err != nil {
		// Don't leave the stored file orphaned when the metadata never
		// made it
		if rmErr := a.Store.Remove(c.Request.Context(), fileKey); rmErr != nil {
			zap.L().Error("Failed to clean up after failed upload", zap.Error(rmErr), zap.String("requestID", requestID))
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save work record to db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"work": work,
	})
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkUpload(t *testing.T) {
	a := setupTestAPI(t)
	user, token := createUser(t, a, "oscar", "password123", model.RoleUser)

	w := doUpload(t, a, token, map[string]string{
		"title":       "notes",
		"description": "some plain text",
	}, "notes.txt", "hello world")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Work model.Work `json:"work"`
	}
	decode(t, w, &resp)

	assert.Equal(t, "notes", resp.Work.Title)
	assert.Equal(t, user.ID, resp.Work.OwnerID)
	assert.Len(t, resp.Work.ShareLink, 32)
	assert.NotEmpty(t, resp.Work.FileKey)
	assert.EqualValues(t, len("hello world"), resp.Work.FileSize)
	assert.False(t, resp.Work.IsPasswordProtected)

	// The stored file is reachable through the file endpoint
	w = doJSON(t, a, http.MethodGet, "/api/files/"+resp.Work.FileKey, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello world", w.Body.String())
}

func TestWorkUploadRejectsUnsupportedType(t *testing.T) {
	a := setupTestAPI(t)
	_, token := createUser(t, a, "peggy", "password123", model.RoleUser)

	// A PDF header sniffs as application/pdf, which isn't on the
	// configured allow-list
	w := doUpload(t, a, token, map[string]string{
		"title": "contract",
	}, "contract.pdf", "%PDF-1.4\n%some pdf content")
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestWorkUploadProtected(t *testing.T) {
	a := setupTestAPI(t)
	_, token := createUser(t, a, "quinn", "password123", model.RoleUser)

	w := doUpload(t, a, token, map[string]string{
		"title":               "diary",
		"isPasswordProtected": "true",
		"password":            "secret",
	}, "diary.txt", "dear diary")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Work model.Work `json:"work"`
	}
	decode(t, w, &resp)
	assert.True(t, resp.Work.IsPasswordProtected)

	// Protected without a password is rejected outright
	w = doUpload(t, a, token, map[string]string{
		"title":               "diary2",
		"isPasswordProtected": "true",
	}, "diary2.txt", "dear diary")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkVerifyPassword(t *testing.T) {
	a := setupTestAPI(t)
	owner, ownerToken := createUser(t, a, "rita", "password123", model.RoleUser)
	_, strangerToken := createUser(t, a, "steve", "password123", model.RoleUser)
	_, adminToken := createUser(t, a, "boss", "password123", model.RoleAdmin)

	work := createWork(t, a, owner, "protected piece", "secret")
	path := fmt.Sprintf("/api/works/%d/verify-password", work.ID)

	// The owner passes without knowing the password
	w := doJSON(t, a, http.MethodPost, path, ownerToken, gin.H{"password": "anything"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// So does an admin
	w = doJSON(t, a, http.MethodPost, path, adminToken, gin.H{"password": "anything"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A stranger needs the right password
	w = doJSON(t, a, http.MethodPost, path, strangerToken, gin.H{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, a, http.MethodPost, path, strangerToken, gin.H{"password": "secret"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Anonymous viewers can pass the gate too, the route runs without
	// mandatory auth
	w = doJSON(t, a, http.MethodPost, path, "", gin.H{"password": "secret"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Unprotected works short-circuit for anyone
	open := createWork(t, a, owner, "open piece", "")
	w = doJSON(t, a, http.MethodPost, fmt.Sprintf("/api/works/%d/verify-password", open.ID), "", gin.H{})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestWorkShareRoundTrip(t *testing.T) {
	a := setupTestAPI(t)
	owner, token := createUser(t, a, "tina", "password123", model.RoleUser)

	work := createWork(t, a, owner, "shared piece", "")
	oldLink := work.ShareLink

	w := doJSON(t, a, http.MethodPost, fmt.Sprintf("/api/works/%d/share", work.ID), token, gin.H{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ShareLink string `json:"shareLink"`
	}
	decode(t, w, &resp)
	assert.Len(t, resp.ShareLink, 32)
	assert.NotEqual(t, oldLink, resp.ShareLink)

	// The previous link died the moment a new one was minted
	w = doJSON(t, a, http.MethodGet, "/api/share/"+oldLink, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The new one resolves anonymously and counts the view
	w = doJSON(t, a, http.MethodGet, "/api/share/"+resp.ShareLink, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var shared struct {
		Work             model.Work `json:"work"`
		RequiresPassword bool       `json:"requiresPassword"`
	}
	decode(t, w, &shared)
	assert.Equal(t, work.ID, shared.Work.ID)
	assert.False(t, shared.RequiresPassword)
	assert.EqualValues(t, 1, shared.Work.ViewCount)

	w = doJSON(t, a, http.MethodGet, "/api/share/"+resp.ShareLink, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	decode(t, w, &shared)
	assert.EqualValues(t, 2, shared.Work.ViewCount)
}

func TestWorkShareProtectedHidesFileKey(t *testing.T) {
	a := setupTestAPI(t)
	owner, _ := createUser(t, a, "ursula", "password123", model.RoleUser)

	work := createWork(t, a, owner, "locked piece", "secret")

	w := doJSON(t, a, http.MethodGet, "/api/share/"+work.ShareLink, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var raw struct {
		Work             map[string]json.RawMessage `json:"work"`
		RequiresPassword bool                       `json:"requiresPassword"`
	}
	decode(t, w, &raw)
	assert.True(t, raw.RequiresPassword)

	// The file key stays hidden until the password gate is passed
	_, leaked := raw.Work["file_key"]
	assert.False(t, leaked)
}

func TestWorkShareExpired(t *testing.T) {
	a := setupTestAPI(t)
	owner, _ := createUser(t, a, "victor", "password123", model.RoleUser)

	work := createWork(t, a, owner, "stale piece", "")

	past := time.Now().Add(-time.Hour)
	require.NoError(t, a.DB.Model(work).Update("share_expiry", past).Error)

	w := doJSON(t, a, http.MethodGet, "/api/share/"+work.ShareLink, "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An unexpired future deadline still resolves
	future := time.Now().Add(time.Hour)
	require.NoError(t, a.DB.Model(work).Update("share_expiry", future).Error)

	w = doJSON(t, a, http.MethodGet, "/api/share/"+work.ShareLink, "", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestWorkEditProtectionToggle(t *testing.T) {
	a := setupTestAPI(t)
	owner, token := createUser(t, a, "wendy", "password123", model.RoleUser)

	work := createWork(t, a, owner, "plain piece", "")
	path := fmt.Sprintf("/api/works/%d", work.ID)

	// Turning protection on requires a password
	w := doJSON(t, a, http.MethodPut, path, token, gin.H{
		"isPasswordProtected": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, a, http.MethodPut, path, token, gin.H{
		"isPasswordProtected": true,
		"password":            "secret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored model.Work
	require.NoError(t, a.DB.First(&stored, work.ID).Error)
	assert.True(t, stored.IsPasswordProtected)
	require.NotNil(t, stored.PasswordHash)

	ok, err := a.Argon.VerifyPasswd("secret", *stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// Turning it off clears the hash
	w = doJSON(t, a, http.MethodPut, path, token, gin.H{
		"isPasswordProtected": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, a.DB.First(&stored, work.ID).Error)
	assert.False(t, stored.IsPasswordProtected)
	assert.Nil(t, stored.PasswordHash)
}

func TestWorkEditUnfile(t *testing.T) {
	a := setupTestAPI(t)
	owner, token := createUser(t, a, "xavier", "password123", model.RoleUser)

	archive := model.Archive{Name: "docs", OwnerID: owner.ID, Path: "/docs"}
	require.NoError(t, a.DB.Create(&archive).Error)

	work := createWork(t, a, owner, "filed piece", "")
	require.NoError(t, a.DB.Model(work).Update("archive_id", archive.ID).Error)

	w := doJSON(t, a, http.MethodPut, fmt.Sprintf("/api/works/%d", work.ID), token, gin.H{
		"archiveId": 0,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored model.Work
	require.NoError(t, a.DB.First(&stored, work.ID).Error)
	assert.Nil(t, stored.ArchiveID)
}

func TestWorkDelete(t *testing.T) {
	a := setupTestAPI(t)
	owner, token := createUser(t, a, "yann", "password123", model.RoleUser)
	_, strangerToken := createUser(t, a, "zoe", "password123", model.RoleUser)

	work := createWork(t, a, owner, "doomed piece", "")
	path := fmt.Sprintf("/api/works/%d", work.ID)

	w := doJSON(t, a, http.MethodDelete, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, a, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, a.DB.Model(model.Work{}).Where("id = ?", work.ID).Count(&count).Error)
	assert.Zero(t, count)
}

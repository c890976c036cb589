package api

import (
	"net/http"
	"testing"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterConsumesInviteCode(t *testing.T) {
	a := setupTestAPI(t)

	admin, _ := createUser(t, a, "admin", "password123", model.RoleAdmin)

	invite := model.InviteCode{Code: "ABC123", CreatedBy: admin.ID}
	require.NoError(t, a.DB.Create(&invite).Error)

	w := doJSON(t, a, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":   "alice",
		"password":   "password123",
		"inviteCode": "ABC123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	assert.NotEmpty(t, resp.Token)

	var alice model.User
	require.NoError(t, a.DB.Where("username = ?", "alice").First(&alice).Error)
	assert.Equal(t, model.RoleUser, alice.Role)

	require.NoError(t, a.DB.First(&invite, invite.ID).Error)
	assert.True(t, invite.IsUsed)
	require.NotNil(t, invite.UsedBy)
	assert.Equal(t, alice.ID, *invite.UsedBy)

	// The code is single use, a second registration with it must fail
	// and leave no user behind
	w = doJSON(t, a, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":   "bob",
		"password":   "password123",
		"inviteCode": "ABC123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, a.DB.Model(model.User{}).Where("username = ?", "bob").Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterUnknownInviteCode(t *testing.T) {
	a := setupTestAPI(t)

	w := doJSON(t, a, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":   "mallory",
		"password":   "password123",
		"inviteCode": "NOPE1234",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	a := setupTestAPI(t)
	createUser(t, a, "carol", "password123", model.RoleUser)

	w := doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "carol",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	assert.NotEmpty(t, resp.Token)

	// Wrong password and unknown user answer identically
	w = doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "carol",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "nobody",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMe(t *testing.T) {
	a := setupTestAPI(t)
	user, token := createUser(t, a, "dave", "password123", model.RoleUser)

	w := doJSON(t, a, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var me model.User
	decode(t, w, &me)
	assert.Equal(t, user.ID, me.ID)

	w = doJSON(t, a, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"artvault/archive-api/model"
	"artvault/archive-api/security"
	"artvault/archive-api/storage"
	"artvault/archive-api/util"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestAPI(t *testing.T) *API {
	t.Helper()

	viper.Set("jwt.secret", "test-secret")
	viper.Set("jwt.ttl_hours", 1)
	viper.Set("upload.max_size", int64(50<<20))
	viper.Set("upload.allowed_types", []string{"text/plain", "image/png"})
	viper.Set("host.cors_origins", []string{"http://localhost:3000"})

	// Shared cache so every pooled connection sees the same in-memory
	// database
	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", dbCounter.Add(1))

	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, d.AutoMigrate(model.User{}, model.Archive{}, model.Work{}, model.InviteCode{}))

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	a := &API{
		DB:    d,
		Argon: security.New(),
		Store: store,
	}
	a.setupRoutes()

	return a
}

// createUser puts a user straight into the database and returns it
// together with a valid session token
func createUser(t *testing.T, a *API, username, password, role string) (*model.User, string) {
	t.Helper()

	hash, err := a.Argon.GenerateFromPassword(password)
	require.NoError(t, err)

	id, err := gonanoid.Generate(idCharset, 16)
	require.NoError(t, err)

	user := model.User{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
		Nickname:     username,
		Role:         role,
	}
	require.NoError(t, a.DB.Create(&user).Error)

	token, err := security.MakeToken(&user)
	require.NoError(t, err)

	return &user, token
}

// createWork puts a work record straight into the database. password ""
// means unprotected.
func createWork(t *testing.T, a *API, owner *model.User, title, password string) *model.Work {
	t.Helper()

	shareLink, err := util.GenerateToken(16)
	require.NoError(t, err)

	work := model.Work{
		Title:     title,
		OwnerID:   owner.ID,
		FileKey:   fmt.Sprintf("%s.txt", util.RandStr(12)),
		FileType:  "text/plain",
		FileSize:  11,
		ShareLink: shareLink,
	}

	if password != "" {
		hash, err := a.Argon.GenerateFromPassword(password)
		require.NoError(t, err)

		work.IsPasswordProtected = true
		work.PasswordHash = &hash
	}

	require.NoError(t, a.DB.Create(&work).Error)
	return &work
}

func doJSON(t *testing.T, a *API, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Auth-Token", token)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func doUpload(t *testing.T, a *API, token string, fields map[string]string, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/works", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Auth-Token", token)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

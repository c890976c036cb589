// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"artvault/archive-api/config"
	"artvault/archive-api/db"
	"artvault/archive-api/middleware"
	"artvault/archive-api/security"
	"artvault/archive-api/storage"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Argon  *security.ArgonHash
	Store  storage.Store
}

func NewRouter() (*API, error) {
	a := &API{
		Argon: security.New(),
	}

	d, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = d

	makeLogger()

	store, err := storage.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage backend, %w", err)
	}
	a.Store = store

	if config.SeedAdmin() {
		if err := db.Seed(d, a.Argon); err != nil {
			return nil, err
		}
	}

	a.setupRoutes()

	return a, nil
}

func (a *API) setupRoutes() {
	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.AuthHeader},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware(a.DB)
	optionalJWT := middleware.NewOptionalJWTMiddleware(a.DB)
	admin := middleware.NewAdminMiddleware()
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a session token
		main.HEAD("/validate", jwt, a.Validate)

		// GET /api/share/:shareLink	-> Resolves a share link, no auth needed
		main.GET("/share/:shareLink", a.WorkSharedFetch)

		// GET /api/files/:key		-> Serves a stored file by its generated key
		main.GET("/files/:key", a.FileServe)
	}

	auth := main.Group("/auth",
		middleware.BodySizeLimiter(1<<20),
		middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		}),
	)
	{
		// POST /api/auth/register 	-> Registers a new user with an invite code
		auth.POST("/register", a.AuthRegister)

		// POST /api/auth/login 	-> Logs in a user and returns a session token
		auth.POST("/login", a.AuthLogin)

		// GET /api/auth/me		-> Returns the logged in user
		auth.GET("/me", jwt, a.AuthMe)
	}

	archives := main.Group("/archives", jwt, middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/archives		-> Creates an archive, optionally under a parent
		archives.POST("", a.ArchiveCreate)

		// GET /api/archives		-> Returns the user's archives as a flat list
		archives.GET("", a.ArchiveFetchBulk)

		// GET /api/archives/tree	-> Returns the user's archives as a forest
		archives.GET("/tree", a.ArchiveTree)

		// GET /api/archives/:id	-> Returns an archive with children and works
		archives.GET("/:id", a.ArchiveFetch)

		// PUT /api/archives/:id	-> Renames or redescribes an archive
		archives.PUT("/:id", a.ArchiveEdit)

		// DELETE /api/archives/:id	-> Deletes an empty archive
		archives.DELETE("/:id", a.ArchiveDelete)
	}

	works := main.Group("/works")
	{
		// POST /api/works		-> Uploads a new work (multipart)
		works.POST("", jwt, middleware.BodySizeLimiter(maxUploadSize+(1<<20)), a.WorkUpload)

		// GET /api/works		-> Returns the user's works
		works.GET("", jwt, a.WorkFetchBulk)

		// GET /api/works/:id		-> Returns a single work
		works.GET("/:id", jwt, a.WorkFetch)

		// PUT /api/works/:id		-> Edits work metadata
		works.PUT("/:id", jwt, middleware.BodySizeLimiter(1<<20), a.WorkEdit)

		// DELETE /api/works/:id	-> Deletes a work and its stored file
		works.DELETE("/:id", jwt, a.WorkDelete)

		// POST /api/works/:id/share	-> (Re)generates the share link
		works.POST("/:id/share", jwt, middleware.BodySizeLimiter(1<<20), a.WorkShareCreate)

		// POST /api/works/:id/verify-password -> Password gate for shared works
		works.POST("/:id/verify-password", optionalJWT, middleware.BodySizeLimiter(1<<20), a.WorkVerifyPassword)
	}

	users := main.Group("/users", jwt, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/users		-> Lists all users (admin)
		users.GET("", admin, a.UserFetchBulk)

		// POST /api/users		-> Creates a user directly (admin)
		users.POST("", admin, a.UserCreate)

		// GET /api/users/:id		-> Returns a user (self or admin)
		users.GET("/:id", a.UserFetch)

		// PUT /api/users/:id		-> Updates a user's profile (self or admin)
		users.PUT("/:id", a.UserEdit)

		// PUT /api/users/:id/password	-> Changes a user's password (self or admin)
		users.PUT("/:id/password", a.UserPassword)

		// DELETE /api/users/:id	-> Deletes a user (self or admin)
		users.DELETE("/:id", a.UserDelete)
	}

	invites := main.Group("/invite-codes", jwt, admin, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/invite-codes	-> Lists invite codes with creator/consumer
		invites.GET("", a.InviteFetchBulk)

		// POST /api/invite-codes	-> Creates an invite code
		invites.POST("", a.InviteCreate)

		// DELETE /api/invite-codes/:id	-> Deletes an invite code
		invites.DELETE("/:id", a.InviteDelete)
	}
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if level, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"artvault/archive-api/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthHeader is the custom header clients put their session token in.
// Credentials are read per request, never attached to any global state.
const AuthHeader = "X-Auth-Token"

type tokenClaims struct {
	UserID   string
	Username string
	Role     string
}

var errTokenExpired = errors.New("token expired")

func parseToken(tokenStr string) (*tokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("jwt.secret")), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Now().Unix() >= int64(exp) {
		return nil, errTokenExpired
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token carries no user_id")
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &tokenClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, nil
}

// NewJWTMiddleware rejects requests without a valid session token. On
// success the actor's identity and role are set on the context as
// userID, username and userRole.
func NewJWTMiddleware(d *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr := c.GetHeader(AuthHeader)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "No auth token provided",
				"requestID": requestID,
			})
			return
		}

		claims, err := parseToken(tokenStr)
		if err != nil {
			if errors.Is(err, errTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "token_expired",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "token_invalid",
				"requestID": requestID,
			})

			zap.L().Debug("Failed to parse token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		// Tokens outlive account deletion, so check that the user
		// still exists before trusting the claims
		var user model.User
		err = d.Where("id = ?", claims.UserID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "user_not_found",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", user.ID)
		c.Set("username", user.Username)
		c.Set("userRole", user.Role)
		c.Next()
	}
}

// NewOptionalJWTMiddleware sets the actor's identity when a valid token
// is present and stays silent otherwise. Used on endpoints that are
// public but behave differently for owners and admins.
func NewOptionalJWTMiddleware(d *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader(AuthHeader)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := parseToken(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		var user model.User
		if err := d.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			c.Next()
			return
		}

		c.Set("userID", user.ID)
		c.Set("username", user.Username)
		c.Set("userRole", user.Role)
		c.Next()
	}
}

// NewAdminMiddleware must run after the JWT middleware
func NewAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		if c.GetString("userRole") != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Admin privileges required",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}

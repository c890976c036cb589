package security

import (
	"time"

	"artvault/archive-api/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// MakeToken issues a signed session token carrying the user's identity
// and role. There is no revocation list, a token stays valid until exp.
func MakeToken(u *model.User) (string, error) {
	ttl := time.Duration(viper.GetInt("jwt.ttl_hours")) * time.Hour

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"role":     u.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
	})

	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}

package db

import (
	"errors"
	"fmt"
	"strings"

	"artvault/archive-api/model"
	"artvault/archive-api/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Seed creates the initial admin account and a first invite code so
// that registration isn't locked out on a fresh database. Does nothing
// if an admin already exists.
func Seed(d *gorm.DB, argon *security.ArgonHash) error {
	var admin model.User

	err := d.Where("role = ?", model.RoleAdmin).First(&admin).Error
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for an existing admin, %w", err)
	}

	password := viper.GetString("admin.password")
	if password == "" {
		return errors.New("no admin exists and admin.password is not set")
	}

	hash, err := argon.GenerateFromPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password, %w", err)
	}

	adminID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return fmt.Errorf("failed to generate admin ID, %w", err)
	}

	code, err := gonanoid.Generate(idCharset, 8)
	if err != nil {
		return fmt.Errorf("failed to generate invite code, %w", err)
	}

	username := viper.GetString("admin.username")

	err = d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.User{
			ID:           adminID,
			Username:     username,
			PasswordHash: hash,
			Nickname:     username,
			Role:         model.RoleAdmin,
		}).Error; err != nil {
			return err
		}

		return tx.Create(&model.InviteCode{
			Code:      strings.ToUpper(code),
			CreatedBy: adminID,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin account, %w", err)
	}

	zap.L().Info("Seeded initial admin account",
		zap.String("username", username),
		zap.String("invite_code", strings.ToUpper(code)),
	)
	return nil
}

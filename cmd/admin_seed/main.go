// Command admin_seed bootstraps the initial admin account from environment
// variables. It is idempotent: an existing admin is left untouched.
package main

import (
	"errors"
	"os"

	"bankcards/internal/config"
	"bankcards/internal/models"
	"bankcards/internal/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		logrus.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		logrus.Fatalf("failed to initialize storage: %v", err)
	}
	defer repositories.CloseDB()

	var existing models.User
	err := repositories.DB.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		logrus.Info("admin user already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.Fatalf("failed to look up admin user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash password: %v", err)
	}

	admin := models.User{
		FirstName:    "System",
		LastName:     "Administrator",
		Email:        adminEmail,
		Password:     string(hashed),
		Role:         models.RoleAdmin,
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		logrus.Fatalf("failed to create admin user: %v", err)
	}

	logrus.WithField("user_id", admin.ID).Info("admin account created")
}

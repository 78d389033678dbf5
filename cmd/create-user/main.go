// Command create-user provisions a staff account able to log in to the API.
// The password is read from CREATE_USER_PASSWORD so it never shows up in shell history.
package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/noah-isme/school-enrollment-api/internal/models"
	"github.com/noah-isme/school-enrollment-api/internal/repository"
	"github.com/noah-isme/school-enrollment-api/internal/service"
	"github.com/noah-isme/school-enrollment-api/pkg/config"
	"github.com/noah-isme/school-enrollment-api/pkg/database"
	"github.com/noah-isme/school-enrollment-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "account email")
	name := flag.String("name", "", "full name")
	role := flag.String("role", string(models.RoleSecretary), "SUPERADMIN, ADMIN or SECRETARY")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	password := os.Getenv("CREATE_USER_PASSWORD")
	userRole := models.UserRole(strings.ToUpper(*role))
	if strings.TrimSpace(*email) == "" || strings.TrimSpace(*name) == "" || password == "" || !userRole.Valid() {
		flag.Usage()
		logr.Fatal("email, name, a valid role and CREATE_USER_PASSWORD are required")
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		logr.Fatal("hash password", zap.Error(err))
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("connect database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user := &models.User{
		Email:        strings.TrimSpace(*email),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(*name),
		Role:         userRole,
		Active:       true,
	}
	if err := repository.NewUserRepository(db).Create(ctx, user); err != nil {
		logr.Fatal("create user", zap.Error(err))
	}
	logr.Info("user created", zap.Int64("id", user.ID), zap.String("email", user.Email), zap.String("role", string(user.Role)))
}

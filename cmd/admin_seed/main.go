package main

import (
	"context"
	"flag"

	"gamewallet/config"
	"gamewallet/database"
	"gamewallet/helpers"
	"gamewallet/services"

	"github.com/sirupsen/logrus"
)

func main() {
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password (min 8 chars)")
	role := flag.String("role", "superadmin", "admin role")
	flag.Parse()

	cfg := config.Load()
	helpers.InitLogger(cfg.LogLevel, cfg.LogFormat)

	if *username == "" || *password == "" {
		logrus.Fatal("-username and -password are required")
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}

	admins := services.NewAdminService(db, cfg.AdminJWTSecret, cfg.AdminTokenTTL)
	admin, err := admins.UpsertAdmin(context.Background(), *username, *password, *role)
	if err != nil {
		logrus.Fatalf("seed admin: %v", err)
	}
	logrus.Infof("admin %q ready (id=%d, role=%s)", admin.Username, admin.ID, admin.Role)
}

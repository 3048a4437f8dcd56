package main

import (
	"github.com/sirupsen/logrus"

	"volunteer_hub/internal/config"
	"volunteer_hub/internal/controllers"
	"volunteer_hub/internal/logger"
)

// migrate applies the schema, seeds the admin account when ADMIN_EMAIL is
// set, and exits. The server also migrates on boot but never seeds.
func main() {
	cfg := config.LoadConfig()
	logger.Setup(cfg.LogFile, true)

	db, err := config.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("migration complete")

	if cfg.AdminEmail == "" {
		return
	}
	created, err := controllers.SeedAdmin(db, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logrus.Fatalf("admin seeding failed: %v", err)
	}
	if created {
		logrus.WithField("email", cfg.AdminEmail).Info("admin account created")
	} else {
		logrus.WithField("email", cfg.AdminEmail).Info("admin account already exists")
	}
}

package main

import (
	"fmt"
	"path/filepath"

	"neurowatch/internal/config"
	logger "neurowatch/internal/logging"
	"neurowatch/internal/models"
	"neurowatch/internal/router"

	"go.uber.org/zap"
)

func runServe(projectRoot string) error {
	v, err := config.Load(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Init(projectRoot, config.Conf.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	config.Watch(v, log)

	fixturesPath := config.Conf.Dashboard.Fixtures
	if !filepath.IsAbs(fixturesPath) {
		fixturesPath = filepath.Join(projectRoot, fixturesPath)
	}
	fixtures, err := models.LoadFixtures(fixturesPath)
	if err != nil {
		log.Error("Failed to load fixtures", zap.String("path", fixturesPath), zap.Error(err))
		return err
	}
	log.Info("Fixtures loaded",
		zap.Int("patients", fixtures.Roster.Len()),
		zap.Int("seed_uploads", len(fixtures.SeedUploads())),
	)

	if !filepath.IsAbs(config.Conf.Server.AssetsDir) {
		config.Conf.Server.AssetsDir = filepath.Join(projectRoot, config.Conf.Server.AssetsDir)
	}
	r := router.Setup(log, fixtures)

	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Error("Failed to run Gin server", zap.Error(err))
		return err
	}
	return nil
}

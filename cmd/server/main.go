// cmd/server/main.go - NGO Management API Server
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"ngo-management-api/internal/config"
	"ngo-management-api/internal/database"
	"ngo-management-api/internal/handlers"
	mongostore "ngo-management-api/internal/store/mongo"
	"ngo-management-api/pkg/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment variables")
	}

	cfg := config.Load()
	log := setupLogging(cfg)

	log.WithFields(logrus.Fields{
		"env":  cfg.Env,
		"host": cfg.Host,
		"port": cfg.Port,
	}).Info("starting server")

	db, err := database.NewMongoDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Disconnect(ctx); err != nil {
			log.WithError(err).Warn("error disconnecting from MongoDB")
		}
	}()

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		log.WithError(err).Warn("failed to create some indexes")
	}
	indexCancel()

	stores := mongostore.NewStores(db.Database)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiration)*time.Hour)

	router := handlers.NewRouter(cfg, stores, jwtManager, log)

	srv := &http.Server{
		Addr:         cfg.Host + ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("forced shutdown")
	}

	log.Info("server stopped")
}

// setupLogging configures logrus for the current environment.
func setupLogging(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

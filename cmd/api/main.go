package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitness-tracker/backend/internal/app"
	"fitness-tracker/backend/internal/config"
	"fitness-tracker/backend/internal/jobs"
	"fitness-tracker/backend/internal/logging"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("startup failed")
	}

	// role drift repair; disabled with RECONCILE_SCHEDULE=""
	var stopCron func() context.Context
	if cfg.ReconcileSchedule != "" {
		c, err := jobs.Schedule(cfg.ReconcileSchedule, jobs.NewReconcileJob(a.Trainers, log))
		if err != nil {
			log.WithError(err).WithField("schedule", cfg.ReconcileSchedule).Fatal("invalid reconcile schedule")
		}
		c.Start()
		stopCron = c.Stop
		log.WithField("schedule", cfg.ReconcileSchedule).Info("reconcile job scheduled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "db": cfg.MongoDatabase}).Info("API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen failed")
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down...")
	_ = srv.Shutdown(ctxShutdown)
	if stopCron != nil {
		<-stopCron().Done()
	}
	a.Close(ctxShutdown)
}

// Command reconcile runs one trainer role reconciliation pass and exits.
package main

import (
	"context"
	"encoding/json"
	"os"

	"fitness-tracker/backend/internal/app"
	"fitness-tracker/backend/internal/config"
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
	defer a.Close(context.Background())

	report, err := a.Trainers.Reconcile(ctx)
	if err != nil {
		log.WithError(err).Error("reconcile failed")
		a.Close(context.Background())
		os.Exit(1)
	}
	_ = json.NewEncoder(os.Stdout).Encode(report)
}

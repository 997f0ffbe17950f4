package jobs

import (
	"context"
	"time"

	"fitness-tracker/backend/internal/domain/trainer"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const reconcileTimeout = 4 * time.Minute

// Reconciler is satisfied by *trainer.Service.
type Reconciler interface {
	Reconcile(ctx context.Context) (*trainer.ReconcileReport, error)
}

type ReconcileJob struct {
	r   Reconciler
	log logrus.FieldLogger
}

func NewReconcileJob(r Reconciler, log logrus.FieldLogger) *ReconcileJob {
	return &ReconcileJob{r: r, log: log.WithField("job", "reconcile")}
}

// Run performs a single pass; failures are logged, never returned to cron.
func (j *ReconcileJob) Run(ctx context.Context) *trainer.ReconcileReport {
	ctx, cancel := context.WithTimeout(ctx, reconcileTimeout)
	defer cancel()

	report, err := j.r.Reconcile(ctx)
	if err != nil {
		j.log.WithError(err).Error("reconcile failed")
		return report
	}
	if len(report.Promoted) > 0 || len(report.Demoted) > 0 {
		j.log.WithFields(logrus.Fields{
			"promoted": report.Promoted,
			"demoted":  report.Demoted,
		}).Warn("trainer role drift repaired")
	}
	return report
}

// Schedule registers the job on a new cron runner. Overlapping runs are skipped.
// The caller starts and stops the returned runner.
func Schedule(schedule string, job *ReconcileJob) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(schedule, func() { job.Run(context.Background()) }); err != nil {
		return nil, err
	}
	return c, nil
}

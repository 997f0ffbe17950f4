package jobs_test

import (
	"context"
	"errors"
	"testing"

	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/jobs"
	"fitness-tracker/backend/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReconciler struct {
	calls  int
	report *trainer.ReconcileReport
	err    error
}

func (s *stubReconciler) Reconcile(ctx context.Context) (*trainer.ReconcileReport, error) {
	s.calls++
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("missing deadline")
	}
	return s.report, s.err
}

func TestRunReturnsReport(t *testing.T) {
	stub := &stubReconciler{report: &trainer.ReconcileReport{Promoted: []string{"ana@gym.io"}, Demoted: []string{}}}
	job := jobs.NewReconcileJob(stub, logging.Discard())

	report := job.Run(context.Background())
	require.NotNil(t, report)
	assert.Equal(t, []string{"ana@gym.io"}, report.Promoted)
	assert.Equal(t, 1, stub.calls)
}

func TestRunSwallowsErrors(t *testing.T) {
	stub := &stubReconciler{err: errors.New("mongo down")}
	job := jobs.NewReconcileJob(stub, logging.Discard())

	assert.NotPanics(t, func() { job.Run(context.Background()) })
}

func TestScheduleValidatesSpec(t *testing.T) {
	job := jobs.NewReconcileJob(&stubReconciler{}, logging.Discard())

	c, err := jobs.Schedule("@every 1h", job)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = jobs.Schedule("every so often", job)
	assert.Error(t, err)
}

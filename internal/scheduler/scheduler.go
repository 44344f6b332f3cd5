// Package scheduler runs the Temporal worker and maintains the cron
// schedules that drive the daily billing jobs.
package scheduler

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	temporalclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/edvin/jobboard/internal/activity"
	"github.com/edvin/jobboard/internal/config"
	"github.com/edvin/jobboard/internal/core"
	"github.com/edvin/jobboard/internal/mailer"
	"github.com/edvin/jobboard/internal/workflow"
)

// TaskQueue is the Temporal task queue shared by the worker and the API.
const TaskQueue = "billing-tasks"

// Scheduler owns the Temporal worker and its cron schedules.
type Scheduler struct {
	cfg    *config.Config
	client temporalclient.Client
	worker worker.Worker
	logger zerolog.Logger
}

// New connects to Temporal and builds a worker with the billing workflows
// and activities registered.
func New(cfg *config.Config, services *core.Services, mail mailer.Notifier, logger zerolog.Logger) (*Scheduler, error) {
	tlsConfig, err := cfg.TemporalTLS()
	if err != nil {
		return nil, err
	}
	dialOpts := temporalclient.Options{HostPort: cfg.TemporalAddress}
	if tlsConfig != nil {
		dialOpts.ConnectionOptions = temporalclient.ConnectionOptions{TLS: tlsConfig}
		logger.Info().Msg("temporal mTLS enabled")
	}
	tc, err := temporalclient.Dial(dialOpts)
	if err != nil {
		return nil, err
	}

	w := worker.New(tc, TaskQueue, worker.Options{})

	w.RegisterActivity(activity.NewBillingDB(services))
	w.RegisterActivity(activity.NewNotify(mail))

	w.RegisterWorkflow(workflow.BillingRecomputeWorkflow)
	w.RegisterWorkflow(workflow.ExpiryWarningWorkflow)

	return &Scheduler{cfg: cfg, client: tc, worker: w, logger: logger}, nil
}

// Start registers the cron schedules and runs the worker until ctx is
// cancelled or the process is interrupted. It blocks.
func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.registerCronSchedules(ctx); err != nil {
		return err
	}
	s.logger.Info().Str("taskQueue", TaskQueue).Msg("starting temporal worker")
	return s.worker.Run(stopChannel(ctx))
}

// stopChannel closes the returned channel when ctx is cancelled or the
// process receives an interrupt signal, whichever comes first.
func stopChannel(ctx context.Context) <-chan interface{} {
	ch := make(chan interface{})
	go func() {
		defer close(ch)
		select {
		case <-ctx.Done():
		case <-worker.InterruptCh():
		}
	}()
	return ch
}

// Stop shuts down the worker and closes the Temporal connection.
func (s *Scheduler) Stop() {
	s.worker.Stop()
	s.client.Close()
}

type cronSchedule struct {
	id       string
	cron     string
	workflow interface{}
	args     []interface{}
}

// registerCronSchedules creates the daily billing schedules. Errors for
// already-existing schedules are ignored so that re-deploys do not fail.
func (s *Scheduler) registerCronSchedules(ctx context.Context) error {
	thresholds, err := s.cfg.ThresholdDays()
	if err != nil {
		return err
	}

	schedules := []cronSchedule{
		{
			id:       "billing-recompute-cron",
			cron:     s.cfg.RecomputeCron,
			workflow: workflow.BillingRecomputeWorkflow,
		},
		{
			id:       "expiry-warning-cron",
			cron:     s.cfg.WarningCron,
			workflow: workflow.ExpiryWarningWorkflow,
			args:     []interface{}{thresholds},
		},
	}

	scheduleClient := s.client.ScheduleClient()

	for _, sched := range schedules {
		_, err := scheduleClient.Create(ctx, temporalclient.ScheduleOptions{
			ID: sched.id,
			Spec: temporalclient.ScheduleSpec{
				CronExpressions: []string{sched.cron},
			},
			Action: &temporalclient.ScheduleWorkflowAction{
				ID:        sched.id,
				Workflow:  sched.workflow,
				Args:      sched.args,
				TaskQueue: TaskQueue,
			},
		})
		if err != nil {
			if strings.Contains(err.Error(), "already exists") || strings.Contains(err.Error(), "AlreadyExists") || strings.Contains(err.Error(), "already registered") {
				s.logger.Info().Str("id", sched.id).Msg("cron schedule already exists, skipping")
				continue
			}
			return err
		}
		s.logger.Info().Str("id", sched.id).Str("cron", sched.cron).Msg("created cron schedule")
	}

	return nil
}

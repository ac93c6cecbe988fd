// Package scheduler is the recurring caller of the compliance engine.
// It owns everything the engine deliberately does not: when runs
// happen, batch iteration over businesses, persisting scores, and
// dispatching reminder emails. One business failing never aborts the
// rest of the batch.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/complykit/compliance-service/internal/config"
	"github.com/complykit/compliance-service/internal/engine"
	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/repository"
	"github.com/complykit/compliance-service/internal/utils/email"
)

// BatchResult summarizes one assessment run across all businesses.
// Errors is keyed by business id; a business appears either there or in
// the succeeded count, never both.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Errors    map[int64]string
	StartedAt time.Time
	Duration  time.Duration
}

// Scheduler runs the periodic assessment batch.
type Scheduler struct {
	repo   *repository.Repository
	engine *engine.Engine
	sender *email.Sender
	cfg    *config.Config
	log    *logrus.Logger
	cron   *cron.Cron
	now    func() time.Time
}

// NewScheduler initializes the batch scheduler
func NewScheduler(repo *repository.Repository, eng *engine.Engine, sender *email.Sender, cfg *config.Config, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		repo:   repo,
		engine: eng,
		sender: sender,
		cfg:    cfg,
		log:    log,
		cron:   cron.New(),
		now:    time.Now,
	}
}

// Start registers the assessment job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.AssessmentSchedule, func() {
		result := s.RunBatch()
		s.log.Infof("Assessment batch finished: %d total, %d succeeded, %d failed in %s",
			result.Total, result.Succeeded, result.Failed, result.Duration)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("Scheduler started with schedule %q", s.cfg.AssessmentSchedule)
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunBatch assesses every tracked business once. Failures are folded
// into the result per business instead of unwinding the loop, so a bad
// record or a down mail server costs exactly one unit.
func (s *Scheduler) RunBatch() *BatchResult {
	startedAt := s.now()
	result := &BatchResult{
		Errors:    make(map[int64]string),
		StartedAt: startedAt,
	}

	businesses, err := s.repo.ListBusinesses()
	if err != nil {
		s.log.Errorf("Failed to load businesses for batch: %v", err)
		result.Duration = s.now().Sub(startedAt)
		return result
	}

	result.Total = len(businesses)
	for i := range businesses {
		if err := s.assessOne(&businesses[i], startedAt); err != nil {
			result.Failed++
			result.Errors[businesses[i].ID] = err.Error()
			s.log.Errorf("Failed to assess business %d: %v", businesses[i].ID, err)
			continue
		}
		result.Succeeded++
	}

	result.Duration = s.now().Sub(startedAt)
	return result
}

// assessOne scores one business, persists the score, and sends any
// reminders that apply. The same "now" is used for the whole batch so a
// run is reproducible.
func (s *Scheduler) assessOne(profile *models.BusinessProfile, now time.Time) error {
	history, err := s.repo.ListFilings(profile.ID)
	if err != nil {
		return err
	}

	score, err := s.engine.ComplianceScore(profile, history, now)
	if err != nil {
		return err
	}
	if err := s.repo.SaveComplianceScore(profile.ID, score); err != nil {
		return err
	}

	if profile.ContactEmail == "" {
		return nil
	}

	for _, d := range s.engine.UpcomingDeadlines(profile, now) {
		if d.IsOverdue || d.DaysUntilDue <= s.cfg.ReminderWindowDays {
			if err := s.sender.SendDeadlineReminder(profile.ContactEmail, profile.Name, d); err != nil {
				s.log.Warnf("Reminder not sent for business %d: %v", profile.ID, err)
			}
		}
	}

	if score.Level == models.LevelCritical {
		plan, err := s.engine.ActionPlan(profile, history, now)
		if err != nil {
			return err
		}
		if err := s.sender.SendComplianceAlert(profile.ContactEmail, profile.Name, plan); err != nil {
			s.log.Warnf("Alert not sent for business %d: %v", profile.ID, err)
		}
	}

	return nil
}

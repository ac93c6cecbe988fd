package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/complykit/compliance-service/internal/config"
	"github.com/complykit/compliance-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendDeadlineReminder sends a reminder for an upcoming or overdue filing deadline
func (s *Sender) SendDeadlineReminder(to, businessName string, deadline models.FilingDeadline) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if deadline.IsOverdue {
		e.Subject = fmt.Sprintf("Overdue Filing: %s", deadline.Description)
	} else {
		e.Subject = fmt.Sprintf("Upcoming Filing Deadline: %s", deadline.Description)
	}

	body := fmt.Sprintf("Dear %s,\n\n", businessName)
	if deadline.IsOverdue {
		body += fmt.Sprintf(
			"Your %s with %s was due on %s and is now overdue.\n",
			deadline.Description, deadline.Agency, deadline.DueDate.Format("2006-01-02"),
		)
		if deadline.AccruedPenalty > 0 {
			body += fmt.Sprintf("A penalty of %.2f has accrued so far", deadline.AccruedPenalty)
			if deadline.MaxPenalty > 0 {
				body += fmt.Sprintf(" (capped at %.2f)", deadline.MaxPenalty)
			}
			body += ".\n"
		}
		body += "Please file as soon as possible to avoid further penalties.\n"
	} else {
		body += fmt.Sprintf(
			"This is a reminder that your %s with %s is due on %s (%d days from now).\n"+
				"Please prepare the filing ahead of the deadline.\n",
			deadline.Description, deadline.Agency, deadline.DueDate.Format("2006-01-02"), deadline.DaysUntilDue,
		)
	}
	body += "\nBest regards,\nCompliance Service"
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendComplianceAlert sends a summary of critical actions from an action plan
func (s *Sender) SendComplianceAlert(to, businessName string, plan *models.ActionPlan) error {
	if len(plan.CriticalActions) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Critical Compliance Issues Require Attention"

	body := fmt.Sprintf("Dear %s,\n\n", businessName)
	body += fmt.Sprintf("As of %s, the following issues require immediate attention:\n\n", time.Now().Format("2006-01-02"))
	for _, action := range plan.CriticalActions {
		body += fmt.Sprintf("  - %s\n", action)
	}
	if plan.EstimatedCosts > 0 {
		body += fmt.Sprintf("\nEstimated accrued penalties: %.2f\n", plan.EstimatedCosts)
	}
	body += "\nBest regards,\nCompliance Service"
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

package models

import "time"

// ComplianceLevel is the ordinal severity classification of a result.
type ComplianceLevel string

const (
	LevelCompliant   ComplianceLevel = "compliant"
	LevelMinorIssues ComplianceLevel = "minor_issues"
	LevelMajorIssues ComplianceLevel = "major_issues"
	LevelCritical    ComplianceLevel = "critical"
)

// Rank orders levels by severity: Compliant < MinorIssues < MajorIssues < Critical.
func (l ComplianceLevel) Rank() int {
	switch l {
	case LevelMinorIssues:
		return 1
	case LevelMajorIssues:
		return 2
	case LevelCritical:
		return 3
	default:
		return 0
	}
}

// ComplianceResult is one agency's assessment of a business.
// Results are recomputed on every run and never stored by the engine.
type ComplianceResult struct {
	RequirementID  string          `json:"requirement_id"`
	Agency         Agency          `json:"agency"`
	Level          ComplianceLevel `json:"level"`
	Score          float64         `json:"score"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	LastFiledDate  *time.Time      `json:"last_filed_date,omitempty"`
	DaysOverdue    int             `json:"days_overdue"`
	AccruedPenalty float64         `json:"accrued_penalty"`
	Notes          []string        `json:"notes"`
}

// ComplianceScore is the weighted aggregate across all agencies.
type ComplianceScore struct {
	Overall        int                `json:"overall"`
	ByAgency       map[Agency]float64 `json:"by_agency"`
	Level          ComplianceLevel    `json:"level"`
	CriticalIssues int                `json:"critical_issues"`
	ComputedAt     time.Time          `json:"computed_at"`
}

// ActionPlan bundles what the business should do next, ordered by urgency.
type ActionPlan struct {
	CriticalActions   []string         `json:"critical_actions"`
	UpcomingDeadlines []FilingDeadline `json:"upcoming_deadlines"`
	Recommendations   []string         `json:"recommendations"`
	EstimatedCosts    float64          `json:"estimated_costs"`
}

// SetupValidation reports registration requirements a business has not met yet.
type SetupValidation struct {
	Valid               bool     `json:"valid"`
	MissingRequirements []string `json:"missing_requirements"`
	NextSteps           []string `json:"next_steps"`
}

// ComplianceReport composes the independent read-only views into one document.
// FailedAgencies lists assessors that errored; their views are simply absent.
type ComplianceReport struct {
	ID             string           `json:"id"`
	BusinessID     int64            `json:"business_id"`
	Score          *ComplianceScore `json:"score,omitempty"`
	Deadlines      []FilingDeadline `json:"deadlines"`
	ActionPlan     *ActionPlan      `json:"action_plan,omitempty"`
	Setup          *SetupValidation `json:"setup,omitempty"`
	FailedAgencies []string         `json:"failed_agencies,omitempty"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

package models

import "time"

// FilingRecord is one historical filing made with an agency.
// Filing histories are passed most-recent-first.
type FilingRecord struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	Agency     Agency    `json:"agency"`
	FilingType string    `json:"filing_type"`
	FiledDate  time.Time `json:"filed_date"`
}

// FilingDeadline is one upcoming (or missed) recurring obligation.
// DaysUntilDue is negative when the obligation is overdue.
type FilingDeadline struct {
	Agency           Agency    `json:"agency"`
	FilingType       string    `json:"filing_type"`
	DueDate          time.Time `json:"due_date"`
	Description      string    `json:"description"`
	IsOverdue        bool      `json:"is_overdue"`
	DaysUntilDue     int       `json:"days_until_due"`
	DailyPenaltyRate float64   `json:"daily_penalty_rate"`
	MaxPenalty       float64   `json:"max_penalty"`
	AccruedPenalty   float64   `json:"accrued_penalty"`
}

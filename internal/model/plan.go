package model

import "time"

// Plan is a read-only catalog entry describing a subscription offering.
// AmountCents is in the smallest currency unit; Interval is month or year.
type Plan struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	TrialDays   int       `json:"trial_days" db:"trial_days"`
	AmountCents int64     `json:"amount_cents" db:"amount_cents"`
	Interval    string    `json:"interval" db:"interval"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// IsFree reports whether the plan costs nothing.
func (p *Plan) IsFree() bool {
	return p.AmountCents == 0
}

// PeriodMonths returns the number of months one paid period covers.
func (p *Plan) PeriodMonths() int {
	if p.Interval == IntervalYear {
		return 12
	}
	return 1
}

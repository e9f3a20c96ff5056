package domain

import "time"

// Campaign represents an advertising campaign as read from the external
// catalog. Budget is the lifetime budget in decimal currency units; the core
// only consumes Budget and the start/end window.
type Campaign struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Budget    float64   `json:"budget"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"` // active, paused, ended
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalDays is the inclusive length of the campaign flight in days.
func (c Campaign) TotalDays() int {
	return int(c.EndDate.Sub(c.StartDate).Hours()/24) + 1
}

// ActiveDuring reports whether the campaign flight overlaps [start, end].
func (c Campaign) ActiveDuring(start, end time.Time) bool {
	return !c.StartDate.After(end) && !c.EndDate.Before(start)
}

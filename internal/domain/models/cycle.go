package models

import "time"

// FlowIntensity categorizes bleeding heaviness for a cycle record.
type FlowIntensity string

const (
	FlowSpotting FlowIntensity = "spotting"
	FlowLight    FlowIntensity = "light"
	FlowMedium   FlowIntensity = "medium"
	FlowHeavy    FlowIntensity = "heavy"
)

// CycleRecord is one logged menstrual cycle. EndDate is nil while
// bleeding is ongoing or was never logged.
type CycleRecord struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	StartDate time.Time     `json:"startDate"`
	EndDate   *time.Time    `json:"endDate,omitempty"`
	Flow      FlowIntensity `json:"flow,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// BleedDays returns the inclusive length of the bleeding phase in days,
// or 0 when the record has no end date or the dates are inverted.
func (c CycleRecord) BleedDays() int {
	if c.EndDate == nil {
		return 0
	}
	d := int(c.EndDate.Sub(c.StartDate).Hours()/24) + 1
	if d < 1 {
		return 0
	}
	return d
}

package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

type CycleCreateRequest struct {
	UserID    string `json:"userId" validate:"required,max=64"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate"`
	Flow      string `json:"flow" default:"medium" validate:"oneof=spotting light medium heavy"`
	Notes     string `json:"notes" validate:"max=500"`
}

type SymptomCreateRequest struct {
	UserID   string `json:"userId" validate:"required,max=64"`
	Date     string `json:"date" validate:"required"`
	Type     string `json:"type" validate:"required,max=64"`
	Severity string `json:"severity" default:"mild" validate:"oneof=mild moderate severe extreme"`
	Note     string `json:"note" validate:"max=500"`
}

type RecordsRequest struct {
	UserID string `query:"userId" json:"userId" validate:"required,max=64"`
	Window string `query:"window" json:"window" default:"all" validate:"oneof=3m 6m 12m all"`
	Limit  int    `query:"limit" json:"limit" default:"500" validate:"gte=1,lte=5000"`
}

type InsightsRequest struct {
	UserID string `query:"userId" json:"userId" validate:"required,max=64"`
	Window string `query:"window" json:"window" default:"all" validate:"oneof=3m 6m 12m all"`
}

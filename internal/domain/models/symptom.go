package models

import "time"

// Severity grades a symptom observation.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityExtreme  Severity = "extreme"
)

// Weight maps severity to its numeric weight used by the inference layer.
// Unknown severities count as mild.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityModerate:
		return 2
	case SeveritySevere:
		return 3
	case SeverityExtreme:
		return 4
	default:
		return 1
	}
}

// Common symptom type tags. The API accepts free-form tags; these are the
// ones the hormonal lookup table knows about.
const (
	SymptomCramps           = "cramps"
	SymptomHeadache         = "headache"
	SymptomMigraine         = "migraine"
	SymptomBackache         = "backache"
	SymptomBreastTenderness = "breast_tenderness"
	SymptomBloating         = "bloating"
	SymptomFatigue          = "fatigue"
	SymptomNausea           = "nausea"
	SymptomDizziness        = "dizziness"
	SymptomJointPain        = "joint_pain"
	SymptomCravings         = "cravings"
	SymptomInsomnia         = "insomnia"
	SymptomHotFlashes       = "hot_flashes"
	SymptomMoodSwings       = "mood_swings"
	SymptomIrritability     = "irritability"
	SymptomAnxiety          = "anxiety"
	SymptomDepression       = "depression"
	SymptomTearfulness      = "tearfulness"
	SymptomEuphoria         = "euphoria"
	SymptomLowLibido        = "low_libido"
	SymptomHighLibido       = "high_libido"
	SymptomBrainFog         = "brain_fog"
	SymptomAcne             = "acne"
	SymptomDrySkin          = "dry_skin"
	SymptomOilySkin         = "oily_skin"
	SymptomHairChanges      = "hair_changes"
	SymptomDischargeChange  = "discharge_change"
	SymptomSpotting         = "spotting"
	SymptomConstipation     = "constipation"
	SymptomDiarrhea         = "diarrhea"
	SymptomAppetiteChange   = "appetite_change"
)

// SymptomObservation is one logged symptom on a calendar date.
type SymptomObservation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Severity  Severity  `json:"severity"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

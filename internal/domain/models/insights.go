package models

import "time"

// RiskLevel summarizes how concerning a user's recent cycle history looks.
type RiskLevel string

const (
	RiskLow          RiskLevel = "low"
	RiskModerate     RiskLevel = "moderate"
	RiskHigh         RiskLevel = "high"
	RiskInsufficient RiskLevel = "insufficient-data"
)

// DateRange is an inclusive calendar-date interval.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PredictionRange bounds where the next period start is expected to land.
type PredictionRange struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// ProbabilityPoint is one sample of the period-start probability curve.
type ProbabilityPoint struct {
	Date        time.Time `json:"date"`
	OffsetDays  int       `json:"offsetDays"`
	Probability float64   `json:"probability"`
}

// PredictionConfidence carries the two confidence scores (0..100).
type PredictionConfidence struct {
	NextPeriod int `json:"nextPeriod"`
	Ovulation  int `json:"ovulation"`
}

// PredictionResult is the full output of the prediction engine.
// Dates are nil when there is no history to anchor them on.
type PredictionResult struct {
	NextPeriodDate      *time.Time           `json:"nextPeriodDate,omitempty"`
	PredictedLength     int                  `json:"predictedLength"`
	TypicalBleedLength  int                  `json:"typicalBleedLength"`
	Confidence          PredictionConfidence `json:"confidence"`
	OvulationDate       *time.Time           `json:"ovulationDate,omitempty"`
	FertilityWindow     *DateRange           `json:"fertilityWindow,omitempty"`
	CycleLengthVariance float64              `json:"cycleLengthVariance"`
	ProbabilityCurve    []ProbabilityPoint   `json:"probabilityCurve,omitempty"`
	PredictionRange     *PredictionRange     `json:"predictionRange,omitempty"`
	HistoricalAccuracy  *int                 `json:"historicalAccuracy,omitempty"`
	OngoingCycle        bool                 `json:"ongoingCycle"`
	InsufficientData    bool                 `json:"insufficientData"`
}

// AnomalyKind tags the class of cycle irregularity.
type AnomalyKind string

const (
	AnomalyUnusualLength AnomalyKind = "unusual-length"
	AnomalyMissedPeriod  AnomalyKind = "missed-period"
	AnomalyShortCycle    AnomalyKind = "short-cycle"
)

// AnomalySeverity is the per-anomaly grade.
type AnomalySeverity string

const (
	AnomalyModerate AnomalySeverity = "moderate"
	AnomalyHigh     AnomalySeverity = "high"
)

// AnomalyRecord flags one unusual cycle length.
type AnomalyRecord struct {
	CycleIndex     int             `json:"cycleIndex"`
	Date           time.Time       `json:"date"`
	Length         int             `json:"length"`
	Kind           AnomalyKind     `json:"kind"`
	Severity       AnomalySeverity `json:"severity"`
	ZScore         float64         `json:"zScore"`
	Recommendation string          `json:"recommendation"`
}

// AnomalyReport is the detector output for one user.
type AnomalyReport struct {
	Anomalies []AnomalyRecord `json:"anomalies"`
	RiskLevel RiskLevel       `json:"riskLevel"`
}

// SymptomCorrelation describes how one symptom type tracks the cycle.
type SymptomCorrelation struct {
	SymptomType      string  `json:"symptomType"`
	Frequency        int     `json:"frequency"`
	AverageCycleDay  float64 `json:"averageCycleDay"`
	Phase            string  `json:"phase"`
	PatternStability string  `json:"patternStability"`
	Predictable      bool    `json:"predictable"`
}

// HormonalProfile holds inferred relative hormone activity for a phase.
type HormonalProfile struct {
	Estrogen     float64 `json:"estrogen"`
	Progesterone float64 `json:"progesterone"`
	FSH          float64 `json:"fsh"`
	LH           float64 `json:"lh"`
}

// HormonalPhasePattern is the per-phase output of the inference layer.
type HormonalPhasePattern struct {
	Phase              string          `json:"phase"`
	Occurrences        int             `json:"occurrences"`
	AverageIntensity   float64         `json:"averageIntensity"`
	AverageCorrelation float64         `json:"averageCorrelation"`
	Consistency        float64         `json:"consistency"`
	Profile            HormonalProfile `json:"hormonalProfile"`
	DominantHormone    string          `json:"dominantHormone"`
	HormoneConfidence  string          `json:"hormoneConfidence"`
}

// HormonalAssessment is the full hormonal inference output.
type HormonalAssessment struct {
	Patterns          []HormonalPhasePattern `json:"patterns"`
	PatternConfidence string                 `json:"patternConfidence"`
	TableVersion      string                 `json:"tableVersion"`
}

// HealthScore is the composite wellbeing indicator.
type HealthScore struct {
	Score    int    `json:"score"`
	Category string `json:"category"`
}

// InsightBundle is a consolidated view of all engine outputs for one user.
// Partial failures land in Errors keyed by section name.
type InsightBundle struct {
	UserID       string               `json:"userId"`
	Window       string               `json:"window"`
	GeneratedAt  time.Time            `json:"generatedAt"`
	Prediction   *PredictionResult    `json:"prediction,omitempty"`
	Anomalies    *AnomalyReport       `json:"anomalies,omitempty"`
	Correlations []SymptomCorrelation `json:"correlations,omitempty"`
	Hormonal     *HormonalAssessment  `json:"hormonal,omitempty"`
	Health       *HealthScore         `json:"health,omitempty"`
	Errors       map[string]string    `json:"errors,omitempty"`
}

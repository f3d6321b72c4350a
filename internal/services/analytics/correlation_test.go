package analytics

import (
    "context"
    "testing"

    "CycleSense/internal/domain/models"
)

func TestCorrelateEmptyInput(t *testing.T) {
    analyzer := NewSymptomCorrelator()
    got, err := analyzer.Correlate(context.Background(), nil, nil)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(got) != 0 {
        t.Fatalf("expected empty result, got %+v", got)
    }
}

func TestCorrelateCrampsOnDayTwo(t *testing.T) {
    analyzer := NewSymptomCorrelator()
    records := regularHistory(6, 28)

    // cramps on cycle day 2 in five of six cycles
    var obs []models.SymptomObservation
    for i := 0; i < 5; i++ {
        obs = append(obs, observation(records[i].StartDate.AddDate(0, 0, 1), models.SymptomCramps, models.SeverityModerate))
    }

    got, err := analyzer.Correlate(context.Background(), records, obs)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(got) != 1 {
        t.Fatalf("expected one correlation, got %d", len(got))
    }
    c := got[0]
    if c.SymptomType != models.SymptomCramps {
        t.Fatalf("unexpected symptom %s", c.SymptomType)
    }
    if c.Frequency != 5 {
        t.Fatalf("expected frequency 5, got %d", c.Frequency)
    }
    if c.AverageCycleDay != 2 {
        t.Fatalf("expected average cycle day 2, got %v", c.AverageCycleDay)
    }
    if c.Phase != "menstrual" {
        t.Fatalf("expected menstrual phase, got %s", c.Phase)
    }
    if c.PatternStability != "stable" {
        t.Fatalf("expected stable pattern, got %s", c.PatternStability)
    }
    if !c.Predictable {
        t.Fatalf("5 of 6 cycles should be predictable")
    }
}

func TestCorrelatePhaseMapping(t *testing.T) {
    analyzer := NewSymptomCorrelator()
    records := regularHistory(4, 28)

    obs := []models.SymptomObservation{
        observation(records[0].StartDate.AddDate(0, 0, 9), models.SymptomEuphoria, models.SeverityMild),      // day 10
        observation(records[0].StartDate.AddDate(0, 0, 14), models.SymptomDischargeChange, models.SeverityMild), // day 15
        observation(records[0].StartDate.AddDate(0, 0, 22), models.SymptomBloating, models.SeverityMild),     // day 23
    }
    got, err := analyzer.Correlate(context.Background(), records, obs)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    phases := map[string]string{}
    for _, c := range got {
        phases[c.SymptomType] = c.Phase
    }
    if phases[models.SymptomEuphoria] != "follicular" {
        t.Fatalf("expected follicular, got %s", phases[models.SymptomEuphoria])
    }
    if phases[models.SymptomDischargeChange] != "ovulatory" {
        t.Fatalf("expected ovulatory, got %s", phases[models.SymptomDischargeChange])
    }
    if phases[models.SymptomBloating] != "luteal" {
        t.Fatalf("expected luteal, got %s", phases[models.SymptomBloating])
    }
}

func TestCorrelateSkipsOrphanObservations(t *testing.T) {
    analyzer := NewSymptomCorrelator()
    records := regularHistory(3, 28)
    obs := []models.SymptomObservation{
        observation(date(2024, 6, 1), models.SymptomCramps, models.SeverityMild), // before any cycle
        observation(records[0].StartDate, models.SymptomCramps, models.SeverityMild),
    }
    got, err := analyzer.Correlate(context.Background(), records, obs)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(got) != 1 || got[0].Frequency != 1 {
        t.Fatalf("expected single in-cycle occurrence, got %+v", got)
    }
}

func TestCorrelateScalesThresholdsToMeanLength(t *testing.T) {
    analyzer := NewSymptomCorrelator()
    // 42-day cycles: day 10 is still menstrual/follicular territory when scaled
    records := regularHistory(4, 42)
    obs := []models.SymptomObservation{
        observation(records[0].StartDate.AddDate(0, 0, 9), models.SymptomCramps, models.SeverityMild), // day 10
    }
    got, err := analyzer.Correlate(context.Background(), records, obs)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(got) != 1 {
        t.Fatalf("expected one correlation, got %d", len(got))
    }
    // scale 1.5 puts the menstrual boundary at day 10.5
    if got[0].Phase != "menstrual" {
        t.Fatalf("expected menstrual with scaled thresholds, got %s", got[0].Phase)
    }
}

package analytics

import (
    "context"
    "testing"

    "CycleSense/internal/domain/models"
)

func TestInferEmptyInput(t *testing.T) {
    layer := NewHormonalInferenceLayer(DefaultHormoneTable())
    got, err := layer.Infer(context.Background(), nil, nil)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(got.Patterns) != 0 {
        t.Fatalf("expected no patterns, got %+v", got.Patterns)
    }
    if got.PatternConfidence != "low" {
        t.Fatalf("expected low confidence, got %s", got.PatternConfidence)
    }
    if got.TableVersion == "" {
        t.Fatalf("expected table version to be reported")
    }
}

func TestInferMenstrualLowHormonePattern(t *testing.T) {
    layer := NewHormonalInferenceLayer(DefaultHormoneTable())
    records := regularHistory(6, 28)

    // moderate cramps on day 2 plus mild breast tenderness on day 18 of
    // every cycle: 12 phase occurrences across 6 cycles
    var obs []models.SymptomObservation
    for i := 0; i < 6; i++ {
        obs = append(obs,
            observation(records[i].StartDate.AddDate(0, 0, 1), models.SymptomCramps, models.SeverityModerate),
            observation(records[i].StartDate.AddDate(0, 0, 17), models.SymptomBreastTenderness, models.SeverityMild),
        )
    }

    got, err := layer.Infer(context.Background(), records, obs)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(got.Patterns) != 2 {
        t.Fatalf("expected menstrual and early-luteal patterns, got %+v", got.Patterns)
    }

    menstrual := got.Patterns[0]
    if menstrual.Phase != PhaseMenstrual {
        t.Fatalf("expected menstrual first in canonical order, got %s", menstrual.Phase)
    }
    if menstrual.Occurrences != 6 {
        t.Fatalf("expected 6 occurrences, got %d", menstrual.Occurrences)
    }
    if menstrual.DominantHormone != string(DriverLowHormones) {
        t.Fatalf("expected low_hormones dominant, got %s", menstrual.DominantHormone)
    }
    if menstrual.HormoneConfidence != "high" {
        t.Fatalf("expected high hormone confidence at level 2, got %s", menstrual.HormoneConfidence)
    }
    if menstrual.AverageIntensity != 2 {
        t.Fatalf("expected average intensity 2, got %v", menstrual.AverageIntensity)
    }
    if menstrual.AverageCorrelation != 100 {
        t.Fatalf("expected full textbook match, got %v", menstrual.AverageCorrelation)
    }
    if menstrual.Consistency != 100 {
        t.Fatalf("expected consistency 100, got %v", menstrual.Consistency)
    }
    if menstrual.Profile.FSH <= menstrual.Profile.Estrogen {
        t.Fatalf("low-hormone phase should project onto FSH, got %+v", menstrual.Profile)
    }

    luteal := got.Patterns[1]
    if luteal.Phase != PhaseEarlyLuteal {
        t.Fatalf("expected early-luteal, got %s", luteal.Phase)
    }
    if luteal.DominantHormone != string(DriverProgesterone) {
        t.Fatalf("expected progesterone dominant, got %s", luteal.DominantHormone)
    }
    if luteal.HormoneConfidence != "low" {
        t.Fatalf("expected low tier at level 1, got %s", luteal.HormoneConfidence)
    }

    if got.PatternConfidence != "high" {
        t.Fatalf("expected high pattern confidence, got %s", got.PatternConfidence)
    }
}

func TestInferUnknownSymptomsIgnored(t *testing.T) {
    layer := NewHormonalInferenceLayer(DefaultHormoneTable())
    records := regularHistory(3, 28)
    obs := []models.SymptomObservation{
        observation(records[0].StartDate.AddDate(0, 0, 1), "left-handedness", models.SeverityExtreme),
    }
    got, err := layer.Infer(context.Background(), records, obs)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(got.Patterns) != 0 {
        t.Fatalf("unknown symptom types must not produce patterns, got %+v", got.Patterns)
    }
}

func TestInferMediumConfidence(t *testing.T) {
    layer := NewHormonalInferenceLayer(DefaultHormoneTable())
    records := regularHistory(3, 28)

    var obs []models.SymptomObservation
    for i := 0; i < 3; i++ {
        obs = append(obs,
            observation(records[i].StartDate.AddDate(0, 0, 1), models.SymptomCramps, models.SeverityMild),
            observation(records[i].StartDate.AddDate(0, 0, 22), models.SymptomBloating, models.SeverityMild),
        )
    }
    got, err := layer.Infer(context.Background(), records, obs)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if got.PatternConfidence != "medium" {
        t.Fatalf("expected medium confidence, got %s", got.PatternConfidence)
    }
}

func TestHormoneTableLookup(t *testing.T) {
    table := DefaultHormoneTable()
    trait, ok := table.Lookup(models.SymptomBloating)
    if !ok {
        t.Fatalf("expected bloating in the default table")
    }
    if trait.Driver != DriverProgesterone {
        t.Fatalf("expected progesterone driver, got %s", trait.Driver)
    }
    if _, ok := table.Lookup("unknown"); ok {
        t.Fatalf("unexpected hit for unknown symptom")
    }
}

package analytics

import "CycleSense/internal/domain/models"

// HormoneDriver names the primary hormonal driver behind a symptom.
type HormoneDriver string

const (
    DriverEstrogen     HormoneDriver = "estrogen"
    DriverProgesterone HormoneDriver = "progesterone"
    DriverLowHormones  HormoneDriver = "low_hormones"
    DriverMulti        HormoneDriver = "multi"
)

// The 6-phase split used by the hormonal inference layer.
const (
    PhaseMenstrual   = "menstrual"
    PhaseFollicular  = "follicular"
    PhaseOvulatory   = "ovulatory"
    PhaseEarlyLuteal = "early-luteal"
    PhaseMidLuteal   = "mid-luteal"
    PhaseLateLuteal  = "late-luteal"
)

// PhaseOrder is the canonical ordering for reports.
var PhaseOrder = []string{
    PhaseMenstrual, PhaseFollicular, PhaseOvulatory,
    PhaseEarlyLuteal, PhaseMidLuteal, PhaseLateLuteal,
}

// SymptomTrait is one hormone-table entry: the symptom's primary driver
// and the phases in which it is clinically expected.
type SymptomTrait struct {
    Driver         HormoneDriver
    ExpectedPhases []string
}

// HormoneTable is an immutable, versioned symptom-to-hormone lookup,
// injected into the inference layer so it can be tested and extended
// independently of the algorithm.
type HormoneTable struct {
    version string
    entries map[string]SymptomTrait
}

func NewHormoneTable(version string, entries map[string]SymptomTrait) HormoneTable {
    copied := make(map[string]SymptomTrait, len(entries))
    for k, v := range entries {
        copied[k] = v
    }
    return HormoneTable{version: version, entries: copied}
}

func (t HormoneTable) Version() string { return t.version }

// Lookup returns the trait for a symptom type; unknown types report false.
func (t HormoneTable) Lookup(symptomType string) (SymptomTrait, bool) {
    trait, ok := t.entries[symptomType]
    return trait, ok
}

// DefaultHormoneTable is the built-in clinical lookup.
func DefaultHormoneTable() HormoneTable {
    return NewHormoneTable("2025.1", map[string]SymptomTrait{
        models.SymptomCramps:           {DriverLowHormones, []string{PhaseMenstrual, PhaseLateLuteal}},
        models.SymptomHeadache:         {DriverLowHormones, []string{PhaseMenstrual, PhaseLateLuteal}},
        models.SymptomMigraine:         {DriverLowHormones, []string{PhaseMenstrual, PhaseLateLuteal}},
        models.SymptomBackache:         {DriverLowHormones, []string{PhaseMenstrual}},
        models.SymptomBreastTenderness: {DriverProgesterone, []string{PhaseEarlyLuteal, PhaseMidLuteal}},
        models.SymptomBloating:         {DriverProgesterone, []string{PhaseMidLuteal, PhaseLateLuteal}},
        models.SymptomFatigue:          {DriverProgesterone, []string{PhaseMidLuteal, PhaseLateLuteal, PhaseMenstrual}},
        models.SymptomNausea:           {DriverMulti, []string{PhaseMenstrual, PhaseOvulatory}},
        models.SymptomDizziness:        {DriverLowHormones, []string{PhaseMenstrual}},
        models.SymptomJointPain:        {DriverLowHormones, []string{PhaseMenstrual, PhaseLateLuteal}},
        models.SymptomCravings:         {DriverProgesterone, []string{PhaseMidLuteal, PhaseLateLuteal}},
        models.SymptomInsomnia:         {DriverLowHormones, []string{PhaseLateLuteal, PhaseMenstrual}},
        models.SymptomHotFlashes:       {DriverLowHormones, []string{PhaseMenstrual, PhaseLateLuteal}},
        models.SymptomMoodSwings:       {DriverMulti, []string{PhaseLateLuteal, PhaseMenstrual}},
        models.SymptomIrritability:     {DriverProgesterone, []string{PhaseLateLuteal}},
        models.SymptomAnxiety:          {DriverLowHormones, []string{PhaseLateLuteal, PhaseMenstrual}},
        models.SymptomDepression:       {DriverLowHormones, []string{PhaseLateLuteal, PhaseMenstrual}},
        models.SymptomTearfulness:      {DriverLowHormones, []string{PhaseLateLuteal}},
        models.SymptomEuphoria:         {DriverEstrogen, []string{PhaseFollicular, PhaseOvulatory}},
        models.SymptomLowLibido:        {DriverProgesterone, []string{PhaseMidLuteal, PhaseLateLuteal}},
        models.SymptomHighLibido:       {DriverEstrogen, []string{PhaseFollicular, PhaseOvulatory}},
        models.SymptomBrainFog:         {DriverLowHormones, []string{PhaseLateLuteal, PhaseMenstrual}},
        models.SymptomAcne:             {DriverProgesterone, []string{PhaseLateLuteal, PhaseMenstrual}},
        models.SymptomDrySkin:          {DriverLowHormones, []string{PhaseMenstrual}},
        models.SymptomOilySkin:         {DriverProgesterone, []string{PhaseMidLuteal, PhaseLateLuteal}},
        models.SymptomHairChanges:      {DriverEstrogen, []string{PhaseFollicular}},
        models.SymptomDischargeChange:  {DriverEstrogen, []string{PhaseFollicular, PhaseOvulatory}},
        models.SymptomSpotting:         {DriverMulti, []string{PhaseOvulatory, PhaseMenstrual}},
        models.SymptomConstipation:     {DriverProgesterone, []string{PhaseMidLuteal}},
        models.SymptomDiarrhea:         {DriverLowHormones, []string{PhaseMenstrual}},
        models.SymptomAppetiteChange:   {DriverProgesterone, []string{PhaseMidLuteal, PhaseLateLuteal}},
    })
}

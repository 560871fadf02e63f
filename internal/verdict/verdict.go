package verdict

// Form is a cadence-based running form verdict key.
type Form string

const (
	FormElite    Form = "ELITE_FORM"
	FormGood     Form = "GOOD_FORM"
	FormHiking   Form = "HIKING_REST"
	FormHeavy    Form = "HEAVY_FEET"
	FormPlodding Form = "PLODDING"
)

// SplitBucket is a per-split quality classification key.
type SplitBucket string

const (
	SplitHighQuality SplitBucket = "HIGH_QUALITY"
	SplitStructural  SplitBucket = "STRUCTURAL"
	SplitBroken      SplitBucket = "BROKEN"
)

// TrainingEffect is a per-activity training effect label key.
// Base and recovery sessions carry no label at all; callers get that
// as a comma-ok result from the classifier, never as a sentinel key.
type TrainingEffect string

const (
	TEMaxPower  TrainingEffect = "MAX_POWER"
	TEAnaerobic TrainingEffect = "ANAEROBIC"
	TEVO2Max    TrainingEffect = "VO2_MAX"
	TEThreshold TrainingEffect = "THRESHOLD"
)

// LoadCategory is a TRIMP-based per-activity load classification key.
type LoadCategory string

const (
	LoadRecovery     LoadCategory = "RECOVERY"
	LoadBase         LoadCategory = "BASE"
	LoadOverload     LoadCategory = "OVERLOAD"
	LoadOverreaching LoadCategory = "OVERREACHING"
)

// LoadMix is a verdict over a time-window aggregate of time-in-zone.
type LoadMix string

const (
	MixZone2Base       LoadMix = "ZONE_2_BASE"
	MixZone3Junk       LoadMix = "ZONE_3_JUNK"
	MixThresholdAddict LoadMix = "ZONE_4_THRESHOLD_ADDICT"
	MixTempoHeavy      LoadMix = "TEMPO_HEAVY"
	MixTempoThreshold  LoadMix = "TEMPO_THRESHOLD"
)

// Quadrant classifies an activity's (efficiency, decoupling) pair
// against the population mean. Derived, never stored.
type Quadrant string

const (
	QuadrantRaceReady       Quadrant = "RACE_READY"
	QuadrantExpensiveSpeed  Quadrant = "EXPENSIVE_SPEED"
	QuadrantBaseMaintenance Quadrant = "BASE_MAINTENANCE"
	QuadrantStruggling      Quadrant = "STRUGGLING"
)

// Info is the display half of a taxonomy entry. Color and Icon are
// opaque presentation metadata carried for the UI; the engine never
// interprets them.
type Info struct {
	Label        string
	Color        string
	Icon         string
	Prescription string
}

// Taxonomy maps every verdict key to its display info. It is loaded
// once at startup and injected wherever labels are needed, so tests can
// substitute alternate tables.
type Taxonomy struct {
	Form           map[Form]Info
	Split          map[SplitBucket]Info
	TrainingEffect map[TrainingEffect]Info
	Load           map[LoadCategory]Info
	LoadMix        map[LoadMix]Info
	Quadrant       map[Quadrant]Info
}

// Default returns the canonical taxonomy tables.
func Default() Taxonomy {
	return Taxonomy{
		Form: map[Form]Info{
			FormElite:    {Label: "ELITE FORM", Color: "#34d399", Icon: "verified", Prescription: "Pro-level mechanics. Excellent turnover."},
			FormGood:     {Label: "GOOD FORM", Color: "#60a5fa", Icon: "check_circle", Prescription: "Balanced mechanics. Solid turnover."},
			FormHiking:   {Label: "HIKING / REST", Color: "#60a5fa", Icon: "hiking", Prescription: "Power hiking or recovery interval."},
			FormHeavy:    {Label: "HEAVY FEET", Color: "#fb923c", Icon: "warning", Prescription: "Cadence is low. Focus on quick turnover."},
			FormPlodding: {Label: "PLODDING", Color: "#facc15", Icon: "do_not_step", Prescription: "Turnover is sluggish. Pick up your feet."},
		},
		Split: map[SplitBucket]Info{
			SplitHighQuality: {Label: "High Quality", Color: "#10b981", Prescription: "Dialed Mechanics"},
			SplitStructural:  {Label: "Structural", Color: "#3b82f6", Prescription: "Valid Base/Hills"},
			SplitBroken:      {Label: "Broken", Color: "#f43f5e", Prescription: "Mechanical Failure"},
		},
		TrainingEffect: map[TrainingEffect]Info{
			TEMaxPower:  {Label: "MAX POWER", Color: "#c084fc"},
			TEAnaerobic: {Label: "ANAEROBIC", Color: "#fb923c"},
			TEVO2Max:    {Label: "VO2 MAX", Color: "#f87171"},
			TEThreshold: {Label: "THRESHOLD", Color: "#34d399"},
		},
		Load: map[LoadCategory]Info{
			LoadRecovery:     {Label: "Recovery", Color: "#60a5fa", Prescription: "Low stress, promotes adaptation"},
			LoadBase:         {Label: "Base", Color: "#10b981", Prescription: "Steady load, builds aerobic fitness"},
			LoadOverload:     {Label: "Overload", Color: "#f97316", Prescription: "High stimulus, needs recovery between sessions"},
			LoadOverreaching: {Label: "Overreaching", Color: "#ef4444", Prescription: "Very high stress, needs recovery"},
		},
		LoadMix: map[LoadMix]Info{
			MixZone2Base:       {Label: "ZONE 2 BASE", Prescription: "Nearly all Zone 1-2. Great for base building, but one hard session per week rounds it out."},
			MixZone3Junk:       {Label: "ZONE 3 JUNK", Prescription: "Too much moderate-zone time without enough easy. Swap some tempo runs for true easy days."},
			MixThresholdAddict: {Label: "ZONE 4 THRESHOLD ADDICT", Prescription: "Too much VO2max-level effort. Back off and rebuild your aerobic base."},
			MixTempoHeavy:      {Label: "TEMPO HEAVY", Prescription: "Strong fitness stimulus with a higher recovery cost. Do not stack these back-to-back."},
			MixTempoThreshold:  {Label: "TEMPO / THRESHOLD", Prescription: "High intensity speed work that builds race-pace durability."},
		},
		Quadrant: map[Quadrant]Info{
			QuadrantRaceReady:       {Label: "Race Ready", Color: "#2CC985"},
			QuadrantExpensiveSpeed:  {Label: "Expensive Speed", Color: "#ff9900"},
			QuadrantBaseMaintenance: {Label: "Base Maintenance", Color: "#e6e600"},
			QuadrantStruggling:      {Label: "Struggling", Color: "#ff0000"},
		},
	}
}

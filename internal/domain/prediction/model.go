package prediction

import "time"

// Record is a raw warehouse row: a mapping of column names to values. Values
// may be absent, nil, numeric, or string-typed depending on the upstream
// export, so every field access goes through the coercion helpers in
// normalize.go.
type Record = map[string]any

// Warehouse column names for visit records.
const (
	FieldGestationalAge = "GESTATIONAL_AGE_WEEKS"
	FieldMaternalWeight = "MATERNAL_WEIGHT"
	FieldFundalHeight   = "FUNDAL_HEIGHT"
	FieldHemoglobin     = "HEMOGLOBIN_LEVEL"
	FieldBloodPressure  = "BLOOD_PRESSURE"
	FieldFetalHeartRate = "FETAL_HEART_RATE"
	FieldComplications  = "COMPLICATIONS"
	FieldVisitDate      = "VISIT_DATE"
)

// Warehouse column names for the patient profile record.
const (
	FieldAge            = "AGE"
	FieldBMIValue       = "BMI_VALUE"
	FieldBMICategory    = "BMI_CATEGORY"
	FieldParity         = "PARITY"
	FieldMedicalHistory = "MEDICAL_HISTORY"
)

// Visit is a normalized clinical observation. GestationalAge is always
// present and positive; every other field is nil when the raw record carried
// no usable value.
type Visit struct {
	GestationalAge float64
	Weight         *float64
	FundalHeight   *float64
	Hemoglobin     *float64
	BloodPressure  *string
	FetalHeartRate *float64
	Complications  *string
	VisitDate      *string
}

// RiskScores holds the six independent risk sub-scores, each in [0, 1].
type RiskScores struct {
	Anemia            float64 `json:"anemia"`
	Hypertension      float64 `json:"hypertension"`
	GrowthRestriction float64 `json:"growthRestriction"`
	PretermRisk       float64 `json:"pretermRisk"`
	MaternalAgeRisk   float64 `json:"maternalAgeRisk"`
	BMIRisk           float64 `json:"bmiRisk"`
}

// DeliveryType is the probability distribution over delivery timing outcomes.
// The three rounded values sum to 1.0 within rounding slack.
type DeliveryType struct {
	Matured       float64 `json:"Matured"`
	Premature     float64 `json:"Premature"`
	MortalityRisk float64 `json:"MortalityRisk"`
}

// DeliveryMode is the probability distribution over delivery modes.
type DeliveryMode struct {
	Normal   float64 `json:"Normal"`
	CSection float64 `json:"CSection"`
}

// Point is one week of a projected signal. IsActual marks the week-0 point,
// which carries the latest visit's observed values rather than a projection.
type Point struct {
	Week     int     `json:"week"`
	Value    float64 `json:"value"`
	IsActual bool    `json:"isActual,omitempty"`
}

// Progression holds the six projected signal sequences, ordered by week.
type Progression struct {
	Weight    []Point `json:"weight"`
	Fundal    []Point `json:"fundal"`
	Hb        []Point `json:"hb"`
	Systolic  []Point `json:"systolic"`
	Diastolic []Point `json:"diastolic"`
	FetalHR   []Point `json:"fetal_hr"`
}

// Metadata describes how a prediction was produced.
type Metadata struct {
	CurrentGestationalAge int        `json:"currentGestationalAge"`
	WeeksProjected        int        `json:"weeksProjected"`
	VisitCount            int        `json:"visitCount"`
	RiskScores            RiskScores `json:"riskScores"`
	GeneratedAt           time.Time  `json:"generatedAt"`
	Source                string     `json:"source"`
}

// Result is a complete obstetric outcome prediction.
type Result struct {
	DeliveryType DeliveryType `json:"deliveryType"`
	DeliveryMode DeliveryMode `json:"deliveryMode"`
	Progression  Progression  `json:"progression"`
	Summary      string       `json:"summary"`
	Metadata     Metadata     `json:"metadata"`
	IsFallback   bool         `json:"isFallback"`
	Diagnostic   string       `json:"diagnostic,omitempty"`
}

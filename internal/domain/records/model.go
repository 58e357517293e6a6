package records

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID             uuid.UUID `db:"id" json:"id"`
	MRN            *string   `db:"mrn" json:"mrn,omitempty"`
	FullName       *string   `db:"full_name" json:"full_name,omitempty"`
	Age            *int      `db:"age" json:"age,omitempty"`
	BMIValue       *float64  `db:"bmi_value" json:"bmi_value,omitempty"`
	BMICategory    *string   `db:"bmi_category" json:"bmi_category,omitempty"`
	Parity         *int      `db:"parity" json:"parity,omitempty"`
	MedicalHistory *string   `db:"medical_history" json:"medical_history,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// PrenatalVisit maps to the prenatal_visit table.
type PrenatalVisit struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	PatientID           uuid.UUID  `db:"patient_id" json:"patient_id"`
	VisitDate           *time.Time `db:"visit_date" json:"visit_date,omitempty"`
	GestationalAgeWeeks *float64   `db:"gestational_age_weeks" json:"gestational_age_weeks,omitempty"`
	MaternalWeight      *float64   `db:"maternal_weight" json:"maternal_weight,omitempty"`
	FundalHeight        *float64   `db:"fundal_height" json:"fundal_height,omitempty"`
	HemoglobinLevel     *float64   `db:"hemoglobin_level" json:"hemoglobin_level,omitempty"`
	BloodPressure       *string    `db:"blood_pressure" json:"blood_pressure,omitempty"`
	FetalHeartRate      *float64   `db:"fetal_heart_rate" json:"fetal_heart_rate,omitempty"`
	Complications       *string    `db:"complications" json:"complications,omitempty"`
	Note                *string    `db:"note" json:"note,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// DeliveryRecord maps to the delivery_record table.
type DeliveryRecord struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	PatientID           uuid.UUID  `db:"patient_id" json:"patient_id"`
	DeliveryDate        *time.Time `db:"delivery_date" json:"delivery_date,omitempty"`
	DeliveryMethod      *string    `db:"delivery_method" json:"delivery_method,omitempty"`
	DeliveryOutcome     *string    `db:"delivery_outcome" json:"delivery_outcome,omitempty"`
	GestationalAgeWeeks *float64   `db:"gestational_age_weeks" json:"gestational_age_weeks,omitempty"`
	BirthWeightGrams    *int       `db:"birth_weight_grams" json:"birth_weight_grams,omitempty"`
	Complications       *string    `db:"complications" json:"complications,omitempty"`
	Note                *string    `db:"note" json:"note,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

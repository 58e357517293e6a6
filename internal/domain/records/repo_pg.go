package records

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maternity/maternity/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const patientCols = `id, mrn, full_name, age, bmi_value, bmi_category, parity,
	medical_history, created_at, updated_at`

func (r *patientRepoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.MRN, &p.FullName, &p.Age, &p.BMIValue, &p.BMICategory,
		&p.Parity, &p.MedicalHistory, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, mrn, full_name, age, bmi_value, bmi_category, parity, medical_history)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.MRN, p.FullName, p.Age, p.BMIValue, p.BMICategory, p.Parity, p.MedicalHistory)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET mrn=$2, full_name=$3, age=$4, bmi_value=$5, bmi_category=$6,
			parity=$7, medical_history=$8, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.MRN, p.FullName, p.Age, p.BMIValue, p.BMICategory, p.Parity, p.MedicalHistory)
	return err
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

// =========== Prenatal Visit Repository ===========

type visitRepoPG struct{ pool *pgxpool.Pool }

func NewVisitRepoPG(pool *pgxpool.Pool) VisitRepository {
	return &visitRepoPG{pool: pool}
}

func (r *visitRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const visitCols = `id, patient_id, visit_date, gestational_age_weeks, maternal_weight,
	fundal_height, hemoglobin_level, blood_pressure, fetal_heart_rate,
	complications, note, created_at, updated_at`

func (r *visitRepoPG) scanVisit(row pgx.Row) (*PrenatalVisit, error) {
	var v PrenatalVisit
	err := row.Scan(&v.ID, &v.PatientID, &v.VisitDate, &v.GestationalAgeWeeks, &v.MaternalWeight,
		&v.FundalHeight, &v.HemoglobinLevel, &v.BloodPressure, &v.FetalHeartRate,
		&v.Complications, &v.Note, &v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *visitRepoPG) Create(ctx context.Context, v *PrenatalVisit) error {
	v.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prenatal_visit (id, patient_id, visit_date, gestational_age_weeks, maternal_weight,
			fundal_height, hemoglobin_level, blood_pressure, fetal_heart_rate, complications, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		v.ID, v.PatientID, v.VisitDate, v.GestationalAgeWeeks, v.MaternalWeight,
		v.FundalHeight, v.HemoglobinLevel, v.BloodPressure, v.FetalHeartRate, v.Complications, v.Note)
	return err
}

func (r *visitRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*PrenatalVisit, error) {
	return r.scanVisit(r.conn(ctx).QueryRow(ctx, `SELECT `+visitCols+` FROM prenatal_visit WHERE id = $1`, id))
}

func (r *visitRepoPG) Update(ctx context.Context, v *PrenatalVisit) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE prenatal_visit SET visit_date=$2, gestational_age_weeks=$3, maternal_weight=$4,
			fundal_height=$5, hemoglobin_level=$6, blood_pressure=$7, fetal_heart_rate=$8,
			complications=$9, note=$10, updated_at=NOW()
		WHERE id = $1`,
		v.ID, v.VisitDate, v.GestationalAgeWeeks, v.MaternalWeight,
		v.FundalHeight, v.HemoglobinLevel, v.BloodPressure, v.FetalHeartRate,
		v.Complications, v.Note)
	return err
}

func (r *visitRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM prenatal_visit WHERE id = $1`, id)
	return err
}

func (r *visitRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PrenatalVisit, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM prenatal_visit WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+visitCols+` FROM prenatal_visit
		WHERE patient_id = $1
		ORDER BY gestational_age_weeks ASC NULLS LAST, visit_date ASC
		LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*PrenatalVisit
	for rows.Next() {
		v, err := r.scanVisit(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, nil
}

// =========== Delivery Repository ===========

type deliveryRepoPG struct{ pool *pgxpool.Pool }

func NewDeliveryRepoPG(pool *pgxpool.Pool) DeliveryRepository {
	return &deliveryRepoPG{pool: pool}
}

func (r *deliveryRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const deliveryCols = `id, patient_id, delivery_date, delivery_method, delivery_outcome,
	gestational_age_weeks, birth_weight_grams, complications, note, created_at, updated_at`

func (r *deliveryRepoPG) scanDelivery(row pgx.Row) (*DeliveryRecord, error) {
	var d DeliveryRecord
	err := row.Scan(&d.ID, &d.PatientID, &d.DeliveryDate, &d.DeliveryMethod, &d.DeliveryOutcome,
		&d.GestationalAgeWeeks, &d.BirthWeightGrams, &d.Complications, &d.Note, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *deliveryRepoPG) Create(ctx context.Context, d *DeliveryRecord) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO delivery_record (id, patient_id, delivery_date, delivery_method, delivery_outcome,
			gestational_age_weeks, birth_weight_grams, complications, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		d.ID, d.PatientID, d.DeliveryDate, d.DeliveryMethod, d.DeliveryOutcome,
		d.GestationalAgeWeeks, d.BirthWeightGrams, d.Complications, d.Note)
	return err
}

func (r *deliveryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DeliveryRecord, error) {
	return r.scanDelivery(r.conn(ctx).QueryRow(ctx, `SELECT `+deliveryCols+` FROM delivery_record WHERE id = $1`, id))
}

func (r *deliveryRepoPG) Update(ctx context.Context, d *DeliveryRecord) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE delivery_record SET delivery_date=$2, delivery_method=$3, delivery_outcome=$4,
			gestational_age_weeks=$5, birth_weight_grams=$6, complications=$7, note=$8, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.DeliveryDate, d.DeliveryMethod, d.DeliveryOutcome,
		d.GestationalAgeWeeks, d.BirthWeightGrams, d.Complications, d.Note)
	return err
}

func (r *deliveryRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM delivery_record WHERE id = $1`, id)
	return err
}

func (r *deliveryRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*DeliveryRecord, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM delivery_record WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+deliveryCols+` FROM delivery_record
		WHERE patient_id = $1 ORDER BY delivery_date DESC NULLS LAST
		LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*DeliveryRecord
	for rows.Next() {
		d, err := r.scanDelivery(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}

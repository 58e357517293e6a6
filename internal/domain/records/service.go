package records

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/maternity/maternity/internal/domain/prediction"
	"github.com/maternity/maternity/internal/platform/narrative"
)

type Service struct {
	patients   PatientRepository
	visits     VisitRepository
	deliveries DeliveryRepository
	cache      *Cache
	engine     *prediction.Engine
	narrator   narrative.Generator // nil when the feature is not configured
}

func NewService(
	patients PatientRepository,
	visits VisitRepository,
	deliveries DeliveryRepository,
	cache *Cache,
	engine *prediction.Engine,
	narrator narrative.Generator,
) *Service {
	return &Service{
		patients:   patients,
		visits:     visits,
		deliveries: deliveries,
		cache:      cache,
		engine:     engine,
		narrator:   narrator,
	}
}

// -- Patient --

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if err := s.patients.Update(ctx, p); err != nil {
		return err
	}
	s.cache.Invalidate(p.ID)
	return nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	if err := s.patients.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(id)
	return nil
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

// -- Prenatal Visit --

func (s *Service) CreateVisit(ctx context.Context, v *PrenatalVisit) error {
	if v.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if v.VisitDate == nil {
		now := time.Now()
		v.VisitDate = &now
	}
	if err := s.visits.Create(ctx, v); err != nil {
		return err
	}
	s.cache.Invalidate(v.PatientID)
	return nil
}

func (s *Service) GetVisit(ctx context.Context, id uuid.UUID) (*PrenatalVisit, error) {
	return s.visits.GetByID(ctx, id)
}

func (s *Service) UpdateVisit(ctx context.Context, v *PrenatalVisit) error {
	if err := s.visits.Update(ctx, v); err != nil {
		return err
	}
	s.cache.Invalidate(v.PatientID)
	return nil
}

func (s *Service) DeleteVisit(ctx context.Context, id uuid.UUID) error {
	v, err := s.visits.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.visits.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(v.PatientID)
	return nil
}

func (s *Service) ListVisitsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PrenatalVisit, int, error) {
	return s.visits.ListByPatient(ctx, patientID, limit, offset)
}

// -- Delivery Record --

func (s *Service) CreateDelivery(ctx context.Context, d *DeliveryRecord) error {
	if d.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	return s.deliveries.Create(ctx, d)
}

func (s *Service) GetDelivery(ctx context.Context, id uuid.UUID) (*DeliveryRecord, error) {
	return s.deliveries.GetByID(ctx, id)
}

func (s *Service) UpdateDelivery(ctx context.Context, d *DeliveryRecord) error {
	return s.deliveries.Update(ctx, d)
}

func (s *Service) DeleteDelivery(ctx context.Context, id uuid.UUID) error {
	return s.deliveries.Delete(ctx, id)
}

func (s *Service) ListDeliveriesByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*DeliveryRecord, int, error) {
	return s.deliveries.ListByPatient(ctx, patientID, limit, offset)
}

// -- Prediction --

// PredictOutcome runs the rule engine over the patient's cached visit history.
// Repository failures surface as errors; once the data is in hand the engine
// itself never fails.
func (s *Service) PredictOutcome(ctx context.Context, patientID uuid.UUID) (*prediction.Result, error) {
	patient, visits, err := s.cache.Load(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("load patient %s: %w", patientID, err)
	}

	rows := make([]prediction.Record, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, visitRecord(v))
	}
	return s.engine.Predict(rows, patientRecord(patient)), nil
}

// GenerateNarrative computes a prediction and asks the narrative collaborator
// to render it as prose.
func (s *Service) GenerateNarrative(ctx context.Context, patientID uuid.UUID) (string, *prediction.Result, error) {
	if s.narrator == nil {
		return "", nil, fmt.Errorf("narrative generation is not configured")
	}
	res, err := s.PredictOutcome(ctx, patientID)
	if err != nil {
		return "", nil, err
	}
	text, err := s.narrator.Generate(ctx, res)
	if err != nil {
		return "", nil, fmt.Errorf("generate narrative for patient %s: %w", patientID, err)
	}
	return text, res, nil
}

// CacheStatus exposes cache counters for the admin endpoint.
func (s *Service) CacheStatus() CacheStatus {
	return s.cache.Status()
}

// ReloadCache force-refreshes a patient's cache entry.
func (s *Service) ReloadCache(ctx context.Context, patientID uuid.UUID) error {
	return s.cache.Reload(ctx, patientID)
}

// visitRecord flattens a visit row into the warehouse-keyed map the engine
// consumes. Absent fields are simply omitted; the engine's normalizer treats
// missing and nil alike.
func visitRecord(v *PrenatalVisit) prediction.Record {
	rec := prediction.Record{}
	if v.GestationalAgeWeeks != nil {
		rec[prediction.FieldGestationalAge] = *v.GestationalAgeWeeks
	}
	if v.MaternalWeight != nil {
		rec[prediction.FieldMaternalWeight] = *v.MaternalWeight
	}
	if v.FundalHeight != nil {
		rec[prediction.FieldFundalHeight] = *v.FundalHeight
	}
	if v.HemoglobinLevel != nil {
		rec[prediction.FieldHemoglobin] = *v.HemoglobinLevel
	}
	if v.BloodPressure != nil {
		rec[prediction.FieldBloodPressure] = *v.BloodPressure
	}
	if v.FetalHeartRate != nil {
		rec[prediction.FieldFetalHeartRate] = *v.FetalHeartRate
	}
	if v.Complications != nil {
		rec[prediction.FieldComplications] = *v.Complications
	}
	if v.VisitDate != nil {
		rec[prediction.FieldVisitDate] = v.VisitDate.Format(time.RFC3339)
	}
	return rec
}

func patientRecord(p *Patient) prediction.Record {
	rec := prediction.Record{}
	if p.Age != nil {
		rec[prediction.FieldAge] = *p.Age
	}
	if p.BMIValue != nil {
		rec[prediction.FieldBMIValue] = *p.BMIValue
	}
	if p.BMICategory != nil {
		rec[prediction.FieldBMICategory] = *p.BMICategory
	}
	if p.Parity != nil {
		rec[prediction.FieldParity] = *p.Parity
	}
	if p.MedicalHistory != nil {
		rec[prediction.FieldMedicalHistory] = *p.MedicalHistory
	}
	return rec
}

package records

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/maternity/maternity/internal/domain/prediction"
)

var errNotFound = errors.New("not found")

// -- In-memory mocks --

type mockPatientRepo struct {
	patients map[uuid.UUID]*Patient
	gets     int
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	m.gets++
	p, ok := m.patients[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return errNotFound
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockPatientRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var items []*Patient
	for _, p := range m.patients {
		items = append(items, p)
	}
	return items, len(items), nil
}

type mockVisitRepo struct {
	visits map[uuid.UUID]*PrenatalVisit
	lists  int
}

func newMockVisitRepo() *mockVisitRepo {
	return &mockVisitRepo{visits: make(map[uuid.UUID]*PrenatalVisit)}
}

func (m *mockVisitRepo) Create(_ context.Context, v *PrenatalVisit) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	m.visits[v.ID] = v
	return nil
}

func (m *mockVisitRepo) GetByID(_ context.Context, id uuid.UUID) (*PrenatalVisit, error) {
	v, ok := m.visits[id]
	if !ok {
		return nil, errNotFound
	}
	return v, nil
}

func (m *mockVisitRepo) Update(_ context.Context, v *PrenatalVisit) error {
	if _, ok := m.visits[v.ID]; !ok {
		return errNotFound
	}
	m.visits[v.ID] = v
	return nil
}

func (m *mockVisitRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.visits, id)
	return nil
}

func (m *mockVisitRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*PrenatalVisit, int, error) {
	m.lists++
	var items []*PrenatalVisit
	for _, v := range m.visits {
		if v.PatientID == patientID {
			items = append(items, v)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i].GestationalAgeWeeks, items[j].GestationalAgeWeeks
		if a == nil || b == nil {
			return b == nil
		}
		return *a < *b
	})
	return items, len(items), nil
}

type mockDeliveryRepo struct {
	deliveries map[uuid.UUID]*DeliveryRecord
}

func newMockDeliveryRepo() *mockDeliveryRepo {
	return &mockDeliveryRepo{deliveries: make(map[uuid.UUID]*DeliveryRecord)}
}

func (m *mockDeliveryRepo) Create(_ context.Context, d *DeliveryRecord) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	m.deliveries[d.ID] = d
	return nil
}

func (m *mockDeliveryRepo) GetByID(_ context.Context, id uuid.UUID) (*DeliveryRecord, error) {
	d, ok := m.deliveries[id]
	if !ok {
		return nil, errNotFound
	}
	return d, nil
}

func (m *mockDeliveryRepo) Update(_ context.Context, d *DeliveryRecord) error {
	if _, ok := m.deliveries[d.ID]; !ok {
		return errNotFound
	}
	m.deliveries[d.ID] = d
	return nil
}

func (m *mockDeliveryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.deliveries, id)
	return nil
}

func (m *mockDeliveryRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*DeliveryRecord, int, error) {
	var items []*DeliveryRecord
	for _, d := range m.deliveries {
		if d.PatientID == patientID {
			items = append(items, d)
		}
	}
	return items, len(items), nil
}

type stubNarrator struct {
	text string
	err  error
	last *prediction.Result
}

func (s *stubNarrator) Generate(_ context.Context, res *prediction.Result) (string, error) {
	s.last = res
	return s.text, s.err
}

// -- Fixture helpers --

type fixture struct {
	svc        *Service
	patients   *mockPatientRepo
	visits     *mockVisitRepo
	deliveries *mockDeliveryRepo
	narrator   *stubNarrator
}

type zeroJitter struct{}

func (zeroJitter) Float64() float64 { return 0.5 }

func newFixture() *fixture {
	patients := newMockPatientRepo()
	visits := newMockVisitRepo()
	deliveries := newMockDeliveryRepo()
	narrator := &stubNarrator{text: "generated narrative"}
	cache := NewCache(patients, visits, time.Minute)
	engine := prediction.NewEngine(prediction.WithJitter(zeroJitter{}))
	return &fixture{
		svc:        NewService(patients, visits, deliveries, cache, engine, narrator),
		patients:   patients,
		visits:     visits,
		deliveries: deliveries,
		narrator:   narrator,
	}
}

func intp(v int) *int         { return &v }
func f64p(v float64) *float64 { return &v }
func strp(v string) *string   { return &v }

func (f *fixture) seedPatient(t *testing.T) *Patient {
	t.Helper()
	p := &Patient{Age: intp(29), BMIValue: f64p(24), Parity: intp(1)}
	if err := f.patients.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	return p
}

func (f *fixture) seedVisit(t *testing.T, patientID uuid.UUID, ga float64) *PrenatalVisit {
	t.Helper()
	v := &PrenatalVisit{
		PatientID:           patientID,
		GestationalAgeWeeks: f64p(ga),
		MaternalWeight:      f64p(60 + ga*0.4),
		HemoglobinLevel:     f64p(11.5),
		BloodPressure:       strp("118/76"),
	}
	if err := f.visits.Create(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	return v
}

// -- Tests --

func TestCreateVisitRequiresPatient(t *testing.T) {
	f := newFixture()
	err := f.svc.CreateVisit(context.Background(), &PrenatalVisit{})
	if err == nil || !strings.Contains(err.Error(), "patient_id") {
		t.Errorf("expected patient_id error, got %v", err)
	}
}

func TestCreateVisitDefaultsVisitDate(t *testing.T) {
	f := newFixture()
	p := f.seedPatient(t)

	v := &PrenatalVisit{PatientID: p.ID, GestationalAgeWeeks: f64p(20)}
	if err := f.svc.CreateVisit(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	if v.VisitDate == nil {
		t.Error("visit date should default to now")
	}
}

func TestPredictOutcome(t *testing.T) {
	f := newFixture()
	p := f.seedPatient(t)
	f.seedVisit(t, p.ID, 20)
	f.seedVisit(t, p.ID, 28)

	res, err := f.svc.PredictOutcome(context.Background(), p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.IsFallback {
		t.Fatal("expected a personalized prediction")
	}
	if res.Metadata.CurrentGestationalAge != 28 || res.Metadata.VisitCount != 2 {
		t.Errorf("metadata = %+v", res.Metadata)
	}
	if res.Metadata.WeeksProjected != 12 {
		t.Errorf("weeksProjected = %d, want 12", res.Metadata.WeeksProjected)
	}
}

func TestPredictOutcomeUnknownPatient(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.PredictOutcome(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown patient")
	}
}

func TestPredictOutcomeNoVisitsFallsBack(t *testing.T) {
	f := newFixture()
	p := f.seedPatient(t)

	res, err := f.svc.PredictOutcome(context.Background(), p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsFallback {
		t.Error("expected fallback with no visit history")
	}
}

func TestPredictOutcomeUsesCache(t *testing.T) {
	f := newFixture()
	p := f.seedPatient(t)
	f.seedVisit(t, p.ID, 24)

	ctx := context.Background()
	if _, err := f.svc.PredictOutcome(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.PredictOutcome(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if f.visits.lists != 1 {
		t.Errorf("visit repo queried %d times, want 1 (second call cached)", f.visits.lists)
	}
}

func TestVisitWriteInvalidatesCache(t *testing.T) {
	f := newFixture()
	p := f.seedPatient(t)
	f.seedVisit(t, p.ID, 24)

	ctx := context.Background()
	if _, err := f.svc.PredictOutcome(ctx, p.ID); err != nil {
		t.Fatal(err)
	}

	v := &PrenatalVisit{PatientID: p.ID, GestationalAgeWeeks: f64p(30)}
	if err := f.svc.CreateVisit(ctx, v); err != nil {
		t.Fatal(err)
	}

	res, err := f.svc.PredictOutcome(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Metadata.CurrentGestationalAge != 30 {
		t.Errorf("currentGestationalAge = %d, want 30 after new visit", res.Metadata.CurrentGestationalAge)
	}
	if res.Metadata.VisitCount != 2 {
		t.Errorf("visitCount = %d, want 2", res.Metadata.VisitCount)
	}
}

func TestGenerateNarrative(t *testing.T) {
	f := newFixture()
	p := f.seedPatient(t)
	f.seedVisit(t, p.ID, 26)

	text, res, err := f.svc.GenerateNarrative(context.Background(), p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if text != "generated narrative" {
		t.Errorf("narrative = %q", text)
	}
	if res == nil || f.narrator.last == nil {
		t.Fatal("prediction should be passed to the narrator and returned")
	}
	if f.narrator.last.Metadata.CurrentGestationalAge != 26 {
		t.Errorf("narrator received %+v", f.narrator.last.Metadata)
	}
}

func TestGenerateNarrativeFailure(t *testing.T) {
	f := newFixture()
	p := f.seedPatient(t)
	f.seedVisit(t, p.ID, 26)
	f.narrator.err = errors.New("api unavailable")

	if _, _, err := f.svc.GenerateNarrative(context.Background(), p.ID); err == nil {
		t.Error("expected narrator error to surface")
	}
}

func TestGenerateNarrativeUnconfigured(t *testing.T) {
	f := newFixture()
	f.svc.narrator = nil
	p := f.seedPatient(t)

	_, _, err := f.svc.GenerateNarrative(context.Background(), p.ID)
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Errorf("expected not-configured error, got %v", err)
	}
}

func TestVisitRecordConversion(t *testing.T) {
	at := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	v := &PrenatalVisit{
		GestationalAgeWeeks: f64p(28),
		MaternalWeight:      f64p(68),
		HemoglobinLevel:     f64p(9.2),
		BloodPressure:       strp("148/95"),
		Complications:       strp("edema"),
		VisitDate:           &at,
	}

	rec := visitRecord(v)
	if rec[prediction.FieldGestationalAge] != 28.0 {
		t.Errorf("gestational age = %v", rec[prediction.FieldGestationalAge])
	}
	if rec[prediction.FieldBloodPressure] != "148/95" {
		t.Errorf("blood pressure = %v", rec[prediction.FieldBloodPressure])
	}
	if rec[prediction.FieldVisitDate] != "2026-02-03T00:00:00Z" {
		t.Errorf("visit date = %v", rec[prediction.FieldVisitDate])
	}
	if _, ok := rec[prediction.FieldFundalHeight]; ok {
		t.Error("absent fundal height should be omitted")
	}
}

func TestPatientRecordConversion(t *testing.T) {
	p := &Patient{Age: intp(17), BMIValue: f64p(32), Parity: intp(0), MedicalHistory: strp("preterm birth")}

	rec := patientRecord(p)
	if rec[prediction.FieldAge] != 17 {
		t.Errorf("age = %v", rec[prediction.FieldAge])
	}
	if rec[prediction.FieldParity] != 0 {
		t.Errorf("parity = %v", rec[prediction.FieldParity])
	}
	if rec[prediction.FieldMedicalHistory] != "preterm birth" {
		t.Errorf("medical history = %v", rec[prediction.FieldMedicalHistory])
	}
}

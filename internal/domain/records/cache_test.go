package records

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCacheLoadMissThenHit(t *testing.T) {
	patients := newMockPatientRepo()
	visits := newMockVisitRepo()
	cache := NewCache(patients, visits, time.Minute)

	p := &Patient{Age: intp(30)}
	if err := patients.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, _, err := cache.Load(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := cache.Load(ctx, p.ID); err != nil {
		t.Fatal(err)
	}

	status := cache.Status()
	if status.Misses != 1 || status.Hits != 1 {
		t.Errorf("status = %+v, want 1 miss then 1 hit", status)
	}
	if patients.gets != 1 {
		t.Errorf("patient repo queried %d times, want 1", patients.gets)
	}
}

func TestCacheLoadUnknownPatient(t *testing.T) {
	cache := NewCache(newMockPatientRepo(), newMockVisitRepo(), time.Minute)
	if _, _, err := cache.Load(context.Background(), uuid.New()); err == nil {
		t.Error("expected repository error to surface")
	}
}

func TestCacheExpiry(t *testing.T) {
	patients := newMockPatientRepo()
	visits := newMockVisitRepo()
	cache := NewCache(patients, visits, time.Nanosecond)

	p := &Patient{}
	if err := patients.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, _, err := cache.Load(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, _, err := cache.Load(ctx, p.ID); err != nil {
		t.Fatal(err)
	}

	if got := cache.Status().Misses; got != 2 {
		t.Errorf("misses = %d, want 2 (entry expired)", got)
	}
}

func TestCacheInvalidate(t *testing.T) {
	patients := newMockPatientRepo()
	visits := newMockVisitRepo()
	cache := NewCache(patients, visits, time.Minute)

	p := &Patient{}
	if err := patients.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, _, err := cache.Load(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	cache.Invalidate(p.ID)
	if _, _, err := cache.Load(ctx, p.ID); err != nil {
		t.Fatal(err)
	}

	if got := cache.Status().Misses; got != 2 {
		t.Errorf("misses = %d, want 2 after invalidation", got)
	}
}

func TestCacheReloadPicksUpNewVisits(t *testing.T) {
	patients := newMockPatientRepo()
	visits := newMockVisitRepo()
	cache := NewCache(patients, visits, time.Minute)

	p := &Patient{}
	if err := patients.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, _, err := cache.Load(ctx, p.ID); err != nil {
		t.Fatal(err)
	}

	v := &PrenatalVisit{PatientID: p.ID, GestationalAgeWeeks: f64p(22)}
	if err := visits.Create(ctx, v); err != nil {
		t.Fatal(err)
	}
	if err := cache.Reload(ctx, p.ID); err != nil {
		t.Fatal(err)
	}

	_, vs, err := cache.Load(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 1 {
		t.Errorf("visits after reload = %d, want 1", len(vs))
	}
	if got := cache.Status().Reloads; got != 1 {
		t.Errorf("reloads = %d, want 1", got)
	}
}

func TestCacheStatusTTL(t *testing.T) {
	cache := NewCache(newMockPatientRepo(), newMockVisitRepo(), 90*time.Second)
	if got := cache.Status().TTLSeconds; got != 90 {
		t.Errorf("ttl_seconds = %d, want 90", got)
	}
}

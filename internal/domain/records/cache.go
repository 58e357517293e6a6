package records

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxVisitsPerPatient bounds the visit fetch when warming a cache entry. No
// pregnancy produces anywhere near this many prenatal visits.
const maxVisitsPerPatient = 500

// cacheEntry is one patient's profile plus full visit history.
type cacheEntry struct {
	patient  *Patient
	visits   []*PrenatalVisit
	loadedAt time.Time
}

// Cache is a TTL-based read-through cache over the patient and visit
// repositories. It is constructed once in main, owned by the service, and
// safe for concurrent use. Entries expire lazily; writes to the underlying
// tables must call Invalidate.
type Cache struct {
	patients PatientRepository
	visits   VisitRepository
	ttl      time.Duration

	mu      sync.RWMutex
	entries map[uuid.UUID]*cacheEntry
	hits    int64
	misses  int64
	reloads int64
}

// CacheStatus is a point-in-time snapshot of cache health, exposed on the
// admin endpoint.
type CacheStatus struct {
	Entries    int   `json:"entries"`
	Hits       int64 `json:"hits"`
	Misses     int64 `json:"misses"`
	Reloads    int64 `json:"reloads"`
	TTLSeconds int   `json:"ttl_seconds"`
}

func NewCache(patients PatientRepository, visits VisitRepository, ttl time.Duration) *Cache {
	return &Cache{
		patients: patients,
		visits:   visits,
		ttl:      ttl,
		entries:  make(map[uuid.UUID]*cacheEntry),
	}
}

// Load returns the patient's profile and visit history, fetching from the
// repositories on a miss or an expired entry.
func (c *Cache) Load(ctx context.Context, patientID uuid.UUID) (*Patient, []*PrenatalVisit, error) {
	c.mu.RLock()
	entry, ok := c.entries[patientID]
	c.mu.RUnlock()

	if ok && time.Since(entry.loadedAt) < c.ttl {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return entry.patient, entry.visits, nil
	}

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
	return c.fetch(ctx, patientID)
}

// Reload forces a fresh fetch regardless of entry age.
func (c *Cache) Reload(ctx context.Context, patientID uuid.UUID) error {
	c.mu.Lock()
	c.reloads++
	c.mu.Unlock()
	_, _, err := c.fetch(ctx, patientID)
	return err
}

// Invalidate drops a patient's entry. The next Load refetches.
func (c *Cache) Invalidate(patientID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, patientID)
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uuid.UUID]*cacheEntry)
}

// Status reports entry count and hit/miss/reload counters.
func (c *Cache) Status() CacheStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStatus{
		Entries:    len(c.entries),
		Hits:       c.hits,
		Misses:     c.misses,
		Reloads:    c.reloads,
		TTLSeconds: int(c.ttl / time.Second),
	}
}

func (c *Cache) fetch(ctx context.Context, patientID uuid.UUID) (*Patient, []*PrenatalVisit, error) {
	patient, err := c.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}
	visits, _, err := c.visits.ListByPatient(ctx, patientID, maxVisitsPerPatient, 0)
	if err != nil {
		return nil, nil, err
	}

	c.mu.Lock()
	c.entries[patientID] = &cacheEntry{
		patient:  patient,
		visits:   visits,
		loadedAt: time.Now(),
	}
	c.mu.Unlock()
	return patient, visits, nil
}

package records

import (
	"context"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}

type VisitRepository interface {
	Create(ctx context.Context, v *PrenatalVisit) error
	GetByID(ctx context.Context, id uuid.UUID) (*PrenatalVisit, error)
	Update(ctx context.Context, v *PrenatalVisit) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByPatient returns all of a patient's visits ordered by
	// gestational age ascending; limit/offset paginate over that order.
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PrenatalVisit, int, error)
}

type DeliveryRepository interface {
	Create(ctx context.Context, d *DeliveryRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*DeliveryRecord, error)
	Update(ctx context.Context, d *DeliveryRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*DeliveryRecord, int, error)
}

package surgery

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("surgery not found")

// Repository persists surgeries and their lookup tables. Partition means the
// (branch, day) pair that seq numbers are scoped to; a nil dayID addresses
// the unassigned partition.
type Repository interface {
	Create(ctx context.Context, s *Surgery) error
	GetByID(ctx context.Context, id uuid.UUID) (*Surgery, error)
	Update(ctx context.Context, s *Surgery) error
	Delete(ctx context.Context, id uuid.UUID) error

	CountByPartition(ctx context.Context, branchID uuid.UUID, dayID *uuid.UUID) (int, error)
	// ListByPartition returns the partition ordered by seq number. forUpdate
	// row-locks the partition for the enclosing transaction.
	ListByPartition(ctx context.Context, branchID uuid.UUID, dayID *uuid.UUID, forUpdate bool) ([]*Surgery, error)
	UpdateSeq(ctx context.Context, id uuid.UUID, seq int) error
	UpdateBranchSeq(ctx context.Context, id uuid.UUID, branchID uuid.UUID, seq int) error

	ReplaceSurgeons(ctx context.Context, surgeryID uuid.UUID, surgeonIDs []uuid.UUID) error
	SurgeonIDs(ctx context.Context, surgeryID uuid.UUID) ([]uuid.UUID, error)

	GetOrCreateName(ctx context.Context, name string) (*SurgeryName, error)
	GetOrCreateType(ctx context.Context, name string) (*SurgeryType, error)
	SearchNames(ctx context.Context, query string, limit int) ([]*SurgeryName, error)
	SearchTypes(ctx context.Context, query string, limit int) ([]*SurgeryType, error)
}

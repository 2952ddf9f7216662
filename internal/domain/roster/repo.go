package roster

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrBranchNotFound  = errors.New("branch not found")
	ErrSurgeonNotFound = errors.New("surgeon not found")
	// ErrDuplicate is returned when a unique constraint (branch number,
	// surgeon full name) rejects a write.
	ErrDuplicate = errors.New("duplicate value")
)

type BranchRepository interface {
	Create(ctx context.Context, b *Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	GetByNumber(ctx context.Context, number int) (*Branch, error)
	Update(ctx context.Context, b *Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Branch, error)
}

type SurgeonRepository interface {
	Create(ctx context.Context, s *Surgeon) error
	GetByID(ctx context.Context, id uuid.UUID) (*Surgeon, error)
	Update(ctx context.Context, s *Surgeon) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns a page of surgeons ordered by full name, with the total
	// count.
	List(ctx context.Context, limit, offset int) ([]*Surgeon, int, error)
	// ListByBranch returns the surgeons eligible for a branch ordered by
	// full name, the order the surgery form presents them in.
	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]*Surgeon, error)
}

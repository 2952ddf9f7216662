package day

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no day exists for the given id or date.
	ErrNotFound = errors.New("surgery day not found")
	// ErrDuplicateDate is returned when an insert loses the race on the
	// unique date constraint. Callers re-fetch the winning row.
	ErrDuplicateDate = errors.New("surgery day already exists for date")
)

type Repository interface {
	Create(ctx context.Context, d *SurgeryDay) error
	GetByID(ctx context.Context, id uuid.UUID) (*SurgeryDay, error)
	GetByDate(ctx context.Context, date time.Time) (*SurgeryDay, error)
	SetEditable(ctx context.Context, id uuid.UUID, editable bool) error
	// SetEditableByDate updates every row for the date and returns the
	// number of rows touched. At most one row can exist per date.
	SetEditableByDate(ctx context.Context, date time.Time, editable bool) (int64, error)
}

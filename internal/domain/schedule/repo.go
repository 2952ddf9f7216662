package schedule

import (
	"context"

	"github.com/google/uuid"
)

// Repository reads the joined surgery rows for one day, ordered by branch
// number then seq number.
type Repository interface {
	ListDay(ctx context.Context, dayID uuid.UUID) ([]Row, error)
}

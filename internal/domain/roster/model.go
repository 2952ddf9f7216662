package roster

import (
	"github.com/google/uuid"
)

// Branch maps to the branch table. BranchNumber is the small integer staff
// know the department by; PageNumber only matters for print pagination.
type Branch struct {
	ID           uuid.UUID `db:"id" json:"id"`
	BranchNumber int       `db:"branch_number" json:"branch_number"`
	Name         string    `db:"name" json:"name"`
	PageNumber   int       `db:"page_number" json:"page_number"`
}

// Surgeon maps to the surgeon table. BranchIDs is the eligibility set: the
// branches whose surgeries this surgeon may be assigned to.
type Surgeon struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	FullName  string      `db:"full_name" json:"full_name"`
	BranchIDs []uuid.UUID `json:"branch_ids"`
}

package surgery

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Surgery is one planned operation on a surgery day. BranchID is the branch
// the row is currently displayed under; OwnBranchID records the branch it was
// created under and never changes, even when an admin moves the row.
// SeqNumber is the 1-based position within the (branch, day) partition.
type Surgery struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientName   string     `db:"patient_name" json:"patient_name"`
	Age           *int       `db:"age" json:"age,omitempty"`
	Diagnosis     string     `db:"diagnosis" json:"diagnosis"`
	BloodGroup    *string    `db:"blood_group" json:"blood_group,omitempty"`
	SurgeryNameID uuid.UUID  `db:"surgery_name_id" json:"surgery_name_id"`
	SurgeryTypeID *uuid.UUID `db:"surgery_type_id" json:"surgery_type_id,omitempty"`
	BranchID      uuid.UUID  `db:"branch_id" json:"branch_id"`
	OwnBranchID   uuid.UUID  `db:"own_branch_id" json:"own_branch_id"`
	SurgeryDayID  *uuid.UUID `db:"surgery_day_id" json:"surgery_day_id,omitempty"`
	SeqNumber     int        `db:"seq_number" json:"seq_number"`

	// SurgeonIDs is the assigned team in display order.
	SurgeonIDs []uuid.UUID `json:"surgeon_ids"`
}

// SurgeryName is a reusable operation name shared across surgeries.
type SurgeryName struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// SurgeryType is a reusable operation type (elective, emergency, ...).
type SurgeryType struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// SaveSurgeryCommand carries the surgery form fields for create and update.
// SurgeryName and SurgeryType are free text resolved to lookup rows on save.
// SurgeonOrder is the optional drag-order string of surgeon ids; surgeons
// selected but absent from it keep their place at the end.
type SaveSurgeryCommand struct {
	PatientName  string      `json:"patient_name"`
	Age          *int        `json:"age"`
	Diagnosis    string      `json:"diagnosis"`
	BloodGroup   *string     `json:"blood_group"`
	SurgeryName  string      `json:"surgery_name"`
	SurgeryType  string      `json:"surgery_type"`
	SurgeonIDs   []uuid.UUID `json:"surgeon_ids"`
	SurgeonOrder string      `json:"surgeon_order"`
}

func (c *SaveSurgeryCommand) Validate() error {
	c.PatientName = strings.TrimSpace(c.PatientName)
	c.SurgeryName = strings.TrimSpace(c.SurgeryName)
	c.SurgeryType = strings.TrimSpace(c.SurgeryType)
	if c.PatientName == "" {
		return &ValidationError{Field: "patient_name", Message: "patient name is required"}
	}
	if c.SurgeryName == "" {
		return &ValidationError{Field: "surgery_name", Message: "surgery name is required"}
	}
	if c.Age != nil && (*c.Age < 0 || *c.Age > 150) {
		return &ValidationError{Field: "age", Message: "age out of range"}
	}
	return nil
}

// ValidationError reports a rejected form field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

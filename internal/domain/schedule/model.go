package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Row is the flat read model one surgery projects to: the surgery joined
// with its branch, lookups and ordered team. OwnBranchName is the name of
// the originating branch, which survives cross-branch moves.
type Row struct {
	SurgeryID     uuid.UUID     `json:"surgery_id"`
	BranchID      uuid.UUID     `json:"branch_id"`
	BranchNumber  int           `json:"branch_number"`
	OwnBranchName string        `json:"own_branch_name"`
	SeqNumber     int           `json:"seq_number"`
	PatientName   string        `json:"patient_name"`
	Age           *int          `json:"age,omitempty"`
	Diagnosis     string        `json:"diagnosis"`
	BloodGroup    *string       `json:"blood_group,omitempty"`
	SurgeryName   string        `json:"surgery_name"`
	SurgeryType   *string       `json:"surgery_type,omitempty"`
	Surgeons      []SurgeonLine `json:"surgeons"`
}

type SurgeonLine struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
}

// DaySchedule is the full board for one day: every branch in branch-number
// order, including branches with no surgeries.
type DaySchedule struct {
	DayID    uuid.UUID        `json:"day_id"`
	Date     time.Time        `json:"date"`
	Editable bool             `json:"editable"`
	Branches []BranchSchedule `json:"branches"`
}

type BranchSchedule struct {
	BranchID     uuid.UUID `json:"branch_id"`
	BranchNumber int       `json:"branch_number"`
	BranchName   string    `json:"branch_name"`
	Surgeries    []Row     `json:"surgeries"`
}

// PrintSheet is the printable rendition of a day. Only branches that have
// surgeries appear, grouped by configured page number.
type PrintSheet struct {
	Date     string      `json:"date"`
	Weekday  string      `json:"weekday"`
	Pages    []PrintPage `json:"pages"`
	LastPage int         `json:"last_page"`
}

type PrintPage struct {
	PageNumber int           `json:"page_number"`
	Branches   []PrintBranch `json:"branches"`
}

type PrintBranch struct {
	BranchNumber int        `json:"branch_number"`
	BranchName   string     `json:"branch_name"`
	Rows         []PrintRow `json:"rows"`
}

// PrintRow is all strings; missing optional values render as a dash.
// Department is the surgery's originating branch, so a moved surgery still
// shows where it came from.
type PrintRow struct {
	Number      string `json:"number"`
	PatientName string `json:"patient_name"`
	Age         string `json:"age"`
	Diagnosis   string `json:"diagnosis"`
	BloodGroup  string `json:"blood_group"`
	SurgeryName string `json:"surgery_name"`
	SurgeryType string `json:"surgery_type"`
	Department  string `json:"department"`
	Surgeons    string `json:"surgeons"`
}

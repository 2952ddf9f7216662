package surgery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/opsched/opsched/internal/domain/day"
	"github.com/opsched/opsched/internal/domain/roster"
)

// Days is the slice of the day registry the surgery service needs.
type Days interface {
	ResolveDay(ctx context.Context, date time.Time) (*day.SurgeryDay, error)
	NextSurgeryDay(ctx context.Context) (*day.SurgeryDay, error)
	DayByID(ctx context.Context, id uuid.UUID) (*day.SurgeryDay, error)
}

// Directory is the slice of the roster the surgery service needs.
type Directory interface {
	GetBranch(ctx context.Context, id uuid.UUID) (*roster.Branch, error)
	GetBranchByNumber(ctx context.Context, number int) (*roster.Branch, error)
	SurgeonsForBranch(ctx context.Context, branchID uuid.UUID) ([]*roster.Surgeon, error)
}

// TxRunner runs fn inside a database transaction carried on the context.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// SeqAssignment is one entry of a batch renumbering request.
type SeqAssignment struct {
	SurgeryID uuid.UUID `json:"surgery_id"`
	SeqNumber int       `json:"seq_number"`
}

type Service struct {
	repo   Repository
	days   Days
	dir    Directory
	tx     TxRunner
	logger zerolog.Logger
}

func NewService(repo Repository, days Days, dir Directory, tx TxRunner, logger zerolog.Logger) *Service {
	return &Service{repo: repo, days: days, dir: dir, tx: tx, logger: logger}
}

// resolveTeam filters the selected surgeons to those eligible for the branch
// and applies the drag order. A surgery needs at least one eligible surgeon.
func (s *Service) resolveTeam(ctx context.Context, branchID uuid.UUID, cmd *SaveSurgeryCommand) ([]uuid.UUID, error) {
	eligible, err := s.dir.SurgeonsForBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	allowed := make(map[uuid.UUID]bool, len(eligible))
	for _, sg := range eligible {
		allowed[sg.ID] = true
	}
	var selected []uuid.UUID
	for _, id := range cmd.SurgeonIDs {
		if allowed[id] {
			selected = append(selected, id)
		}
	}
	team := OrderSurgeons(cmd.SurgeonOrder, selected)
	if len(team) == 0 {
		return nil, &ValidationError{Field: "surgeon_ids", Message: "no eligible surgeon selected"}
	}
	return team, nil
}

func (s *Service) requireEditableDay(ctx context.Context, dayID *uuid.UUID) (*day.SurgeryDay, error) {
	if dayID == nil {
		return nil, nil
	}
	d, err := s.days.DayByID(ctx, *dayID)
	if err != nil {
		return nil, err
	}
	if !d.Editable {
		return nil, &ValidationError{Field: "date", Message: "surgery day is locked"}
	}
	return d, nil
}

// Create adds a surgery to the branch on the given date, at the end of the
// partition. A zero date targets the next surgery day. Locked days reject
// the write with a ValidationError.
func (s *Service) Create(ctx context.Context, branchID uuid.UUID, date time.Time, cmd SaveSurgeryCommand) (*Surgery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var created *Surgery
	err := s.tx(ctx, func(ctx context.Context) error {
		if _, err := s.dir.GetBranch(ctx, branchID); err != nil {
			return err
		}

		var d *day.SurgeryDay
		var err error
		if date.IsZero() {
			d, err = s.days.NextSurgeryDay(ctx)
		} else {
			d, err = s.days.ResolveDay(ctx, date)
		}
		if err != nil {
			return err
		}
		if !d.Editable {
			return &ValidationError{Field: "date", Message: "surgery day is locked"}
		}

		team, err := s.resolveTeam(ctx, branchID, &cmd)
		if err != nil {
			return err
		}

		name, err := s.repo.GetOrCreateName(ctx, cmd.SurgeryName)
		if err != nil {
			return err
		}
		var typeID *uuid.UUID
		if cmd.SurgeryType != "" {
			t, err := s.repo.GetOrCreateType(ctx, cmd.SurgeryType)
			if err != nil {
				return err
			}
			typeID = &t.ID
		}

		count, err := s.repo.CountByPartition(ctx, branchID, &d.ID)
		if err != nil {
			return err
		}

		sg := &Surgery{
			PatientName:   cmd.PatientName,
			Age:           cmd.Age,
			Diagnosis:     cmd.Diagnosis,
			BloodGroup:    cmd.BloodGroup,
			SurgeryNameID: name.ID,
			SurgeryTypeID: typeID,
			BranchID:      branchID,
			OwnBranchID:   branchID,
			SurgeryDayID:  &d.ID,
			SeqNumber:     count + 1,
		}
		if err := s.repo.Create(ctx, sg); err != nil {
			return err
		}
		if err := s.repo.ReplaceSurgeons(ctx, sg.ID, team); err != nil {
			return err
		}
		sg.SurgeonIDs = team
		created = sg
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("surgery_id", created.ID.String()).Int("seq", created.SeqNumber).Msg("surgery created")
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Surgery, error) {
	return s.repo.GetByID(ctx, id)
}

// Update rewrites the form fields and the surgeon team. Branch, day and seq
// number are untouched; moving between branches is a separate admin
// operation.
func (s *Service) Update(ctx context.Context, id uuid.UUID, cmd SaveSurgeryCommand) (*Surgery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var updated *Surgery
	err := s.tx(ctx, func(ctx context.Context) error {
		sg, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.requireEditableDay(ctx, sg.SurgeryDayID); err != nil {
			return err
		}

		team, err := s.resolveTeam(ctx, sg.BranchID, &cmd)
		if err != nil {
			return err
		}

		name, err := s.repo.GetOrCreateName(ctx, cmd.SurgeryName)
		if err != nil {
			return err
		}
		sg.PatientName = cmd.PatientName
		sg.Age = cmd.Age
		sg.Diagnosis = cmd.Diagnosis
		sg.BloodGroup = cmd.BloodGroup
		sg.SurgeryNameID = name.ID
		sg.SurgeryTypeID = nil
		if cmd.SurgeryType != "" {
			t, err := s.repo.GetOrCreateType(ctx, cmd.SurgeryType)
			if err != nil {
				return err
			}
			sg.SurgeryTypeID = &t.ID
		}
		if err := s.repo.Update(ctx, sg); err != nil {
			return err
		}
		if err := s.repo.ReplaceSurgeons(ctx, sg.ID, team); err != nil {
			return err
		}
		sg.SurgeonIDs = team
		updated = sg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a surgery and closes the gap it leaves, so the partition
// stays densely numbered 1..N.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx(ctx, func(ctx context.Context) error {
		sg, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.requireEditableDay(ctx, sg.SurgeryDayID); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		return s.compact(ctx, sg.BranchID, sg.SurgeryDayID)
	})
}

// compact renumbers a partition densely 1..N in seq order.
func (s *Service) compact(ctx context.Context, branchID uuid.UUID, dayID *uuid.UUID) error {
	items, err := s.repo.ListByPartition(ctx, branchID, dayID, true)
	if err != nil {
		return err
	}
	seq := 0
	for _, it := range items {
		seq++
		if it.SeqNumber != seq {
			if err := s.repo.UpdateSeq(ctx, it.ID, seq); err != nil {
				return err
			}
		}
	}
	return nil
}

// Move reassigns a surgery to the branch with the given number at the given
// seq position, for the same day. The source partition is renumbered
// densely without the moved row; rows at or after the target position shift
// down by one. A target past the end of the destination partition clamps to
// the tail, keeping the partition dense. Works on locked days, it is a
// superuser operation.
func (s *Service) Move(ctx context.Context, surgeryID uuid.UUID, branchNumber, seqNumber int) error {
	if seqNumber < 1 {
		return &ValidationError{Field: "seq_number", Message: "seq number must be positive"}
	}
	err := s.tx(ctx, func(ctx context.Context) error {
		sg, err := s.repo.GetByID(ctx, surgeryID)
		if err != nil {
			return err
		}
		target, err := s.dir.GetBranchByNumber(ctx, branchNumber)
		if err != nil {
			return err
		}

		oldItems, err := s.repo.ListByPartition(ctx, sg.BranchID, sg.SurgeryDayID, true)
		if err != nil {
			return err
		}

		if target.ID == sg.BranchID {
			if n := len(oldItems); seqNumber > n {
				seqNumber = n
			}
			if err := s.repo.UpdateSeq(ctx, sg.ID, seqNumber); err != nil {
				return err
			}
			pos := 0
			for _, it := range oldItems {
				if it.ID == sg.ID {
					continue
				}
				pos++
				want := pos
				if want >= seqNumber {
					want = pos + 1
				}
				if it.SeqNumber != want {
					if err := s.repo.UpdateSeq(ctx, it.ID, want); err != nil {
						return err
					}
				}
			}
			return nil
		}

		newItems, err := s.repo.ListByPartition(ctx, target.ID, sg.SurgeryDayID, true)
		if err != nil {
			return err
		}
		if n := len(newItems) + 1; seqNumber > n {
			seqNumber = n
		}
		if err := s.repo.UpdateBranchSeq(ctx, sg.ID, target.ID, seqNumber); err != nil {
			return err
		}
		pos := 0
		for _, it := range oldItems {
			if it.ID == sg.ID {
				continue
			}
			pos++
			if it.SeqNumber != pos {
				if err := s.repo.UpdateSeq(ctx, it.ID, pos); err != nil {
					return err
				}
			}
		}
		for _, it := range newItems {
			if it.SeqNumber >= seqNumber {
				if err := s.repo.UpdateSeq(ctx, it.ID, it.SeqNumber+1); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().
		Str("surgery_id", surgeryID.String()).
		Int("branch_number", branchNumber).
		Int("seq", seqNumber).
		Msg("surgery moved")
	return nil
}

// Renumber applies a batch of explicit seq assignments in one transaction,
// aborting on the first failure. The caller is trusted to send a coherent
// permutation; the typical source is a drag and drop reorder of a whole
// branch column.
func (s *Service) Renumber(ctx context.Context, items []SeqAssignment) error {
	if len(items) == 0 {
		return nil
	}
	return s.tx(ctx, func(ctx context.Context) error {
		for _, item := range items {
			if item.SeqNumber < 1 {
				return &ValidationError{Field: "seq_number", Message: "seq number must be positive"}
			}
			if err := s.repo.UpdateSeq(ctx, item.SurgeryID, item.SeqNumber); err != nil {
				return fmt.Errorf("surgery %s: %w", item.SurgeryID, err)
			}
		}
		return nil
	})
}

// SearchNames backs the surgery-name autocomplete.
func (s *Service) SearchNames(ctx context.Context, query string) ([]*SurgeryName, error) {
	return s.repo.SearchNames(ctx, query, 10)
}

// SearchTypes backs the surgery-type autocomplete.
func (s *Service) SearchTypes(ctx context.Context, query string) ([]*SurgeryType, error) {
	return s.repo.SearchTypes(ctx, query, 10)
}

package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service manages the branch and surgeon registries. Mutations are admin
// operations; reads back the surgery form and the schedule projection.
type Service struct {
	branches BranchRepository
	surgeons SurgeonRepository
	logger   zerolog.Logger
}

func NewService(branches BranchRepository, surgeons SurgeonRepository, logger zerolog.Logger) *Service {
	return &Service{branches: branches, surgeons: surgeons, logger: logger}
}

func (s *Service) validateBranch(b *Branch) error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return fmt.Errorf("branch name is required")
	}
	if b.BranchNumber <= 0 {
		return fmt.Errorf("branch number must be positive")
	}
	if b.PageNumber <= 0 {
		return fmt.Errorf("page number must be positive")
	}
	return nil
}

func (s *Service) CreateBranch(ctx context.Context, b *Branch) error {
	if err := s.validateBranch(b); err != nil {
		return err
	}
	if err := s.branches.Create(ctx, b); err != nil {
		return err
	}
	s.logger.Info().Str("branch_id", b.ID.String()).Int("branch_number", b.BranchNumber).Msg("branch created")
	return nil
}

func (s *Service) GetBranch(ctx context.Context, id uuid.UUID) (*Branch, error) {
	return s.branches.GetByID(ctx, id)
}

func (s *Service) GetBranchByNumber(ctx context.Context, number int) (*Branch, error) {
	return s.branches.GetByNumber(ctx, number)
}

func (s *Service) UpdateBranch(ctx context.Context, b *Branch) error {
	if err := s.validateBranch(b); err != nil {
		return err
	}
	return s.branches.Update(ctx, b)
}

func (s *Service) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	return s.branches.Delete(ctx, id)
}

func (s *Service) ListBranches(ctx context.Context) ([]*Branch, error) {
	return s.branches.List(ctx)
}

func (s *Service) validateSurgeon(sg *Surgeon) error {
	sg.FullName = strings.TrimSpace(sg.FullName)
	if sg.FullName == "" {
		return fmt.Errorf("surgeon full name is required")
	}
	return nil
}

func (s *Service) CreateSurgeon(ctx context.Context, sg *Surgeon) error {
	if err := s.validateSurgeon(sg); err != nil {
		return err
	}
	if err := s.surgeons.Create(ctx, sg); err != nil {
		return err
	}
	s.logger.Info().Str("surgeon_id", sg.ID.String()).Str("full_name", sg.FullName).Msg("surgeon created")
	return nil
}

func (s *Service) GetSurgeon(ctx context.Context, id uuid.UUID) (*Surgeon, error) {
	return s.surgeons.GetByID(ctx, id)
}

func (s *Service) UpdateSurgeon(ctx context.Context, sg *Surgeon) error {
	if err := s.validateSurgeon(sg); err != nil {
		return err
	}
	return s.surgeons.Update(ctx, sg)
}

func (s *Service) DeleteSurgeon(ctx context.Context, id uuid.UUID) error {
	return s.surgeons.Delete(ctx, id)
}

func (s *Service) ListSurgeons(ctx context.Context, limit, offset int) ([]*Surgeon, int, error) {
	return s.surgeons.List(ctx, limit, offset)
}

// SurgeonsForBranch lists the surgeons eligible for a branch, ordered by
// full name.
func (s *Service) SurgeonsForBranch(ctx context.Context, branchID uuid.UUID) ([]*Surgeon, error) {
	return s.surgeons.ListByBranch(ctx, branchID)
}

package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/opsched/opsched/internal/domain/day"
	"github.com/opsched/opsched/internal/domain/roster"
	"github.com/opsched/opsched/internal/platform/auth"
)

// Days is the slice of the day registry the projection needs.
type Days interface {
	ResolveDay(ctx context.Context, date time.Time) (*day.SurgeryDay, error)
	NextSurgeryDay(ctx context.Context) (*day.SurgeryDay, error)
}

// Branches is the slice of the roster the projection needs.
type Branches interface {
	ListBranches(ctx context.Context) ([]*roster.Branch, error)
}

type Service struct {
	repo     Repository
	days     Days
	branches Branches
	logger   zerolog.Logger
}

func NewService(repo Repository, days Days, branches Branches, logger zerolog.Logger) *Service {
	return &Service{repo: repo, days: days, branches: branches, logger: logger}
}

func (s *Service) resolve(ctx context.Context, date time.Time) (*day.SurgeryDay, error) {
	if date.IsZero() {
		return s.days.NextSurgeryDay(ctx)
	}
	return s.days.ResolveDay(ctx, date)
}

// Project builds the full board for a date: every branch in branch-number
// order with its surgeries in seq order. A zero date targets the next
// surgery day.
//
// Non-superuser viewers with a branch set in their token see only those
// branches; the filter is advisory and falls back to the full board when it
// would leave nothing, so a stale token never blanks the screen.
func (s *Service) Project(ctx context.Context, date time.Time) (*DaySchedule, error) {
	d, err := s.resolve(ctx, date)
	if err != nil {
		return nil, err
	}

	branches, err := s.branches.ListBranches(ctx)
	if err != nil {
		return nil, err
	}
	branches = filterForViewer(ctx, branches)

	rows, err := s.repo.ListDay(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	byBranch := make(map[uuid.UUID][]Row)
	for _, row := range rows {
		byBranch[row.BranchID] = append(byBranch[row.BranchID], row)
	}

	sched := &DaySchedule{
		DayID:    d.ID,
		Date:     d.Date,
		Editable: d.Editable,
		Branches: []BranchSchedule{},
	}
	for _, b := range branches {
		surgeries := byBranch[b.ID]
		if surgeries == nil {
			surgeries = []Row{}
		}
		sched.Branches = append(sched.Branches, BranchSchedule{
			BranchID:     b.ID,
			BranchNumber: b.BranchNumber,
			BranchName:   b.Name,
			Surgeries:    surgeries,
		})
	}
	return sched, nil
}

func filterForViewer(ctx context.Context, branches []*roster.Branch) []*roster.Branch {
	if auth.IsSuperuser(ctx) {
		return branches
	}
	viewer := auth.BranchesFromContext(ctx)
	if len(viewer) == 0 {
		return branches
	}
	allowed := make(map[string]bool, len(viewer))
	for _, id := range viewer {
		allowed[id] = true
	}
	var filtered []*roster.Branch
	for _, b := range branches {
		if allowed[b.ID.String()] {
			filtered = append(filtered, b)
		}
	}
	if len(filtered) == 0 {
		return branches
	}
	return filtered
}

const dash = "-"

const printDateLayout = "02.01.2006"

// PrintSheet renders the printable sheet for a date. Branches without
// surgeries are omitted; branches are grouped onto their configured pages
// and rows are numbered "branch.seq". The same advisory viewer filter as
// Project applies, a restricted viewer prints only their branches.
func (s *Service) PrintSheet(ctx context.Context, date time.Time) (*PrintSheet, error) {
	d, err := s.resolve(ctx, date)
	if err != nil {
		return nil, err
	}

	branches, err := s.branches.ListBranches(ctx)
	if err != nil {
		return nil, err
	}
	branches = filterForViewer(ctx, branches)

	rows, err := s.repo.ListDay(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	byBranch := make(map[uuid.UUID][]Row)
	for _, row := range rows {
		byBranch[row.BranchID] = append(byBranch[row.BranchID], row)
	}

	pages := make(map[int][]PrintBranch)
	for _, b := range branches {
		surgeries := byBranch[b.ID]
		if len(surgeries) == 0 {
			continue
		}
		pb := PrintBranch{BranchNumber: b.BranchNumber, BranchName: b.Name}
		for _, row := range surgeries {
			pb.Rows = append(pb.Rows, printRow(b.BranchNumber, row))
		}
		pages[b.PageNumber] = append(pages[b.PageNumber], pb)
	}

	var pageNumbers []int
	for n := range pages {
		pageNumbers = append(pageNumbers, n)
	}
	sort.Ints(pageNumbers)

	sheet := &PrintSheet{
		Date:    d.Date.Format(printDateLayout),
		Weekday: d.Date.Weekday().String(),
		Pages:   []PrintPage{},
	}
	for _, n := range pageNumbers {
		sheet.Pages = append(sheet.Pages, PrintPage{PageNumber: n, Branches: pages[n]})
		sheet.LastPage = n
	}
	return sheet, nil
}

func printRow(branchNumber int, row Row) PrintRow {
	pr := PrintRow{
		Number:      fmt.Sprintf("%d.%d", branchNumber, row.SeqNumber),
		PatientName: orDash(row.PatientName),
		Age:         dash,
		Diagnosis:   orDash(row.Diagnosis),
		BloodGroup:  dash,
		SurgeryName: orDash(row.SurgeryName),
		SurgeryType: dash,
		Department:  orDash(row.OwnBranchName),
		Surgeons:    dash,
	}
	if row.Age != nil {
		pr.Age = fmt.Sprintf("%d", *row.Age)
	}
	if row.BloodGroup != nil && *row.BloodGroup != "" {
		pr.BloodGroup = *row.BloodGroup
	}
	if row.SurgeryType != nil && *row.SurgeryType != "" {
		pr.SurgeryType = *row.SurgeryType
	}
	if len(row.Surgeons) > 0 {
		var names []string
		for _, sg := range row.Surgeons {
			names = append(names, sg.FullName)
		}
		pr.Surgeons = strings.Join(names, ", ")
	}
	return pr
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return dash
	}
	return s
}

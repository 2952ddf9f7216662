package surgery

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/opsched/opsched/internal/domain/day"
	"github.com/opsched/opsched/internal/domain/roster"
)

// -- Mocks --

type mockRepo struct {
	surgeries map[uuid.UUID]*Surgery
	names     map[string]*SurgeryName
	types     map[string]*SurgeryType
	teams     map[uuid.UUID][]uuid.UUID
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		surgeries: make(map[uuid.UUID]*Surgery),
		names:     make(map[string]*SurgeryName),
		types:     make(map[string]*SurgeryType),
		teams:     make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *mockRepo) Create(_ context.Context, s *Surgery) error {
	s.ID = uuid.New()
	stored := *s
	m.surgeries[s.ID] = &stored
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Surgery, error) {
	s, ok := m.surgeries[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *s
	out.SurgeonIDs = append([]uuid.UUID(nil), m.teams[id]...)
	return &out, nil
}

func (m *mockRepo) Update(_ context.Context, s *Surgery) error {
	stored, ok := m.surgeries[s.ID]
	if !ok {
		return ErrNotFound
	}
	stored.PatientName = s.PatientName
	stored.Age = s.Age
	stored.Diagnosis = s.Diagnosis
	stored.BloodGroup = s.BloodGroup
	stored.SurgeryNameID = s.SurgeryNameID
	stored.SurgeryTypeID = s.SurgeryTypeID
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.surgeries[id]; !ok {
		return ErrNotFound
	}
	delete(m.surgeries, id)
	delete(m.teams, id)
	return nil
}

func sameDay(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *mockRepo) CountByPartition(_ context.Context, branchID uuid.UUID, dayID *uuid.UUID) (int, error) {
	n := 0
	for _, s := range m.surgeries {
		if s.BranchID == branchID && sameDay(s.SurgeryDayID, dayID) {
			n++
		}
	}
	return n, nil
}

func (m *mockRepo) ListByPartition(_ context.Context, branchID uuid.UUID, dayID *uuid.UUID, _ bool) ([]*Surgery, error) {
	var items []*Surgery
	for _, s := range m.surgeries {
		if s.BranchID == branchID && sameDay(s.SurgeryDayID, dayID) {
			out := *s
			items = append(items, &out)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].SeqNumber != items[j].SeqNumber {
			return items[i].SeqNumber < items[j].SeqNumber
		}
		return bytes.Compare(items[i].ID[:], items[j].ID[:]) < 0
	})
	return items, nil
}

func (m *mockRepo) UpdateSeq(_ context.Context, id uuid.UUID, seq int) error {
	s, ok := m.surgeries[id]
	if !ok {
		return ErrNotFound
	}
	s.SeqNumber = seq
	return nil
}

func (m *mockRepo) UpdateBranchSeq(_ context.Context, id uuid.UUID, branchID uuid.UUID, seq int) error {
	s, ok := m.surgeries[id]
	if !ok {
		return ErrNotFound
	}
	s.BranchID = branchID
	s.SeqNumber = seq
	return nil
}

func (m *mockRepo) ReplaceSurgeons(_ context.Context, surgeryID uuid.UUID, surgeonIDs []uuid.UUID) error {
	m.teams[surgeryID] = append([]uuid.UUID(nil), surgeonIDs...)
	return nil
}

func (m *mockRepo) SurgeonIDs(_ context.Context, surgeryID uuid.UUID) ([]uuid.UUID, error) {
	return m.teams[surgeryID], nil
}

func (m *mockRepo) GetOrCreateName(_ context.Context, name string) (*SurgeryName, error) {
	if n, ok := m.names[name]; ok {
		return n, nil
	}
	n := &SurgeryName{ID: uuid.New(), Name: name}
	m.names[name] = n
	return n, nil
}

func (m *mockRepo) GetOrCreateType(_ context.Context, name string) (*SurgeryType, error) {
	if t, ok := m.types[name]; ok {
		return t, nil
	}
	t := &SurgeryType{ID: uuid.New(), Name: name}
	m.types[name] = t
	return t, nil
}

func (m *mockRepo) SearchNames(_ context.Context, query string, limit int) ([]*SurgeryName, error) {
	var out []*SurgeryName
	for _, n := range m.names {
		if strings.Contains(strings.ToLower(n.Name), strings.ToLower(query)) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) SearchTypes(_ context.Context, query string, limit int) ([]*SurgeryType, error) {
	var out []*SurgeryType
	for _, t := range m.types {
		if strings.Contains(strings.ToLower(t.Name), strings.ToLower(query)) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockDays struct {
	byID   map[uuid.UUID]*day.SurgeryDay
	byDate map[time.Time]*day.SurgeryDay
	next   time.Time
}

func newMockDays() *mockDays {
	return &mockDays{
		byID:   make(map[uuid.UUID]*day.SurgeryDay),
		byDate: make(map[time.Time]*day.SurgeryDay),
		next:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *mockDays) ResolveDay(_ context.Context, date time.Time) (*day.SurgeryDay, error) {
	date = day.Midnight(date)
	if d, ok := m.byDate[date]; ok {
		return d, nil
	}
	d := &day.SurgeryDay{ID: uuid.New(), Date: date, Editable: true}
	m.byID[d.ID] = d
	m.byDate[date] = d
	return d, nil
}

func (m *mockDays) NextSurgeryDay(ctx context.Context) (*day.SurgeryDay, error) {
	return m.ResolveDay(ctx, m.next)
}

func (m *mockDays) DayByID(_ context.Context, id uuid.UUID) (*day.SurgeryDay, error) {
	d, ok := m.byID[id]
	if !ok {
		return nil, day.ErrNotFound
	}
	return d, nil
}

type mockDirectory struct {
	branches map[uuid.UUID]*roster.Branch
	surgeons map[uuid.UUID][]*roster.Surgeon
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		branches: make(map[uuid.UUID]*roster.Branch),
		surgeons: make(map[uuid.UUID][]*roster.Surgeon),
	}
}

func (m *mockDirectory) addBranch(number int) *roster.Branch {
	b := &roster.Branch{ID: uuid.New(), BranchNumber: number, Name: "Branch", PageNumber: 1}
	m.branches[b.ID] = b
	return b
}

func (m *mockDirectory) addSurgeon(branchID uuid.UUID, name string) *roster.Surgeon {
	s := &roster.Surgeon{ID: uuid.New(), FullName: name, BranchIDs: []uuid.UUID{branchID}}
	m.surgeons[branchID] = append(m.surgeons[branchID], s)
	return s
}

func (m *mockDirectory) GetBranch(_ context.Context, id uuid.UUID) (*roster.Branch, error) {
	b, ok := m.branches[id]
	if !ok {
		return nil, roster.ErrBranchNotFound
	}
	return b, nil
}

func (m *mockDirectory) GetBranchByNumber(_ context.Context, number int) (*roster.Branch, error) {
	for _, b := range m.branches {
		if b.BranchNumber == number {
			return b, nil
		}
	}
	return nil, roster.ErrBranchNotFound
}

func (m *mockDirectory) SurgeonsForBranch(_ context.Context, branchID uuid.UUID) ([]*roster.Surgeon, error) {
	return m.surgeons[branchID], nil
}

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	svc  *Service
	repo *mockRepo
	days *mockDays
	dir  *mockDirectory
}

func newFixture() *fixture {
	repo := newMockRepo()
	days := newMockDays()
	dir := newMockDirectory()
	return &fixture{
		svc:  NewService(repo, days, dir, passthroughTx, zerolog.Nop()),
		repo: repo,
		days: days,
		dir:  dir,
	}
}

func (f *fixture) mustCreate(t *testing.T, branchID uuid.UUID, date time.Time, patient string) *Surgery {
	t.Helper()
	if len(f.dir.surgeons[branchID]) == 0 {
		f.dir.addSurgeon(branchID, "Dr. On Call")
	}
	var team []uuid.UUID
	for _, sg := range f.dir.surgeons[branchID] {
		team = append(team, sg.ID)
	}
	sg, err := f.svc.Create(context.Background(), branchID, date, SaveSurgeryCommand{
		PatientName: patient,
		SurgeryName: "Appendectomy",
		SurgeonIDs:  team,
	})
	if err != nil {
		t.Fatalf("create %s: %v", patient, err)
	}
	return sg
}

func (f *fixture) seqOf(t *testing.T, id uuid.UUID) int {
	t.Helper()
	sg, err := f.repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get %s: %v", id, err)
	}
	return sg.SeqNumber
}

var testDate = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

// -- Tests --

func TestCreateSurgery_AppendsToPartition(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)

	first := f.mustCreate(t, b.ID, testDate, "Patient A")
	second := f.mustCreate(t, b.ID, testDate, "Patient B")

	if first.SeqNumber != 1 || second.SeqNumber != 2 {
		t.Errorf("expected seq 1 and 2, got %d and %d", first.SeqNumber, second.SeqNumber)
	}
	if first.OwnBranchID != b.ID {
		t.Error("expected own branch to record the creating branch")
	}
}

func TestCreateSurgery_PartitionsAreIndependent(t *testing.T) {
	f := newFixture()
	b1 := f.dir.addBranch(1)
	b2 := f.dir.addBranch(2)

	f.mustCreate(t, b1.ID, testDate, "Patient A")
	sg := f.mustCreate(t, b2.ID, testDate, "Patient B")
	if sg.SeqNumber != 1 {
		t.Errorf("expected seq 1 in second branch, got %d", sg.SeqNumber)
	}

	other := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	sg = f.mustCreate(t, b1.ID, other, "Patient C")
	if sg.SeqNumber != 1 {
		t.Errorf("expected seq 1 on second day, got %d", sg.SeqNumber)
	}
}

func TestCreateSurgery_ZeroDateTargetsNextDay(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)

	sg := f.mustCreate(t, b.ID, time.Time{}, "Patient A")
	d, err := f.days.DayByID(context.Background(), *sg.SurgeryDayID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Date.Equal(f.days.next) {
		t.Errorf("expected next surgery day %v, got %v", f.days.next, d.Date)
	}
}

func TestCreateSurgery_LockedDayRejected(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)
	d, _ := f.days.ResolveDay(context.Background(), testDate)
	d.Editable = false

	_, err := f.svc.Create(context.Background(), b.ID, testDate, SaveSurgeryCommand{
		PatientName: "Patient A",
		SurgeryName: "Appendectomy",
	})
	if err == nil || !strings.Contains(err.Error(), "locked") {
		t.Errorf("expected locked-day error, got %v", err)
	}
}

func TestCreateSurgery_PatientNameRequired(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)
	_, err := f.svc.Create(context.Background(), b.ID, testDate, SaveSurgeryCommand{
		PatientName: "  ",
		SurgeryName: "Appendectomy",
	})
	if err == nil {
		t.Error("expected error for blank patient name")
	}
}

func TestCreateSurgery_BranchMustExist(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Create(context.Background(), uuid.New(), testDate, SaveSurgeryCommand{
		PatientName: "Patient A",
		SurgeryName: "Appendectomy",
	})
	if err != roster.ErrBranchNotFound {
		t.Errorf("expected ErrBranchNotFound, got %v", err)
	}
}

func TestCreateSurgery_ReusesLookupRows(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)

	first := f.mustCreate(t, b.ID, testDate, "Patient A")
	second := f.mustCreate(t, b.ID, testDate, "Patient B")
	if first.SurgeryNameID != second.SurgeryNameID {
		t.Error("expected the surgery name row to be reused")
	}
}

func TestCreateSurgery_IneligibleSurgeonsDropped(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)
	other := f.dir.addBranch(2)
	ours := f.dir.addSurgeon(b.ID, "Dr. Ali Yilmaz")
	theirs := f.dir.addSurgeon(other.ID, "Dr. Zeynep Kaya")

	sg, err := f.svc.Create(context.Background(), b.ID, testDate, SaveSurgeryCommand{
		PatientName: "Patient A",
		SurgeryName: "Appendectomy",
		SurgeonIDs:  []uuid.UUID{ours.ID, theirs.ID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sg.SurgeonIDs) != 1 || sg.SurgeonIDs[0] != ours.ID {
		t.Errorf("expected only the eligible surgeon, got %v", sg.SurgeonIDs)
	}
}

func TestCreateSurgery_NoEligibleSurgeonRejected(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)
	other := f.dir.addBranch(2)
	theirs := f.dir.addSurgeon(other.ID, "Dr. Zeynep Kaya")

	_, err := f.svc.Create(context.Background(), b.ID, testDate, SaveSurgeryCommand{
		PatientName: "Patient A",
		SurgeryName: "Appendectomy",
		SurgeonIDs:  []uuid.UUID{theirs.ID},
	})
	if err == nil || !strings.Contains(err.Error(), "surgeon") {
		t.Errorf("expected no-eligible-surgeon error, got %v", err)
	}
}

func TestUpdateSurgery_KeepsSeqAndBranch(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)
	f.mustCreate(t, b.ID, testDate, "Patient A")
	sg := f.mustCreate(t, b.ID, testDate, "Patient B")

	age := 44
	updated, err := f.svc.Update(context.Background(), sg.ID, SaveSurgeryCommand{
		PatientName: "Patient B Renamed",
		Age:         &age,
		SurgeryName: "Cholecystectomy",
		SurgeonIDs:  []uuid.UUID{f.dir.surgeons[b.ID][0].ID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PatientName != "Patient B Renamed" || updated.Age == nil || *updated.Age != 44 {
		t.Errorf("fields not updated: %+v", updated)
	}
	if updated.SeqNumber != 2 || updated.BranchID != b.ID {
		t.Errorf("expected seq and branch untouched, got seq %d", updated.SeqNumber)
	}
}

func TestUpdateSurgery_LockedDayRejected(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)
	sg := f.mustCreate(t, b.ID, testDate, "Patient A")

	d, _ := f.days.ResolveDay(context.Background(), testDate)
	d.Editable = false

	_, err := f.svc.Update(context.Background(), sg.ID, SaveSurgeryCommand{
		PatientName: "Patient A",
		SurgeryName: "Appendectomy",
	})
	if err == nil || !strings.Contains(err.Error(), "locked") {
		t.Errorf("expected locked-day error, got %v", err)
	}
}

func TestDeleteSurgery_CompactsPartition(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)
	first := f.mustCreate(t, b.ID, testDate, "Patient A")
	second := f.mustCreate(t, b.ID, testDate, "Patient B")
	third := f.mustCreate(t, b.ID, testDate, "Patient C")

	if err := f.svc.Delete(context.Background(), second.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.seqOf(t, first.ID) != 1 || f.seqOf(t, third.ID) != 2 {
		t.Errorf("expected dense 1,2 after delete, got %d,%d", f.seqOf(t, first.ID), f.seqOf(t, third.ID))
	}
}

func TestMove_WithinBranch(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)
	a := f.mustCreate(t, b.ID, testDate, "Patient A")
	bb := f.mustCreate(t, b.ID, testDate, "Patient B")
	c := f.mustCreate(t, b.ID, testDate, "Patient C")

	if err := f.svc.Move(context.Background(), c.ID, 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.seqOf(t, c.ID) != 1 || f.seqOf(t, a.ID) != 2 || f.seqOf(t, bb.ID) != 3 {
		t.Errorf("unexpected order: c=%d a=%d b=%d", f.seqOf(t, c.ID), f.seqOf(t, a.ID), f.seqOf(t, bb.ID))
	}
}

func TestMove_AcrossBranches_ShiftsOccupants(t *testing.T) {
	f := newFixture()
	src := f.dir.addBranch(1)
	dst := f.dir.addBranch(2)

	moved := f.mustCreate(t, src.ID, testDate, "Mover")
	after := f.mustCreate(t, src.ID, testDate, "Stays")

	var dstIDs []uuid.UUID
	for _, name := range []string{"D1", "D2", "D3", "D4"} {
		dstIDs = append(dstIDs, f.mustCreate(t, dst.ID, testDate, name).ID)
	}

	if err := f.svc.Move(context.Background(), moved.ID, 2, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := f.repo.GetByID(context.Background(), moved.ID)
	if got.BranchID != dst.ID || got.SeqNumber != 1 {
		t.Fatalf("expected moved row at dst seq 1, got branch %s seq %d", got.BranchID, got.SeqNumber)
	}
	if got.OwnBranchID != src.ID {
		t.Error("expected own branch to survive the move")
	}
	for i, id := range dstIDs {
		if f.seqOf(t, id) != i+2 {
			t.Errorf("occupant %d: expected seq %d, got %d", i, i+2, f.seqOf(t, id))
		}
	}
	if f.seqOf(t, after.ID) != 1 {
		t.Errorf("expected source partition compacted, got seq %d", f.seqOf(t, after.ID))
	}
}

func TestMove_DensityPreserved(t *testing.T) {
	f := newFixture()
	b1 := f.dir.addBranch(1)
	b2 := f.dir.addBranch(2)
	var ids []uuid.UUID
	for _, name := range []string{"A", "B", "C"} {
		ids = append(ids, f.mustCreate(t, b1.ID, testDate, name).ID)
	}
	for _, name := range []string{"D", "E"} {
		ids = append(ids, f.mustCreate(t, b2.ID, testDate, name).ID)
	}

	f.svc.Move(context.Background(), ids[0], 2, 2)
	f.svc.Move(context.Background(), ids[4], 1, 1)

	ctx := context.Background()
	d, _ := f.days.ResolveDay(ctx, testDate)
	for _, branch := range []uuid.UUID{b1.ID, b2.ID} {
		items, _ := f.repo.ListByPartition(ctx, branch, &d.ID, false)
		for i, it := range items {
			if it.SeqNumber != i+1 {
				t.Errorf("branch %s position %d: expected seq %d, got %d", branch, i, i+1, it.SeqNumber)
			}
		}
	}
}

func TestMove_TargetPastEndClampsToTail(t *testing.T) {
	f := newFixture()
	src := f.dir.addBranch(1)
	dst := f.dir.addBranch(2)

	moved := f.mustCreate(t, src.ID, testDate, "Mover")
	d1 := f.mustCreate(t, dst.ID, testDate, "D1")
	d2 := f.mustCreate(t, dst.ID, testDate, "D2")

	if err := f.svc.Move(context.Background(), moved.ID, 2, 99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.seqOf(t, moved.ID) != 3 {
		t.Errorf("expected moved row at tail seq 3, got %d", f.seqOf(t, moved.ID))
	}
	if f.seqOf(t, d1.ID) != 1 || f.seqOf(t, d2.ID) != 2 {
		t.Errorf("expected occupants untouched, got %d,%d", f.seqOf(t, d1.ID), f.seqOf(t, d2.ID))
	}
}

func TestMove_WithinBranch_TargetPastEndClamps(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)
	a := f.mustCreate(t, b.ID, testDate, "Patient A")
	bb := f.mustCreate(t, b.ID, testDate, "Patient B")
	c := f.mustCreate(t, b.ID, testDate, "Patient C")

	if err := f.svc.Move(context.Background(), a.ID, 1, 99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.seqOf(t, bb.ID) != 1 || f.seqOf(t, c.ID) != 2 || f.seqOf(t, a.ID) != 3 {
		t.Errorf("expected b,c,a order, got b=%d c=%d a=%d",
			f.seqOf(t, bb.ID), f.seqOf(t, c.ID), f.seqOf(t, a.ID))
	}
}

func TestMove_UnknownBranchNumber(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)
	sg := f.mustCreate(t, b.ID, testDate, "Patient A")

	if err := f.svc.Move(context.Background(), sg.ID, 99, 1); err != roster.ErrBranchNotFound {
		t.Errorf("expected ErrBranchNotFound, got %v", err)
	}
}

func TestMove_SeqMustBePositive(t *testing.T) {
	f := newFixture()
	if err := f.svc.Move(context.Background(), uuid.New(), 1, 0); err == nil {
		t.Error("expected error for seq 0")
	}
}

func TestMove_WorksOnLockedDay(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)
	sg := f.mustCreate(t, b.ID, testDate, "Patient A")

	d, _ := f.days.ResolveDay(context.Background(), testDate)
	d.Editable = false

	if err := f.svc.Move(context.Background(), sg.ID, 1, 1); err != nil {
		t.Errorf("expected move to bypass the day lock, got %v", err)
	}
}

func TestRenumber_AppliesBatch(t *testing.T) {
	f := newFixture()
	b := f.dir.addBranch(1)
	a := f.mustCreate(t, b.ID, testDate, "Patient A")
	c := f.mustCreate(t, b.ID, testDate, "Patient B")

	err := f.svc.Renumber(context.Background(), []SeqAssignment{
		{SurgeryID: a.ID, SeqNumber: 2},
		{SurgeryID: c.ID, SeqNumber: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.seqOf(t, a.ID) != 2 || f.seqOf(t, c.ID) != 1 {
		t.Errorf("expected swapped seqs, got a=%d c=%d", f.seqOf(t, a.ID), f.seqOf(t, c.ID))
	}
}

func TestRenumber_AbortsOnUnknownSurgery(t *testing.T) {
	f := newFixture()
	err := f.svc.Renumber(context.Background(), []SeqAssignment{
		{SurgeryID: uuid.New(), SeqNumber: 1},
	})
	if err == nil {
		t.Error("expected error for unknown surgery")
	}
}

func TestSearchNames_Limit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		f.repo.GetOrCreateName(ctx, "Surgery "+string(rune('A'+i)))
	}
	names, err := f.svc.SearchNames(ctx, "surgery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 10 {
		t.Errorf("expected 10 results, got %d", len(names))
	}
}

package surgery

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsched/opsched/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const surgeryCols = `id, patient_name, age, diagnosis, blood_group,
	surgery_name_id, surgery_type_id, branch_id, own_branch_id,
	surgery_day_id, seq_number`

func scanSurgery(row pgx.Row) (*Surgery, error) {
	var s Surgery
	err := row.Scan(&s.ID, &s.PatientName, &s.Age, &s.Diagnosis, &s.BloodGroup,
		&s.SurgeryNameID, &s.SurgeryTypeID, &s.BranchID, &s.OwnBranchID,
		&s.SurgeryDayID, &s.SeqNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) Create(ctx context.Context, s *Surgery) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO surgery (id, patient_name, age, diagnosis, blood_group,
			surgery_name_id, surgery_type_id, branch_id, own_branch_id,
			surgery_day_id, seq_number)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		s.ID, s.PatientName, s.Age, s.Diagnosis, s.BloodGroup,
		s.SurgeryNameID, s.SurgeryTypeID, s.BranchID, s.OwnBranchID,
		s.SurgeryDayID, s.SeqNumber)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Surgery, error) {
	c := r.conn(ctx)
	s, err := scanSurgery(c.QueryRow(ctx, `SELECT `+surgeryCols+` FROM surgery WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	s.SurgeonIDs, err = r.surgeonIDs(ctx, c, id)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repoPG) Update(ctx context.Context, s *Surgery) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE surgery SET patient_name = $2, age = $3, diagnosis = $4,
			blood_group = $5, surgery_name_id = $6, surgery_type_id = $7
		WHERE id = $1`,
		s.ID, s.PatientName, s.Age, s.Diagnosis, s.BloodGroup,
		s.SurgeryNameID, s.SurgeryTypeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM surgery WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IS NOT DISTINCT FROM keeps the predicate correct for the nil-day
// partition, where plain equality would never match.
const partitionWhere = ` WHERE branch_id = $1 AND surgery_day_id IS NOT DISTINCT FROM $2`

func (r *repoPG) CountByPartition(ctx context.Context, branchID uuid.UUID, dayID *uuid.UUID) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM surgery`+partitionWhere, branchID, dayID).Scan(&n)
	return n, err
}

func (r *repoPG) ListByPartition(ctx context.Context, branchID uuid.UUID, dayID *uuid.UUID, forUpdate bool) ([]*Surgery, error) {
	q := `SELECT ` + surgeryCols + ` FROM surgery` + partitionWhere + ` ORDER BY seq_number, id`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	rows, err := r.conn(ctx).Query(ctx, q, branchID, dayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surgeries []*Surgery
	for rows.Next() {
		var s Surgery
		if err := rows.Scan(&s.ID, &s.PatientName, &s.Age, &s.Diagnosis, &s.BloodGroup,
			&s.SurgeryNameID, &s.SurgeryTypeID, &s.BranchID, &s.OwnBranchID,
			&s.SurgeryDayID, &s.SeqNumber); err != nil {
			return nil, err
		}
		surgeries = append(surgeries, &s)
	}
	return surgeries, rows.Err()
}

func (r *repoPG) UpdateSeq(ctx context.Context, id uuid.UUID, seq int) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE surgery SET seq_number = $2 WHERE id = $1`, id, seq)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) UpdateBranchSeq(ctx context.Context, id uuid.UUID, branchID uuid.UUID, seq int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE surgery SET branch_id = $2, seq_number = $3 WHERE id = $1`,
		id, branchID, seq)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ReplaceSurgeons(ctx context.Context, surgeryID uuid.UUID, surgeonIDs []uuid.UUID) error {
	c := r.conn(ctx)
	if _, err := c.Exec(ctx, `DELETE FROM surgery_surgeon WHERE surgery_id = $1`, surgeryID); err != nil {
		return err
	}
	for i, sid := range surgeonIDs {
		if _, err := c.Exec(ctx, `
			INSERT INTO surgery_surgeon (surgery_id, surgeon_id, position)
			VALUES ($1,$2,$3)`,
			surgeryID, sid, i+1); err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) surgeonIDs(ctx context.Context, c queryable, surgeryID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := c.Query(ctx, `
		SELECT surgeon_id FROM surgery_surgeon
		WHERE surgery_id = $1 ORDER BY position`,
		surgeryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repoPG) SurgeonIDs(ctx context.Context, surgeryID uuid.UUID) ([]uuid.UUID, error) {
	return r.surgeonIDs(ctx, r.conn(ctx), surgeryID)
}

// The DO UPDATE no-op makes ON CONFLICT return the existing row, so lookups
// are a single round trip whether or not the value is new.
func (r *repoPG) GetOrCreateName(ctx context.Context, name string) (*SurgeryName, error) {
	var n SurgeryName
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO surgery_name (id, name) VALUES ($1,$2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`,
		uuid.New(), name).Scan(&n.ID, &n.Name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repoPG) GetOrCreateType(ctx context.Context, name string) (*SurgeryType, error) {
	var t SurgeryType
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO surgery_type (id, name) VALUES ($1,$2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`,
		uuid.New(), name).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repoPG) SearchNames(ctx context.Context, query string, limit int) ([]*SurgeryName, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name FROM surgery_name
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2`,
		query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []*SurgeryName
	for rows.Next() {
		var n SurgeryName
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, err
		}
		names = append(names, &n)
	}
	return names, rows.Err()
}

func (r *repoPG) SearchTypes(ctx context.Context, query string, limit int) ([]*SurgeryType, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name FROM surgery_type
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2`,
		query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*SurgeryType
	for rows.Next() {
		var t SurgeryType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, &t)
	}
	return types, rows.Err()
}

package schedule

import (
	"context"

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

func (r *repoPG) ListDay(ctx context.Context, dayID uuid.UUID) ([]Row, error) {
	c := r.conn(ctx)
	rows, err := c.Query(ctx, `
		SELECT s.id, s.branch_id, b.branch_number, ob.name, s.seq_number,
		       s.patient_name, s.age, s.diagnosis, s.blood_group,
		       sn.name, st.name
		FROM surgery s
		JOIN branch b ON b.id = s.branch_id
		JOIN branch ob ON ob.id = s.own_branch_id
		JOIN surgery_name sn ON sn.id = s.surgery_name_id
		LEFT JOIN surgery_type st ON st.id = s.surgery_type_id
		WHERE s.surgery_day_id = $1
		ORDER BY b.branch_number, s.seq_number, s.id`,
		dayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.SurgeryID, &row.BranchID, &row.BranchNumber, &row.OwnBranchName,
			&row.SeqNumber, &row.PatientName, &row.Age, &row.Diagnosis, &row.BloodGroup,
			&row.SurgeryName, &row.SurgeryType); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		surgeons, err := r.surgeonsFor(ctx, c, result[i].SurgeryID)
		if err != nil {
			return nil, err
		}
		result[i].Surgeons = surgeons
	}
	return result, nil
}

func (r *repoPG) surgeonsFor(ctx context.Context, c queryable, surgeryID uuid.UUID) ([]SurgeonLine, error) {
	rows, err := c.Query(ctx, `
		SELECT sg.id, sg.full_name
		FROM surgery_surgeon ss
		JOIN surgeon sg ON sg.id = ss.surgeon_id
		WHERE ss.surgery_id = $1
		ORDER BY ss.position`,
		surgeryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surgeons []SurgeonLine
	for rows.Next() {
		var s SurgeonLine
		if err := rows.Scan(&s.ID, &s.FullName); err != nil {
			return nil, err
		}
		surgeons = append(surgeons, s)
	}
	return surgeons, rows.Err()
}

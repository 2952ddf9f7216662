package roster

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

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type branchRepoPG struct{ pool *pgxpool.Pool }

func NewBranchRepoPG(pool *pgxpool.Pool) BranchRepository { return &branchRepoPG{pool: pool} }

func (r *branchRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const branchCols = `id, branch_number, name, page_number`

func scanBranch(row pgx.Row) (*Branch, error) {
	var b Branch
	err := row.Scan(&b.ID, &b.BranchNumber, &b.Name, &b.PageNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *branchRepoPG) Create(ctx context.Context, b *Branch) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO branch (id, branch_number, name, page_number)
		VALUES ($1,$2,$3,$4)`,
		b.ID, b.BranchNumber, b.Name, b.PageNumber)
	if isDuplicate(err) {
		return ErrDuplicate
	}
	return err
}

func (r *branchRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Branch, error) {
	return scanBranch(r.conn(ctx).QueryRow(ctx, `SELECT `+branchCols+` FROM branch WHERE id = $1`, id))
}

func (r *branchRepoPG) GetByNumber(ctx context.Context, number int) (*Branch, error) {
	return scanBranch(r.conn(ctx).QueryRow(ctx, `SELECT `+branchCols+` FROM branch WHERE branch_number = $1`, number))
}

func (r *branchRepoPG) Update(ctx context.Context, b *Branch) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE branch SET branch_number = $2, name = $3, page_number = $4
		WHERE id = $1`,
		b.ID, b.BranchNumber, b.Name, b.PageNumber)
	if isDuplicate(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBranchNotFound
	}
	return nil
}

func (r *branchRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM branch WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBranchNotFound
	}
	return nil
}

func (r *branchRepoPG) List(ctx context.Context) ([]*Branch, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+branchCols+` FROM branch ORDER BY branch_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []*Branch
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.BranchNumber, &b.Name, &b.PageNumber); err != nil {
			return nil, err
		}
		branches = append(branches, &b)
	}
	return branches, rows.Err()
}

type surgeonRepoPG struct{ pool *pgxpool.Pool }

func NewSurgeonRepoPG(pool *pgxpool.Pool) SurgeonRepository { return &surgeonRepoPG{pool: pool} }

func (r *surgeonRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *surgeonRepoPG) Create(ctx context.Context, s *Surgeon) error {
	s.ID = uuid.New()
	c := r.conn(ctx)
	_, err := c.Exec(ctx, `INSERT INTO surgeon (id, full_name) VALUES ($1,$2)`, s.ID, s.FullName)
	if isDuplicate(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	return r.insertBranchLinks(ctx, c, s.ID, s.BranchIDs)
}

func (r *surgeonRepoPG) insertBranchLinks(ctx context.Context, c queryable, surgeonID uuid.UUID, branchIDs []uuid.UUID) error {
	for _, bid := range branchIDs {
		if _, err := c.Exec(ctx, `
			INSERT INTO surgeon_branch (surgeon_id, branch_id) VALUES ($1,$2)
			ON CONFLICT DO NOTHING`,
			surgeonID, bid); err != nil {
			return err
		}
	}
	return nil
}

func (r *surgeonRepoPG) branchIDsFor(ctx context.Context, c queryable, surgeonID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := c.Query(ctx, `SELECT branch_id FROM surgeon_branch WHERE surgeon_id = $1`, surgeonID)
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

func (r *surgeonRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Surgeon, error) {
	c := r.conn(ctx)
	var s Surgeon
	err := c.QueryRow(ctx, `SELECT id, full_name FROM surgeon WHERE id = $1`, id).
		Scan(&s.ID, &s.FullName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSurgeonNotFound
	}
	if err != nil {
		return nil, err
	}
	s.BranchIDs, err = r.branchIDsFor(ctx, c, s.ID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *surgeonRepoPG) Update(ctx context.Context, s *Surgeon) error {
	c := r.conn(ctx)
	tag, err := c.Exec(ctx, `UPDATE surgeon SET full_name = $2 WHERE id = $1`, s.ID, s.FullName)
	if isDuplicate(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSurgeonNotFound
	}
	if _, err := c.Exec(ctx, `DELETE FROM surgeon_branch WHERE surgeon_id = $1`, s.ID); err != nil {
		return err
	}
	return r.insertBranchLinks(ctx, c, s.ID, s.BranchIDs)
}

func (r *surgeonRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM surgeon WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSurgeonNotFound
	}
	return nil
}

func (r *surgeonRepoPG) List(ctx context.Context, limit, offset int) ([]*Surgeon, int, error) {
	c := r.conn(ctx)

	var total int
	if err := c.QueryRow(ctx, `SELECT COUNT(*) FROM surgeon`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := c.Query(ctx, `
		SELECT id, full_name FROM surgeon
		ORDER BY full_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var surgeons []*Surgeon
	for rows.Next() {
		var s Surgeon
		if err := rows.Scan(&s.ID, &s.FullName); err != nil {
			return nil, 0, err
		}
		surgeons = append(surgeons, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, s := range surgeons {
		if s.BranchIDs, err = r.branchIDsFor(ctx, c, s.ID); err != nil {
			return nil, 0, err
		}
	}
	return surgeons, total, nil
}

func (r *surgeonRepoPG) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]*Surgeon, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT s.id, s.full_name
		FROM surgeon s
		JOIN surgeon_branch sb ON sb.surgeon_id = s.id
		WHERE sb.branch_id = $1
		ORDER BY s.full_name`,
		branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surgeons []*Surgeon
	for rows.Next() {
		var s Surgeon
		if err := rows.Scan(&s.ID, &s.FullName); err != nil {
			return nil, err
		}
		surgeons = append(surgeons, &s)
	}
	return surgeons, rows.Err()
}

package day

import (
	"context"
	"errors"
	"time"

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

const dayCols = `id, date, editable`

func (r *repoPG) scanDay(row pgx.Row) (*SurgeryDay, error) {
	var d SurgeryDay
	err := row.Scan(&d.ID, &d.Date, &d.Editable)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d.Date = Midnight(d.Date)
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *SurgeryDay) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO surgery_day (id, date, editable)
		VALUES ($1,$2,$3)`,
		d.ID, Midnight(d.Date), d.Editable)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateDate
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*SurgeryDay, error) {
	return r.scanDay(r.conn(ctx).QueryRow(ctx, `SELECT `+dayCols+` FROM surgery_day WHERE id = $1`, id))
}

func (r *repoPG) GetByDate(ctx context.Context, date time.Time) (*SurgeryDay, error) {
	return r.scanDay(r.conn(ctx).QueryRow(ctx, `SELECT `+dayCols+` FROM surgery_day WHERE date = $1`, Midnight(date)))
}

func (r *repoPG) SetEditable(ctx context.Context, id uuid.UUID, editable bool) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE surgery_day SET editable = $2 WHERE id = $1`, id, editable)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) SetEditableByDate(ctx context.Context, date time.Time, editable bool) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE surgery_day SET editable = $2 WHERE date = $1`, Midnight(date), editable)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

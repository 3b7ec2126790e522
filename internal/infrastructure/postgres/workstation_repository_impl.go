package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	"github.com/oksasatya/worksafe-api/internal/domain/repository"
)

type WorkstationRepository struct {
	pool *pgxpool.Pool
}

func NewWorkstationRepository(pool *pgxpool.Pool) *WorkstationRepository {
	return &WorkstationRepository{pool: pool}
}

func (r *WorkstationRepository) Create(ctx context.Context, w *entity.Workstation) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO workstations (name, employee_name, department, monitor_distance_cm,
			has_adjustable_chair, has_footrest, ergonomic_risk_level, last_evaluation_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, w.Name, w.EmployeeName, w.Department, w.MonitorDistanceCm,
		w.HasAdjustableChair, w.HasFootrest, int16(w.RiskLevel()), w.LastEvaluationDate())

	if err := row.Scan(&w.ID); err != nil {
		return fmt.Errorf("insert workstation: %w", err)
	}
	return nil
}

func (r *WorkstationRepository) GetByID(ctx context.Context, id int64) (*entity.Workstation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+workstationColumns+` FROM workstations WHERE id = $1`, id)
	w, err := scanWorkstation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get workstation %d: %w", id, err)
	}
	return w, nil
}

func (r *WorkstationRepository) Update(ctx context.Context, w *entity.Workstation) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE workstations
		SET name = $1, employee_name = $2, department = $3, monitor_distance_cm = $4,
			has_adjustable_chair = $5, has_footrest = $6, ergonomic_risk_level = $7,
			last_evaluation_date = $8
		WHERE id = $9
	`, w.Name, w.EmployeeName, w.Department, w.MonitorDistanceCm,
		w.HasAdjustableChair, w.HasFootrest, int16(w.RiskLevel()), w.LastEvaluationDate(), w.ID)
	if err != nil {
		return fmt.Errorf("update workstation %d: %w", w.ID, err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WorkstationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM workstations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workstation %d: %w", id, err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Search runs the count and the page query in one read-only transaction.
func (r *WorkstationRepository) Search(ctx context.Context, f repository.SearchFilter) (*repository.Page, error) {
	q := buildSearchQuery(f)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("search workstations: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total int
	if err := tx.QueryRow(ctx, q.countSQL, q.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("search workstations: count: %w", err)
	}

	rows, err := tx.Query(ctx, q.selectSQL, q.pageArgs()...)
	if err != nil {
		return nil, fmt.Errorf("search workstations: query: %w", err)
	}
	defer rows.Close()

	items := make([]*entity.Workstation, 0, q.limit)
	for rows.Next() {
		w, err := scanWorkstation(rows)
		if err != nil {
			return nil, fmt.Errorf("search workstations: scan: %w", err)
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search workstations: rows: %w", err)
	}

	return &repository.Page{
		Items:      items,
		PageNumber: f.EffectivePageNumber(),
		PageSize:   q.limit,
		TotalCount: total,
	}, nil
}

func scanWorkstation(row pgx.Row) (*entity.Workstation, error) {
	var (
		id                    int64
		name, employee, dept  string
		distance              int
		hasChair, hasFootrest bool
		risk                  int16
		lastEvaluation        time.Time
	)
	if err := row.Scan(&id, &name, &employee, &dept, &distance, &hasChair, &hasFootrest, &risk, &lastEvaluation); err != nil {
		return nil, err
	}
	return entity.RestoreWorkstation(id, name, employee, dept, distance, hasChair, hasFootrest, entity.RiskLevel(risk), lastEvaluation), nil
}

var _ repository.WorkstationRepository = (*WorkstationRepository)(nil)

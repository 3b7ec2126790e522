package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	"github.com/oksasatya/worksafe-api/internal/domain/repository"
	"github.com/oksasatya/worksafe-api/pkg/helpers"
)

// testPool connects to TEST_DATABASE_URL, migrates and empties the table.
// Tests are skipped when the variable is not set.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, PoolOptions{DSN: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, RunMigrations(dsn, helpers.DiscardLogger()))
	_, err = pool.Exec(ctx, `TRUNCATE workstations RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func create(t *testing.T, r *WorkstationRepository, name, dept string, distance int, chair, footrest bool) *entity.Workstation {
	t.Helper()
	w, err := entity.NewWorkstation(name, "Ana", dept, distance, chair, footrest)
	require.NoError(t, err)
	require.NoError(t, r.Create(context.Background(), w))
	return w
}

func TestWorkstationRepository_CRUD(t *testing.T) {
	r := NewWorkstationRepository(testPool(t))
	ctx := context.Background()

	w := create(t, r, "Desk 1", "Engineering", 90, false, true)
	require.NotZero(t, w.ID)

	got, err := r.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.Name, got.Name)
	assert.Equal(t, w.Department, got.Department)
	assert.Equal(t, 90, got.MonitorDistanceCm)
	assert.False(t, got.HasAdjustableChair)
	assert.Equal(t, entity.RiskHigh, got.RiskLevel())
	assert.WithinDuration(t, w.LastEvaluationDate(), got.LastEvaluationDate(), time.Millisecond)

	require.NoError(t, got.Update("Desk 1b", "Ana", "Engineering", 60, true, true))
	require.NoError(t, r.Update(ctx, got))
	again, err := r.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk 1b", again.Name)
	assert.Equal(t, entity.RiskLow, again.RiskLevel())

	require.NoError(t, r.Delete(ctx, w.ID))
	_, err = r.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWorkstationRepository_MissingRowsAreNotFound(t *testing.T) {
	r := NewWorkstationRepository(testPool(t))
	ctx := context.Background()

	ghost := entity.RestoreWorkstation(404, "x", "y", "z", 50, true, true, entity.RiskLow, entity.Now())
	assert.ErrorIs(t, r.Update(ctx, ghost), repository.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, 404), repository.ErrNotFound)
}

func TestWorkstationRepository_Search(t *testing.T) {
	r := NewWorkstationRepository(testPool(t))
	ctx := context.Background()
	create(t, r, "Charlie", "Engineering", 60, true, true)
	create(t, r, "alpha", "Sales", 90, false, false)
	create(t, r, "Bravo", "Engineering", 35, true, true)
	create(t, r, "Delta", "engineering", 60, true, true)

	f := repository.NewSearchFilter()
	dept := "Engineering"
	f.Department = &dept
	f.SortBy = "name"
	f.SetPageSize(1)
	f.PageNumber = 2

	p, err := r.Search(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalCount)
	assert.Equal(t, 2, p.TotalPages())
	require.Len(t, p.Items, 1)
	assert.Equal(t, "Charlie", p.Items[0].Name)

	f.PageNumber = 1000000000000000000
	p, err = r.Search(ctx, f)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.Equal(t, 2, p.TotalCount)

	high := entity.RiskHigh
	f = repository.NewSearchFilter()
	f.RiskLevel = &high
	p, err = r.Search(ctx, f)
	require.NoError(t, err)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "alpha", p.Items[0].Name)
}

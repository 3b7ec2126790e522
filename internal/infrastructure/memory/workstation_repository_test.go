package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	"github.com/oksasatya/worksafe-api/internal/domain/repository"
)

func seed(t *testing.T, r *WorkstationRepository, rows ...[4]any) {
	t.Helper()
	for _, row := range rows {
		w, err := entity.NewWorkstation(row[0].(string), row[1].(string), row[2].(string), row[3].(int), true, true)
		require.NoError(t, err)
		require.NoError(t, r.Create(context.Background(), w))
	}
}

func mustCreate(t *testing.T, r *WorkstationRepository, name, employee, dept string, distance int, chair, footrest bool) *entity.Workstation {
	t.Helper()
	w, err := entity.NewWorkstation(name, employee, dept, distance, chair, footrest)
	require.NoError(t, err)
	require.NoError(t, r.Create(context.Background(), w))
	return w
}

func names(p *repository.Page) []string {
	out := make([]string, 0, len(p.Items))
	for _, w := range p.Items {
		out = append(out, w.Name)
	}
	return out
}

func TestCreateGetRoundTrip(t *testing.T) {
	r := NewWorkstationRepository()
	ctx := context.Background()
	created := mustCreate(t, r, "Desk 1", "Ana", "Engineering", 30, false, true)
	require.NotZero(t, created.ID)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
	assert.Equal(t, entity.RiskHigh, got.RiskLevel())
}

func TestGetUpdateDelete_NotFound(t *testing.T) {
	r := NewWorkstationRepository()
	ctx := context.Background()

	_, err := r.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	ghost := entity.RestoreWorkstation(42, "x", "y", "z", 50, true, true, entity.RiskLow, entity.Now())
	assert.ErrorIs(t, r.Update(ctx, ghost), repository.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, 42), repository.ErrNotFound)
}

func TestDelete_RemovesRow(t *testing.T) {
	r := NewWorkstationRepository()
	ctx := context.Background()
	w := mustCreate(t, r, "Desk", "Ana", "Eng", 50, true, true)

	require.NoError(t, r.Delete(ctx, w.ID))
	_, err := r.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStoredCopyIsIsolatedFromCaller(t *testing.T) {
	r := NewWorkstationRepository()
	ctx := context.Background()
	w := mustCreate(t, r, "Desk", "Ana", "Eng", 50, true, true)

	w.Name = "mutated without save"
	got, err := r.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk", got.Name)
}

func TestSearch_DepartmentContainsIsCaseSensitive(t *testing.T) {
	r := NewWorkstationRepository()
	seed(t, r,
		[4]any{"A", "Ana", "Engineering", 50},
		[4]any{"B", "Bob", "Sales", 50},
		[4]any{"C", "Cid", "engineering ops", 50},
	)
	f := repository.NewSearchFilter()
	dept := "Eng"
	f.Department = &dept

	p, err := r.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, names(p))
	assert.Equal(t, 1, p.TotalCount)
}

func TestSearch_TermMatchesNameOrEmployee(t *testing.T) {
	r := NewWorkstationRepository()
	seed(t, r,
		[4]any{"Desk Ana", "Zed", "Ops", 50},
		[4]any{"Desk 2", "Ana Lima", "Ops", 50},
		[4]any{"Desk 3", "Bob", "Ops", 50},
	)
	f := repository.NewSearchFilter()
	term := "  Ana "
	f.SearchTerm = &term

	p, err := r.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"Desk 2", "Desk Ana"}, names(p))
}

func TestSearch_RiskFilterAndDescendingRiskSort(t *testing.T) {
	r := NewWorkstationRepository()
	ctx := context.Background()
	mustCreate(t, r, "low", "a", "d", 50, true, true)
	mustCreate(t, r, "high", "a", "d", 20, false, false)
	mustCreate(t, r, "medium", "a", "d", 50, false, true)

	f := repository.NewSearchFilter()
	f.SortBy = "risk"
	f.SortDirection = "desc"
	p, err := r.Search(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "medium", "low"}, names(p))

	f.SetRiskLevelToken("medium")
	p, err = r.Search(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, []string{"medium"}, names(p))

	f.SetRiskLevelToken("bogus")
	p, err = r.Search(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalCount)
}

func TestSearch_UnknownSortFallsBackToNameAscending(t *testing.T) {
	r := NewWorkstationRepository()
	seed(t, r,
		[4]any{"Charlie", "x", "A", 50},
		[4]any{"Alpha", "x", "C", 50},
		[4]any{"Bravo", "x", "B", 50},
	)
	f := repository.NewSearchFilter()
	f.SortBy = "zzz"
	f.SortDirection = "sideways"

	p, err := r.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, names(p))
}

func TestSearch_SortByDepartmentDescending(t *testing.T) {
	r := NewWorkstationRepository()
	seed(t, r,
		[4]any{"1", "x", "Beta", 50},
		[4]any{"2", "x", "Alpha", 50},
		[4]any{"3", "x", "Gamma", 50},
	)
	f := repository.NewSearchFilter()
	f.SortBy = "DEPARTMENT"
	f.SortDirection = "DESC"

	p, err := r.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2"}, names(p))
}

func TestSearch_SecondPageReturnsRemainder(t *testing.T) {
	r := NewWorkstationRepository()
	for i := 1; i <= 15; i++ {
		seed(t, r, [4]any{fmt.Sprintf("Desk %02d", i), "x", "Eng", 50})
	}
	f := repository.NewSearchFilter()
	f.PageNumber = 2
	f.SetPageSize(10)

	p, err := r.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Len(t, p.Items, 5)
	assert.Equal(t, 15, p.TotalCount)
	assert.Equal(t, 2, p.TotalPages())
	assert.Equal(t, "Desk 11", p.Items[0].Name)
}

func TestSearch_PageBeyondEndIsEmpty(t *testing.T) {
	r := NewWorkstationRepository()
	seed(t, r, [4]any{"Desk", "x", "Eng", 50})
	f := repository.NewSearchFilter()
	f.PageNumber = 9

	p, err := r.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.TotalCount)
}

func TestSearch_HugePageNumberIsEmptyNotPanic(t *testing.T) {
	r := NewWorkstationRepository()
	seed(t, r, [4]any{"A", "x", "Eng", 50}, [4]any{"B", "x", "Eng", 50})
	f := repository.NewSearchFilter()
	f.PageNumber = 1000000000000000000

	p, err := r.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.Equal(t, 2, p.TotalCount)
	assert.Equal(t, 1000000000000000000, p.PageNumber)
}

func TestSearch_NonPositivePageServesFirstPage(t *testing.T) {
	r := NewWorkstationRepository()
	seed(t, r, [4]any{"A", "x", "Eng", 50}, [4]any{"B", "x", "Eng", 50})
	f := repository.NewSearchFilter()
	f.PageNumber = 0
	f.SetPageSize(1)

	p, err := r.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, names(p))
	assert.Equal(t, 1, p.PageNumber)
}

func TestSearch_FiltersCombineWithAnd(t *testing.T) {
	r := NewWorkstationRepository()
	mustCreate(t, r, "Desk Ana", "Ana", "Engineering", 50, true, true)
	mustCreate(t, r, "Desk Ana 2", "Ana", "Engineering", 50, false, false)
	mustCreate(t, r, "Desk Ana 3", "Ana", "Sales", 50, true, true)

	f := repository.NewSearchFilter()
	dept, term := "Engineering", "Ana"
	f.Department = &dept
	f.SearchTerm = &term
	f.SetRiskLevelToken("Low")

	p, err := r.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"Desk Ana"}, names(p))
}

func TestSearch_HonorsCancelledContext(t *testing.T) {
	r := NewWorkstationRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Search(ctx, repository.NewSearchFilter())
	assert.ErrorIs(t, err, context.Canceled)
}

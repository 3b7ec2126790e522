package postgres

import (
	"strconv"
	"strings"

	"github.com/oksasatya/worksafe-api/internal/domain/repository"
)

const workstationColumns = `id, name, employee_name, department, monitor_distance_cm,
	has_adjustable_chair, has_footrest, ergonomic_risk_level, last_evaluation_date`

// Sort keys map to fixed column expressions; user input never reaches ORDER BY.
var sortColumns = map[string]string{
	repository.SortByName:       `name COLLATE "C"`,
	repository.SortByDepartment: `department COLLATE "C"`,
	repository.SortByRisk:       `ergonomic_risk_level`,
}

type searchQuery struct {
	where     string
	args      []any
	orderBy   string
	limit     int
	offset    int
	countSQL  string
	selectSQL string
}

// buildSearchQuery composes the count and page statements for f.
func buildSearchQuery(f repository.SearchFilter) searchQuery {
	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if dept, ok := f.DepartmentFilter(); ok {
		conds = append(conds, "strpos(department, "+next(dept)+") > 0")
	}
	if f.RiskLevel != nil {
		conds = append(conds, "ergonomic_risk_level = "+next(int16(*f.RiskLevel)))
	}
	if term, ok := f.TermFilter(); ok {
		p := next(term)
		conds = append(conds, "(strpos(name, "+p+") > 0 OR strpos(employee_name, "+p+") > 0)")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	dir := "ASC"
	if f.Descending() {
		dir = "DESC"
	}
	orderBy := " ORDER BY " + sortColumns[f.SortKey()] + " " + dir + ", id ASC"

	q := searchQuery{
		where:   where,
		args:    args,
		orderBy: orderBy,
		limit:   f.PageSize(),
		offset:  f.Offset(),
	}
	q.countSQL = "SELECT COUNT(*) FROM workstations" + where
	q.selectSQL = "SELECT " + workstationColumns + " FROM workstations" + where + orderBy +
		" LIMIT " + "$" + strconv.Itoa(len(args)+1) + " OFFSET " + "$" + strconv.Itoa(len(args)+2)
	return q
}

// pageArgs returns the select statement arguments including LIMIT and OFFSET.
func (q searchQuery) pageArgs() []any {
	out := make([]any, 0, len(q.args)+2)
	out = append(out, q.args...)
	return append(out, q.limit, q.offset)
}

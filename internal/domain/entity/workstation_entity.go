package entity

import (
	"strings"
	"time"
	"unicode/utf8"
)

const MaxTextLength = 100

// ValidationError reports the first attribute that failed a domain check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Workstation is the aggregate root for ergonomic compliance.
// Risk level and evaluation date are derived; they change only through
// NewWorkstation and Update.
type Workstation struct {
	ID                 int64
	Name               string
	EmployeeName       string
	Department         string
	MonitorDistanceCm  int
	HasAdjustableChair bool
	HasFootrest        bool

	riskLevel          RiskLevel
	lastEvaluationDate time.Time
}

// Now is swapped in tests that need a deterministic clock.
var Now = func() time.Time { return time.Now().UTC() }

// NewWorkstation validates the attributes and evaluates the initial risk.
func NewWorkstation(name, employeeName, department string, monitorDistanceCm int, hasAdjustableChair, hasFootrest bool) (*Workstation, error) {
	w := &Workstation{}
	if err := w.apply(name, employeeName, department, monitorDistanceCm, hasAdjustableChair, hasFootrest); err != nil {
		return nil, err
	}
	return w, nil
}

// RestoreWorkstation rebuilds a persisted workstation as stored, without re-evaluating it.
func RestoreWorkstation(id int64, name, employeeName, department string, monitorDistanceCm int, hasAdjustableChair, hasFootrest bool, risk RiskLevel, lastEvaluation time.Time) *Workstation {
	return &Workstation{
		ID:                 id,
		Name:               name,
		EmployeeName:       employeeName,
		Department:         department,
		MonitorDistanceCm:  monitorDistanceCm,
		HasAdjustableChair: hasAdjustableChair,
		HasFootrest:        hasFootrest,
		riskLevel:          risk,
		lastEvaluationDate: lastEvaluation.UTC(),
	}
}

// Update replaces every attribute and re-evaluates. On error nothing changes.
func (w *Workstation) Update(name, employeeName, department string, monitorDistanceCm int, hasAdjustableChair, hasFootrest bool) error {
	return w.apply(name, employeeName, department, monitorDistanceCm, hasAdjustableChair, hasFootrest)
}

func (w *Workstation) RiskLevel() RiskLevel          { return w.riskLevel }
func (w *Workstation) LastEvaluationDate() time.Time { return w.lastEvaluationDate }
func (w *Workstation) IsCompliant() bool             { return w.riskLevel == RiskLow }

func (w *Workstation) apply(name, employeeName, department string, monitorDistanceCm int, hasAdjustableChair, hasFootrest bool) error {
	n, err := requiredText("name", name)
	if err != nil {
		return err
	}
	e, err := requiredText("employeeName", employeeName)
	if err != nil {
		return err
	}
	d, err := requiredText("department", department)
	if err != nil {
		return err
	}
	if monitorDistanceCm <= 0 {
		return &ValidationError{Field: "monitorDistanceCm", Message: "must be greater than 0"}
	}

	w.Name = n
	w.EmployeeName = e
	w.Department = d
	w.MonitorDistanceCm = monitorDistanceCm
	w.HasAdjustableChair = hasAdjustableChair
	w.HasFootrest = hasFootrest
	w.lastEvaluationDate = Now()
	w.riskLevel = ComputeRisk(monitorDistanceCm, hasAdjustableChair, hasFootrest)
	return nil
}

func requiredText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", &ValidationError{Field: field, Message: "is required"}
	}
	if utf8.RuneCountInString(v) > MaxTextLength {
		return "", &ValidationError{Field: field, Message: "must be at most 100 characters long"}
	}
	return v, nil
}

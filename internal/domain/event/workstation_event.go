package event

import (
	"time"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
)

const (
	WorkstationCreated = "workstation.created"
	WorkstationUpdated = "workstation.updated"
	WorkstationDeleted = "workstation.deleted"
)

// WorkstationEvent is the message published after a workstation is written.
// Snapshot is nil for deletions.
type WorkstationEvent struct {
	ID            string               `json:"id"`
	Type          string               `json:"type"`
	OccurredAt    time.Time            `json:"occurred_at"`
	WorkstationID int64                `json:"workstation_id"`
	PreviousRisk  *entity.RiskLevel    `json:"previous_risk,omitempty"`
	Snapshot      *WorkstationSnapshot `json:"snapshot,omitempty"`
}

type WorkstationSnapshot struct {
	Name               string           `json:"name"`
	EmployeeName       string           `json:"employee_name"`
	Department         string           `json:"department"`
	MonitorDistanceCm  int              `json:"monitor_distance_cm"`
	HasAdjustableChair bool             `json:"has_adjustable_chair"`
	HasFootrest        bool             `json:"has_footrest"`
	RiskLevel          entity.RiskLevel `json:"risk_level"`
	LastEvaluationDate time.Time        `json:"last_evaluation_date"`
}

func Snapshot(w *entity.Workstation) *WorkstationSnapshot {
	return &WorkstationSnapshot{
		Name:               w.Name,
		EmployeeName:       w.EmployeeName,
		Department:         w.Department,
		MonitorDistanceCm:  w.MonitorDistanceCm,
		HasAdjustableChair: w.HasAdjustableChair,
		HasFootrest:        w.HasFootrest,
		RiskLevel:          w.RiskLevel(),
		LastEvaluationDate: w.LastEvaluationDate(),
	}
}

// BecameHighRisk reports whether the event moved a workstation into High risk.
func (e WorkstationEvent) BecameHighRisk() bool {
	if e.Snapshot == nil || e.Snapshot.RiskLevel != entity.RiskHigh {
		return false
	}
	return e.PreviousRisk == nil || *e.PreviousRisk != entity.RiskHigh
}

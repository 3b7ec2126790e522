package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
)

func TestBecameHighRisk(t *testing.T) {
	high := entity.RiskHigh
	low := entity.RiskLow

	cases := []struct {
		name string
		ev   WorkstationEvent
		want bool
	}{
		{"created high", WorkstationEvent{Type: WorkstationCreated, Snapshot: &WorkstationSnapshot{RiskLevel: entity.RiskHigh}}, true},
		{"created low", WorkstationEvent{Type: WorkstationCreated, Snapshot: &WorkstationSnapshot{RiskLevel: entity.RiskLow}}, false},
		{"updated low to high", WorkstationEvent{Type: WorkstationUpdated, PreviousRisk: &low, Snapshot: &WorkstationSnapshot{RiskLevel: entity.RiskHigh}}, true},
		{"updated high stays high", WorkstationEvent{Type: WorkstationUpdated, PreviousRisk: &high, Snapshot: &WorkstationSnapshot{RiskLevel: entity.RiskHigh}}, false},
		{"deleted", WorkstationEvent{Type: WorkstationDeleted}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ev.BecameHighRisk())
		})
	}
}

func TestSnapshot(t *testing.T) {
	w, err := entity.NewWorkstation("Desk", "Ana", "Eng", 90, false, false)
	assert.NoError(t, err)

	s := Snapshot(w)
	assert.Equal(t, "Desk", s.Name)
	assert.Equal(t, entity.RiskHigh, s.RiskLevel)
	assert.Equal(t, w.LastEvaluationDate(), s.LastEvaluationDate)
}

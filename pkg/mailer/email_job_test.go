package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	"github.com/oksasatya/worksafe-api/internal/domain/event"
	mailtpl "github.com/oksasatya/worksafe-api/pkg/mailer/templates"
)

func TestNewRiskAlertJob(t *testing.T) {
	ev := event.WorkstationEvent{
		Type:          event.WorkstationCreated,
		WorkstationID: 3,
		Snapshot: &event.WorkstationSnapshot{
			Name:               "Desk 3",
			EmployeeName:       "Bob",
			Department:         "Finance",
			MonitorDistanceCm:  30,
			RiskLevel:          entity.RiskHigh,
			LastEvaluationDate: time.Now(),
		},
	}
	job, err := NewRiskAlertJob("safety@example.com", mailtpl.NewRiskAlertData(ev))
	require.NoError(t, err)
	assert.Equal(t, "safety@example.com", job.To)
	assert.Equal(t, "[WorkSafe] High ergonomic risk: Desk 3 (Finance)", job.Subject)
	assert.NotContains(t, job.Text, "Previous level")
	assert.NotEmpty(t, job.HTML)
}

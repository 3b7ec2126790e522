package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	"github.com/oksasatya/worksafe-api/internal/domain/event"
	"github.com/oksasatya/worksafe-api/pkg/helpers"
	"github.com/oksasatya/worksafe-api/pkg/mailer"
)

type fakeSender struct {
	sent []mailer.EmailJob
	err  error
}

func (f *fakeSender) Send(_ context.Context, job mailer.EmailJob) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, job)
	return nil
}

func eventBody(t *testing.T, previous *entity.RiskLevel, current entity.RiskLevel) []byte {
	t.Helper()
	ev := event.WorkstationEvent{
		ID:            "ev-9",
		Type:          event.WorkstationUpdated,
		OccurredAt:    time.Now().UTC(),
		WorkstationID: 9,
		PreviousRisk:  previous,
		Snapshot: &event.WorkstationSnapshot{
			Name:               "Desk 9",
			EmployeeName:       "Cid",
			Department:         "Ops",
			MonitorDistanceCm:  95,
			RiskLevel:          current,
			LastEvaluationDate: time.Now().UTC(),
		},
	}
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return b
}

func TestAlertNotifier_SendsOnTransitionToHigh(t *testing.T) {
	sender := &fakeSender{}
	n := NewAlertNotifier(sender, "safety@example.com", "WorkSafe", "https://api.example.com", helpers.DiscardLogger())

	low := entity.RiskLow
	sent, err := n.Handle(context.Background(), eventBody(t, &low, entity.RiskHigh))
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "safety@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Text, "https://api.example.com/api/workstations/9")
}

func TestAlertNotifier_SkipsWhenAlreadyHighOrNotHigh(t *testing.T) {
	sender := &fakeSender{}
	n := NewAlertNotifier(sender, "safety@example.com", "WorkSafe", "", nil)

	high := entity.RiskHigh
	sent, err := n.Handle(context.Background(), eventBody(t, &high, entity.RiskHigh))
	require.NoError(t, err)
	assert.False(t, sent)

	sent, err = n.Handle(context.Background(), eventBody(t, nil, entity.RiskMedium))
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, sender.sent)
}

func TestAlertNotifier_Errors(t *testing.T) {
	n := NewAlertNotifier(&fakeSender{err: errors.New("mailgun 502")}, "safety@example.com", "", "", nil)

	_, err := n.Handle(context.Background(), []byte("{not json"))
	assert.ErrorIs(t, err, ErrBadMessage)

	_, err = n.Handle(context.Background(), eventBody(t, nil, entity.RiskHigh))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadMessage)
}

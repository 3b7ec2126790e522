package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/worksafe-api/internal/domain/event"
	"github.com/oksasatya/worksafe-api/pkg/helpers"
	"github.com/oksasatya/worksafe-api/pkg/mailer"
	mailtpl "github.com/oksasatya/worksafe-api/pkg/mailer/templates"
)

// ErrBadMessage marks a queue message that can never be processed and should be dropped.
var ErrBadMessage = errors.New("bad event message")

// AlertNotifier emails a recipient when a workstation becomes High risk.
type AlertNotifier struct {
	Sender    mailer.Sender
	Recipient string
	AppName   string
	BaseURL   string
	Logger    *logrus.Logger
}

func NewAlertNotifier(sender mailer.Sender, recipient, appName, baseURL string, logger *logrus.Logger) *AlertNotifier {
	return &AlertNotifier{Sender: sender, Recipient: recipient, AppName: appName, BaseURL: baseURL, Logger: logger}
}

// Handle processes one lifecycle event body. It reports whether an alert was sent.
// Decode and render failures wrap ErrBadMessage; send failures are returned as is so the caller can retry.
func (n *AlertNotifier) Handle(ctx context.Context, body []byte) (bool, error) {
	var ev event.WorkstationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return false, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	if !ev.BecameHighRisk() {
		return false, nil
	}

	data := mailtpl.NewRiskAlertData(ev, mailtpl.WithAppName(n.AppName), mailtpl.WithDetailsURL(n.BaseURL))
	job, err := mailer.NewRiskAlertJob(n.Recipient, data)
	if err != nil {
		return false, fmt.Errorf("%w: render alert: %v", ErrBadMessage, err)
	}
	if err := n.Sender.Send(ctx, job); err != nil {
		return false, fmt.Errorf("send alert for workstation %d: %w", ev.WorkstationID, err)
	}
	helpers.LogInfo(n.Logger, "risk alert sent", logrus.Fields{
		"event_id":       ev.ID,
		"workstation_id": ev.WorkstationID,
		"recipient":      n.Recipient,
	})
	return true, nil
}

package mailer

import (
	mailtpl "github.com/oksasatya/worksafe-api/pkg/mailer/templates"
)

// EmailJob is a rendered message ready for a Sender.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// NewRiskAlertJob renders the risk_alert templates for to.
func NewRiskAlertJob(to string, data mailtpl.AlertData) (EmailJob, error) {
	subject, text, html, err := mailtpl.Render(mailtpl.RiskAlert, data)
	if err != nil {
		return EmailJob{}, err
	}
	return EmailJob{To: to, Subject: subject, Text: text, HTML: html}, nil
}

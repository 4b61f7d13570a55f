package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"disaster-response/internal/models"
)

// AlertMailer sends an ops mailbox notification when a high-risk SOS alert
// comes in. It implements the SOS service's AlertSender port.
type AlertMailer struct {
	sender  ServiceInterface
	toEmail string
	tmpl    *template.Template
}

// NewAlertMailer parses the alert template and returns a mailer targeting
// the given ops address.
func NewAlertMailer(sender ServiceInterface, toEmail string) (*AlertMailer, error) {
	tmpl, err := template.New("highRiskAlert").Parse(highRiskAlertTemplate)
	if err != nil {
		return nil, err
	}
	return &AlertMailer{sender: sender, toEmail: toEmail, tmpl: tmpl}, nil
}

// alertTemplateData holds the dynamic data for the alert template.
type alertTemplateData struct {
	ID          int64
	Username    string
	Description string
	Latitude    float64
	Longitude   float64
	RiskLevel   string
}

// SendHighRiskAlert emails the ops mailbox about a high-risk SOS request.
func (m *AlertMailer) SendHighRiskAlert(ctx context.Context, sos *models.SosRequest) error {
	data := alertTemplateData{
		ID:          sos.ID,
		Username:    sos.ReporterUsername,
		Description: sos.Description,
		Latitude:    sos.Latitude,
		Longitude:   sos.Longitude,
		RiskLevel:   string(sos.RiskLevel),
	}

	var body bytes.Buffer
	if err := m.tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("email.SendHighRiskAlert: render: %w", err)
	}

	subject := fmt.Sprintf("High-risk SOS alert #%d from %s", sos.ID, sos.ReporterUsername)
	plain := fmt.Sprintf("High-risk SOS alert #%d from %s at (%f, %f): %s",
		sos.ID, sos.ReporterUsername, sos.Latitude, sos.Longitude, sos.Description)

	return m.sender.SendEmail(ctx, m.toEmail, subject, plain, body.String())
}

const highRiskAlertTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>High-Risk SOS Alert</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>High-Risk SOS Alert #{{.ID}}</h2>
	<p>A new SOS request was classified as <strong>{{.RiskLevel}}</strong> risk.</p>
	<ul>
		<li>Reporter: {{.Username}}</li>
		<li>Location: {{.Latitude}}, {{.Longitude}}</li>
		<li>Description: {{.Description}}</li>
	</ul>
	<p>Please review the admin dashboard and assign a volunteer.</p>
</body>
</html>
`

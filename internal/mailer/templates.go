package mailer

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/edvin/jobboard/internal/model"
)

var warningTmpl = template.Must(template.New("warning").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>{{.Heading}}</h2>
  <p>Hi,</p>
  {{if .IsTrial}}
  <p>The trial period for <strong>{{.TenantName}}</strong> ends on <strong>{{.ExpiresOn}}</strong>
  ({{.DaysLeftText}} from now). After that, job postings and applicant search will no longer be
  available until a paid plan is activated.</p>
  {{else}}
  <p>The subscription for <strong>{{.TenantName}}</strong> expires on <strong>{{.ExpiresOn}}</strong>
  ({{.DaysLeftText}} from now). Renew before then to keep your job postings online without
  interruption.</p>
  {{end}}
  <p>You can manage billing from your employer dashboard.</p>
  <p>Thanks,<br>The Job Board Team</p>
</body>
</html>
`))

type warningData struct {
	Heading      string
	TenantName   string
	ExpiresOn    string
	DaysLeftText string
	IsTrial      bool
}

// RenderWarning produces the subject and HTML body for an expiry warning.
func RenderWarning(c model.WarningCandidate) (subject, body string, err error) {
	data := warningData{
		TenantName:   c.TenantName,
		ExpiresOn:    c.WarnForDate.Format("January 2, 2006"),
		DaysLeftText: daysLeftText(c.DaysLeft),
		IsTrial:      c.Kind == model.WarningKindTrial,
	}
	if data.IsTrial {
		data.Heading = "Your trial is ending soon"
		subject = fmt.Sprintf("Your trial ends in %s", data.DaysLeftText)
	} else {
		data.Heading = "Your subscription is expiring"
		subject = fmt.Sprintf("Your subscription expires in %s", data.DaysLeftText)
	}

	var b strings.Builder
	if err := warningTmpl.Execute(&b, data); err != nil {
		return "", "", fmt.Errorf("render warning template: %w", err)
	}
	return subject, b.String(), nil
}

func daysLeftText(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/jobboard/internal/model"
)

func TestRenderWarning_Trial(t *testing.T) {
	subject, body, err := RenderWarning(model.WarningCandidate{
		TenantID:    "tenant-1",
		TenantName:  "Acme Recruiting",
		Kind:        model.WarningKindTrial,
		DaysLeft:    3,
		WarnForDate: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "Your trial ends in 3 days", subject)
	assert.Contains(t, body, "Acme Recruiting")
	assert.Contains(t, body, "January 4, 2024")
	assert.Contains(t, body, "trial period")
}

func TestRenderWarning_PremiumSingleDay(t *testing.T) {
	subject, body, err := RenderWarning(model.WarningCandidate{
		TenantID:    "tenant-2",
		TenantName:  "Globex",
		Kind:        model.WarningKindPremium,
		DaysLeft:    1,
		WarnForDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "Your subscription expires in 1 day", subject)
	assert.Contains(t, body, "Renew before then")
	assert.NotContains(t, body, "trial period")
}

func TestRenderWarning_EscapesTenantName(t *testing.T) {
	_, body, err := RenderWarning(model.WarningCandidate{
		TenantName:  "<script>alert(1)</script>",
		Kind:        model.WarningKindTrial,
		DaysLeft:    7,
		WarnForDate: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("Job Board <noreply@jobs.test>",
		[]string{"a@acme.test", "b@acme.test"}, "Hello", "<p>hi</p>"))

	assert.Contains(t, msg, "From: Job Board <noreply@jobs.test>\r\n")
	assert.Contains(t, msg, "To: a@acme.test, b@acme.test\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.Contains(t, msg, "\r\n\r\n<p>hi</p>\r\n")
}

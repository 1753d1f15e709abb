package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_ContactEscapesInput(t *testing.T) {
	tm := NewTemplateManager()

	html, err := tm.Render(TemplateContact, TemplateData{
		"Name":    "Eve",
		"Email":   "eve@example.com",
		"Message": "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "eve@example.com")
	assert.NotContains(t, html, "<script>")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	_, err := NewTemplateManager().Render("missing", nil)
	assert.Error(t, err)
}

func TestSMTPProvider_Validate(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Port: 587})
	assert.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "me@example.com"})
	assert.NoError(t, p.Validate())
}

func TestSMTPProvider_BuildMessage(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "me@example.com", FromName: "Portfolio"})

	m := p.buildMessage(&Email{
		To:       []string{"admin@example.com"},
		ReplyTo:  "visitor@example.com",
		Subject:  "Hello",
		Body:     "plain",
		HTMLBody: "<p>html</p>",
	})

	assert.Equal(t, []string{"admin@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"visitor@example.com"}, m.GetHeader("Reply-To"))
	assert.Contains(t, m.GetHeader("From")[0], "me@example.com")
}

func TestLogProvider_NeverFails(t *testing.T) {
	assert.NoError(t, NewLogProvider().Send(context.Background(), &Email{To: []string{"a@b.c"}}))
}
